// Package paths provides centralized path handling for brewadopt.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/brewadopt/pkg/errors"
)

// Environment variable names
const (
	// EnvCacheDir overrides the XDG cache directory for brewadopt
	EnvCacheDir = "BREWADOPT_CACHE_DIR"

	// EnvConfigDir overrides the XDG config directory for brewadopt
	EnvConfigDir = "BREWADOPT_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for brewadopt
	EnvStateDir = "BREWADOPT_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name used under every XDG base directory
	AppDirName = "brewadopt"

	// CatalogCacheFile is the gzip-compressed cask catalog snapshot
	CatalogCacheFile = "casks.json.gz"

	// ConfigFileName is the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "brewadopt.log"

	// SystemApplicationsDir is where macOS installs applications for all users
	SystemApplicationsDir = "/Applications"
)

// Paths provides centralized path management for brewadopt
type Paths interface {
	CacheDir() string
	ConfigDir() string
	StateDir() string
	CatalogCachePath() string
	ConfigFilePath() string
	LogFilePath() string
	ApplicationDirs() []string
}

type paths struct {
	cache  string
	config string
	state  string
	home   string
}

// New creates a Paths instance, resolving XDG directories and honoring
// the BREWADOPT_* overrides.
func New() (Paths, error) {
	home, err := GetHomeDirectory()
	if err != nil {
		return nil, err
	}

	p := &paths{home: home}

	if dir := os.Getenv(EnvCacheDir); dir != "" {
		p.cache = ExpandHome(dir)
	} else {
		p.cache = filepath.Join(xdg.CacheHome, AppDirName)
	}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.config = ExpandHome(dir)
	} else {
		p.config = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	// XDG_STATE_HOME is read directly so tests can redirect it without
	// reloading the xdg package.
	switch {
	case os.Getenv(EnvStateDir) != "":
		p.state = ExpandHome(os.Getenv(EnvStateDir))
	case os.Getenv("XDG_STATE_HOME") != "":
		p.state = filepath.Join(os.Getenv("XDG_STATE_HOME"), AppDirName)
	default:
		p.state = filepath.Join(home, ".local", "state", AppDirName)
	}

	return p, nil
}

// CacheDir returns the cache directory for brewadopt
func (p *paths) CacheDir() string {
	return p.cache
}

// ConfigDir returns the config directory for brewadopt
func (p *paths) ConfigDir() string {
	return p.config
}

// StateDir returns the state directory (logs)
func (p *paths) StateDir() string {
	return p.state
}

// CatalogCachePath returns the location of the compressed catalog snapshot
func (p *paths) CatalogCachePath() string {
	return filepath.Join(p.cache, CatalogCacheFile)
}

// ConfigFilePath returns the location of the user configuration file
func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.config, ConfigFileName)
}

// LogFilePath returns the location of the log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.state, LogFileName)
}

// ApplicationDirs returns the directories scanned for app bundles by default:
// the system /Applications folder followed by the per-user ~/Applications.
func (p *paths) ApplicationDirs() []string {
	return []string{
		SystemApplicationsDir,
		filepath.Join(p.home, "Applications"),
	}
}

// GetHomeDirectory returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment variable.
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	homeDir = os.Getenv(EnvHome)
	if homeDir != "" {
		return homeDir, nil
	}

	return "", errors.New(errors.ErrFileAccess, "unable to determine home directory: neither os.UserHomeDir() nor HOME environment variable are available")
}

// ExpandHome expands ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}
