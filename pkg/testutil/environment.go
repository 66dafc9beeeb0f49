package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/brewadopt/pkg/paths"
	"github.com/spf13/afero"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment bundles the directories and filesystem a test works in.
type TestEnvironment struct {
	HomeDir   string
	AppsDir   string
	CacheDir  string
	ConfigDir string
	StateDir  string

	FS    afero.Fs
	Paths paths.Paths
	Type  EnvType

	t *testing.T
}

// NewTestEnvironment creates the directories and points the BREWADOPT_*
// overrides at them.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	root := "/virtual"
	switch envType {
	case EnvMemoryOnly:
		env.FS = afero.NewMemMapFs()
	case EnvIsolated:
		root = t.TempDir()
		env.FS = afero.NewOsFs()
	}

	env.HomeDir = filepath.Join(root, "home")
	env.AppsDir = filepath.Join(root, "Applications")
	env.CacheDir = filepath.Join(env.HomeDir, ".cache", "brewadopt")
	env.ConfigDir = filepath.Join(env.HomeDir, ".config", "brewadopt")
	env.StateDir = filepath.Join(env.HomeDir, ".local", "state", "brewadopt")

	for _, dir := range []string{env.HomeDir, env.AppsDir, env.ConfigDir} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv(paths.EnvCacheDir, env.CacheDir)
	t.Setenv(paths.EnvConfigDir, env.ConfigDir)
	t.Setenv(paths.EnvStateDir, env.StateDir)

	p, err := paths.New()
	if err != nil {
		t.Fatalf("Failed to create paths: %v", err)
	}
	env.Paths = p

	return env
}

// CachePath returns the catalog cache file location.
func (env *TestEnvironment) CachePath() string {
	return env.Paths.CatalogCachePath()
}

// AddApp creates <AppsDir>/<name>.app, with an Info.plist declaring
// bundleID when it is not empty.
func (env *TestEnvironment) AddApp(name, bundleID string) string {
	env.t.Helper()
	bundle := filepath.Join(env.AppsDir, name+".app")
	WriteBundle(env.t, env.FS, bundle, bundleID, "")
	return bundle
}

// WriteBundle creates an application bundle directory. An Info.plist is
// written when bundleID or version is set.
func WriteBundle(t *testing.T, fsys afero.Fs, bundlePath, bundleID, version string) {
	t.Helper()
	contents := filepath.Join(bundlePath, "Contents")
	if err := fsys.MkdirAll(contents, 0755); err != nil {
		t.Fatalf("Failed to create bundle %s: %v", bundlePath, err)
	}
	if bundleID == "" && version == "" {
		return
	}
	if err := afero.WriteFile(fsys, filepath.Join(contents, "Info.plist"), []byte(InfoPlist(bundleID, version)), 0644); err != nil {
		t.Fatalf("Failed to write Info.plist: %v", err)
	}
}

// InfoPlist renders a minimal XML property list.
func InfoPlist(bundleID, version string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleIdentifier</key>
	<string>` + bundleID + `</string>
	<key>CFBundleShortVersionString</key>
	<string>` + version + `</string>
</dict>
</plist>
`
}
