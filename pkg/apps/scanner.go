package apps

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	baerrors "github.com/arthur-debert/brewadopt/pkg/errors"
	"github.com/arthur-debert/brewadopt/pkg/logging"
	"github.com/arthur-debert/brewadopt/pkg/types"
	"github.com/spf13/afero"
)

const bundleSuffix = ".app"

// Dir is one directory the scanner lists.
type Dir struct {
	Path string
	// Optional directories that do not exist are skipped instead of
	// failing the scan.
	Optional bool
}

// Scanner enumerates application bundles.
type Scanner struct {
	FS   afero.Fs
	Dirs []Dir
}

// NewScanner creates a scanner over the given filesystem. The first
// directory is required and the rest are optional, which mirrors the
// /Applications plus ~/Applications layout of a macOS account.
func NewScanner(fsys afero.Fs, dirs ...string) *Scanner {
	s := &Scanner{FS: fsys}
	for i, d := range dirs {
		s.Dirs = append(s.Dirs, Dir{Path: d, Optional: i > 0})
	}
	return s
}

// Scan lists the "*.app" entries of every configured directory,
// non-recursively. Apps are sorted by name within a directory, and an app
// whose normalized name was already seen in an earlier directory is
// skipped. A required directory that is missing yields FILE_NOT_FOUND and
// one that cannot be read yields PERMISSION_DENIED.
func (s *Scanner) Scan(ctx context.Context) ([]*types.LocalApp, error) {
	logger := logging.GetLogger("apps.scanner")
	done := logging.LogOperationStart(logger, "scan applications")
	defer done()

	fsys := s.FS
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	var apps []*types.LocalApp
	seen := make(map[string]struct{})

	for _, dir := range s.Dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entries, err := afero.ReadDir(fsys, dir.Path)
		if err != nil {
			if dir.Optional && errors.Is(err, fs.ErrNotExist) {
				logger.Debug().Str("dir", dir.Path).Msg("Optional application directory missing")
				continue
			}
			return nil, baerrors.FromFSError(err, dir.Path)
		}

		names := make([]string, 0, len(entries))
		for _, e := range entries {
			name := e.Name()
			if !e.IsDir() || strings.HasPrefix(name, ".") {
				continue
			}
			if !strings.EqualFold(filepath.Ext(name), bundleSuffix) {
				continue
			}
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			app := newLocalApp(dir.Path, name)
			if app.NormalizedName == "" {
				logger.Debug().Str("bundle", name).Msg("Skipping bundle with empty normalized name")
				continue
			}
			if _, dup := seen[app.NormalizedName]; dup {
				logger.Trace().Str("bundle", app.BundlePath).Msg("Skipping duplicate app")
				continue
			}
			seen[app.NormalizedName] = struct{}{}

			info, err := readBundleInfo(fsys, app.BundlePath)
			switch {
			case err == nil:
				app.BundleID = info.Identifier
				app.Version = info.Version
			case errors.As(err, new(errBinaryPlist)):
				logger.Debug().Str("bundle", app.BundlePath).Msg("Binary Info.plist, metadata skipped")
			default:
				logger.Trace().Err(err).Str("bundle", app.BundlePath).Msg("No readable Info.plist")
			}

			apps = append(apps, app)
		}
	}

	logger.Info().Int("count", len(apps)).Msg("Found applications")
	return apps, nil
}

// newLocalApp derives the identity fields of an app from its bundle name.
func newLocalApp(dir, bundleName string) *types.LocalApp {
	original := StripBundleSuffix(bundleName)
	normalized := Normalize(original)
	return &types.LocalApp{
		OriginalName:   original,
		NormalizedName: normalized,
		PackageName:    PackageNameVariant(normalized),
		BundlePath:     filepath.Join(dir, bundleName),
		Status:         types.StatusPending,
	}
}

// NewLocalApp builds a pending LocalApp for a display name, as if a bundle
// named "<name>.app" had been found in dir.
func NewLocalApp(dir, name string) *types.LocalApp {
	return newLocalApp(dir, name+bundleSuffix)
}
