// Test Type: Unit Test
// Description: Application directory scanning against memory filesystems

package apps_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/brewadopt/pkg/apps"
	"github.com/arthur-debert/brewadopt/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const xmlPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleName</key>
	<string>Code</string>
	<key>CFBundleIdentifier</key>
	<string>com.microsoft.VSCode</string>
	<key>LSRequiresNativeExecution</key>
	<true/>
	<key>CFBundleShortVersionString</key>
	<string>1.92.0</string>
</dict>
</plist>`

func mkApp(t *testing.T, fsys afero.Fs, dir, name, plist string) {
	t.Helper()
	bundle := filepath.Join(dir, name)
	require.NoError(t, fsys.MkdirAll(filepath.Join(bundle, "Contents"), 0755))
	if plist != "" {
		require.NoError(t, afero.WriteFile(fsys, filepath.Join(bundle, "Contents", "Info.plist"), []byte(plist), 0644))
	}
}

func TestScanner_Scan(t *testing.T) {
	fsys := afero.NewMemMapFs()
	mkApp(t, fsys, "/Applications", "Visual Studio Code.app", xmlPlist)
	mkApp(t, fsys, "/Applications", "Bartender 5.app", "bplist00garbage")
	mkApp(t, fsys, "/Applications", "Alfred.app", "")
	mkApp(t, fsys, "/Applications", ".Hidden.app", "")
	require.NoError(t, fsys.MkdirAll("/Applications/Utilities", 0755))
	require.NoError(t, afero.WriteFile(fsys, "/Applications/readme.app", []byte("not a dir"), 0644))
	mkApp(t, fsys, "/Users/me/Applications", "alfred.app", "")
	mkApp(t, fsys, "/Users/me/Applications", "Tot.app", "")

	scanner := apps.NewScanner(fsys, "/Applications", "/Users/me/Applications")
	found, err := scanner.Scan(context.Background())
	require.NoError(t, err)

	var names []string
	for _, a := range found {
		names = append(names, a.OriginalName)
	}
	assert.Equal(t, []string{"Alfred", "Bartender 5", "Visual Studio Code", "Tot"}, names)

	bartender := found[1]
	assert.Equal(t, "bartender-5", bartender.NormalizedName)
	assert.Equal(t, "bartender", bartender.PackageName)
	assert.Equal(t, "/Applications/Bartender 5.app", bartender.BundlePath)
	assert.Empty(t, bartender.BundleID)

	code := found[2]
	assert.Equal(t, "com.microsoft.VSCode", code.BundleID)
	assert.Equal(t, "1.92.0", code.Version)
	assert.Equal(t, "pending", string(code.Status))
}

func TestScanner_OptionalDirMissing(t *testing.T) {
	fsys := afero.NewMemMapFs()
	mkApp(t, fsys, "/Applications", "Tot.app", "")

	found, err := apps.NewScanner(fsys, "/Applications", "/nope").Scan(context.Background())
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestScanner_RequiredDirMissing(t *testing.T) {
	_, err := apps.NewScanner(afero.NewMemMapFs(), "/Applications").Scan(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
	assert.True(t, errors.IsFatal(err))
}

type deniedFs struct {
	afero.Fs
	denied string
}

func (d deniedFs) Open(name string) (afero.File, error) {
	if name == d.denied {
		return nil, &fs.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return d.Fs.Open(name)
}

func TestScanner_PermissionDenied(t *testing.T) {
	mem := afero.NewMemMapFs()
	mkApp(t, mem, "/Applications", "Tot.app", "")

	_, err := apps.NewScanner(deniedFs{Fs: mem, denied: "/Applications"}, "/Applications").Scan(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPermissionDenied))
}

func TestScanner_EmptyDir(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/Applications", 0755))

	found, err := apps.NewScanner(fsys, "/Applications").Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestScanner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := apps.NewScanner(afero.NewMemMapFs(), "/Applications").Scan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewLocalApp(t *testing.T) {
	app := apps.NewLocalApp("/Applications", "Bartender 5")
	assert.Equal(t, "Bartender 5", app.OriginalName)
	assert.Equal(t, "bartender-5", app.NormalizedName)
	assert.Equal(t, "bartender", app.PackageName)
	assert.Equal(t, "/Applications/Bartender 5.app", app.BundlePath)
}
