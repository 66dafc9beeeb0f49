package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// ErrorFS wraps an afero.Fs and fails operations on chosen paths.
type ErrorFS struct {
	afero.Fs

	mu     sync.RWMutex
	errors map[string]error
}

// NewErrorFS wraps base.
func NewErrorFS(base afero.Fs) *ErrorFS {
	return &ErrorFS{Fs: base, errors: make(map[string]error)}
}

// FailOn makes every operation on path return err wrapped in a
// *fs.PathError.
func (e *ErrorFS) FailOn(path string, err error) *ErrorFS {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errors[filepath.Clean(path)] = err
	return e
}

func (e *ErrorFS) check(op, name string) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if err, ok := e.errors[filepath.Clean(name)]; ok {
		return &fs.PathError{Op: op, Path: name, Err: err}
	}
	return nil
}

func (e *ErrorFS) Open(name string) (afero.File, error) {
	if err := e.check("open", name); err != nil {
		return nil, err
	}
	return e.Fs.Open(name)
}

func (e *ErrorFS) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if err := e.check("open", name); err != nil {
		return nil, err
	}
	return e.Fs.OpenFile(name, flag, perm)
}

func (e *ErrorFS) Create(name string) (afero.File, error) {
	if err := e.check("create", name); err != nil {
		return nil, err
	}
	return e.Fs.Create(name)
}

func (e *ErrorFS) Stat(name string) (os.FileInfo, error) {
	if err := e.check("stat", name); err != nil {
		return nil, err
	}
	return e.Fs.Stat(name)
}

func (e *ErrorFS) Remove(name string) error {
	if err := e.check("remove", name); err != nil {
		return err
	}
	return e.Fs.Remove(name)
}

func (e *ErrorFS) Rename(oldname, newname string) error {
	if err := e.check("rename", newname); err != nil {
		return err
	}
	return e.Fs.Rename(oldname, newname)
}

func (e *ErrorFS) MkdirAll(path string, perm os.FileMode) error {
	if err := e.check("mkdir", path); err != nil {
		return err
	}
	return e.Fs.MkdirAll(path, perm)
}

func (e *ErrorFS) Chtimes(name string, atime, mtime time.Time) error {
	if err := e.check("chtimes", name); err != nil {
		return err
	}
	return e.Fs.Chtimes(name, atime, mtime)
}
