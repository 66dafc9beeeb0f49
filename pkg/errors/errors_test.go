// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, classification and utility functions

package errors_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/arthur-debert/brewadopt/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrFileNotFound,
			message: "directory missing",
			wantStr: "[FILE_NOT_FOUND] directory missing",
		},
		{
			name:    "homebrew_missing",
			code:    errors.ErrHomebrewNotInstalled,
			message: "brew not on PATH",
			wantStr: "[HOMEBREW_NOT_INSTALLED] brew not on PATH",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrHTTPStatus, "catalog returned %d", 503)
	assert.Equal(t, "catalog returned 503", err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrNetwork, "fetch failed")

		assert.Equal(t, errors.ErrNetwork, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.Equal(t, "[NETWORK] fetch failed: base error", err.Error())
		assert.True(t, stderrors.Is(err, baseErr))
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrNetwork, "fetch failed"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrNetwork, "fetch %s", "failed"))
	})
}

func TestWithDetails(t *testing.T) {
	err := errors.New(errors.ErrHTTPStatus, "bad status").
		WithDetail("status", 404).
		WithDetails(map[string]interface{}{"url": "https://example.test"})

	assert.Equal(t, 404, err.Details["status"])
	assert.Equal(t, "https://example.test", err.Details["url"])
	assert.Equal(t, 404, errors.GetErrorDetails(err)["status"])
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrTimeout, "error 1")
	err2 := errors.New(errors.ErrTimeout, "error 2")
	err3 := errors.New(errors.ErrNetwork, "error 3")

	assert.True(t, err1.Is(err2))
	assert.False(t, err1.Is(err3))
	assert.True(t, stderrors.Is(err1, err2))
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrCommandFailed, "x"), errors.ErrCommandFailed, true},
		{"different_code", errors.New(errors.ErrCommandFailed, "x"), errors.ErrNetwork, false},
		{"wrapped_twice", fmt.Errorf("outer: %w", errors.New(errors.ErrTimeout, "x")), errors.ErrTimeout, true},
		{"plain_error", stderrors.New("standard error"), errors.ErrUnknown, false},
		{"nil_error", nil, errors.ErrUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrCacheInvalid, errors.GetErrorCode(errors.New(errors.ErrCacheInvalid, "x")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		code  errors.ErrorCode
		fatal bool
	}{
		{errors.ErrHomebrewNotInstalled, true},
		{errors.ErrFileNotFound, true},
		{errors.ErrPermissionDenied, true},
		{errors.ErrNetwork, false},
		{errors.ErrTimeout, false},
		{errors.ErrCommandFailed, false},
		{errors.ErrUnknown, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.fatal, errors.IsFatal(errors.New(tt.code, "x")))
		})
	}
}

func TestFromFSError(t *testing.T) {
	assert.Nil(t, errors.FromFSError(nil, "/x"))

	notFound := errors.FromFSError(&fs.PathError{Op: "open", Path: "/x", Err: fs.ErrNotExist}, "/x")
	assert.Equal(t, errors.ErrFileNotFound, notFound.Code)
	assert.Equal(t, "/x", notFound.Details["path"])

	denied := errors.FromFSError(&fs.PathError{Op: "open", Path: "/x", Err: fs.ErrPermission}, "/x")
	assert.Equal(t, errors.ErrPermissionDenied, denied.Code)

	other := errors.FromFSError(stderrors.New("io"), "/x")
	assert.Equal(t, errors.ErrFileAccess, other.Code)
}

func TestIsTimeout(t *testing.T) {
	assert.True(t, errors.IsTimeout(errors.New(errors.ErrTimeout, "x")))
	assert.True(t, errors.IsTimeout(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)))
	assert.False(t, errors.IsTimeout(errors.New(errors.ErrNetwork, "x")))
}
