package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Package manager errors
	ErrHomebrewNotInstalled ErrorCode = "HOMEBREW_NOT_INSTALLED"
	ErrCommandFailed        ErrorCode = "COMMAND_FAILED"

	// Filesystem errors
	ErrFileNotFound     ErrorCode = "FILE_NOT_FOUND"
	ErrPermissionDenied ErrorCode = "PERMISSION_DENIED"
	ErrFileAccess       ErrorCode = "FILE_ACCESS"

	// Catalog transport errors
	ErrNetwork    ErrorCode = "NETWORK"
	ErrTimeout    ErrorCode = "TIMEOUT"
	ErrHTTPStatus ErrorCode = "HTTP_STATUS"

	// Catalog content errors
	ErrCacheInvalid  ErrorCode = "CACHE_INVALID"
	ErrCatalogEmpty  ErrorCode = "CATALOG_EMPTY"
	ErrCatalogDecode ErrorCode = "CATALOG_DECODE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
)

// BrewAdoptError represents a structured error with code and details
type BrewAdoptError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *BrewAdoptError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *BrewAdoptError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *BrewAdoptError) Is(target error) bool {
	var targetErr *BrewAdoptError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new BrewAdoptError with the given code and message
func New(code ErrorCode, message string) *BrewAdoptError {
	return &BrewAdoptError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new BrewAdoptError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BrewAdoptError {
	return &BrewAdoptError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a BrewAdoptError
func Wrap(err error, code ErrorCode, message string) *BrewAdoptError {
	if err == nil {
		return nil
	}
	return &BrewAdoptError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *BrewAdoptError {
	if err == nil {
		return nil
	}
	return &BrewAdoptError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *BrewAdoptError) WithDetail(key string, value interface{}) *BrewAdoptError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *BrewAdoptError) WithDetails(details map[string]interface{}) *BrewAdoptError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var baErr *BrewAdoptError
	if errors.As(err, &baErr) {
		return baErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a BrewAdoptError
func GetErrorCode(err error) ErrorCode {
	var baErr *BrewAdoptError
	if errors.As(err, &baErr) {
		return baErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a BrewAdoptError
func GetErrorDetails(err error) map[string]interface{} {
	var baErr *BrewAdoptError
	if errors.As(err, &baErr) {
		return baErr.Details
	}
	return nil
}

// IsFatal reports whether err is one of the preconditions that abort a
// discovery run: the package manager is unreachable or the application
// directory cannot be read.
func IsFatal(err error) bool {
	switch GetErrorCode(err) {
	case ErrHomebrewNotInstalled, ErrFileNotFound, ErrPermissionDenied:
		return true
	}
	return false
}

// FromFSError classifies a filesystem error into FILE_NOT_FOUND,
// PERMISSION_DENIED or FILE_ACCESS.
func FromFSError(err error, path string) *BrewAdoptError {
	if err == nil {
		return nil
	}
	code := ErrFileAccess
	switch {
	case errors.Is(err, fs.ErrNotExist):
		code = ErrFileNotFound
	case errors.Is(err, fs.ErrPermission):
		code = ErrPermissionDenied
	}
	return Wrapf(err, code, "cannot access %s", path).WithDetail("path", path)
}

// IsTimeout reports whether err represents an expired deadline, either as a
// TIMEOUT coded error or a bare context.DeadlineExceeded.
func IsTimeout(err error) bool {
	return IsErrorCode(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded)
}
