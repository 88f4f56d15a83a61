// Package errors provides coded error types for knowdeps.
//
// Codes let the command surface tell the three environment failures
// (no workspace, unreadable manifest, malformed manifest) apart from lookup
// and internal failures without string matching:
//
//	err := errors.New(errors.ErrCodeNoWorkspace, "no workspace open")
//	if errors.IsEnvironment(err) {
//	    notify(errors.UserMessage(err))
//	}
//
//	// Wrap an underlying cause
//	err := errors.Wrap(errors.ErrCodeManifestUnreadable, ioErr, "cannot read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Environment errors abort the command before a panel is shown.
	ErrCodeNoWorkspace        Code = "NO_WORKSPACE"
	ErrCodeManifestUnreadable Code = "MANIFEST_UNREADABLE"
	ErrCodeInvalidManifest    Code = "INVALID_MANIFEST"

	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidPackage Code = "INVALID_PACKAGE"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"

	// Registry errors reported by commands that look up a single package
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeNetwork  Code = "NETWORK_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether the outermost *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsEnvironment reports whether err is one of the failures that abort a
// command before any panel is created.
func IsEnvironment(err error) bool {
	switch GetCode(err) {
	case ErrCodeNoWorkspace, ErrCodeManifestUnreadable, ErrCodeInvalidManifest:
		return true
	}
	return false
}

// UserMessage returns the notification text for err.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
