// Package errors provides structured error types for pangraph.
//
// The variation graph core distinguishes three families of failure:
//   - MALFORMED_INPUT: rejected before any mutation begins
//   - INVARIANT_VIOLATION: a logic bug inside a graph pass; never suppressed
//   - AMBIGUOUS_ALTERNATIVE: a recoverable query error on a Slice
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedInput, "path %q: order gap at %d", acc, i)
//	if errors.Is(err, errors.ErrCodeInvariantViolation) {
//	    // discard the zoom level and rebuild from the previous one
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "persist level %d", zoom)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeMalformedInput Code = "MALFORMED_INPUT"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"

	// Graph logic errors
	ErrCodeInvariantViolation   Code = "INVARIANT_VIOLATION"
	ErrCodeAmbiguousAlternative Code = "AMBIGUOUS_ALTERNATIVE"
	ErrCodeLevelSealed          Code = "LEVEL_SEALED"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
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

// Annotate prefixes the message of err with a formatted context. An *Error
// keeps its code and cause, so the code appears once in the result; any
// other error is wrapped with its chain's code, or ErrCodeInternal.
func Annotate(err error, format string, args ...any) *Error {
	prefix := fmt.Sprintf(format, args...)
	if e, ok := err.(*Error); ok {
		return &Error{Code: e.Code, Message: prefix + ": " + e.Message, Cause: e.Cause}
	}
	code := GetCode(err)
	if code == "" {
		code = ErrCodeInternal
	}
	return Wrap(code, err, "%s", prefix)
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
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

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsFatal reports whether err marks the current zoom level as unusable.
// Malformed input and invariant violations abort a pass; the level that was
// being written must be discarded and rebuilt from the level below it.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeMalformedInput, ErrCodeInvariantViolation:
		return true
	}
	return false
}
