// Package errors provides structured error types for traitcodec.
//
// Every failure the codec can surface carries a machine-readable [Code] so the
// CLI and the pipeline can tell fatal conditions from recoverable ones:
//
//   - PARSE_ERROR: malformed source markup, path data or image (fatal)
//   - UNSUPPORTED_PRIMITIVE: an element or attribute the converter cannot handle (fatal)
//   - DEGENERATE_GEOMETRY: quantization collapsed a primitive (recoverable, dropped)
//   - NAMING_CONVENTION: an asset identifier lacks its layer/item tokens (fatal)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNamingConvention, "no layer token in %q", id)
//	if errors.Is(err, errors.ErrCodeNamingConvention) {
//	    // Handle naming error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeParse, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Codec errors
	ErrCodeParse                Code = "PARSE_ERROR"
	ErrCodeUnsupportedPrimitive Code = "UNSUPPORTED_PRIMITIVE"
	ErrCodeDegenerateGeometry   Code = "DEGENERATE_GEOMETRY"
	ErrCodeNamingConvention     Code = "NAMING_CONVENTION"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// Recoverable reports whether err only affects the primitive that produced it.
// Degenerate geometry is dropped locally; everything else aborts the run.
func Recoverable(err error) bool {
	return Is(err, ErrCodeDegenerateGeometry)
}
