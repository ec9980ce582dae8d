// Package errors provides coded errors shared by the builder, the HTTP
// service and the CLI. The code decides the HTTP status and the exit path;
// the message is what users see.
//
// # Error Codes
//
//   - INVALID_*: Input, configuration or artifact validation failures
//   - NOT_FOUND: A component could not be resolved
//   - BUILD_ABORT: The registry build stopped and wrote nothing
//   - STORE_ERROR / INTERNAL_ERROR: Storage and unexpected failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNotFound, "component %q not found", id)
//	if errors.Is(err, errors.ErrCodeNotFound) {
//	    // Render the not-found document
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeBuildAbort, origErr, "read %s", path)
package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidIdentifier Code = "INVALID_IDENTIFIER"
	ErrCodeInvalidArtifact   Code = "INVALID_ARTIFACT"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Build errors
	ErrCodeBuildAbort Code = "BUILD_ABORT"

	// Storage errors
	ErrCodeStore Code = "STORE_ERROR"

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

// UserMessage returns err without code prefixes: the message of each *Error
// in the chain joined with ": ", ending in the first plain cause.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}

// IsCanceled reports whether err stems from a canceled context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// HTTPStatus maps an error to the HTTP status code the service responds with.
// Identifier validation failures are reported as not found so that probing
// with malformed slugs is indistinguishable from asking for a missing one.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case "":
		if err == nil {
			return http.StatusOK
		}
		return http.StatusInternalServerError
	case ErrCodeNotFound, ErrCodeInvalidIdentifier:
		return http.StatusNotFound
	case ErrCodeInvalidInput, ErrCodeInvalidFormat:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
