// Package errors provides structured error types for the flowdraw application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND_*: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle validation error
//	}
//
// Errors returned by the layout engine carry no code. [FromLayoutError]
// classifies them at the CLI and API boundary.
package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/matzehuels/flowdraw/pkg/core/flow"
	"github.com/matzehuels/flowdraw/pkg/core/render"
	"github.com/matzehuels/flowdraw/pkg/core/render/layout"
	"github.com/matzehuels/flowdraw/pkg/graph"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidWorkflow  Code = "INVALID_WORKFLOW"
	ErrCodeInvalidReference Code = "INVALID_REFERENCE"
	ErrCodeInvalidGeometry  Code = "INVALID_GEOMETRY"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle     Code = "INVALID_STYLE"
	ErrCodeInvalidVizType   Code = "INVALID_VIZ_TYPE"
	ErrCodeDegenerateGraph  Code = "DEGENERATE_GRAPH"
	ErrCodeTooLarge         Code = "TOO_LARGE"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeTimeout     Code = "TIMEOUT"
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
	if e.Cause != nil && e.Cause.Error() != e.Message {
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

// FromLayoutError classifies an error returned by workflow parsing, the
// layout engine or a renderer. The message is the original error text and
// the cause is err itself. Errors that already carry a code are returned
// unchanged; unknown errors become ErrCodeInternal.
func FromLayoutError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	code := ErrCodeInternal
	switch {
	case errors.As(err, new(*flow.ReferentialError)):
		code = ErrCodeInvalidReference
	case errors.Is(err, flow.ErrDegenerateGraph):
		code = ErrCodeDegenerateGraph
	case errors.Is(err, flow.ErrInvalidTaskID), errors.Is(err, flow.ErrDuplicateTaskID),
		errors.Is(err, graph.ErrInvalidWorkflow):
		code = ErrCodeInvalidWorkflow
	case errors.Is(err, layout.ErrInvalidGeometry):
		code = ErrCodeInvalidGeometry
	case errors.Is(err, render.ErrConverterMissing):
		code = ErrCodeUnsupported
	case errors.Is(err, fs.ErrNotExist):
		code = ErrCodeFileNotFound
	case errors.Is(err, context.DeadlineExceeded):
		code = ErrCodeTimeout
	}
	return &Error{Code: code, Message: err.Error(), Cause: err}
}

// HTTPStatus returns the HTTP status code for an error code.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidWorkflow, ErrCodeInvalidGeometry,
		ErrCodeInvalidFormat, ErrCodeInvalidStyle, ErrCodeInvalidVizType:
		return http.StatusBadRequest
	case ErrCodeInvalidReference, ErrCodeDegenerateGraph:
		return http.StatusUnprocessableEntity
	case ErrCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrCodeNotFound, ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
