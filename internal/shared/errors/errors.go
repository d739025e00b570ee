package errors

import (
	"errors"
	"fmt"
)

// AppError carries a stable code alongside a human-readable message so that
// transport layers can map failures to responses without string matching.
type AppError struct {
	Code    string // stable error code for clients
	Message string // human-readable message
	Err     error  // underlying error, optional
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Error codes
const (
	CodeValidation   = "VALIDATION_ERROR" // missing or malformed field
	CodeNotFound     = "NOT_FOUND"        // update/delete target absent
	CodeSchema       = "SCHEMA_ERROR"     // import missing required columns
	CodeParse        = "PARSE_ERROR"      // unparseable date on import
	CodeIO           = "IO_ERROR"         // file unreadable or unwritable
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInternal     = "INTERNAL_ERROR"
)

// Validation creates a validation error
func Validation(format string, args ...any) *AppError {
	return &AppError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a not found error for the given resource
func NotFound(resource string) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

// Schema creates a schema error
func Schema(format string, args ...any) *AppError {
	return &AppError{Code: CodeSchema, Message: fmt.Sprintf(format, args...)}
}

// Parse creates a parse error wrapping the underlying cause
func Parse(err error, format string, args ...any) *AppError {
	return &AppError{Code: CodeParse, Message: fmt.Sprintf(format, args...), Err: err}
}

// IO creates an I/O error wrapping the underlying cause
func IO(err error, format string, args ...any) *AppError {
	return &AppError{Code: CodeIO, Message: fmt.Sprintf(format, args...), Err: err}
}

// Unauthorized creates an unauthorized error
func Unauthorized(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

// Internal wraps an unexpected error
func Internal(message string, err error) *AppError {
	return &AppError{Code: CodeInternal, Message: message, Err: err}
}

// CodeOf returns the code of err if it is (or wraps) an AppError,
// and CodeInternal otherwise.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	return CodeOf(err) == code
}

// MessageOf returns the user-facing message of err. Internal errors keep
// their underlying cause out of the message.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal error"
}
