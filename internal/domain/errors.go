package domain

import (
	"errors"
	"net/http"
)

// Error codes for client-facing failure categories.
const (
	CodeNotFound     = 1
	CodeValidation   = 2
	CodeUnauthorized = 3
	CodeUnavailable  = 4
	CodeInternal     = 5
)

// AppError represents an application error with a code, message, and optional wrapped error.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface. Transport-level failures carry no
// user-facing message, only a wrapped cause.
func (e *AppError) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap returns the wrapped error for use with errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined errors.
//
// To check whether an error matches one of these categories, use the
// corresponding helper function (IsNotFound, IsValidation, etc.) instead
// of errors.Is. The helpers use errors.As with error-code comparison, so
// they correctly match any *AppError carrying the same code, including
// wrapped errors and fresh instances from NewAppError.
var (
	ErrNotFound     = &AppError{Code: CodeNotFound, Message: "not found"}
	ErrValidation   = &AppError{Code: CodeValidation, Message: "validation error"}
	ErrUnauthorized = &AppError{Code: CodeUnauthorized, Message: "unauthorized"}
	ErrUnavailable  = &AppError{Code: CodeUnavailable, Message: "service unavailable"}
	ErrInternal     = &AppError{Code: CodeInternal, Message: "internal error"}
)

// NewAppError creates a new AppError with the given code, message, and wrapped error.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsNotFound reports whether err is or wraps an AppError with CodeNotFound.
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsValidation reports whether err is or wraps an AppError with CodeValidation.
func IsValidation(err error) bool {
	return hasCode(err, CodeValidation)
}

// IsUnauthorized reports whether err is or wraps an AppError with CodeUnauthorized.
func IsUnauthorized(err error) bool {
	return hasCode(err, CodeUnauthorized)
}

// IsUnavailable reports whether err is or wraps an AppError with CodeUnavailable.
// Network failures, timeouts, and 5xx responses all map to this category.
func IsUnavailable(err error) bool {
	return hasCode(err, CodeUnavailable)
}

// IsInternal reports whether err is or wraps an AppError with CodeInternal.
func IsInternal(err error) bool {
	return hasCode(err, CodeInternal)
}

// hasCode checks whether err is or wraps an *AppError with the given code.
func hasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// FieldErrors is the structured field → messages mapping returned by the
// backend on HTTP 422.
type FieldErrors map[string][]string

// First returns the first message of the first invalid field, scanning field
// names in sorted order so the result is deterministic. Returns "" when empty.
func (f FieldErrors) First() string {
	first := ""
	for name, msgs := range f {
		if len(msgs) == 0 {
			continue
		}
		if first == "" || name < first {
			first = name
		}
	}
	if first == "" {
		return ""
	}
	return f[first][0]
}

// ValidationError carries the full per-field error map from a 422 response.
// It is wrapped inside an AppError with CodeValidation so callers that only
// need the headline message can ignore it.
type ValidationError struct {
	Fields FieldErrors
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if msg := e.Fields.First(); msg != "" {
		return msg
	}
	return "validation error"
}

// FieldErrorsOf extracts the per-field validation map from err, if present.
func FieldErrorsOf(err error) (FieldErrors, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields, true
	}
	return nil, false
}

// HTTPStatusCode maps an error to an HTTP status code. Used by the devserver;
// unknown errors map to 500.
func HTTPStatusCode(err error) int {
	var appErr *AppError
	if err != nil && errors.As(err, &appErr) {
		switch appErr.Code {
		case CodeNotFound:
			return http.StatusNotFound
		case CodeValidation:
			return http.StatusUnprocessableEntity
		case CodeUnauthorized:
			return http.StatusUnauthorized
		case CodeUnavailable:
			return http.StatusServiceUnavailable
		case CodeInternal:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}
