// Package errors provides the error taxonomy for the trading console.
// Service and store errors are AppErrors so the gateway can render them
// consistently without leaking internal details to clients.
package errors

import (
	"fmt"
	"net/http"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, optional field-level messages,
// and an optional internal error.
type AppError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Fields     map[string]string `json:"fields,omitempty"`
	StatusCode int               `json:"-"`
	Internal   error             `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so that
// derived errors still match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		Fields:     sentinel.Fields,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		Fields:     sentinel.Fields,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// WithFields creates a new AppError carrying field-level messages.
func WithFields(sentinel *AppError, fields map[string]string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		Fields:     fields,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// NotFound reports an update or delete against an id that does not exist.
func NotFound(kind string, id uint) *AppError {
	return WithMessage(ErrNotFound, fmt.Sprintf("Invalid %s id: %d", kind, id))
}

// Authentication & authorization errors.
var (
	ErrUnknownPrincipal   = &AppError{Code: "UNKNOWN_PRINCIPAL", Message: "User not found", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid username or password", StatusCode: http.StatusUnauthorized}
	ErrUnauthenticated    = &AppError{Code: "UNAUTHENTICATED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "You are not authorized for the requested data.", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrValidationFailed = &AppError{Code: "VALIDATION_FAILED", Message: "Validation failed", StatusCode: http.StatusBadRequest}
	ErrInvalidInput     = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound         = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer   = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrDuplicateUsername = &AppError{
		Code:       "DUPLICATE_USERNAME",
		Message:    "A user with this username already exists",
		Fields:     map[string]string{"username": "Username is already taken"},
		StatusCode: http.StatusConflict,
	}
)
