// Package apperrors holds the error taxonomy shared by the stores, the
// services and the HTTP layer. Every error the application raises on
// purpose is an *Error whose Kind is one of the sentinel kinds below, so
// callers can branch with errors.Is(err, apperrors.ErrNotFound).
package apperrors

import (
	"errors"
	"net/http"
)

var (
	ErrValidation = errors.New("validation error")
	ErrAuth       = errors.New("authentication error")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

type Error struct {
	Kind    error
	Message string
	// Status overrides the kind's default HTTP status when non-zero.
	Status int
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) *Error { return New(ErrValidation, message) }
func NotFound(message string) *Error   { return New(ErrNotFound, message) }
func Conflict(message string) *Error   { return New(ErrConflict, message) }
func Forbidden(message string) *Error  { return New(ErrForbidden, message) }

// Unauthenticated is an auth error answered with 401 instead of 400.
func Unauthenticated(message string) *Error {
	return &Error{Kind: ErrAuth, Message: message, Status: http.StatusUnauthorized}
}

// HTTPStatus maps err onto a response status. Errors outside the taxonomy
// map to 500.
func HTTPStatus(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr.Status
	}
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrAuth), errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
