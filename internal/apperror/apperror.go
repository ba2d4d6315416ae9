// Package apperror defines the application's error taxonomy.
//
// Each sentinel below corresponds to one class of failure the HTTP layer knows
// how to translate (see handler/response.go). Services and repositories return
// these instead of HTTP status codes, so they stay protocol-agnostic.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrRateLimited  = errors.New("rate limited")
)

// AppError pairs a sentinel (for errors.Is checks) with a human-readable
// message that is safe to show to API clients.
type AppError struct {
	Err     error  // sentinel classifying the failure
	Message string // human-readable, client-safe message
	Field   string // optional: field causing a validation error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that the named resource does not exist.
// The message matches what the frontend already expects, e.g. "Service not found".
func NotFound(resource string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// InvalidCredentials is returned for BOTH an unknown username and a wrong
// password. The two cases must be indistinguishable to the caller so that the
// login endpoint can't be used to enumerate valid usernames.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: "Invalid credentials",
	}
}

// Unauthorized returns an AppError for requests lacking valid authentication.
// HTTP handlers map this to 401.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// Forbidden returns an AppError indicating the caller presented credentials
// that were rejected. HTTP handlers map this to 403.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// RateLimited reports that a client exceeded a request window.
// HTTP handlers map this to 429.
func RateLimited(message string) *AppError {
	return &AppError{
		Err:     ErrRateLimited,
		Message: message,
	}
}
