// Package common defines shared constants and sentinel errors used across
// the auth service, the task service and the client. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal       = errors.New("internal error")
	ErrorUnauthorized   = errors.New("unauthorized")
	ErrorForbidden      = errors.New("forbidden")
	ErrorValidation     = errors.New("validation error")
	ErrorNotImplemented = errors.New("not implemented")

	// ErrorConfiguration marks a deployment defect (e.g. no shared secret),
	// not a client fault.
	ErrorConfiguration = errors.New("server configuration error")

	// Auth errors.
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrorNoUserID          = errors.New("no user id")
	ErrorInvalidAuthHeader = errors.New("invalid auth header format")
)

// DetailedError pairs a sentinel with a message that is safe to return to
// clients. errors.Is matches the sentinel.
type DetailedError struct {
	Err    error
	Detail string
}

func (e *DetailedError) Error() string { return e.Err.Error() + ": " + e.Detail }

func (e *DetailedError) Unwrap() error { return e.Err }

// WithDetail wraps err with a client-facing detail message.
func WithDetail(err error, detail string) error {
	return &DetailedError{Err: err, Detail: detail}
}
