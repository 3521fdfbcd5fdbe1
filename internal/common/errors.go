package common

import (
	"errors"
	"fmt"
)

// Authentication errors. Handlers must render both as an undifferentiated
// 401 so the API does not leak which check failed.
var (
	ErrNoSuchAccount  = errors.New("no account registered for that email")
	ErrBadCredentials = errors.New("invalid credentials")
)

// Lookup and uniqueness errors
var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
)

// IsAuthError reports whether err is one of the credential failures that
// map to 401.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNoSuchAccount) || errors.Is(err, ErrBadCredentials)
}

// ValidationError marks missing or malformed input, rejected before any
// store or network call.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// UploadError wraps a failure reported by the remote object store. The
// store does not distinguish a missing object from other failures, so
// neither does this type.
type UploadError struct {
	Msg string
	Err error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *UploadError) Unwrap() error { return e.Err }

// PersistenceError wraps a database or connection failure from the
// relational store.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
