// Package errs holds the error taxonomy shared by every flow. Each failure
// carries the message a user should see; nothing here is meant to escape as
// an unhandled fault.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSession is returned instead of issuing an authenticated request
	// when no bearer token is stored.
	ErrNoSession = errors.New("no active session")
	// ErrBusy is returned when the triggering action already has a request
	// in flight.
	ErrBusy = errors.New("request already in progress")
	// ErrCancelled is returned when the user declines a destructive action.
	ErrCancelled = errors.New("cancelled by user")
)

// ValidationError is a failed local precondition. No request was made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AuthError is a failed login or token exchange.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// FetchError is a failed read or mutation of remote data.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// DecodeError is a token or payload that could not be decoded.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ServerRejected is a non-2xx response. Message is the server-provided
// message and may be empty.
type ServerRejected struct {
	Status  int
	Message string
}

func (e *ServerRejected) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server rejected request with status %d", e.Status)
	}
	return fmt.Sprintf("server rejected request with status %d: %s", e.Status, e.Message)
}

// UserMessage picks what to show for err: the server's own message or a
// validation message verbatim when there is one, fallback otherwise.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}

	var rejected *ServerRejected
	if errors.As(err, &rejected) && rejected.Message != "" {
		return rejected.Message
	}

	var authErr *AuthError
	if errors.As(err, &authErr) && authErr.Message != "" {
		return authErr.Message
	}

	return fallback
}
