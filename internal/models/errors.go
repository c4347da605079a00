package models

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a requested resource does not exist or is not
	// owned by the requesting user.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned when a create or update would violate a uniqueness rule.
	ErrConflict = errors.New("resource conflict")

	// ErrBadRequest is returned for client mistakes that are not path validation
	// failures, e.g. adding a waypoint that is already the origin.
	ErrBadRequest = errors.New("bad request")

	// ErrInvalidCredentials is returned when a login email/password pair does not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrExternalService is returned for any failure talking to the routing provider.
	ErrExternalService = errors.New("error connecting to external service")

	// ErrInternal is returned for unexpected cache or persistence failures.
	ErrInternal = errors.New("internal server error")

	// ErrNoRoute is returned when a path is shared before a route was generated for it.
	ErrNoRoute = errors.New("path has no generated route")
)

// Error is a kind sentinel with a client-facing message. errors.Is(err, Kind)
// holds; Error() is the message alone.
type Error struct {
	Kind    error
	Message string
}

// NewError returns an *Error of the given kind.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// ValidationError carries every rule a path violated.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "\n")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
}
