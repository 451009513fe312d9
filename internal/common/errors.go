// Package common defines shared sentinel errors and small helpers used across
// the Nexus client layers. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Transport-level errors.
	ErrNetwork = errors.New("network unavailable")
	ErrDecode  = errors.New("malformed server response")

	// API-level errors.
	ErrServer             = errors.New("server error")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Client-side validation errors.
	ErrInvalidInput = errors.New("invalid input")

	// Session errors.
	ErrNotLoggedIn = errors.New("not logged in")
)

// ServerError carries the HTTP status of a non-2xx response that has no more
// specific mapping. It matches errors.Is(err, ErrServer).
type ServerError struct {
	Code int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: status %d", e.Code)
}

func (e *ServerError) Is(target error) bool {
	return target == ErrServer
}
