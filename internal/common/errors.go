// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Failure taxonomy. Every error surfaced by the ledger store or the
// session client wraps exactly one of these sentinels.
var (
	// ErrValidation marks input rejected before any I/O was attempted.
	ErrValidation = errors.New("validation failed")
	// ErrAuthentication marks credentials or a session the server rejected.
	ErrAuthentication = errors.New("authentication failed")
	// ErrConnectivity marks a request that never reached the server.
	ErrConnectivity = errors.New("no connectivity")
	// ErrServer marks a non-2xx response carrying a reason.
	ErrServer = errors.New("server error")
	// ErrStorage marks a local persistence read or write failure.
	ErrStorage = errors.New("storage error")

	// ErrMissingConfig indicates required configuration is absent.
	ErrMissingConfig = errors.New("missing configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error wrapping a taxonomy sentinel.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// Message extracts the human-readable portion of err. Falls back to
// Error() when err carries no UserError.
func Message(err error) string {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.UserMessage
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// IsValidation reports whether err was caught before any I/O.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsConnectivity reports whether err means the server was unreachable.
func IsConnectivity(err error) bool {
	return errors.Is(err, ErrConnectivity)
}

// IsServer reports whether the server responded with a failure status.
func IsServer(err error) bool {
	return errors.Is(err, ErrServer)
}

// IsAuthentication reports whether the server rejected the session or
// credentials.
func IsAuthentication(err error) bool {
	return errors.Is(err, ErrAuthentication)
}
