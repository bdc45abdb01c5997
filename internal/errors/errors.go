package errors

import (
	"errors"
	"fmt"
)

// Common error types for the school-management API client
var (
	// Authentication errors
	ErrNoSession      = errors.New("no token available")
	ErrAuthExpired    = errors.New("authentication expired")
	ErrRefreshFailed  = errors.New("token refresh failed")
	ErrSessionExpired = errors.New("session expired")

	// Request errors
	ErrInvalidPayload = errors.New("invalid request payload")
	ErrNotFound       = errors.New("not found")
	ErrInternal       = errors.New("internal error")
)

// GenericMessage is the fallback user-facing message when the backend
// returns no usable error string.
const GenericMessage = "Unknown error"

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
