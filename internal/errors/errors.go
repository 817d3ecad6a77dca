package errors

import (
	"errors"
	"fmt"
)

// Common error types for the admin gate
var (
	// Credential errors
	ErrAlreadyInitialized = errors.New("password has already been set")
	ErrNotInitialized     = errors.New("initial password has not been set")
	ErrInvalidCredential  = errors.New("invalid password")
	ErrInvalidHashFormat  = errors.New("stored password hash is malformed")

	// Token errors. Signature mismatch and expiry deliberately map to the same
	// sentinel so callers cannot tell which check failed.
	ErrTokenInvalid = errors.New("invalid session token")

	// Store errors
	ErrStoreUnavailable = errors.New("credential store unavailable")
)

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
