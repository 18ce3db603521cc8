// Package service implements the application core: account registration and
// login, password reset, and the ownership rules gating blog post mutation.
// Failures callers may act on are the sentinel errors and ConflictError below;
// anything else is an internal error the HTTP layer maps to a 500.
package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized means the bearer token is missing, invalid, expired,
	// or resolves to no user. The causes are deliberately indistinguishable.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the identity is valid but not allowed: bad login
	// credentials, or a mutation on a post the user does not own.
	ErrForbidden = errors.New("forbidden")
)

// ConflictError reports a uniqueness violation during registration.
// Field is the colliding attribute, "name" or "email".
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s already in use", e.Field)
}
