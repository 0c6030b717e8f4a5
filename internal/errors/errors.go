// Package errors holds the sentinel errors shared by every domain package.
// Domain errors wrap one of these sentinels; the HTTP error boundary maps the
// sentinel to a status code and never inspects messages.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound maps to 404: unknown resource, record or route.
	ErrNotFound = errors.New("not found")

	// ErrConflict maps to 409: a unique name or id is already taken.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput maps to 422: the request body failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized maps to 401: the caller could not be identified.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden maps to 403: the caller lacks a required capability.
	ErrForbidden = errors.New("forbidden")
)

// New creates a plain error with no sentinel; the boundary reports it as 500.
func New(message string) error {
	return errors.New(message)
}

// Wrap prefixes err with message and keeps it matchable with Is.
// A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
