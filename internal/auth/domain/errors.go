package domain

import (
	"github.com/allisson/gatekeeper/internal/errors"
)

// Authentication and authorization errors.
var (
	// ErrInvalidCredentials covers every authentication failure: unknown user,
	// wrong password, malformed header, unsupported scheme or rejected token.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrInvalidToken indicates a bad signature, an expired token or a replayed single-use token.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrInsufficientCapability indicates an authenticated user lacks a required capability.
	ErrInsufficientCapability = errors.Wrap(errors.ErrForbidden, "insufficient capability")

	// ErrUserNotFound indicates a user with the specified ID or username was not found.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrRoleNotFound indicates a role with the specified name was not found.
	ErrRoleNotFound = errors.Wrap(errors.ErrNotFound, "role not found")

	// ErrUserAlreadyExists indicates the username is taken.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrRoleAlreadyExists indicates the role name is taken.
	ErrRoleAlreadyExists = errors.Wrap(errors.ErrConflict, "role already exists")

	// ErrInvalidCapability indicates an unknown capability name.
	ErrInvalidCapability = errors.Wrap(errors.ErrInvalidInput, "invalid capability")
)
