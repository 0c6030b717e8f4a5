// Package usecase defines business logic interfaces for authentication and authorization operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
)

// UserRepository defines persistence operations for users.
// Implementations must support transaction-aware operations via context propagation.
type UserRepository interface {
	// Create stores a new user. Returns ErrUserAlreadyExists for a taken username.
	Create(ctx context.Context, user *authDomain.User) error

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if not found.
	GetByID(ctx context.Context, userID uuid.UUID) (*authDomain.User, error)

	// GetByUsername retrieves a user by username. Returns ErrUserNotFound if not found.
	GetByUsername(ctx context.Context, username string) (*authDomain.User, error)

	// List returns users ordered by creation time.
	List(ctx context.Context, offset, limit int) ([]*authDomain.User, error)
}

// RoleRepository defines persistence operations for roles.
type RoleRepository interface {
	// Create stores a new role. Returns ErrRoleAlreadyExists for a taken name.
	Create(ctx context.Context, role *authDomain.Role) error

	// GetByName retrieves a role by name. Returns ErrRoleNotFound if not found.
	GetByName(ctx context.Context, name string) (*authDomain.Role, error)

	// List returns every role ordered by name.
	List(ctx context.Context) ([]*authDomain.Role, error)
}

// CapabilityResolver computes a user's effective capabilities from current role state.
type CapabilityResolver interface {
	// Resolve returns the capabilities of the role named by user.Role, or an
	// empty set when no such role exists.
	Resolve(ctx context.Context, user *authDomain.User) ([]authDomain.Capability, error)
}

// AuthUseCase verifies credentials and makes authorization decisions.
//
// Every authentication failure is reported as ErrInvalidCredentials so callers
// cannot distinguish an unknown username from a wrong password or a replayed token.
type AuthUseCase interface {
	// AuthenticateBasic looks the user up by username and checks the password.
	AuthenticateBasic(ctx context.Context, username, password string) (*authDomain.User, error)

	// AuthenticateBearer verifies the token and reloads the user it names.
	AuthenticateBearer(ctx context.Context, token string) (*authDomain.User, error)

	// Authorize resolves the user's current capabilities, checks them against
	// required and mints a fresh session token reflecting them.
	// Returns ErrInsufficientCapability when a capability is missing.
	Authorize(
		ctx context.Context,
		user *authDomain.User,
		required ...authDomain.Capability,
	) (*authDomain.Principal, error)

	// IssueKey mints a non-expiring access key for user.
	IssueKey(ctx context.Context, user *authDomain.User) (string, error)
}

// UserUseCase manages user accounts.
type UserUseCase interface {
	// Create validates input, hashes the password and stores the user.
	// An empty role defaults to DefaultRoleName.
	Create(ctx context.Context, input *authDomain.CreateUserInput) (*authDomain.User, error)

	// List returns users ordered by creation time.
	List(ctx context.Context, offset, limit int) ([]*authDomain.User, error)
}

// RoleUseCase manages roles.
type RoleUseCase interface {
	// Create validates input and stores the role.
	Create(ctx context.Context, input *authDomain.CreateRoleInput) (*authDomain.Role, error)

	// List returns every role ordered by name.
	List(ctx context.Context) ([]*authDomain.Role, error)

	// SeedDefaults creates the built-in roles that do not exist yet and
	// returns the names of the roles it created.
	SeedDefaults(ctx context.Context) ([]string, error)
}
