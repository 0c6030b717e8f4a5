package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultRoleName is assigned to users created without an explicit role.
const DefaultRoleName = "user"

// User is an identity able to authenticate. Role is a weak reference to Role.Name.
type User struct {
	ID        uuid.UUID
	Username  string
	Password  string //nolint:gosec // password hash, never plaintext
	Email     *string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateUserInput contains the parameters for creating a user.
type CreateUserInput struct {
	Username string
	Password string //nolint:gosec // plaintext, hashed before persistence
	Email    string
	Role     string
}

// Principal is an authenticated and authorized caller: the user, the
// capabilities resolved for this request and the token re-minted from them.
type Principal struct {
	User         *User
	Capabilities []Capability
	Token        string
}
