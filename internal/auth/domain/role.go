package domain

import (
	"time"

	"github.com/google/uuid"
)

// Built-in role names.
const (
	AdminRoleName  = "admin"
	EditorRoleName = "editor"
	UserRoleName   = DefaultRoleName
)

// Role is a named bundle of capabilities shared by every user referencing it.
type Role struct {
	ID           uuid.UUID
	Name         string
	Capabilities []Capability
	CreatedAt    time.Time
}

// Can reports whether the role grants capability.
func (r *Role) Can(capability Capability) bool {
	return HasAll(r.Capabilities, capability)
}

// CreateRoleInput contains the parameters for creating a role.
type CreateRoleInput struct {
	Name         string
	Capabilities []string
}

// DefaultRoles returns the built-in roles: admin holds every capability,
// editor everything except delete, user only read.
func DefaultRoles() []CreateRoleInput {
	return []CreateRoleInput{
		{
			Name:         AdminRoleName,
			Capabilities: []string{"create", "read", "update", "delete"},
		},
		{
			Name:         EditorRoleName,
			Capabilities: []string{"create", "read", "update"},
		},
		{
			Name:         UserRoleName,
			Capabilities: []string{"read"},
		},
	}
}
