package dto

import (
	"time"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
)

// UserResponse represents a user in API responses (excludes the password hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     *string   `json:"email,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// MapUserToResponse converts a domain user to an API response.
func MapUserToResponse(user *authDomain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// ListUsersResponse represents a paginated list of users in API responses.
type ListUsersResponse struct {
	Data []UserResponse `json:"data"`
}

// MapUsersToListResponse converts a slice of domain users to a list API response.
func MapUsersToListResponse(users []*authDomain.User) ListUsersResponse {
	data := make([]UserResponse, 0, len(users))
	for _, user := range users {
		data = append(data, MapUserToResponse(user))
	}
	return ListUsersResponse{Data: data}
}

// RoleResponse represents a role in API responses.
type RoleResponse struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name"`
	Capabilities []authDomain.Capability `json:"capabilities"`
	CreatedAt    time.Time               `json:"created_at"`
}

// MapRoleToResponse converts a domain role to an API response.
func MapRoleToResponse(role *authDomain.Role) RoleResponse {
	capabilities := role.Capabilities
	if capabilities == nil {
		capabilities = []authDomain.Capability{}
	}
	return RoleResponse{
		ID:           role.ID.String(),
		Name:         role.Name,
		Capabilities: capabilities,
		CreatedAt:    role.CreatedAt,
	}
}
