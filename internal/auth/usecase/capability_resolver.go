package usecase

import (
	"context"
	"errors"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
)

type capabilityResolver struct {
	roleRepo RoleRepository
}

// Resolve loads the role by name on every call; nothing is cached so role
// changes apply to the next authorization decision.
func (r *capabilityResolver) Resolve(
	ctx context.Context,
	user *authDomain.User,
) ([]authDomain.Capability, error) {
	if user == nil || user.Role == "" {
		return []authDomain.Capability{}, nil
	}

	role, err := r.roleRepo.GetByName(ctx, user.Role)
	if err != nil {
		if errors.Is(err, authDomain.ErrRoleNotFound) {
			return []authDomain.Capability{}, nil
		}
		return nil, err
	}

	capabilities := make([]authDomain.Capability, len(role.Capabilities))
	copy(capabilities, role.Capabilities)
	return capabilities, nil
}

// NewCapabilityResolver creates a CapabilityResolver backed by roleRepo.
func NewCapabilityResolver(roleRepo RoleRepository) CapabilityResolver {
	return &capabilityResolver{roleRepo: roleRepo}
}
