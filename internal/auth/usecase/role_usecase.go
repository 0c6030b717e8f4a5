package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	"github.com/allisson/gatekeeper/internal/database"
	appValidation "github.com/allisson/gatekeeper/internal/validation"
)

type roleUseCase struct {
	txManager database.TxManager
	roleRepo  RoleRepository
}

// Create validates and stores a new role.
func (r *roleUseCase) Create(
	ctx context.Context,
	input *authDomain.CreateRoleInput,
) (*authDomain.Role, error) {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Name,
			validation.Required,
			validation.Length(1, 64),
			appValidation.NoWhitespace,
		),
	)
	if err != nil {
		return nil, appValidation.WrapValidationError(err)
	}

	capabilities, err := authDomain.ParseCapabilities(input.Capabilities)
	if err != nil {
		return nil, err
	}

	role := &authDomain.Role{
		ID:           uuid.Must(uuid.NewV7()),
		Name:         input.Name,
		Capabilities: capabilities,
		CreatedAt:    time.Now().UTC(),
	}

	if err := r.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}

	return role, nil
}

// List returns every role.
func (r *roleUseCase) List(ctx context.Context) ([]*authDomain.Role, error) {
	return r.roleRepo.List(ctx)
}

// SeedDefaults creates missing built-in roles in one transaction. Existing
// roles are left untouched, so running it repeatedly is safe.
func (r *roleUseCase) SeedDefaults(ctx context.Context) ([]string, error) {
	var created []string

	err := r.txManager.WithTx(ctx, func(ctx context.Context) error {
		created = nil
		for _, input := range authDomain.DefaultRoles() {
			_, err := r.roleRepo.GetByName(ctx, input.Name)
			if err == nil {
				continue
			}
			if !errors.Is(err, authDomain.ErrRoleNotFound) {
				return err
			}

			if _, err := r.Create(ctx, &input); err != nil {
				return err
			}
			created = append(created, input.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// NewRoleUseCase creates a new RoleUseCase with the provided dependencies.
func NewRoleUseCase(txManager database.TxManager, roleRepo RoleRepository) RoleUseCase {
	return &roleUseCase{
		txManager: txManager,
		roleRepo:  roleRepo,
	}
}
