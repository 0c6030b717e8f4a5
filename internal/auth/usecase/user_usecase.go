package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	authService "github.com/allisson/gatekeeper/internal/auth/service"
	appValidation "github.com/allisson/gatekeeper/internal/validation"
)

type userUseCase struct {
	userRepo        UserRepository
	passwordService authService.PasswordService
}

func validateCreateUserInput(input *authDomain.CreateUserInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Username,
			validation.Required,
			validation.Length(1, 255),
			appValidation.Username,
		),
		validation.Field(&input.Password,
			validation.Required,
			validation.Length(1, 1024),
		),
		validation.Field(&input.Email,
			validation.Length(0, 255),
			appValidation.Email,
		),
		validation.Field(&input.Role,
			validation.Length(0, 64),
			appValidation.NoWhitespace,
		),
	)
	return appValidation.WrapValidationError(err)
}

// Create registers a new user with an Argon2id password hash.
func (u *userUseCase) Create(
	ctx context.Context,
	input *authDomain.CreateUserInput,
) (*authDomain.User, error) {
	if err := validateCreateUserInput(input); err != nil {
		return nil, err
	}

	hashedPassword, err := u.passwordService.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = authDomain.DefaultRoleName
	}

	var email *string
	if trimmed := strings.TrimSpace(input.Email); trimmed != "" {
		email = &trimmed
	}

	now := time.Now().UTC()
	user := &authDomain.User{
		ID:        uuid.Must(uuid.NewV7()),
		Username:  input.Username,
		Password:  hashedPassword,
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// List returns a page of users.
func (u *userUseCase) List(ctx context.Context, offset, limit int) ([]*authDomain.User, error) {
	return u.userRepo.List(ctx, offset, limit)
}

// NewUserUseCase creates a new UserUseCase with the provided dependencies.
func NewUserUseCase(userRepo UserRepository, passwordService authService.PasswordService) UserUseCase {
	return &userUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
	}
}
