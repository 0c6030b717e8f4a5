// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	customValidation "github.com/allisson/gatekeeper/internal/validation"
)

// SignupRequest contains the parameters for registering a new user.
// The role is never taken from the request; new users get the default role.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"` //nolint:gosec // plaintext, hashed before persistence
	Email    string `json:"email"`
}

// Validate checks if the signup request is valid.
func (r *SignupRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Password,
			validation.Required,
		),
	)
}

// ToInput converts the request into a use case input.
func (r *SignupRequest) ToInput() *authDomain.CreateUserInput {
	return &authDomain.CreateUserInput{
		Username: r.Username,
		Password: r.Password,
		Email:    r.Email,
	}
}

// CreateRoleRequest contains the parameters for creating a role.
type CreateRoleRequest struct {
	Name         string   `json:"name"`
	Capabilities []string `json:"capabilities"`
}

// Validate checks if the create role request is valid.
func (r *CreateRoleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			validation.Length(1, 64),
		),
		validation.Field(&r.Capabilities,
			validation.Each(validation.By(validateCapability)),
		),
	)
}

// ToInput converts the request into a use case input.
func (r *CreateRoleRequest) ToInput() *authDomain.CreateRoleInput {
	capabilities := r.Capabilities
	if capabilities == nil {
		capabilities = []string{}
	}
	return &authDomain.CreateRoleInput{
		Name:         r.Name,
		Capabilities: capabilities,
	}
}

func validateCapability(value any) error {
	capability, ok := value.(string)
	if !ok || !authDomain.Capability(capability).IsValid() {
		return validation.NewError(
			"validation_capability",
			"must be one of create, read, update, delete",
		)
	}
	return nil
}
