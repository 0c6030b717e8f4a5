// Package mocks provides mock implementations of the auth use case interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
)

// MockAuthUseCase is a mock implementation of AuthUseCase.
type MockAuthUseCase struct {
	mock.Mock
}

// AuthenticateBasic mocks the AuthenticateBasic method.
func (m *MockAuthUseCase) AuthenticateBasic(
	ctx context.Context,
	username, password string,
) (*authDomain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.User), args.Error(1)
}

// AuthenticateBearer mocks the AuthenticateBearer method.
func (m *MockAuthUseCase) AuthenticateBearer(ctx context.Context, token string) (*authDomain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.User), args.Error(1)
}

// Authorize mocks the Authorize method. Required capabilities are passed as a single slice.
func (m *MockAuthUseCase) Authorize(
	ctx context.Context,
	user *authDomain.User,
	required ...authDomain.Capability,
) (*authDomain.Principal, error) {
	args := m.Called(ctx, user, required)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Principal), args.Error(1)
}

// IssueKey mocks the IssueKey method.
func (m *MockAuthUseCase) IssueKey(ctx context.Context, user *authDomain.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

// MockUserUseCase is a mock implementation of UserUseCase.
type MockUserUseCase struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockUserUseCase) Create(
	ctx context.Context,
	input *authDomain.CreateUserInput,
) (*authDomain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.User), args.Error(1)
}

// List mocks the List method.
func (m *MockUserUseCase) List(ctx context.Context, offset, limit int) ([]*authDomain.User, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.User), args.Error(1)
}

// MockRoleUseCase is a mock implementation of RoleUseCase.
type MockRoleUseCase struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockRoleUseCase) Create(
	ctx context.Context,
	input *authDomain.CreateRoleInput,
) (*authDomain.Role, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Role), args.Error(1)
}

// List mocks the List method.
func (m *MockRoleUseCase) List(ctx context.Context) ([]*authDomain.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.Role), args.Error(1)
}

// SeedDefaults mocks the SeedDefaults method.
func (m *MockRoleUseCase) SeedDefaults(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockUserRepository) Create(ctx context.Context, user *authDomain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// GetByID mocks the GetByID method.
func (m *MockUserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*authDomain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.User), args.Error(1)
}

// GetByUsername mocks the GetByUsername method.
func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*authDomain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.User), args.Error(1)
}

// List mocks the List method.
func (m *MockUserRepository) List(ctx context.Context, offset, limit int) ([]*authDomain.User, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.User), args.Error(1)
}

// MockRoleRepository is a mock implementation of RoleRepository.
type MockRoleRepository struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockRoleRepository) Create(ctx context.Context, role *authDomain.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

// GetByName mocks the GetByName method.
func (m *MockRoleRepository) GetByName(ctx context.Context, name string) (*authDomain.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Role), args.Error(1)
}

// List mocks the List method.
func (m *MockRoleRepository) List(ctx context.Context) ([]*authDomain.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.Role), args.Error(1)
}
