package usecase

import (
	"context"
	"errors"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	authService "github.com/allisson/gatekeeper/internal/auth/service"
)

// dummyPassword is hashed once so unknown usernames cost the same as wrong passwords.
const dummyPassword = "gatekeeper-timing-equalizer"

type authUseCase struct {
	userRepo        UserRepository
	resolver        CapabilityResolver
	passwordService authService.PasswordService
	tokenService    authService.TokenService
	dummyHash       string
}

// AuthenticateBasic verifies a username and password pair.
func (a *authUseCase) AuthenticateBasic(
	ctx context.Context,
	username, password string,
) (*authDomain.User, error) {
	user, err := a.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, authDomain.ErrUserNotFound) {
			a.passwordService.Compare(password, a.dummyHash)
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !a.passwordService.Compare(password, user.Password) {
		return nil, authDomain.ErrInvalidCredentials
	}

	return user, nil
}

// AuthenticateBearer verifies a token and returns the current user record.
// The capability snapshot inside the token is ignored.
func (a *authUseCase) AuthenticateBearer(ctx context.Context, token string) (*authDomain.User, error) {
	claims, err := a.tokenService.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, authDomain.ErrInvalidToken) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	user, err := a.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, authDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	return user, nil
}

// Authorize checks required against the freshly resolved capability set.
func (a *authUseCase) Authorize(
	ctx context.Context,
	user *authDomain.User,
	required ...authDomain.Capability,
) (*authDomain.Principal, error) {
	capabilities, err := a.resolver.Resolve(ctx, user)
	if err != nil {
		return nil, err
	}

	if !authDomain.HasAll(capabilities, required...) {
		return nil, authDomain.ErrInsufficientCapability
	}

	token, err := a.tokenService.Issue(user, capabilities, authDomain.TokenTypeUser)
	if err != nil {
		return nil, err
	}

	return &authDomain.Principal{
		User:         user,
		Capabilities: capabilities,
		Token:        token,
	}, nil
}

// IssueKey mints an access key carrying the user's current capabilities.
func (a *authUseCase) IssueKey(ctx context.Context, user *authDomain.User) (string, error) {
	capabilities, err := a.resolver.Resolve(ctx, user)
	if err != nil {
		return "", err
	}
	return a.tokenService.Issue(user, capabilities, authDomain.TokenTypeKey)
}

// NewAuthUseCase creates a new AuthUseCase with the provided dependencies.
func NewAuthUseCase(
	userRepo UserRepository,
	resolver CapabilityResolver,
	passwordService authService.PasswordService,
	tokenService authService.TokenService,
) AuthUseCase {
	// a failed hash leaves dummyHash empty, which Compare rejects immediately
	dummyHash, _ := passwordService.Hash(dummyPassword)

	return &authUseCase{
		userRepo:        userRepo,
		resolver:        resolver,
		passwordService: passwordService,
		tokenService:    tokenService,
		dummyHash:       dummyHash,
	}
}
