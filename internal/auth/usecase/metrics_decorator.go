package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	"github.com/allisson/gatekeeper/internal/metrics"
)

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *authUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := statusOf(err)
	a.metrics.RecordOperation(ctx, "auth", operation, status)
	a.metrics.RecordDuration(ctx, "auth", operation, time.Since(start), status)
}

// AuthenticateBasic records metrics for basic authentication.
func (a *authUseCaseWithMetrics) AuthenticateBasic(
	ctx context.Context,
	username, password string,
) (*authDomain.User, error) {
	start := time.Now()
	user, err := a.next.AuthenticateBasic(ctx, username, password)
	a.record(ctx, "authenticate_basic", start, err)
	return user, err
}

// AuthenticateBearer records metrics for bearer authentication.
func (a *authUseCaseWithMetrics) AuthenticateBearer(ctx context.Context, token string) (*authDomain.User, error) {
	start := time.Now()
	user, err := a.next.AuthenticateBearer(ctx, token)
	a.record(ctx, "authenticate_bearer", start, err)
	return user, err
}

// Authorize records metrics for authorization decisions.
func (a *authUseCaseWithMetrics) Authorize(
	ctx context.Context,
	user *authDomain.User,
	required ...authDomain.Capability,
) (*authDomain.Principal, error) {
	start := time.Now()
	principal, err := a.next.Authorize(ctx, user, required...)
	a.record(ctx, "authorize", start, err)
	return principal, err
}

// IssueKey records metrics for access key issuance.
func (a *authUseCaseWithMetrics) IssueKey(ctx context.Context, user *authDomain.User) (string, error) {
	start := time.Now()
	key, err := a.next.IssueKey(ctx, user)
	a.record(ctx, "key_issue", start, err)
	return key, err
}

// userUseCaseWithMetrics decorates UserUseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UserUseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UserUseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UserUseCase, m metrics.BusinessMetrics) UserUseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for user creation.
func (u *userUseCaseWithMetrics) Create(
	ctx context.Context,
	input *authDomain.CreateUserInput,
) (*authDomain.User, error) {
	start := time.Now()
	user, err := u.next.Create(ctx, input)

	status := statusOf(err)
	u.metrics.RecordOperation(ctx, "auth", "user_create", status)
	u.metrics.RecordDuration(ctx, "auth", "user_create", time.Since(start), status)

	return user, err
}

// List records metrics for user listing.
func (u *userUseCaseWithMetrics) List(ctx context.Context, offset, limit int) ([]*authDomain.User, error) {
	start := time.Now()
	users, err := u.next.List(ctx, offset, limit)

	status := statusOf(err)
	u.metrics.RecordOperation(ctx, "auth", "user_list", status)
	u.metrics.RecordDuration(ctx, "auth", "user_list", time.Since(start), status)

	return users, err
}
