package usecase_test

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	authService "github.com/allisson/gatekeeper/internal/auth/service"
)

// stubPasswordService avoids Argon2id cost in use case tests.
type stubPasswordService struct{}

func (stubPasswordService) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func (stubPasswordService) Compare(plain, hashed string) bool {
	return hashed != "" && strings.TrimPrefix(hashed, "hashed:") == plain
}

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

// mockTxManager runs fn directly.
type mockTxManager struct{}

func (mockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTokenService(singleUse bool) authService.TokenService {
	return authService.NewTokenService(authService.TokenConfig{
		Secret:     []byte("usecase-test-secret"),
		Expiration: time.Hour,
		SingleUse:  singleUse,
	}, authService.NewMemoryReplayStore(0, time.Hour))
}

func createTestUser(role string) *authDomain.User {
	return &authDomain.User{
		ID:       uuid.Must(uuid.NewV7()),
		Username: "john",
		Password: "hashed:secret",
		Role:     role,
	}
}
