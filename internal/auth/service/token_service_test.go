package service

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
)

var testSecret = []byte("test-signing-secret")

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClock() *fixedClock {
	return &fixedClock{now: time.Date(2026, 1, 2, 3, 4, 5, 600, time.UTC)}
}

func createTestUser() *authDomain.User {
	return &authDomain.User{
		ID:       uuid.Must(uuid.NewV7()),
		Username: "john",
		Role:     authDomain.UserRoleName,
	}
}

func newTestTokenService(clock *fixedClock, expiration time.Duration, singleUse bool) TokenService {
	return NewTokenService(TokenConfig{
		Secret:     testSecret,
		Expiration: expiration,
		SingleUse:  singleUse,
		Now:        clock.Now,
	}, NewMemoryReplayStore(0, expiration))
}

func TestTokenService_Issue(t *testing.T) {
	clock := newClock()
	user := createTestUser()
	capabilities := []authDomain.Capability{authDomain.ReadCapability}

	t.Run("Success_SessionTokenCarriesExpiry", func(t *testing.T) {
		service := newTestTokenService(clock, time.Hour, false)

		token, err := service.Issue(user, capabilities, authDomain.TokenTypeUser)
		require.NoError(t, err)

		claims, err := service.Verify(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, capabilities, claims.Capabilities)
		assert.Equal(t, authDomain.TokenTypeUser, claims.Type)
		assert.Equal(t, clock.Now().Truncate(time.Second), claims.IssuedAt.UTC())
		require.NotNil(t, claims.ExpiresAt)
		assert.Equal(t, clock.Now().Truncate(time.Second).Add(time.Hour), claims.ExpiresAt.UTC())
	})

	t.Run("Success_EmptyTypeDefaultsToUser", func(t *testing.T) {
		service := newTestTokenService(clock, time.Hour, false)

		token, err := service.Issue(user, nil, "")
		require.NoError(t, err)

		claims, err := service.Verify(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, authDomain.TokenTypeUser, claims.Type)
		assert.Empty(t, claims.Capabilities)
	})

	t.Run("Success_NoExpiryWhenExpirationDisabled", func(t *testing.T) {
		service := newTestTokenService(clock, 0, false)

		token, err := service.Issue(user, capabilities, authDomain.TokenTypeUser)
		require.NoError(t, err)

		claims, err := service.Verify(context.Background(), token)
		require.NoError(t, err)
		assert.Nil(t, claims.ExpiresAt)
	})

	t.Run("Success_KeyNeverExpires", func(t *testing.T) {
		service := newTestTokenService(clock, time.Hour, false)

		token, err := service.Issue(user, capabilities, authDomain.TokenTypeKey)
		require.NoError(t, err)

		claims, err := service.Verify(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, authDomain.TokenTypeKey, claims.Type)
		assert.Nil(t, claims.ExpiresAt)
	})

	t.Run("Success_Deterministic", func(t *testing.T) {
		service := newTestTokenService(clock, time.Hour, false)

		first, err := service.Issue(user, capabilities, authDomain.TokenTypeUser)
		require.NoError(t, err)
		second, err := service.Issue(user, capabilities, authDomain.TokenTypeUser)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("Success_SingleUseTokensAreUnique", func(t *testing.T) {
		service := newTestTokenService(clock, time.Hour, true)

		first, err := service.Issue(user, capabilities, authDomain.TokenTypeUser)
		require.NoError(t, err)
		second, err := service.Issue(user, capabilities, authDomain.TokenTypeUser)
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}

func TestTokenService_Verify(t *testing.T) {
	user := createTestUser()
	capabilities := []authDomain.Capability{authDomain.ReadCapability}

	t.Run("Error_Expired", func(t *testing.T) {
		clock := newClock()
		service := newTestTokenService(clock, time.Minute, false)

		token, err := service.Issue(user, capabilities, authDomain.TokenTypeUser)
		require.NoError(t, err)

		clock.Advance(2 * time.Minute)

		_, err = service.Verify(context.Background(), token)
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
	})

	t.Run("Error_WrongSecret", func(t *testing.T) {
		clock := newClock()
		issuer := NewTokenService(TokenConfig{Secret: []byte("other"), Now: clock.Now}, nil)
		service := newTestTokenService(clock, time.Hour, false)

		token, err := issuer.Issue(user, capabilities, authDomain.TokenTypeUser)
		require.NoError(t, err)

		_, err = service.Verify(context.Background(), token)
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
	})

	t.Run("Error_TamperedPayload", func(t *testing.T) {
		clock := newClock()
		service := newTestTokenService(clock, time.Hour, false)

		token, err := service.Issue(user, capabilities, authDomain.TokenTypeUser)
		require.NoError(t, err)

		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
			UserID:       user.ID.String(),
			Capabilities: authDomain.AllCapabilities(),
			Type:         authDomain.TokenTypeUser,
		}).SignedString([]byte("attacker"))
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		forgedParts := strings.Split(forged, ".")
		tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]

		_, err = service.Verify(context.Background(), tampered)
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
	})

	t.Run("Error_UnexpectedAlgorithm", func(t *testing.T) {
		clock := newClock()
		service := newTestTokenService(clock, time.Hour, false)

		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims{
			UserID: user.ID.String(),
			Type:   authDomain.TokenTypeUser,
		}).SignedString(testSecret)
		require.NoError(t, err)

		_, err = service.Verify(context.Background(), token)
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
	})

	t.Run("Error_UnknownType", func(t *testing.T) {
		clock := newClock()
		service := newTestTokenService(clock, time.Hour, false)

		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
			UserID: user.ID.String(),
			Type:   "admin",
		}).SignedString(testSecret)
		require.NoError(t, err)

		_, err = service.Verify(context.Background(), token)
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
	})

	t.Run("Error_InvalidUserID", func(t *testing.T) {
		clock := newClock()
		service := newTestTokenService(clock, time.Hour, false)

		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
			UserID: "5f1b2c",
			Type:   authDomain.TokenTypeUser,
		}).SignedString(testSecret)
		require.NoError(t, err)

		_, err = service.Verify(context.Background(), token)
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
	})

	t.Run("Error_Garbage", func(t *testing.T) {
		service := newTestTokenService(newClock(), time.Hour, false)

		for _, token := range []string{"", "abc", "a.b.c", "Bearer x.y.z"} {
			_, err := service.Verify(context.Background(), token)
			assert.ErrorIs(t, err, authDomain.ErrInvalidToken, token)
		}
	})
}

func TestTokenService_SingleUse(t *testing.T) {
	user := createTestUser()
	capabilities := []authDomain.Capability{authDomain.ReadCapability}

	t.Run("Success_SessionTokenVerifiesOnce", func(t *testing.T) {
		service := newTestTokenService(newClock(), time.Hour, true)

		token, err := service.Issue(user, capabilities, authDomain.TokenTypeUser)
		require.NoError(t, err)

		_, err = service.Verify(context.Background(), token)
		require.NoError(t, err)

		_, err = service.Verify(context.Background(), token)
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
	})

	t.Run("Success_KeyVerifiesRepeatedly", func(t *testing.T) {
		service := newTestTokenService(newClock(), time.Hour, true)

		token, err := service.Issue(user, capabilities, authDomain.TokenTypeKey)
		require.NoError(t, err)

		for range 10 {
			_, err := service.Verify(context.Background(), token)
			require.NoError(t, err)
		}
	})

	t.Run("Success_ReusableWhenPolicyDisabled", func(t *testing.T) {
		service := newTestTokenService(newClock(), time.Hour, false)

		token, err := service.Issue(user, capabilities, authDomain.TokenTypeUser)
		require.NoError(t, err)

		for range 3 {
			_, err := service.Verify(context.Background(), token)
			require.NoError(t, err)
		}
	})

	t.Run("Success_ConcurrentVerifySucceedsOnce", func(t *testing.T) {
		service := newTestTokenService(newClock(), time.Hour, true)

		token, err := service.Issue(user, capabilities, authDomain.TokenTypeUser)
		require.NoError(t, err)

		var successes atomic.Int32
		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := service.Verify(context.Background(), token); err == nil {
					successes.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), successes.Load())
	})

	t.Run("Success_ConsumedTokenStaysRejectedWithBoundedStore", func(t *testing.T) {
		clock := newClock()
		service := NewTokenService(TokenConfig{
			Secret:     testSecret,
			Expiration: time.Hour,
			SingleUse:  true,
			Now:        clock.Now,
		}, NewMemoryReplayStore(2, time.Hour))

		consumed, err := service.Issue(user, capabilities, authDomain.TokenTypeUser)
		require.NoError(t, err)
		_, err = service.Verify(context.Background(), consumed)
		require.NoError(t, err)

		for range 2 {
			other, err := service.Issue(user, capabilities, authDomain.TokenTypeUser)
			require.NoError(t, err)
			_, _ = service.Verify(context.Background(), other)
		}

		_, err = service.Verify(context.Background(), consumed)
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
	})

	t.Run("Error_ReplayStoreFailure", func(t *testing.T) {
		clock := newClock()
		service := NewTokenService(TokenConfig{
			Secret:    testSecret,
			SingleUse: true,
			Now:       clock.Now,
		}, failingReplayStore{})

		token, err := service.Issue(user, capabilities, authDomain.TokenTypeUser)
		require.NoError(t, err)

		_, err = service.Verify(context.Background(), token)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, authDomain.ErrInvalidToken)
	})
}

type failingReplayStore struct{}

func (failingReplayStore) MarkUsed(context.Context, string, *time.Time) (bool, error) {
	return false, assert.AnError
}
