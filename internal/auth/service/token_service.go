package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// TokenConfig holds token signing policy.
type TokenConfig struct {
	// Secret is the HMAC signing key.
	Secret []byte
	// Expiration is the lifetime of session tokens. Zero issues tokens without expiry.
	Expiration time.Duration
	// SingleUse makes session tokens valid for one successful verification.
	SingleUse bool
	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
}

// claims is the JWT payload.
type claims struct {
	UserID       string                  `json:"id"`
	Capabilities []authDomain.Capability `json:"capabilities"`
	Type         authDomain.TokenType    `json:"type"`
	jwt.RegisteredClaims
}

type tokenService struct {
	secret      []byte
	expiration  time.Duration
	singleUse   bool
	replayStore ReplayStore
	now         func() time.Time
}

// Issue signs an HS256 token for user. The output depends only on its inputs,
// the secret and the current second, except that single-use session tokens
// also carry a unique jti so two tokens minted in the same second never collide.
func (s *tokenService) Issue(
	user *authDomain.User,
	capabilities []authDomain.Capability,
	tokenType authDomain.TokenType,
) (string, error) {
	if tokenType == "" {
		tokenType = authDomain.TokenTypeUser
	}
	if capabilities == nil {
		capabilities = []authDomain.Capability{}
	}

	issuedAt := s.now().UTC().Truncate(time.Second)
	tokenClaims := claims{
		UserID:       user.ID.String(),
		Capabilities: capabilities,
		Type:         tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
	}

	if tokenType != authDomain.TokenTypeKey {
		if s.expiration > 0 {
			tokenClaims.ExpiresAt = jwt.NewNumericDate(issuedAt.Add(s.expiration))
		}
		if s.singleUse {
			jti, err := uuid.NewV7()
			if err != nil {
				return "", apperrors.Wrap(err, "failed to generate token id")
			}
			tokenClaims.ID = jti.String()
		}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims).SignedString(s.secret)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// Verify parses token and enforces signature, expiry and the single-use policy.
func (s *tokenService) Verify(ctx context.Context, token string) (*authDomain.TokenClaims, error) {
	tokenClaims := &claims{}
	parsed, err := jwt.ParseWithClaims(
		token,
		tokenClaims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, authDomain.ErrInvalidToken
	}

	userID, err := uuid.Parse(tokenClaims.UserID)
	if err != nil {
		return nil, authDomain.ErrInvalidToken
	}

	if tokenClaims.Type != authDomain.TokenTypeUser && tokenClaims.Type != authDomain.TokenTypeKey {
		return nil, authDomain.ErrInvalidToken
	}

	result := &authDomain.TokenClaims{
		UserID:       userID,
		Capabilities: tokenClaims.Capabilities,
		Type:         tokenClaims.Type,
	}
	if tokenClaims.IssuedAt != nil {
		result.IssuedAt = tokenClaims.IssuedAt.Time
	}
	if tokenClaims.ExpiresAt != nil {
		expiresAt := tokenClaims.ExpiresAt.Time
		result.ExpiresAt = &expiresAt
	}

	if s.singleUse && !result.IsKey() {
		first, err := s.replayStore.MarkUsed(ctx, signatureOf(token), result.ExpiresAt)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to record token use")
		}
		if !first {
			return nil, authDomain.ErrInvalidToken
		}
	}

	return result, nil
}

// signatureOf returns the signature segment of a compact JWT.
func signatureOf(token string) string {
	return token[strings.LastIndex(token, ".")+1:]
}

// NewTokenService creates a TokenService. replayStore is only consulted when
// cfg.SingleUse is set.
func NewTokenService(cfg TokenConfig, replayStore ReplayStore) TokenService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &tokenService{
		secret:      cfg.Secret,
		expiration:  cfg.Expiration,
		singleUse:   cfg.SingleUse,
		replayStore: replayStore,
		now:         now,
	}
}
