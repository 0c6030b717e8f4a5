// Package service provides technical services for authentication: password
// hashing, token signing and verification, and single-use token tracking.
package service

import (
	"context"
	"time"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
)

// PasswordService hashes and verifies user passwords.
type PasswordService interface {
	// Hash returns an encoded hash of the plain password.
	Hash(plainPassword string) (string, error)

	// Compare reports whether plainPassword matches hashedPassword.
	// Malformed hashes never match.
	Compare(plainPassword string, hashedPassword string) bool
}

// TokenService signs and verifies self-contained tokens.
type TokenService interface {
	// Issue signs a token embedding the user id, the given capability snapshot
	// and the token type. Only session tokens carry an expiry claim.
	Issue(user *authDomain.User, capabilities []authDomain.Capability, tokenType authDomain.TokenType) (string, error)

	// Verify checks the signature and expiry. When single-use tokens are enabled,
	// a session token is consumed by its first successful verification and every
	// later attempt fails with ErrInvalidToken. Access keys are never consumed.
	Verify(ctx context.Context, token string) (*authDomain.TokenClaims, error)
}

// ReplayStore records consumed single-use tokens.
type ReplayStore interface {
	// MarkUsed atomically records key and reports whether this call was the
	// first to do so. expiresAt bounds how long the key must be remembered;
	// nil means forever.
	MarkUsed(ctx context.Context, key string, expiresAt *time.Time) (bool, error)
}
