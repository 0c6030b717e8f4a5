package domain

import (
	"time"

	"github.com/google/uuid"
)

// TokenType distinguishes session tokens from access keys.
type TokenType string

const (
	// TokenTypeUser is a session token: it may expire and may be single-use.
	TokenTypeUser TokenType = "user"

	// TokenTypeKey is an access key for automation: no expiry, never single-use.
	TokenTypeKey TokenType = "key"
)

// TokenClaims is the verified content of a token. Capabilities is the snapshot
// taken at issuance and must not be used for authorization decisions.
type TokenClaims struct {
	UserID       uuid.UUID
	Capabilities []Capability
	Type         TokenType
	IssuedAt     time.Time
	ExpiresAt    *time.Time
}

// IsKey reports whether the claims belong to an access key.
func (c *TokenClaims) IsKey() bool {
	return c.Type == TokenTypeKey
}
