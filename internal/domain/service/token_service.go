// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import (
	"time"

	"github.com/google/uuid"
)

// TokenClass distinguishes the two credential classes the system issues.
type TokenClass string

const (
	// TokenClassAccess is the short-lived per-request bearer credential.
	TokenClassAccess TokenClass = "access"
	// TokenClassRefresh is the long-lived, cookie-bound session credential.
	TokenClassRefresh TokenClass = "refresh"
)

// Claims is the verified content of a token.
type Claims struct {
	UserID   uuid.UUID
	Class    TokenClass
	IssuedAt time.Time
	ExpireAt time.Time
}

// TokenService issues and verifies the two classes of signed, time-bound tokens.
// It is stateless: validity is purely cryptographic and temporal.
type TokenService interface {
	// IssueAccessToken creates a short-lived access token for the user.
	IssueAccessToken(userID uuid.UUID) (string, error)

	// IssueRefreshToken creates a long-lived refresh token for the user.
	IssueRefreshToken(userID uuid.UUID) (string, error)

	// Verify checks a token against the given class and returns its claims.
	// Expired and malformed tokens both fail; callers must treat the two
	// identically as "unauthenticated".
	Verify(tokenString string, class TokenClass) (*Claims, error)

	// HashToken returns the hex SHA-256 digest of a raw token, suitable for
	// storing in the session ledger.
	HashToken(tokenString string) string

	// AccessTokenDuration returns the configured access token lifetime.
	AccessTokenDuration() time.Duration

	// RefreshTokenDuration returns the configured refresh token lifetime.
	RefreshTokenDuration() time.Duration
}
