// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is the server-side ledger row for one live session. The raw
// refresh token itself is never stored; only a SHA-256 hash is kept so a
// database leak cannot mint sessions. Deleting the row revokes the session
// even while the signed token is still cryptographically valid.
type RefreshToken struct {
	ID        uuid.UUID // The unique ID for this session record.
	UserID    uuid.UUID // Links this session to the User it belongs to.
	TokenHash string    // SHA-256 hash of the raw refresh token.
	ExpiresAt time.Time // When this session ends regardless of activity.
	CreatedAt time.Time // When the user logged in.
}
