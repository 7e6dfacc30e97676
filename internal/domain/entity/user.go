// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the principal of the system: the account every request acts as.
// PasswordHash is never serialized outward; delivery-layer DTOs own the wire shape.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Name         string    // The user's display name.
	Email        string    // The user's login identifier. Unique across the system.
	PasswordHash string    // The bcrypt-hashed password. Never leaves the server.
	Role         Role      // Either RoleCustomer or RoleAdmin.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanAccessUser reports whether this user may read or modify the profile
// identified by targetID. Customers may only act on themselves; administrators
// may act on anyone.
func (u *User) CanAccessUser(targetID uuid.UUID) bool {
	switch u.Role {
	case RoleAdmin:
		return true
	case RoleCustomer:
		return u.ID == targetID
	default:
		return false
	}
}
