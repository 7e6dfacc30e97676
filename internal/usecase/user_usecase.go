// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"blush/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new customer account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateUserInput defines the mutable profile fields. Nil fields are left untouched.
type UpdateUserInput struct {
	Name  *string
	Email *string
	Role  *entity.Role
}

// --- Output DTOs ---

// AuthOutput returns the authenticated user together with a fresh token pair.
type AuthOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// RefreshOutput returns the renewed access token for an existing session.
type RefreshOutput struct {
	AccessToken string
}

// UserUsecase defines the interface for account and session business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// Register creates a new customer account and starts a session for it.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login verifies credentials and starts a new session.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// Refresh exchanges a valid, unrevoked refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (*RefreshOutput, error)

	// Logout revokes the session identified by the refresh token. Revoking an
	// already-dead session is not an error.
	Logout(ctx context.Context, refreshToken string) error

	// GetUser returns the profile for userID. The actor must be the user
	// themselves or an administrator.
	GetUser(ctx context.Context, actor *entity.User, userID uuid.UUID) (*entity.User, error)

	// UpdateUser applies profile changes to userID on behalf of actor.
	// Only administrators may change roles, and never their own.
	UpdateUser(ctx context.Context, actor *entity.User, userID uuid.UUID, input *UpdateUserInput) (*entity.User, error)

	// DeleteUser removes the account and all of its sessions. Administrators only.
	DeleteUser(ctx context.Context, actor *entity.User, userID uuid.UUID) error
}
