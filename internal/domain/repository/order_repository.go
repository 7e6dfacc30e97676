// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"blush/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// ErrOrderStatusStale is returned when a status write finds the order no
// longer in the status the caller validated against.
var ErrOrderStatusStale = errors.New("order status changed concurrently")

// OrderRepository defines the standard operations for order persistence.
// Orders are never deleted in normal operation, so no Delete is exposed.
type OrderRepository interface {
	// FindByID retrieves a single order with its line items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByUserID retrieves all orders owned by a user, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// FindAll retrieves every order in the system, newest first.
	FindAll(ctx context.Context) ([]*entity.Order, error)

	// Create persists a new order together with its line items.
	Create(ctx context.Context, order *entity.Order) error

	// UpdateStatus persists a new status for the order, conditional on the
	// order still holding the status the caller validated the transition
	// against. Returns ErrOrderStatusStale when a concurrent writer moved the
	// order first. No other field is touched.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) error
}
