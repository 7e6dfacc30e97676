// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"blush/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderItemInput is one cart line at checkout. Price and display fields are
// snapshotted from the catalogue at creation time, not taken from the client.
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateOrderInput defines the data required to place a new order.
type CreateOrderInput struct {
	Items           []OrderItemInput
	ShippingAddress entity.ShippingAddress
}

// OrderUsecase defines the interface for order lifecycle business operations.
type OrderUsecase interface {
	// CreateOrder places a new order for the actor. The order starts in the
	// pending status and its prices are computed server-side.
	CreateOrder(ctx context.Context, actor *entity.User, input *CreateOrderInput) (*entity.Order, error)

	// GetOrderByID returns a single order. The actor must own the order or be
	// an administrator.
	GetOrderByID(ctx context.Context, actor *entity.User, orderID uuid.UUID) (*entity.Order, error)

	// ListMyOrders returns the actor's own orders, newest first.
	ListMyOrders(ctx context.Context, actor *entity.User) ([]*entity.Order, error)

	// ListAllOrders returns every order in the system. Administrators only.
	ListAllOrders(ctx context.Context, actor *entity.User) ([]*entity.Order, error)

	// UpdateOrderStatus moves an order along its lifecycle. Administrators only,
	// and only transitions the state machine allows.
	UpdateOrderStatus(ctx context.Context, actor *entity.User, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error)
}
