// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "blush/internal/delivery/context"
	"blush/internal/domain/entity"
	domainerrors "blush/internal/domain/errors"
	"blush/internal/domain/repository"
	"blush/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateOrder places a new order for the actor. Line items are snapshotted from
// the catalogue inside the same transaction that persists the order, so a
// concurrent catalogue edit can never split an order's pricing.
func (srv *orderService) CreateOrder(ctx context.Context, actor *entity.User, input *usecase.CreateOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("order has no items")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("item quantity must be positive")
		}
	}

	var createdOrder *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()
		orderRepo := repoFactory.OrderRepo()

		items := make([]entity.OrderItem, 0, len(input.Items))
		for _, line := range input.Items {
			product, err := productRepo.FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return domainerrors.ErrProductNotFound.WrapMessage("ordered product does not exist")
				}

				return errors.Wrap(err, "failed to load product for order")
			}

			items = append(items, entity.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				Image:     product.Image,
				Price:     product.Price,
				Quantity:  line.Quantity,
			})
		}

		order := &entity.Order{
			UserID:          actor.ID,
			Items:           items,
			ShippingAddress: input.ShippingAddress,
			PaymentMethod:   entity.PaymentMethodPayPal,
			Status:          entity.OrderStatusPending,
		}
		order.ComputePrices()

		if err := orderRepo.Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		createdOrder = order

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Order creation failed", slog.Any("userID", actor.ID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Order created",
		slog.Any("orderID", createdOrder.ID),
		slog.Any("userID", actor.ID),
		slog.Float64("total", createdOrder.TotalPrice),
	)

	return createdOrder, nil
}

// GetOrderByID returns a single order, enforcing owner-or-admin access.
func (srv *orderService) GetOrderByID(ctx context.Context, actor *entity.User, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound.WrapMessage("no such order")
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	if !order.IsOwnedBy(actor.ID) && !actor.IsAdmin() {
		return nil, domainerrors.ErrForbidden.WrapMessage("order belongs to another user")
	}

	return order, nil
}

// ListMyOrders returns the actor's own orders, newest first.
func (srv *orderService) ListMyOrders(ctx context.Context, actor *entity.User) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindByUserID(ctx, actor.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// ListAllOrders returns every order in the system. Administrators only.
func (srv *orderService) ListAllOrders(ctx context.Context, actor *entity.User) ([]*entity.Order, error) {
	switch actor.Role {
	case entity.RoleAdmin:
	case entity.RoleCustomer:
		return nil, domainerrors.ErrForbidden.WrapMessage("customers cannot list all orders")
	default:
		return nil, domainerrors.ErrForbidden.WrapMessage("unknown role")
	}

	orders, err := srv.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list all orders")
	}

	return orders, nil
}

// UpdateOrderStatus moves an order along its lifecycle. The authorization gate
// runs before the existence check, so a customer probing order IDs learns
// nothing. The write is conditional on the status the transition was validated
// against; when two admins race, the loser's write matches zero rows and is
// rejected instead of overwriting the winner's.
func (srv *orderService) UpdateOrderStatus(ctx context.Context, actor *entity.User, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	switch actor.Role {
	case entity.RoleAdmin:
	case entity.RoleCustomer:
		return nil, domainerrors.ErrForbidden.WrapMessage("customers cannot change order status")
	default:
		return nil, domainerrors.ErrForbidden.WrapMessage("unknown role")
	}

	if !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown order status")
	}

	var updatedOrder *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, err := orderRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound.WrapMessage("no such order")
			}

			return errors.Wrap(err, "failed to load order for status update")
		}

		if !order.Status.CanTransitionTo(status) {
			return domainerrors.ErrInvalidTransition.WithDetails(
				"cannot move order from " + order.Status.String() + " to " + status.String(),
			)
		}

		if err := orderRepo.UpdateStatus(ctx, orderID, order.Status, status); err != nil {
			if errors.Is(err, repository.ErrOrderStatusStale) {
				return domainerrors.ErrInvalidTransition.WithDetails(
					"order left " + order.Status.String() + " before the change was applied",
				)
			}

			return errors.Wrap(err, "failed to update order status")
		}

		order.Status = status
		updatedOrder = order

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Order status update failed",
			slog.Any("orderID", orderID),
			slog.String("target", status.String()),
			slog.Any("error", err),
		)

		return nil, err
	}

	srv.log(ctx).Info("Order status updated",
		slog.Any("orderID", orderID),
		slog.String("status", status.String()),
		slog.Any("updatedBy", actor.ID),
	)

	return updatedOrder, nil
}
