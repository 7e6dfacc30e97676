package impl

import (
	"context"
	"testing"

	"blush/internal/domain/entity"
	domainerrors "blush/internal/domain/errors"
	"blush/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderService(f *fixture) usecase.OrderUsecase {
	return NewOrderService(OrderServiceParams{
		TxManager: f.txManager,
		OrderRepo: f.orderRepo,
		Logger:    newDiscardLogger(),
	})
}

func testAddress() entity.ShippingAddress {
	return entity.ShippingAddress{
		Address:    "12 Rosewater Lane",
		City:       "Brighton",
		PostalCode: "BN1 1AA",
		Country:    "UK",
	}
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	f := newFixture()
	customer := f.seedUser("Amara", "amara@example.com", entity.RoleCustomer)
	lipstick := f.seedProduct("Velvet Matte Lipstick", 20)
	service := newOrderService(f)

	order, err := service.CreateOrder(context.Background(), customer, &usecase.CreateOrderInput{
		Items: []usecase.OrderItemInput{
			{ProductID: lipstick.ID, Quantity: 2},
		},
		ShippingAddress: testAddress(),
	})

	require.NoError(t, err)
	assert.Equal(t, customer.ID, order.UserID)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, entity.PaymentMethodPayPal, order.PaymentMethod)

	// 2 x $20 + $10 flat shipping, no tax.
	assert.InDelta(t, 40.0, order.ItemsPrice, 1e-9)
	assert.InDelta(t, 0.0, order.TaxPrice, 1e-9)
	assert.InDelta(t, 10.0, order.ShippingPrice, 1e-9)
	assert.InDelta(t, 50.0, order.TotalPrice, 1e-9)

	// Line items are catalogue snapshots.
	require.Len(t, order.Items, 1)
	assert.Equal(t, lipstick.ID, order.Items[0].ProductID)
	assert.Equal(t, lipstick.Name, order.Items[0].Name)
	assert.Equal(t, lipstick.Image, order.Items[0].Image)
	assert.InDelta(t, lipstick.Price, order.Items[0].Price, 1e-9)
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestOrderService_CreateOrder_PriceSnapshotSurvivesCatalogueEdit(t *testing.T) {
	f := newFixture()
	customer := f.seedUser("Amara", "amara@example.com", entity.RoleCustomer)
	serum := f.seedProduct("Hyaluronic Serum", 35)
	service := newOrderService(f)
	ctx := context.Background()

	order, err := service.CreateOrder(ctx, customer, &usecase.CreateOrderInput{
		Items:           []usecase.OrderItemInput{{ProductID: serum.ID, Quantity: 1}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	// Reprice the product after checkout; the stored order must not move.
	f.productRepo.products[serum.ID].Price = 99

	stored, err := service.GetOrderByID(ctx, customer, order.ID)
	require.NoError(t, err)
	assert.InDelta(t, 35.0, stored.Items[0].Price, 1e-9)
	assert.InDelta(t, 45.0, stored.TotalPrice, 1e-9)
}

func TestOrderService_CreateOrder_Validation(t *testing.T) {
	f := newFixture()
	customer := f.seedUser("Amara", "amara@example.com", entity.RoleCustomer)
	lipstick := f.seedProduct("Velvet Matte Lipstick", 20)
	service := newOrderService(f)
	ctx := context.Background()

	t.Run("no items", func(t *testing.T) {
		_, err := service.CreateOrder(ctx, customer, &usecase.CreateOrderInput{
			ShippingAddress: testAddress(),
		})
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		_, err := service.CreateOrder(ctx, customer, &usecase.CreateOrderInput{
			Items:           []usecase.OrderItemInput{{ProductID: lipstick.ID, Quantity: 0}},
			ShippingAddress: testAddress(),
		})
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := service.CreateOrder(ctx, customer, &usecase.CreateOrderInput{
			Items:           []usecase.OrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
			ShippingAddress: testAddress(),
		})
		assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
	})
}

func TestOrderService_GetOrderByID_Ownership(t *testing.T) {
	f := newFixture()
	amara := f.seedUser("Amara", "amara@example.com", entity.RoleCustomer)
	bela := f.seedUser("Bela", "bela@example.com", entity.RoleCustomer)
	admin := f.seedUser("Root", "root@example.com", entity.RoleAdmin)
	lipstick := f.seedProduct("Velvet Matte Lipstick", 20)
	service := newOrderService(f)
	ctx := context.Background()

	order, err := service.CreateOrder(ctx, amara, &usecase.CreateOrderInput{
		Items:           []usecase.OrderItemInput{{ProductID: lipstick.ID, Quantity: 1}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	got, err := service.GetOrderByID(ctx, amara, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = service.GetOrderByID(ctx, bela, order.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	got, err = service.GetOrderByID(ctx, admin, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = service.GetOrderByID(ctx, admin, uuid.New())
	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))
}

func TestOrderService_ListOrders(t *testing.T) {
	f := newFixture()
	amara := f.seedUser("Amara", "amara@example.com", entity.RoleCustomer)
	bela := f.seedUser("Bela", "bela@example.com", entity.RoleCustomer)
	admin := f.seedUser("Root", "root@example.com", entity.RoleAdmin)
	lipstick := f.seedProduct("Velvet Matte Lipstick", 20)
	service := newOrderService(f)
	ctx := context.Background()

	for _, owner := range []*entity.User{amara, amara, bela} {
		_, err := service.CreateOrder(ctx, owner, &usecase.CreateOrderInput{
			Items:           []usecase.OrderItemInput{{ProductID: lipstick.ID, Quantity: 1}},
			ShippingAddress: testAddress(),
		})
		require.NoError(t, err)
	}

	mine, err := service.ListMyOrders(ctx, amara)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, order := range mine {
		assert.Equal(t, amara.ID, order.UserID)
	}

	_, err = service.ListAllOrders(ctx, amara)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	all, err := service.ListAllOrders(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestOrderService_UpdateOrderStatus_Lifecycle(t *testing.T) {
	f := newFixture()
	customer := f.seedUser("Amara", "amara@example.com", entity.RoleCustomer)
	admin := f.seedUser("Root", "root@example.com", entity.RoleAdmin)
	lipstick := f.seedProduct("Velvet Matte Lipstick", 20)
	service := newOrderService(f)
	ctx := context.Background()

	newOrder := func(t *testing.T) *entity.Order {
		t.Helper()
		order, err := service.CreateOrder(ctx, customer, &usecase.CreateOrderInput{
			Items:           []usecase.OrderItemInput{{ProductID: lipstick.ID, Quantity: 1}},
			ShippingAddress: testAddress(),
		})
		require.NoError(t, err)

		return order
	}

	t.Run("accept then deliver", func(t *testing.T) {
		order := newOrder(t)

		got, err := service.UpdateOrderStatus(ctx, admin, order.ID, entity.OrderStatusAccepted)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusAccepted, got.Status)

		got, err = service.UpdateOrderStatus(ctx, admin, order.ID, entity.OrderStatusDelivered)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusDelivered, got.Status)
	})

	t.Run("reject is terminal", func(t *testing.T) {
		order := newOrder(t)

		_, err := service.UpdateOrderStatus(ctx, admin, order.ID, entity.OrderStatusRejected)
		require.NoError(t, err)

		_, err = service.UpdateOrderStatus(ctx, admin, order.ID, entity.OrderStatusAccepted)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))
	})

	t.Run("pending cannot skip to delivered", func(t *testing.T) {
		order := newOrder(t)

		_, err := service.UpdateOrderStatus(ctx, admin, order.ID, entity.OrderStatusDelivered)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))

		// Failed transitions leave the order untouched.
		stored, err := service.GetOrderByID(ctx, admin, order.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusPending, stored.Status)
	})

	t.Run("customer cannot transition, even on missing orders", func(t *testing.T) {
		order := newOrder(t)

		_, err := service.UpdateOrderStatus(ctx, customer, order.ID, entity.OrderStatusAccepted)
		assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

		// The authorization gate fires before existence is revealed.
		_, err = service.UpdateOrderStatus(ctx, customer, uuid.New(), entity.OrderStatusAccepted)
		assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
	})

	t.Run("unknown status", func(t *testing.T) {
		order := newOrder(t)

		_, err := service.UpdateOrderStatus(ctx, admin, order.ID, entity.OrderStatus("shipped"))
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	})

	t.Run("missing order", func(t *testing.T) {
		_, err := service.UpdateOrderStatus(ctx, admin, uuid.New(), entity.OrderStatusAccepted)
		assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))
	})
}

// Two admins racing on the same pending order must not both win: the loser's
// write is validated against a status that no longer holds and is rejected
// instead of overwriting the winner's decision.
func TestOrderService_UpdateOrderStatus_ConcurrentAdminsCannotBothAdvance(t *testing.T) {
	f := newFixture()
	customer := f.seedUser("Amara", "amara@example.com", entity.RoleCustomer)
	admin := f.seedUser("Root", "root@example.com", entity.RoleAdmin)
	lipstick := f.seedProduct("Velvet Matte Lipstick", 20)
	service := newOrderService(f)
	ctx := context.Background()

	order, err := service.CreateOrder(ctx, customer, &usecase.CreateOrderInput{
		Items:           []usecase.OrderItemInput{{ProductID: lipstick.ID, Quantity: 1}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	// The competing admin's accept lands after this call has read the order
	// as pending but before its own write.
	f.orderRepo.afterFindByID = func() {
		f.orderRepo.afterFindByID = nil
		f.orderRepo.setStatus(order.ID, entity.OrderStatusAccepted)
	}

	_, err = service.UpdateOrderStatus(ctx, admin, order.ID, entity.OrderStatusRejected)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))

	stored, err := service.GetOrderByID(ctx, admin, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusAccepted, stored.Status)
}
