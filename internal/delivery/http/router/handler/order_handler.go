package handler

import (
	"net/http"
	"time"

	"blush/internal/delivery/http/middleware"
	"blush/internal/delivery/http/response"
	"blush/internal/domain/entity"
	domainerrors "blush/internal/domain/errors"
	"blush/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for the order endpoints.
type OrderHandler struct {
	uc usecase.OrderUsecase
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// --- Request / Response DTOs ---

type orderItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type shippingAddressRequest struct {
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

type createOrderRequest struct {
	Items           []orderItemRequest     `json:"items" validate:"required,min=1,dive"`
	ShippingAddress shippingAddressRequest `json:"shippingAddress" validate:"required"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type orderItemResponse struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
}

type shippingAddressResponse struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type orderResponse struct {
	ID              uuid.UUID               `json:"id"`
	UserID          uuid.UUID               `json:"userId"`
	Items           []orderItemResponse     `json:"items"`
	ShippingAddress shippingAddressResponse `json:"shippingAddress"`
	PaymentMethod   string                  `json:"paymentMethod"`
	ItemsPrice      float64                 `json:"itemsPrice"`
	TaxPrice        float64                 `json:"taxPrice"`
	ShippingPrice   float64                 `json:"shippingPrice"`
	TotalPrice      float64                 `json:"totalPrice"`
	Status          string                  `json:"status"`
	CreatedAt       time.Time               `json:"createdAt"`
}

func toOrderResponse(order *entity.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	return orderResponse{
		ID:     order.ID,
		UserID: order.UserID,
		Items:  items,
		ShippingAddress: shippingAddressResponse{
			Address:    order.ShippingAddress.Address,
			City:       order.ShippingAddress.City,
			PostalCode: order.ShippingAddress.PostalCode,
			Country:    order.ShippingAddress.Country,
		},
		PaymentMethod: order.PaymentMethod,
		ItemsPrice:    order.ItemsPrice,
		TaxPrice:      order.TaxPrice,
		ShippingPrice: order.ShippingPrice,
		TotalPrice:    order.TotalPrice,
		Status:        order.Status.String(),
		CreatedAt:     order.CreatedAt,
	}
}

func toOrderListResponse(orders []*entity.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderResponse(order))
	}

	return out
}

// --- Handlers ---

// CreateOrder places a new order for the authenticated user.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return domainerrors.ErrUnauthenticated.WrapMessage("no authenticated principal")
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	items := make([]usecase.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.uc.CreateOrder(c.Request().Context(), actor, &usecase.CreateOrderInput{
		Items: items,
		ShippingAddress: entity.ShippingAddress{
			Address:    req.ShippingAddress.Address,
			City:       req.ShippingAddress.City,
			PostalCode: req.ShippingAddress.PostalCode,
			Country:    req.ShippingAddress.Country,
		},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toOrderResponse(order), "Order placed successfully")
}

// GetOrder returns a single order, owner-or-admin.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return domainerrors.ErrUnauthenticated.WrapMessage("no authenticated principal")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid order id")
	}

	order, err := h.uc.GetOrderByID(c.Request().Context(), actor, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order), "")
}

// ListMyOrders returns the authenticated user's own orders.
func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return domainerrors.ErrUnauthenticated.WrapMessage("no authenticated principal")
	}

	orders, err := h.uc.ListMyOrders(c.Request().Context(), actor)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderListResponse(orders), "")
}

// ListAllOrders returns every order. Administrators only.
func (h *OrderHandler) ListAllOrders(c echo.Context) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return domainerrors.ErrUnauthenticated.WrapMessage("no authenticated principal")
	}

	orders, err := h.uc.ListAllOrders(c.Request().Context(), actor)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderListResponse(orders), "")
}

// UpdateOrderStatus moves an order along its lifecycle. Administrators only.
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return domainerrors.ErrUnauthenticated.WrapMessage("no authenticated principal")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid order id")
	}

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.uc.UpdateOrderStatus(c.Request().Context(), actor, orderID, entity.OrderStatus(req.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order), "Order status updated successfully")
}
