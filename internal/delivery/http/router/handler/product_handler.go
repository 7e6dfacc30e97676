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

// ProductHandler holds dependencies for the catalogue endpoints.
type ProductHandler struct {
	uc usecase.ProductUsecase
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// --- Request / Response DTOs ---

type createProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Brand       string  `json:"brand"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

type updateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Brand       *string  `json:"brand"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
}

type productResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toProductResponse(product *entity.Product) productResponse {
	return productResponse{
		ID:          product.ID,
		Name:        product.Name,
		Brand:       product.Brand,
		Description: product.Description,
		Image:       product.Image,
		Category:    product.Category,
		Price:       product.Price,
		Stock:       product.Stock,
		CreatedAt:   product.CreatedAt,
	}
}

// --- Handlers ---

// ListProducts returns the full catalogue. Public.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]productResponse, 0, len(products))
	for _, product := range products {
		out = append(out, toProductResponse(product))
	}

	return response.Success(c, http.StatusOK, out, "")
}

// GetProduct returns a single catalogue entry. Public.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid product id")
	}

	product, err := h.uc.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product), "")
}

// CreateProduct adds a catalogue entry. Administrators only.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return domainerrors.ErrUnauthenticated.WrapMessage("no authenticated principal")
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), actor, &usecase.CreateProductInput{
		Name:        req.Name,
		Brand:       req.Brand,
		Description: req.Description,
		Image:       req.Image,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toProductResponse(product), "Product created successfully")
}

// UpdateProduct modifies a catalogue entry. Administrators only.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return domainerrors.ErrUnauthenticated.WrapMessage("no authenticated principal")
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid product id")
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), actor, productID, &usecase.UpdateProductInput{
		Name:        req.Name,
		Brand:       req.Brand,
		Description: req.Description,
		Image:       req.Image,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product), "Product updated successfully")
}

// DeleteProduct removes a catalogue entry. Administrators only.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return domainerrors.ErrUnauthenticated.WrapMessage("no authenticated principal")
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid product id")
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), actor, productID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}
