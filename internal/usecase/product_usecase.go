// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"blush/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateProductInput defines the data required to add a catalogue entry.
type CreateProductInput struct {
	Name        string
	Brand       string
	Description string
	Image       string
	Category    string
	Price       float64
	Stock       int
}

// UpdateProductInput defines the mutable catalogue fields. Nil fields are left untouched.
type UpdateProductInput struct {
	Name        *string
	Brand       *string
	Description *string
	Image       *string
	Category    *string
	Price       *float64
	Stock       *int
}

// ProductUsecase defines the interface for catalogue business operations.
// Reads are public; writes are restricted to administrators.
type ProductUsecase interface {
	// ListProducts returns the full catalogue, newest first.
	ListProducts(ctx context.Context) ([]*entity.Product, error)

	// GetProduct returns a single catalogue entry.
	GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error)

	// CreateProduct adds a catalogue entry. Administrators only.
	CreateProduct(ctx context.Context, actor *entity.User, input *CreateProductInput) (*entity.Product, error)

	// UpdateProduct modifies a catalogue entry. Administrators only.
	UpdateProduct(ctx context.Context, actor *entity.User, productID uuid.UUID, input *UpdateProductInput) (*entity.Product, error)

	// DeleteProduct removes a catalogue entry. Administrators only.
	DeleteProduct(ctx context.Context, actor *entity.User, productID uuid.UUID) error
}
