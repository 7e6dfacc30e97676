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

// productService implements the ProductUsecase interface.
type productService struct {
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for productService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// requireAdmin gates the catalogue write path.
func (srv *productService) requireAdmin(actor *entity.User) error {
	switch actor.Role {
	case entity.RoleAdmin:
		return nil
	case entity.RoleCustomer:
		return domainerrors.ErrForbidden.WrapMessage("customers cannot modify the catalogue")
	default:
		return domainerrors.ErrForbidden.WrapMessage("unknown role")
	}
}

// ListProducts returns the full catalogue, newest first.
func (srv *productService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// GetProduct returns a single catalogue entry.
func (srv *productService) GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound.WrapMessage("no such product")
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// CreateProduct adds a catalogue entry. Administrators only.
func (srv *productService) CreateProduct(ctx context.Context, actor *entity.User, input *usecase.CreateProductInput) (*entity.Product, error) {
	if err := srv.requireAdmin(actor); err != nil {
		return nil, err
	}

	if input.Price < 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("price cannot be negative")
	}
	if input.Stock < 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("stock cannot be negative")
	}

	product := &entity.Product{
		Name:        input.Name,
		Brand:       input.Brand,
		Description: input.Description,
		Image:       input.Image,
		Category:    input.Category,
		Price:       input.Price,
		Stock:       input.Stock,
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created", slog.Any("productID", product.ID), slog.Any("createdBy", actor.ID))

	return product, nil
}

// UpdateProduct modifies a catalogue entry. Administrators only.
func (srv *productService) UpdateProduct(ctx context.Context, actor *entity.User, productID uuid.UUID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	if err := srv.requireAdmin(actor); err != nil {
		return nil, err
	}

	if input.Price != nil && *input.Price < 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("price cannot be negative")
	}
	if input.Stock != nil && *input.Stock < 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("stock cannot be negative")
	}

	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound.WrapMessage("no such product")
		}

		return nil, errors.Wrap(err, "failed to load product for update")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Brand != nil {
		product.Brand = *input.Brand
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Image != nil {
		product.Image = *input.Image
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}

	if err := srv.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound.WrapMessage("no such product")
		}

		return nil, errors.Wrap(err, "failed to update product")
	}

	srv.log(ctx).Info("Product updated", slog.Any("productID", productID), slog.Any("updatedBy", actor.ID))

	return product, nil
}

// DeleteProduct removes a catalogue entry. Administrators only.
//
// Existing orders are unaffected: their line items carry snapshots, not
// references that need the product row to stay alive.
func (srv *productService) DeleteProduct(ctx context.Context, actor *entity.User, productID uuid.UUID) error {
	if err := srv.requireAdmin(actor); err != nil {
		return err
	}

	if err := srv.productRepo.Delete(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound.WrapMessage("no such product")
		}

		return errors.Wrap(err, "failed to delete product")
	}

	srv.log(ctx).Info("Product deleted", slog.Any("productID", productID), slog.Any("deletedBy", actor.ID))

	return nil
}
