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

func newProductService(f *fixture) usecase.ProductUsecase {
	return NewProductService(ProductServiceParams{
		ProductRepo: f.productRepo,
		Logger:      newDiscardLogger(),
	})
}

func TestProductService_PublicReads(t *testing.T) {
	f := newFixture()
	serum := f.seedProduct("Hyaluronic Serum", 35)
	f.seedProduct("Velvet Matte Lipstick", 20)
	service := newProductService(f)
	ctx := context.Background()

	products, err := service.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	got, err := service.GetProduct(ctx, serum.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hyaluronic Serum", got.Name)

	_, err = service.GetProduct(ctx, uuid.New())
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestProductService_AdminGate(t *testing.T) {
	f := newFixture()
	customer := f.seedUser("Amara", "amara@example.com", entity.RoleCustomer)
	serum := f.seedProduct("Hyaluronic Serum", 35)
	service := newProductService(f)
	ctx := context.Background()

	_, err := service.CreateProduct(ctx, customer, &usecase.CreateProductInput{Name: "Rogue Item", Price: 1})
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	newPrice := 1.0
	_, err = service.UpdateProduct(ctx, customer, serum.ID, &usecase.UpdateProductInput{Price: &newPrice})
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	err = service.DeleteProduct(ctx, customer, serum.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestProductService_AdminCRUD(t *testing.T) {
	f := newFixture()
	admin := f.seedUser("Root", "root@example.com", entity.RoleAdmin)
	service := newProductService(f)
	ctx := context.Background()

	created, err := service.CreateProduct(ctx, admin, &usecase.CreateProductInput{
		Name:     "Rosewater Toner",
		Brand:    "Blush",
		Category: "skincare",
		Price:    18.5,
		Stock:    40,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	newPrice := 21.0
	updated, err := service.UpdateProduct(ctx, admin, created.ID, &usecase.UpdateProductInput{
		Price: &newPrice,
	})
	require.NoError(t, err)
	assert.InDelta(t, 21.0, updated.Price, 1e-9)
	assert.Equal(t, "Rosewater Toner", updated.Name)

	require.NoError(t, service.DeleteProduct(ctx, admin, created.ID))

	_, err = service.GetProduct(ctx, created.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))

	err = service.DeleteProduct(ctx, admin, created.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestProductService_NegativeValuesRejected(t *testing.T) {
	f := newFixture()
	admin := f.seedUser("Root", "root@example.com", entity.RoleAdmin)
	service := newProductService(f)
	ctx := context.Background()

	_, err := service.CreateProduct(ctx, admin, &usecase.CreateProductInput{Name: "Bad", Price: -1})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = service.CreateProduct(ctx, admin, &usecase.CreateProductInput{Name: "Bad", Stock: -1})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}
