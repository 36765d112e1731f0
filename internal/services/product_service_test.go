// internal/services/product_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopadmin/internal/models"
	"shopadmin/internal/repository"
)

func newProductFixture(t *testing.T) (*ProductService, *memProducts, *memCategories) {
	t.Helper()
	products := newMemProducts()
	categories := newMemCategories()
	return NewProductService(products, categories), products, categories
}

func TestCreateProductValidatesCategoryReference(t *testing.T) {
	svc, _, categories := newProductFixture(t)
	category := categories.add(&models.Category{Name: "Audio"})

	product, err := svc.Create(context.Background(), CreateProductRequest{
		Name:       "Speaker",
		Price:      79.9,
		Stock:      12,
		CategoryID: &category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Speaker", product.Name)
	require.NotNil(t, product.CategoryID)
	assert.Equal(t, category.ID, *product.CategoryID)

	missing := uuid.New()
	_, err = svc.Create(context.Background(), CreateProductRequest{
		Name:       "Orphan",
		Price:      10,
		CategoryID: &missing,
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateProductRequiresNameAndPositivePrice(t *testing.T) {
	svc, _, _ := newProductFixture(t)

	_, err := svc.Create(context.Background(), CreateProductRequest{Price: 10})
	assert.ErrorIs(t, err, repository.ErrInvalidInput)

	_, err = svc.Create(context.Background(), CreateProductRequest{Name: "Free", Price: 0})
	assert.ErrorIs(t, err, repository.ErrInvalidInput)

	_, err = svc.Create(context.Background(), CreateProductRequest{Name: "Negative", Price: -5})
	assert.ErrorIs(t, err, repository.ErrInvalidInput)
}

func TestUpdateProductAppliesPartialChanges(t *testing.T) {
	svc, products, _ := newProductFixture(t)
	product := products.add(&models.Product{Name: "Old", Price: 10, Stock: 5, Description: "keep me"})

	name := "New"
	price := 12.5
	updated, err := svc.Update(context.Background(), product.ID, UpdateProductRequest{
		Name:  &name,
		Price: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, 12.5, updated.Price)
	// Untouched fields survive
	assert.Equal(t, 5, updated.Stock)
	assert.Equal(t, "keep me", updated.Description)

	bad := -1.0
	_, err = svc.Update(context.Background(), product.ID, UpdateProductRequest{Price: &bad})
	assert.ErrorIs(t, err, repository.ErrInvalidInput)

	_, err = svc.Update(context.Background(), uuid.New(), UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteProductReturnsDeletedRecord(t *testing.T) {
	svc, products, _ := newProductFixture(t)
	product := products.add(&models.Product{Name: "Doomed", Price: 1, Stock: 1})

	deleted, err := svc.Delete(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Doomed", deleted.Name)

	_, err = svc.Get(context.Background(), product.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Delete(context.Background(), product.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
