// internal/repository/cart_repository_test.go
package repository

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopadmin/internal/models"
)

// testDB connects to the database named by TEST_DATABASE_DSN and migrates the
// cart schema exactly as the server does. Skipped when no test database is
// configured, so the suite stays runnable without infrastructure.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set, skipping database-backed tests")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, Price: price, Stock: stock}
	require.NoError(t, db.Create(product).Error)
	t.Cleanup(func() {
		db.Unscoped().Delete(&models.Product{}, "id = ?", product.ID)
	})
	return product
}

func cleanupCart(t *testing.T, db *gorm.DB, userID uuid.UUID) {
	t.Helper()
	t.Cleanup(func() {
		var cart models.Cart
		if db.Unscoped().First(&cart, "user_id = ?", userID).Error == nil {
			db.Unscoped().Where("cart_id = ?", cart.ID).Delete(&models.CartItem{})
			db.Unscoped().Delete(&cart)
		}
	})
}

// Every mutation rewrites the item rows, so a second mutation re-inserts the
// same (cart_id, product_id) pairs. That insert must not trip over leftovers
// of the previous rewrite in the unique index.
func TestCartMutateSurvivesRepeatedMutations(t *testing.T) {
	db := testDB(t)
	carts := NewCartRepository(db)
	ctx := context.Background()

	keyboard := seedProduct(t, db, "Keyboard", 50, 10)
	mouse := seedProduct(t, db, "Mouse", 20, 10)
	userID := uuid.New()
	cleanupCart(t, db, userID)

	require.NoError(t, carts.Create(ctx, &models.Cart{UserID: userID}))

	_, err := carts.Mutate(ctx, userID, func(cart *models.Cart) error {
		cart.Items = append(cart.Items,
			models.CartItem{ProductID: keyboard.ID, Quantity: 3, UnitPrice: keyboard.Price, Product: keyboard},
			models.CartItem{ProductID: mouse.ID, Quantity: 1, UnitPrice: mouse.Price, Product: mouse},
		)
		cart.RecomputeTotal()
		return nil
	})
	require.NoError(t, err)

	// Top up the keyboard line: same product key is written again.
	mutated, err := carts.Mutate(ctx, userID, func(cart *models.Cart) error {
		cart.Item(keyboard.ID).Quantity = 5
		cart.RecomputeTotal()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, mutated.Item(keyboard.ID).Quantity)
	assert.Equal(t, 270.0, mutated.TotalAmount)

	// Dropping one line re-inserts the survivor.
	mutated, err = carts.Mutate(ctx, userID, func(cart *models.Cart) error {
		cart.RemoveItem(mouse.ID)
		cart.RecomputeTotal()
		return nil
	})
	require.NoError(t, err)
	require.Len(t, mutated.Items, 1)
	assert.Equal(t, 250.0, mutated.TotalAmount)

	reloaded, err := carts.FindByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, keyboard.ID, reloaded.Items[0].ProductID)
	assert.Equal(t, 5, reloaded.Items[0].Quantity)
}

// Clearing a cart must leave the unique user_id index free, so the next
// access can lazily create a fresh cart for the same user.
func TestCartRecreateAfterClear(t *testing.T) {
	db := testDB(t)
	carts := NewCartRepository(db)
	ctx := context.Background()

	desk := seedProduct(t, db, "Desk", 100, 4)
	userID := uuid.New()
	cleanupCart(t, db, userID)

	require.NoError(t, carts.Create(ctx, &models.Cart{UserID: userID}))
	_, err := carts.Mutate(ctx, userID, func(cart *models.Cart) error {
		cart.Items = append(cart.Items,
			models.CartItem{ProductID: desk.ID, Quantity: 2, UnitPrice: desk.Price, Product: desk})
		cart.RecomputeTotal()
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, carts.DeleteByUser(ctx, userID))
	_, err = carts.FindByUser(ctx, userID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Lazy re-creation for the same user starts over with an empty cart.
	fresh := &models.Cart{UserID: userID}
	require.NoError(t, carts.Create(ctx, fresh))

	reloaded, err := carts.FindByUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Items)
	assert.Zero(t, reloaded.TotalAmount)

	// The old line must not resurface on the fresh cart.
	mutated, err := carts.Mutate(ctx, userID, func(cart *models.Cart) error {
		cart.Items = append(cart.Items,
			models.CartItem{ProductID: desk.ID, Quantity: 1, UnitPrice: desk.Price, Product: desk})
		cart.RecomputeTotal()
		return nil
	})
	require.NoError(t, err)
	require.Len(t, mutated.Items, 1)
	assert.Equal(t, 100.0, mutated.TotalAmount)
}
