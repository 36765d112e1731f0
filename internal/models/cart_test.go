// internal/models/cart_test.go
package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRecomputeTotalUsesLivePrices(t *testing.T) {
	a := &Product{Name: "A", Price: 10}
	b := &Product{Name: "B", Price: 3}

	cart := &Cart{Items: []CartItem{
		{ProductID: uuid.New(), Quantity: 2, UnitPrice: 8, Product: a},
		{ProductID: uuid.New(), Quantity: 4, UnitPrice: 3, Product: b},
	}}

	cart.RecomputeTotal()
	// 2*10 + 4*3, from the live product prices rather than the snapshots
	assert.Equal(t, 32.0, cart.TotalAmount)

	// A missing product contributes nothing
	cart.Items[1].Product = nil
	cart.RecomputeTotal()
	assert.Equal(t, 20.0, cart.TotalAmount)
}

func TestCartItemLookupAndRemoval(t *testing.T) {
	productID := uuid.New()
	cart := &Cart{Items: []CartItem{
		{ProductID: productID, Quantity: 1},
	}}

	line := cart.Item(productID)
	require.NotNil(t, line)
	assert.Equal(t, 1, line.Quantity)

	assert.Nil(t, cart.Item(uuid.New()))

	assert.True(t, cart.RemoveItem(productID))
	assert.Empty(t, cart.Items)
	assert.False(t, cart.RemoveItem(productID))
}
