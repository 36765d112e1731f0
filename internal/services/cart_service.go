// internal/services/cart_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"shopadmin/internal/models"
	"shopadmin/internal/repository"
)

// CartService owns the cart aggregate: lazy creation, stock-checked line
// mutations and the cached running total. Display totals always use the live
// product price, unlike order totals which freeze a snapshot.
type CartService struct {
	products repository.ProductRepository
	carts    repository.CartRepository
}

func NewCartService(products repository.ProductRepository, carts repository.CartRepository) *CartService {
	return &CartService{products: products, carts: carts}
}

// GetCart returns the user's cart, creating an empty one on first access.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.findOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.RecomputeTotal()
	return cart, nil
}

func (s *CartService) findOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	fresh := &models.Cart{UserID: userID, Items: []models.CartItem{}}
	if err := s.carts.Create(ctx, fresh); err != nil {
		return nil, err
	}
	// Reload so a concurrent creator's row wins cleanly
	return s.carts.FindByUser(ctx, userID)
}

// AddItem inserts a line or merges into an existing one. The requested total
// quantity must not exceed the product's current stock; on failure the cart
// is left untouched.
func (s *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", repository.ErrInvalidInput)
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if _, err := s.findOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	return s.carts.Mutate(ctx, userID, func(cart *models.Cart) error {
		newQuantity := quantity
		if line := cart.Item(productID); line != nil {
			newQuantity = line.Quantity + quantity
		}
		if newQuantity > product.Stock {
			return fmt.Errorf("%w: product %q has %d in stock, requested %d",
				ErrInsufficientStock, product.Name, product.Stock, newQuantity)
		}

		if line := cart.Item(productID); line != nil {
			line.Quantity = newQuantity
		} else {
			cart.Items = append(cart.Items, models.CartItem{
				CartID:    cart.ID,
				ProductID: productID,
				Quantity:  quantity,
				UnitPrice: product.Price,
				Product:   product,
			})
		}
		cart.RecomputeTotal()
		return nil
	})
}

// UpdateItem sets a line's quantity. Zero removes the line; anything above
// the product's stock is rejected.
func (s *CartService) UpdateItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.Cart, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", repository.ErrInvalidInput)
	}

	return s.carts.Mutate(ctx, userID, func(cart *models.Cart) error {
		line := cart.Item(productID)
		if line == nil {
			return fmt.Errorf("cart item %s: %w", productID, repository.ErrNotFound)
		}

		if quantity == 0 {
			cart.RemoveItem(productID)
			cart.RecomputeTotal()
			return nil
		}

		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			return err
		}
		if quantity > product.Stock {
			return fmt.Errorf("%w: product %q has %d in stock, requested %d",
				ErrInsufficientStock, product.Name, product.Stock, quantity)
		}

		line.Quantity = quantity
		cart.RecomputeTotal()
		return nil
	})
}

// RemoveItem drops a line. Removing a line that is not there is not an error.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*models.Cart, error) {
	return s.carts.Mutate(ctx, userID, func(cart *models.Cart) error {
		cart.RemoveItem(productID)
		cart.RecomputeTotal()
		return nil
	})
}

// Clear deletes the cart and all its lines.
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.carts.DeleteByUser(ctx, userID)
}
