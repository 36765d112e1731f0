// internal/repository/cart_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopadmin/internal/models"
)

type cartRepo struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepo{db: db}
}

func (r *cartRepo) FindByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		First(&cart, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}
	return &cart, nil
}

func (r *cartRepo) Create(ctx context.Context, cart *models.Cart) error {
	// The unique index on user_id makes concurrent lazy creation safe; a loser
	// of the race just reloads the winner's row.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(cart).Error
	if err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

// Mutate serializes concurrent cart mutations for the same user behind a
// FOR UPDATE lock on the cart row, so two increments can never read the same
// prior quantity.
func (r *cartRepo) Mutate(ctx context.Context, userID uuid.UUID, fn func(cart *models.Cart) error) (*models.Cart, error) {
	var mutated *models.Cart
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&cart, "user_id = ?", userID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("cart for user %s: %w", userID, ErrNotFound)
			}
			return fmt.Errorf("failed to lock cart: %w", err)
		}
		if err := tx.Preload("Product").Find(&cart.Items, "cart_id = ?", cart.ID).Error; err != nil {
			return fmt.Errorf("failed to fetch cart items: %w", err)
		}

		if err := fn(&cart); err != nil {
			return err
		}

		// Replace the item set wholesale; the cart aggregate is small. The
		// delete must be unscoped: a soft-deleted row would still occupy the
		// unique (cart_id, product_id) index and reject the re-insert.
		if err := tx.Unscoped().Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart items: %w", err)
		}
		for i := range cart.Items {
			cart.Items[i].ID = uuid.Nil
			cart.Items[i].CartID = cart.ID
			item := cart.Items[i]
			item.Product = nil
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to save cart item: %w", err)
			}
			cart.Items[i].ID = item.ID
		}
		if err := tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
			Update("total_amount", cart.TotalAmount).Error; err != nil {
			return fmt.Errorf("failed to save cart total: %w", err)
		}

		mutated = &cart
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mutated, nil
}

func (r *cartRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.First(&cart, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("cart for user %s: %w", userID, ErrNotFound)
			}
			return fmt.Errorf("failed to fetch cart: %w", err)
		}
		// Remove the rows outright. A soft-deleted cart would keep holding the
		// unique user_id index, so the next lazy Create would conflict into a
		// no-op and the user could never get a cart again.
		if err := tx.Unscoped().Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete cart items: %w", err)
		}
		if err := tx.Unscoped().Delete(&cart).Error; err != nil {
			return fmt.Errorf("failed to delete cart: %w", err)
		}
		return nil
	})
}
