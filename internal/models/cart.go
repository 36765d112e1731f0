// internal/models/cart.go
package models

import (
	"github.com/google/uuid"
)

// CartItem is one (product, quantity) line inside a user's cart. UnitPrice is
// the price snapshot taken when the line was added; display totals use the
// live product price instead.
type CartItem struct {
	BaseModel
	CartID    uuid.UUID `json:"cart_id" gorm:"type:uuid;not null;index:idx_cart_product,unique"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index:idx_cart_product,unique"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	UnitPrice float64   `json:"unit_price" gorm:"type:decimal(12,2);not null"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// Cart holds at most one row per user. TotalAmount is a cache over the items
// and is recomputed on every mutation.
type Cart struct {
	BaseModel
	UserID      uuid.UUID  `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	Items       []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	TotalAmount float64    `json:"total_amount" gorm:"type:decimal(14,2);default:0"`
}

// Item returns the line for productID, or nil.
func (c *Cart) Item(productID uuid.UUID) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// RemoveItem drops the line for productID and reports whether it existed.
func (c *Cart) RemoveItem(productID uuid.UUID) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// RecomputeTotal refreshes the cached total from live product prices. Lines
// whose product is gone contribute nothing rather than failing the whole cart.
func (c *Cart) RecomputeTotal() {
	total := 0.0
	for _, item := range c.Items {
		if item.Product != nil {
			total += item.Product.Price * float64(item.Quantity)
		}
	}
	c.TotalAmount = total
}
