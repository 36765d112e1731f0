// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem keeps the price snapshot taken at order time. It is immutable
// after creation except through an order update that replaces the item list.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Price     float64   `json:"price" gorm:"type:decimal(12,2);not null"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

type Order struct {
	BaseModel
	UserID          uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	ShippingAddress string      `json:"shipping_address" gorm:"type:text;not null"`
	// Derived from the items, never authoritative on its own
	TotalAmount float64 `json:"total_amount" gorm:"type:decimal(14,2);default:0"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// StatusTotal is one row of the order-status breakdown.
type StatusTotal struct {
	Status      OrderStatus `json:"status"`
	Count       int64       `json:"count"`
	TotalAmount float64     `json:"total_amount"`
}

// RevenuePoint is one time bucket of the revenue series.
type RevenuePoint struct {
	Bucket       string  `json:"bucket"`
	TotalRevenue float64 `json:"total_revenue"`
	OrderCount   int64   `json:"order_count"`
}

// TopProduct is one row of the top-selling ranking.
type TopProduct struct {
	Product    ProductSummary `json:"product"`
	Sold       int64          `json:"sold"`
	Revenue    float64        `json:"revenue"`
	OrderCount int64          `json:"order_count"`
}

// TopCustomer is one row of the top-customers ranking.
type TopCustomer struct {
	User       UserSummary `json:"user"`
	OrderCount int64       `json:"order_count"`
	TotalSpend float64     `json:"total_spend"`
	LastOrder  time.Time   `json:"last_order"`
}
