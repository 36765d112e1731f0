// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Name        string         `json:"name" gorm:"size:255;not null;index"`
	Description string         `json:"description" gorm:"type:text"`
	Price       float64        `json:"price" gorm:"type:decimal(12,2);not null"`
	Stock       int            `json:"stock" gorm:"default:0"`
	CategoryID  *uuid.UUID     `json:"category_id" gorm:"type:uuid;index"`
	Image       string         `json:"image" gorm:"size:512"`
	Gallery     pq.StringArray `json:"gallery" gorm:"type:text[]"`
	Rating      float64        `json:"rating" gorm:"type:decimal(3,2);default:0"`
	Sold        int64          `json:"sold" gorm:"default:0"`
	Discount    float64        `json:"discount" gorm:"type:decimal(5,2);default:0"`

	// Weak reference: looked up for display, never owned
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (p *Product) InStock() bool {
	return p.Stock > 0
}

// ProductSummary is the projection populated into cart lines, order lines and
// the top-products ranking (name, price, image, stock).
type ProductSummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Image string  `json:"image"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

func (p *Product) Summary() ProductSummary {
	return ProductSummary{
		ID:    p.ID.String(),
		Name:  p.Name,
		Image: p.Image,
		Price: p.Price,
		Stock: p.Stock,
	}
}
