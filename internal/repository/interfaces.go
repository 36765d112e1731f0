// internal/repository/interfaces.go
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"shopadmin/internal/models"
)

// ProductQuery narrows and orders product listings.
type ProductQuery struct {
	Search     string
	CategoryID *uuid.UUID
	MinPrice   *float64
	MaxPrice   *float64
	InStock    *bool
	SortBy     string // price_asc, price_desc, name_asc, name_desc, newest, oldest
	Page       int
	Limit      int
}

// StockQuery narrows warehouse listings.
type StockQuery struct {
	LowStock   bool // 0 < stock <= threshold
	OutOfStock bool // stock == 0
	Threshold  int
	CategoryID *uuid.UUID
	SortBy     string // stock_asc, stock_desc, name_asc
	Page       int
	Limit      int
}

// StockSummary is the warehouse overview aggregate.
type StockSummary struct {
	TotalProducts   int64   `json:"total_products"`
	TotalStock      int64   `json:"total_stock"`
	TotalValue      float64 `json:"total_value"`
	LowStockCount   int64   `json:"low_stock_count"`
	OutOfStockCount int64   `json:"out_of_stock_count"`
}

// OrderRangeQuery selects orders by status and creation time. A zero Status
// means any status; nil bounds mean unbounded.
type OrderRangeQuery struct {
	Status models.OrderStatus
	Start  *time.Time
	End    *time.Time
}

// UserQuery narrows user listings.
type UserQuery struct {
	Search string
	Role   models.UserRole
	Page   int
	Limit  int
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	Search(ctx context.Context, q ProductQuery) ([]models.Product, int64, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) (*models.Product, error)

	// AdjustStock atomically applies delta to the stock count, clamping at
	// zero. SetStock overwrites it (negative input clamps to zero as well).
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*models.Product, error)
	SetStock(ctx context.Context, id uuid.UUID, stock int) (*models.Product, error)

	FindByStock(ctx context.Context, q StockQuery) ([]models.Product, int64, error)
	StockSummary(ctx context.Context) (*StockSummary, error)
	Count(ctx context.Context) (int64, error)
}

type CartRepository interface {
	// FindByUser returns the user's cart with items and their products
	// populated, or ErrNotFound.
	FindByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	// Mutate loads the user's cart under a row lock, applies fn, and persists
	// the result within the same transaction. Returning an error from fn
	// rolls everything back, leaving the cart unchanged.
	Mutate(ctx context.Context, userID uuid.UUID, fn func(cart *models.Cart) error) (*models.Cart, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID, status models.OrderStatus, page, limit int) ([]models.Order, int64, error)
	// FindInRange returns matching orders with their items populated, for the
	// ranking and revenue reductions.
	FindInRange(ctx context.Context, q OrderRangeQuery) ([]models.Order, error)
	// Update replaces the order's scalar fields and, when order.Items is
	// non-nil, its item list.
	Update(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id uuid.UUID) (*models.Order, error)

	StatusTotals(ctx context.Context) ([]models.StatusTotal, error)
	Count(ctx context.Context) (int64, error)
	// TotalRevenue sums totals over all non-cancelled orders.
	TotalRevenue(ctx context.Context) (float64, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context, q UserQuery) ([]models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindAll(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindAll(ctx context.Context) ([]models.Review, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	// FindForUser returns the user's notifications plus broadcasts, newest
	// first.
	FindForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}
