// internal/services/warehouse_service.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"shopadmin/internal/models"
	"shopadmin/internal/repository"
)

// UpdateStockRequest is a single stock move. Set overwrites with Stock; add
// and subtract shift by Quantity, clamping at zero.
type UpdateStockRequest struct {
	Action   models.StockAction `json:"action" binding:"required"`
	Stock    int                `json:"stock" binding:"omitempty,min=0"`
	Quantity int                `json:"quantity" binding:"omitempty,min=1"`
}

type WarehouseService struct {
	products repository.ProductRepository
}

func NewWarehouseService(products repository.ProductRepository) *WarehouseService {
	return &WarehouseService{products: products}
}

// Overview reports product count, total units, inventory value and the
// low/out-of-stock counts in a single pass.
func (s *WarehouseService) Overview(ctx context.Context) (*repository.StockSummary, error) {
	return s.products.StockSummary(ctx)
}

func (s *WarehouseService) List(ctx context.Context, q repository.StockQuery) ([]models.Product, int64, error) {
	return s.products.FindByStock(ctx, q)
}

func (s *WarehouseService) LowStock(ctx context.Context, threshold, page, limit int) ([]models.Product, int64, error) {
	return s.products.FindByStock(ctx, repository.StockQuery{
		LowStock:  true,
		Threshold: threshold,
		SortBy:    "stock_asc",
		Page:      page,
		Limit:     limit,
	})
}

func (s *WarehouseService) OutOfStock(ctx context.Context, page, limit int) ([]models.Product, int64, error) {
	return s.products.FindByStock(ctx, repository.StockQuery{
		OutOfStock: true,
		SortBy:     "name_asc",
		Page:       page,
		Limit:      limit,
	})
}

func (s *WarehouseService) UpdateStock(ctx context.Context, id uuid.UUID, req UpdateStockRequest) (*models.Product, error) {
	switch req.Action {
	case models.StockActionSet:
		if req.Stock < 0 {
			return nil, fmt.Errorf("%w: stock cannot be negative", repository.ErrInvalidInput)
		}
		return s.products.SetStock(ctx, id, req.Stock)
	case models.StockActionAdd:
		if req.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", repository.ErrInvalidInput)
		}
		return s.products.AdjustStock(ctx, id, req.Quantity)
	case models.StockActionSubtract:
		if req.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", repository.ErrInvalidInput)
		}
		return s.products.AdjustStock(ctx, id, -req.Quantity)
	default:
		return nil, fmt.Errorf("%w: action must be set, add or subtract", repository.ErrInvalidInput)
	}
}
