// internal/repository/order_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shopadmin/internal/models"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) withAssociations(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("Items.Product")
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.withAssociations(r.db.WithContext(ctx)).First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	return &order, nil
}

func (r *orderRepo) FindAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.withAssociations(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepo) FindByUser(ctx context.Context, userID uuid.UUID, status models.OrderStatus, page, limit int) ([]models.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	if limit > 0 {
		offset := (page - 1) * limit
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(limit)
	}

	var orders []models.Order
	err := r.withAssociations(query).Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, total, nil
}

func (r *orderRepo) FindInRange(ctx context.Context, q OrderRangeQuery) ([]models.Order, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{})
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.Start != nil {
		query = query.Where("created_at >= ?", *q.Start)
	}
	if q.End != nil {
		query = query.Where("created_at <= ?", *q.End)
	}

	var orders []models.Order
	if err := query.Preload("Items").Order("created_at ASC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders in range: %w", err)
	}
	return orders, nil
}

func (r *orderRepo) Update(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":           order.Status,
			"shipping_address": order.ShippingAddress,
			"total_amount":     order.TotalAmount,
		}
		result := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates)
		if result.Error != nil {
			return fmt.Errorf("failed to update order: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("order %s: %w", order.ID, ErrNotFound)
		}

		if order.Items != nil {
			if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
				return fmt.Errorf("failed to clear order items: %w", err)
			}
			for i := range order.Items {
				order.Items[i].ID = uuid.Nil
				order.Items[i].OrderID = order.ID
				item := order.Items[i]
				item.Product = nil
				if err := tx.Create(&item).Error; err != nil {
					return fmt.Errorf("failed to save order item: %w", err)
				}
				order.Items[i].ID = item.ID
			}
		}
		return nil
	})
}

func (r *orderRepo) Delete(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}
		if err := tx.Delete(&models.Order{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) StatusTotals(ctx context.Context) ([]models.StatusTotal, error) {
	var totals []models.StatusTotal
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS total_amount").
		Group("status").
		Order("count DESC").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate order statuses: %w", err)
	}
	return totals, nil
}

func (r *orderRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

func (r *orderRepo) TotalRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("status <> ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return revenue, nil
}
