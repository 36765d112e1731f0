// internal/repository/product_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shopadmin/internal/models"
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	if product.Name == "" {
		return fmt.Errorf("%w: product name required", ErrInvalidInput)
	}
	if product.Price < 0 {
		return fmt.Errorf("%w: product price cannot be negative", ErrInvalidInput)
	}
	if product.Stock < 0 {
		return fmt.Errorf("%w: product stock cannot be negative", ErrInvalidInput)
	}

	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return &product, nil
}

func (r *productRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	result := make(map[uuid.UUID]models.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var products []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	for _, p := range products {
		result[p.ID] = p
	}
	return result, nil
}

func (r *productRepo) FindAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Preload("Category").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

func (r *productRepo) Search(ctx context.Context, q ProductQuery) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if q.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q.Search)+"%")
	}
	if q.CategoryID != nil {
		query = query.Where("category_id = ?", *q.CategoryID)
	}
	if q.MinPrice != nil {
		query = query.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		query = query.Where("price <= ?", *q.MaxPrice)
	}
	if q.InStock != nil {
		if *q.InStock {
			query = query.Where("stock > 0")
		} else {
			query = query.Where("stock <= 0")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query = query.Order(productOrderClause(q.SortBy))
	if q.Limit > 0 {
		offset := (q.Page - 1) * q.Limit
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(q.Limit)
	}

	var products []models.Product
	if err := query.Preload("Category").Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, total, nil
}

func productOrderClause(sortBy string) string {
	switch sortBy {
	case "price_asc":
		return "price ASC"
	case "price_desc":
		return "price DESC"
	case "name_asc":
		return "name ASC"
	case "name_desc":
		return "name DESC"
	case "oldest":
		return "created_at ASC"
	default: // newest
		return "created_at DESC"
	}
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	result := r.db.WithContext(ctx).Save(product)
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(product).Error; err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}
	return product, nil
}

func (r *productRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*models.Product, error) {
	result := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("GREATEST(stock + ?, 0)", delta))
	if result.Error != nil {
		return nil, fmt.Errorf("failed to adjust stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return r.FindByID(ctx, id)
}

func (r *productRepo) SetStock(ctx context.Context, id uuid.UUID, stock int) (*models.Product, error) {
	if stock < 0 {
		stock = 0
	}
	result := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock", stock)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to set stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return r.FindByID(ctx, id)
}

func (r *productRepo) FindByStock(ctx context.Context, q StockQuery) ([]models.Product, int64, error) {
	threshold := q.Threshold
	if threshold <= 0 {
		threshold = 10
	}

	query := r.db.WithContext(ctx).Model(&models.Product{})
	if q.LowStock {
		query = query.Where("stock > 0 AND stock <= ?", threshold)
	} else if q.OutOfStock {
		query = query.Where("stock = 0")
	}
	if q.CategoryID != nil {
		query = query.Where("category_id = ?", *q.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	switch q.SortBy {
	case "stock_asc":
		query = query.Order("stock ASC")
	case "stock_desc":
		query = query.Order("stock DESC")
	default:
		query = query.Order("name ASC")
	}
	if q.Limit > 0 {
		offset := (q.Page - 1) * q.Limit
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(q.Limit)
	}

	var products []models.Product
	if err := query.Preload("Category").Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, total, nil
}

func (r *productRepo) StockSummary(ctx context.Context) (*StockSummary, error) {
	var summary StockSummary
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Select(`COUNT(*) AS total_products,
			COALESCE(SUM(stock), 0) AS total_stock,
			COALESCE(SUM(stock * price), 0) AS total_value,
			COALESCE(SUM(CASE WHEN stock > 0 AND stock <= 10 THEN 1 ELSE 0 END), 0) AS low_stock_count,
			COALESCE(SUM(CASE WHEN stock = 0 THEN 1 ELSE 0 END), 0) AS out_of_stock_count`).
		Scan(&summary).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate stock summary: %w", err)
	}
	return &summary, nil
}

func (r *productRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}
