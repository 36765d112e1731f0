// internal/services/product_service.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"shopadmin/internal/models"
	"shopadmin/internal/repository"
)

type CreateProductRequest struct {
	Name        string     `json:"name" binding:"required,max=255"`
	Description string     `json:"description"`
	Price       float64    `json:"price" binding:"required,gt=0"`
	Stock       int        `json:"stock" binding:"omitempty,min=0"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Image       string     `json:"image"`
	Gallery     []string   `json:"gallery"`
	Discount    float64    `json:"discount" binding:"omitempty,min=0,max=100"`
}

type UpdateProductRequest struct {
	Name        *string    `json:"name" binding:"omitempty,max=255"`
	Description *string    `json:"description"`
	Price       *float64   `json:"price" binding:"omitempty,gt=0"`
	Stock       *int       `json:"stock" binding:"omitempty,min=0"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Image       *string    `json:"image"`
	Gallery     []string   `json:"gallery"`
	Discount    *float64   `json:"discount" binding:"omitempty,min=0,max=100"`
}

type ProductService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

func NewProductService(products repository.ProductRepository, categories repository.CategoryRepository) *ProductService {
	return &ProductService{products: products, categories: categories}
}

func (s *ProductService) checkCategory(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, err := s.categories.FindByID(ctx, *id); err != nil {
		return fmt.Errorf("category: %w", err)
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", repository.ErrInvalidInput)
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", repository.ErrInvalidInput)
	}
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		Image:       req.Image,
		Gallery:     req.Gallery,
		Discount:    req.Discount,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *ProductService) Search(ctx context.Context, q repository.ProductQuery) ([]models.Product, int64, error) {
	return s.products.Search(ctx, q)
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", repository.ErrInvalidInput)
		}
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("%w: price must be positive", repository.ErrInvalidInput)
		}
		product.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, fmt.Errorf("%w: stock cannot be negative", repository.ErrInvalidInput)
		}
		product.Stock = *req.Stock
	}
	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, req.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = req.CategoryID
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.Gallery != nil {
		product.Gallery = req.Gallery
	}
	if req.Discount != nil {
		product.Discount = *req.Discount
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.products.Delete(ctx, id)
}
