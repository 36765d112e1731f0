// internal/cache/product_cache.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"shopadmin/internal/models"
	"shopadmin/internal/repository"
)

const (
	productKeyPrefix = "product:"
	notFoundMarker   = "notfound"
)

// CachedProductRepository is a read-through cache over the real product
// repository. Every mutation invalidates the affected key after the write
// lands; invalidating first would leave a window where a concurrent read
// re-caches the pre-write row for the full TTL. Redis failures degrade to
// the database, never to an error.
type CachedProductRepository struct {
	repository.ProductRepository
	redis *redis.Client
	ttl   time.Duration
}

func NewCachedProductRepository(realRepo repository.ProductRepository, rdb *redis.Client) *CachedProductRepository {
	return &CachedProductRepository{
		ProductRepository: realRepo,
		redis:             rdb,
		ttl:               5 * time.Minute,
	}
}

func productKey(id uuid.UUID) string {
	return productKeyPrefix + id.String()
}

func (c *CachedProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	key := productKey(id)

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if string(data) == notFoundMarker {
			return nil, fmt.Errorf("product %s: %w", id, repository.ErrNotFound)
		}
		var product models.Product
		if err := json.Unmarshal(data, &product); err != nil {
			logrus.WithError(err).Warn("Failed to decode cached product, falling through to database")
			break
		}
		return &product, nil
	case errors.Is(err, redis.Nil):
	default:
		logrus.WithError(err).Warn("Redis error, falling through to database")
	}

	product, err := c.ProductRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Negative entry with a short TTL keeps repeated misses off the DB
			if setErr := c.redis.Set(ctx, key, notFoundMarker, time.Minute).Err(); setErr != nil {
				logrus.WithError(setErr).Warn("Failed to cache product miss")
			}
		}
		return nil, err
	}

	if jsonData, err := json.Marshal(product); err == nil {
		if err := c.redis.Set(ctx, key, jsonData, c.ttl).Err(); err != nil {
			logrus.WithError(err).Warn("Failed to cache product")
		}
	}
	return product, nil
}

func (c *CachedProductRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.redis.Del(ctx, productKey(id)).Err(); err != nil {
		logrus.WithError(err).WithField("product_id", id).Warn("Failed to invalidate product cache")
	}
}

func (c *CachedProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := c.ProductRepository.Create(ctx, product); err != nil {
		return err
	}
	// Drop a possible negative entry left by earlier misses
	c.invalidate(ctx, product.ID)
	return nil
}

func (c *CachedProductRepository) Update(ctx context.Context, product *models.Product) error {
	if err := c.ProductRepository.Update(ctx, product); err != nil {
		return err
	}
	c.invalidate(ctx, product.ID)
	return nil
}

func (c *CachedProductRepository) Delete(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := c.ProductRepository.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, id)
	return product, nil
}

func (c *CachedProductRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*models.Product, error) {
	product, err := c.ProductRepository.AdjustStock(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, id)
	return product, nil
}

func (c *CachedProductRepository) SetStock(ctx context.Context, id uuid.UUID, stock int) (*models.Product, error) {
	product, err := c.ProductRepository.SetStock(ctx, id, stock)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, id)
	return product, nil
}
