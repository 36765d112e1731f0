// internal/cache/product_cache_test.go
package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopadmin/internal/models"
	"shopadmin/internal/repository"
)

// stubProductRepo is the backing store for cache tests. The embedded
// interface panics on anything the tests do not stub. onUpdate runs inside
// Update, before the row is stored, to observe ordering.
type stubProductRepo struct {
	repository.ProductRepository
	mu       sync.Mutex
	items    map[uuid.UUID]*models.Product
	finds    int
	onUpdate func(*models.Product)
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{items: map[uuid.UUID]*models.Product{}}
}

func (s *stubProductRepo) add(p *models.Product) *models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.items[p.ID] = p
	return p
}

func (s *stubProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finds++
	p, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, repository.ErrNotFound)
	}
	clone := *p
	return &clone, nil
}

func (s *stubProductRepo) Update(ctx context.Context, product *models.Product) error {
	if s.onUpdate != nil {
		s.onUpdate(product)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *product
	s.items[product.ID] = &clone
	return nil
}

func setupCache(t *testing.T) (*CachedProductRepository, *stubProductRepo, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := newStubProductRepo()
	return NewCachedProductRepository(repo, client), repo, mr
}

func TestFindByIDReadsThroughAndCaches(t *testing.T) {
	cached, repo, mr := setupCache(t)
	ctx := context.Background()
	product := repo.add(&models.Product{Name: "Lamp", Price: 30, Stock: 4})

	first, err := cached.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lamp", first.Name)
	assert.True(t, mr.Exists(productKey(product.ID)))

	// Second read is served from Redis, not the store
	second, err := cached.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, 1, repo.finds)
}

func TestFindByIDCachesMisses(t *testing.T) {
	cached, repo, _ := setupCache(t)
	ctx := context.Background()
	missing := uuid.New()

	_, err := cached.FindByID(ctx, missing)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = cached.FindByID(ctx, missing)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, 1, repo.finds)
}

func TestUpdateInvalidatesAfterWrite(t *testing.T) {
	cached, repo, mr := setupCache(t)
	ctx := context.Background()
	product := repo.add(&models.Product{Name: "Chair", Price: 60, Stock: 8})

	_, err := cached.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists(productKey(product.ID)))

	// The key must still be cached while the write is in flight; dropping it
	// earlier would let a concurrent read re-cache the old row for the full
	// TTL after the invalidation already happened.
	repo.onUpdate = func(*models.Product) {
		assert.True(t, mr.Exists(productKey(product.ID)))
	}

	changed := *product
	changed.Price = 75
	require.NoError(t, cached.Update(ctx, &changed))
	assert.False(t, mr.Exists(productKey(product.ID)))

	fresh, err := cached.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 75.0, fresh.Price)
}
