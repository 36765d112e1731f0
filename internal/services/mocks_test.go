// internal/services/mocks_test.go
package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"shopadmin/internal/models"
	"shopadmin/internal/repository"
)

// In-memory repositories mirroring the database-backed contracts closely
// enough to exercise the services without a live Postgres.

type memProducts struct {
	mu    sync.Mutex
	items map[uuid.UUID]*models.Product
}

func newMemProducts() *memProducts {
	return &memProducts{items: map[uuid.UUID]*models.Product{}}
}

func (m *memProducts) add(p *models.Product) *models.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.items[p.ID] = p
	return p
}

func (m *memProducts) Create(ctx context.Context, product *models.Product) error {
	m.add(product)
	return nil
}

func (m *memProducts) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, repository.ErrNotFound)
	}
	clone := *p
	return &clone, nil
}

func (m *memProducts) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[uuid.UUID]models.Product, len(ids))
	for _, id := range ids {
		if p, ok := m.items[id]; ok {
			out[id] = *p
		}
	}
	return out, nil
}

func (m *memProducts) FindAll(ctx context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Product, 0, len(m.items))
	for _, p := range m.items {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memProducts) Search(ctx context.Context, q repository.ProductQuery) ([]models.Product, int64, error) {
	all, _ := m.FindAll(ctx)
	var out []models.Product
	for _, p := range all {
		if q.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.Search)) {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (m *memProducts) Update(ctx context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[product.ID]; !ok {
		return fmt.Errorf("product %s: %w", product.ID, repository.ErrNotFound)
	}
	clone := *product
	m.items[product.ID] = &clone
	return nil
}

func (m *memProducts) Delete(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, repository.ErrNotFound)
	}
	delete(m.items, id)
	return p, nil
}

func (m *memProducts) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, repository.ErrNotFound)
	}
	p.Stock += delta
	if p.Stock < 0 {
		p.Stock = 0
	}
	clone := *p
	return &clone, nil
}

func (m *memProducts) SetStock(ctx context.Context, id uuid.UUID, stock int) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, repository.ErrNotFound)
	}
	if stock < 0 {
		stock = 0
	}
	p.Stock = stock
	clone := *p
	return &clone, nil
}

func (m *memProducts) FindByStock(ctx context.Context, q repository.StockQuery) ([]models.Product, int64, error) {
	threshold := q.Threshold
	if threshold <= 0 {
		threshold = 10
	}
	all, _ := m.FindAll(ctx)
	var out []models.Product
	for _, p := range all {
		if q.LowStock && (p.Stock == 0 || p.Stock > threshold) {
			continue
		}
		if q.OutOfStock && p.Stock != 0 {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stock < out[j].Stock })
	return out, int64(len(out)), nil
}

func (m *memProducts) StockSummary(ctx context.Context) (*repository.StockSummary, error) {
	all, _ := m.FindAll(ctx)
	summary := &repository.StockSummary{}
	for _, p := range all {
		summary.TotalProducts++
		summary.TotalStock += int64(p.Stock)
		summary.TotalValue += p.Price * float64(p.Stock)
		switch {
		case p.Stock == 0:
			summary.OutOfStockCount++
		case p.Stock <= 10:
			summary.LowStockCount++
		}
	}
	return summary, nil
}

func (m *memProducts) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.items)), nil
}

type memCarts struct {
	mu       sync.Mutex
	products *memProducts
	carts    map[uuid.UUID]*models.Cart // keyed by user
}

func newMemCarts(products *memProducts) *memCarts {
	return &memCarts{products: products, carts: map[uuid.UUID]*models.Cart{}}
}

// load deep-copies the stored cart and populates the product references, the
// way the database repository preloads them.
func (m *memCarts) load(userID uuid.UUID) (*models.Cart, bool) {
	stored, ok := m.carts[userID]
	if !ok {
		return nil, false
	}
	clone := *stored
	clone.Items = make([]models.CartItem, len(stored.Items))
	copy(clone.Items, stored.Items)
	for i := range clone.Items {
		if p, ok := m.products.items[clone.Items[i].ProductID]; ok {
			pc := *p
			clone.Items[i].Product = &pc
		} else {
			clone.Items[i].Product = nil
		}
	}
	return &clone, true
}

func (m *memCarts) FindByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products.mu.Lock()
	defer m.products.mu.Unlock()
	cart, ok := m.load(userID)
	if !ok {
		return nil, fmt.Errorf("cart for user %s: %w", userID, repository.ErrNotFound)
	}
	return cart, nil
}

func (m *memCarts) Create(ctx context.Context, cart *models.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.carts[cart.UserID]; exists {
		return nil
	}
	if cart.ID == uuid.Nil {
		cart.ID = uuid.New()
	}
	clone := *cart
	m.carts[cart.UserID] = &clone
	return nil
}

func (m *memCarts) Mutate(ctx context.Context, userID uuid.UUID, fn func(cart *models.Cart) error) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products.mu.Lock()
	cart, ok := m.load(userID)
	m.products.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("cart for user %s: %w", userID, repository.ErrNotFound)
	}

	if err := fn(cart); err != nil {
		// Stored cart untouched, mirroring a rolled-back transaction
		return nil, err
	}

	stored := *cart
	stored.Items = make([]models.CartItem, len(cart.Items))
	copy(stored.Items, cart.Items)
	m.carts[userID] = &stored
	return cart, nil
}

func (m *memCarts) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.carts[userID]; !ok {
		return fmt.Errorf("cart for user %s: %w", userID, repository.ErrNotFound)
	}
	delete(m.carts, userID)
	return nil
}

type memOrders struct {
	mu    sync.Mutex
	items map[uuid.UUID]*models.Order
}

func newMemOrders() *memOrders {
	return &memOrders{items: map[uuid.UUID]*models.Order{}}
}

func (m *memOrders) add(o *models.Order) *models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	m.items[o.ID] = o
	return o
}

func (m *memOrders) Create(ctx context.Context, order *models.Order) error {
	m.add(order)
	return nil
}

func (m *memOrders) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, repository.ErrNotFound)
	}
	clone := *o
	return &clone, nil
}

func (m *memOrders) FindAll(ctx context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Order, 0, len(m.items))
	for _, o := range m.items {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memOrders) FindByUser(ctx context.Context, userID uuid.UUID, status models.OrderStatus, page, limit int) ([]models.Order, int64, error) {
	all, _ := m.FindAll(ctx)
	var out []models.Order
	for _, o := range all {
		if o.UserID != userID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

func (m *memOrders) FindInRange(ctx context.Context, q repository.OrderRangeQuery) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Order
	for _, o := range m.items {
		if q.Status != "" && o.Status != q.Status {
			continue
		}
		if q.Start != nil && o.CreatedAt.Before(*q.Start) {
			continue
		}
		if q.End != nil && o.CreatedAt.After(*q.End) {
			continue
		}
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memOrders) Update(ctx context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.items[order.ID]
	if !ok {
		return fmt.Errorf("order %s: %w", order.ID, repository.ErrNotFound)
	}
	stored.Status = order.Status
	stored.ShippingAddress = order.ShippingAddress
	stored.TotalAmount = order.TotalAmount
	if order.Items != nil {
		stored.Items = order.Items
	}
	return nil
}

func (m *memOrders) Delete(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, repository.ErrNotFound)
	}
	delete(m.items, id)
	return o, nil
}

func (m *memOrders) StatusTotals(ctx context.Context) ([]models.StatusTotal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	totals := map[models.OrderStatus]*models.StatusTotal{}
	for _, o := range m.items {
		t := totals[o.Status]
		if t == nil {
			t = &models.StatusTotal{Status: o.Status}
			totals[o.Status] = t
		}
		t.Count++
		t.TotalAmount += o.TotalAmount
	}
	out := make([]models.StatusTotal, 0, len(totals))
	for _, t := range totals {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}

func (m *memOrders) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.items)), nil
}

func (m *memOrders) TotalRevenue(ctx context.Context) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total float64
	for _, o := range m.items {
		if o.Status == models.OrderStatusCancelled {
			continue
		}
		total += o.TotalAmount
	}
	return total, nil
}

type memUsers struct {
	mu    sync.Mutex
	items map[uuid.UUID]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{items: map[uuid.UUID]*models.User{}}
}

func (m *memUsers) add(u *models.User) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.items[u.ID] = u
	return u
}

func (m *memUsers) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items {
		if existing.Email == user.Email {
			return fmt.Errorf("email %s: %w", user.Email, repository.ErrConflict)
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.items[user.ID] = user
	return nil
}

func (m *memUsers) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, repository.ErrNotFound)
	}
	clone := *u
	return &clone, nil
}

func (m *memUsers) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[uuid.UUID]models.User, len(ids))
	for _, id := range ids {
		if u, ok := m.items[id]; ok {
			out[id] = *u
		}
	}
	return out, nil
}

func (m *memUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.items {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, repository.ErrNotFound)
}

func (m *memUsers) FindAll(ctx context.Context, q repository.UserQuery) ([]models.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.User
	for _, u := range m.items {
		if q.Role != "" && u.Role != q.Role {
			continue
		}
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (m *memUsers) Update(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[user.ID]; !ok {
		return fmt.Errorf("user %s: %w", user.ID, repository.ErrNotFound)
	}
	clone := *user
	m.items[user.ID] = &clone
	return nil
}

func (m *memUsers) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("user %s: %w", id, repository.ErrNotFound)
	}
	delete(m.items, id)
	return nil
}

func (m *memUsers) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.items)), nil
}

type memCategories struct {
	mu    sync.Mutex
	items map[uuid.UUID]*models.Category
}

func newMemCategories() *memCategories {
	return &memCategories{items: map[uuid.UUID]*models.Category{}}
}

func (m *memCategories) add(c *models.Category) *models.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.items[c.ID] = c
	return c
}

func (m *memCategories) Create(ctx context.Context, category *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items {
		if existing.Name == category.Name {
			return fmt.Errorf("category %s: %w", category.Name, repository.ErrConflict)
		}
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	m.items[category.ID] = category
	return nil
}

func (m *memCategories) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("category %s: %w", id, repository.ErrNotFound)
	}
	clone := *c
	return &clone, nil
}

func (m *memCategories) FindAll(ctx context.Context) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Category, 0, len(m.items))
	for _, c := range m.items {
		out = append(out, *c)
	}
	return out, nil
}

func (m *memCategories) Update(ctx context.Context, category *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[category.ID]; !ok {
		return fmt.Errorf("category %s: %w", category.ID, repository.ErrNotFound)
	}
	clone := *category
	m.items[category.ID] = &clone
	return nil
}

func (m *memCategories) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("category %s: %w", id, repository.ErrNotFound)
	}
	delete(m.items, id)
	return nil
}

func (m *memCategories) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.items)), nil
}

type memReviews struct {
	mu    sync.Mutex
	items map[uuid.UUID]*models.Review
}

func newMemReviews() *memReviews {
	return &memReviews{items: map[uuid.UUID]*models.Review{}}
}

func (m *memReviews) add(r *models.Review) *models.Review {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	m.items[r.ID] = r
	return r
}

func (m *memReviews) Create(ctx context.Context, review *models.Review) error {
	m.add(review)
	return nil
}

func (m *memReviews) FindAll(ctx context.Context) ([]models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Review, 0, len(m.items))
	for _, r := range m.items {
		out = append(out, *r)
	}
	return out, nil
}

func (m *memReviews) FindByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	all, _ := m.FindAll(ctx)
	var out []models.Review
	for _, r := range all {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReviews) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("review %s: %w", id, repository.ErrNotFound)
	}
	delete(m.items, id)
	return nil
}

func (m *memReviews) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.items)), nil
}
