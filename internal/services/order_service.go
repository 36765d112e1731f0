// internal/services/order_service.go
package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"shopadmin/internal/models"
	"shopadmin/internal/repository"
)

// OrderItemInput is one line of an order create/update request. Price is the
// snapshot to store; when omitted the product's current price is used.
type OrderItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Price     float64   `json:"price" binding:"omitempty,min=0"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	UserID          uuid.UUID          `json:"user_id" binding:"required"`
	Items           []OrderItemInput   `json:"items" binding:"required,min=1,dive"`
	ShippingAddress string             `json:"shipping_address" binding:"required"`
	Status          models.OrderStatus `json:"status" binding:"omitempty"`
}

// UpdateOrderRequest carries partial updates. A nil Items leaves the item
// list alone; an empty non-nil slice is rejected.
type UpdateOrderRequest struct {
	Status          models.OrderStatus `json:"status" binding:"omitempty"`
	ShippingAddress string             `json:"shipping_address" binding:"omitempty"`
	Items           []OrderItemInput   `json:"items" binding:"omitempty,dive"`
}

// TopQuery narrows the ranked reductions. Zero Limit means 5, a zero Status
// falls back to the per-ranking default, nil bounds mean unbounded.
type TopQuery struct {
	Limit  int
	Status models.OrderStatus
	Start  *time.Time
	End    *time.Time
}

func (q *TopQuery) normalize(defaultStatus models.OrderStatus) {
	if q.Limit <= 0 {
		q.Limit = 5
	}
	if q.Status == "" {
		q.Status = defaultStatus
	}
}

// CalculateOrderTotal sums price times quantity over the lines. Zero-valued
// lines contribute nothing, so partially-filled input never poisons the sum.
func CalculateOrderTotal(items []models.OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

type OrderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	users    repository.UserRepository
}

func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, users repository.UserRepository) *OrderService {
	return &OrderService{orders: orders, products: products, users: users}
}

// buildItems resolves the inputs against the catalog, snapshotting the
// current price for any line that does not carry one.
func (s *OrderService) buildItems(ctx context.Context, inputs []OrderItemInput) ([]models.OrderItem, error) {
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.ProductID)
	}
	catalog, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item quantity must be positive", repository.ErrInvalidInput)
		}
		product, ok := catalog[in.ProductID]
		if !ok {
			return nil, fmt.Errorf("product %s: %w", in.ProductID, repository.ErrNotFound)
		}
		price := in.Price
		if price == 0 {
			price = product.Price
		}
		items = append(items, models.OrderItem{
			ProductID: in.ProductID,
			Price:     price,
			Quantity:  in.Quantity,
		})
	}
	return items, nil
}

func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one item", repository.ErrInvalidInput)
	}
	if req.ShippingAddress == "" {
		return nil, fmt.Errorf("%w: shipping address required", repository.ErrInvalidInput)
	}
	if req.Status != "" && !req.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", repository.ErrInvalidInput, req.Status)
	}

	if _, err := s.users.FindByID(ctx, req.UserID); err != nil {
		return nil, err
	}
	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.OrderStatusPending
	}

	order := &models.Order{
		UserID:          req.UserID,
		Items:           items,
		Status:          status,
		ShippingAddress: req.ShippingAddress,
		TotalAmount:     CalculateOrderTotal(items),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return s.orders.FindByID(ctx, order.ID)
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.orders.FindAll(ctx)
}

func (s *OrderService) ListByUser(ctx context.Context, userID uuid.UUID, status models.OrderStatus, page, limit int) ([]models.Order, int64, error) {
	if status != "" && !status.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown order status %q", repository.ErrInvalidInput, status)
	}
	return s.orders.FindByUser(ctx, userID, status, page, limit)
}

// Update applies partial changes. Status moves must follow the lifecycle:
// pending, confirmed, shipping, delivered, with cancellation allowed from any
// non-terminal state.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, req UpdateOrderRequest) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != "" {
		if !req.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown order status %q", repository.ErrInvalidInput, req.Status)
		}
		if !order.Status.CanTransition(req.Status) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, order.Status, req.Status)
		}
		order.Status = req.Status
	}
	if req.ShippingAddress != "" {
		order.ShippingAddress = req.ShippingAddress
	}
	if req.Items != nil {
		if len(req.Items) == 0 {
			return nil, fmt.Errorf("%w: order needs at least one item", repository.ErrInvalidInput)
		}
		items, err := s.buildItems(ctx, req.Items)
		if err != nil {
			return nil, err
		}
		order.Items = items
		order.TotalAmount = CalculateOrderTotal(items)
	} else {
		// nil tells the repository to leave the item rows alone
		order.Items = nil
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return s.orders.FindByID(ctx, id)
}

func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.orders.Delete(ctx, id)
}

// TopProducts ranks products over the matched orders by units sold, with
// revenue breaking ties. The default window is delivered orders, all time.
func (s *OrderService) TopProducts(ctx context.Context, q TopQuery) ([]models.TopProduct, error) {
	q.normalize(models.OrderStatusDelivered)
	if !q.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", repository.ErrInvalidInput, q.Status)
	}

	orders, err := s.orders.FindInRange(ctx, repository.OrderRangeQuery{
		Status: q.Status,
		Start:  q.Start,
		End:    q.End,
	})
	if err != nil {
		return nil, err
	}

	type bucket struct {
		sold    int64
		revenue float64
		orders  map[uuid.UUID]struct{}
	}
	totals := make(map[uuid.UUID]*bucket)
	for _, order := range orders {
		for _, item := range order.Items {
			b := totals[item.ProductID]
			if b == nil {
				b = &bucket{orders: make(map[uuid.UUID]struct{})}
				totals[item.ProductID] = b
			}
			b.sold += int64(item.Quantity)
			b.revenue += item.Price * float64(item.Quantity)
			b.orders[order.ID] = struct{}{}
		}
	}

	ids := make([]uuid.UUID, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := totals[ids[i]], totals[ids[j]]
		if a.sold != b.sold {
			return a.sold > b.sold
		}
		return a.revenue > b.revenue
	})
	if len(ids) > q.Limit {
		ids = ids[:q.Limit]
	}

	catalog, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	ranked := make([]models.TopProduct, 0, len(ids))
	for _, id := range ids {
		product, ok := catalog[id]
		if !ok {
			// Product deleted since the orders were placed
			continue
		}
		b := totals[id]
		ranked = append(ranked, models.TopProduct{
			Product:    product.Summary(),
			Sold:       b.sold,
			Revenue:    b.revenue,
			OrderCount: int64(len(b.orders)),
		})
	}
	return ranked, nil
}

// TopCustomers ranks customers by total spend, then order count, then most
// recent order. Cancelled orders never count; an explicit status narrows
// further.
func (s *OrderService) TopCustomers(ctx context.Context, q TopQuery) ([]models.TopCustomer, error) {
	if q.Limit <= 0 {
		q.Limit = 5
	}
	if q.Status != "" && !q.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", repository.ErrInvalidInput, q.Status)
	}

	orders, err := s.orders.FindInRange(ctx, repository.OrderRangeQuery{
		Status: q.Status,
		Start:  q.Start,
		End:    q.End,
	})
	if err != nil {
		return nil, err
	}

	type bucket struct {
		count     int64
		spend     float64
		lastOrder time.Time
	}
	totals := make(map[uuid.UUID]*bucket)
	for _, order := range orders {
		if q.Status == "" && order.Status == models.OrderStatusCancelled {
			continue
		}
		b := totals[order.UserID]
		if b == nil {
			b = &bucket{}
			totals[order.UserID] = b
		}
		b.count++
		b.spend += order.TotalAmount
		if order.CreatedAt.After(b.lastOrder) {
			b.lastOrder = order.CreatedAt
		}
	}

	ids := make([]uuid.UUID, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := totals[ids[i]], totals[ids[j]]
		if a.spend != b.spend {
			return a.spend > b.spend
		}
		if a.count != b.count {
			return a.count > b.count
		}
		return a.lastOrder.After(b.lastOrder)
	})
	if len(ids) > q.Limit {
		ids = ids[:q.Limit]
	}

	accounts, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	ranked := make([]models.TopCustomer, 0, len(ids))
	for _, id := range ids {
		user, ok := accounts[id]
		if !ok {
			continue
		}
		b := totals[id]
		ranked = append(ranked, models.TopCustomer{
			User:       user.Summary(),
			OrderCount: b.count,
			TotalSpend: b.spend,
			LastOrder:  b.lastOrder,
		})
	}
	return ranked, nil
}
