// internal/services/statistics_service.go
package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"shopadmin/internal/models"
	"shopadmin/internal/repository"
)

// Overview is the dashboard headline block.
type Overview struct {
	TotalUsers      int64   `json:"total_users"`
	TotalProducts   int64   `json:"total_products"`
	TotalOrders     int64   `json:"total_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalCategories int64   `json:"total_categories"`
	TotalReviews    int64   `json:"total_reviews"`
}

// TopRatedProduct is one row of the rating leaderboard.
type TopRatedProduct struct {
	Product       models.ProductSummary `json:"product"`
	AverageRating float64               `json:"average_rating"`
	ReviewCount   int64                 `json:"review_count"`
}

// CategoryStat is one row of the per-category catalog breakdown.
type CategoryStat struct {
	CategoryID   uuid.UUID `json:"category_id"`
	CategoryName string    `json:"category_name"`
	ProductCount int64     `json:"product_count"`
	TotalStock   int64     `json:"total_stock"`
	AveragePrice float64   `json:"average_price"`
}

type StatisticsService struct {
	orders     repository.OrderRepository
	products   repository.ProductRepository
	users      repository.UserRepository
	categories repository.CategoryRepository
	reviews    repository.ReviewRepository
}

func NewStatisticsService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	categories repository.CategoryRepository,
	reviews repository.ReviewRepository,
) *StatisticsService {
	return &StatisticsService{
		orders:     orders,
		products:   products,
		users:      users,
		categories: categories,
		reviews:    reviews,
	}
}

func (s *StatisticsService) Overview(ctx context.Context) (*Overview, error) {
	overview := &Overview{}

	var err error
	if overview.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if overview.TotalProducts, err = s.products.Count(ctx); err != nil {
		return nil, err
	}
	if overview.TotalOrders, err = s.orders.Count(ctx); err != nil {
		return nil, err
	}
	if overview.TotalRevenue, err = s.orders.TotalRevenue(ctx); err != nil {
		return nil, err
	}
	if overview.TotalCategories, err = s.categories.Count(ctx); err != nil {
		return nil, err
	}
	if overview.TotalReviews, err = s.reviews.Count(ctx); err != nil {
		return nil, err
	}
	return overview, nil
}

// StatusBreakdown reports order counts and amounts per status, busiest first.
func (s *StatisticsService) StatusBreakdown(ctx context.Context) ([]models.StatusTotal, error) {
	return s.orders.StatusTotals(ctx)
}

var revenueLayouts = map[string]string{
	"day":   "2006-01-02",
	"month": "2006-01",
	"year":  "2006",
}

// Revenue buckets non-cancelled orders by creation time. groupBy is day,
// month or year; buckets come back in chronological order.
func (s *StatisticsService) Revenue(ctx context.Context, groupBy string, start, end *time.Time) ([]models.RevenuePoint, error) {
	if groupBy == "" {
		groupBy = "day"
	}
	layout, ok := revenueLayouts[groupBy]
	if !ok {
		return nil, fmt.Errorf("%w: group_by must be day, month or year", repository.ErrInvalidInput)
	}

	orders, err := s.orders.FindInRange(ctx, repository.OrderRangeQuery{Start: start, End: end})
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*models.RevenuePoint)
	for _, order := range orders {
		if order.Status == models.OrderStatusCancelled {
			continue
		}
		key := order.CreatedAt.Format(layout)
		point := buckets[key]
		if point == nil {
			point = &models.RevenuePoint{Bucket: key}
			buckets[key] = point
		}
		point.TotalRevenue += order.TotalAmount
		point.OrderCount++
	}

	series := make([]models.RevenuePoint, 0, len(buckets))
	for _, point := range buckets {
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Bucket < series[j].Bucket
	})
	return series, nil
}

// TopSelling ranks products by units sold across all non-cancelled orders.
func (s *StatisticsService) TopSelling(ctx context.Context, limit int) ([]models.TopProduct, error) {
	if limit <= 0 {
		limit = 5
	}

	orders, err := s.orders.FindInRange(ctx, repository.OrderRangeQuery{})
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
		if order.Status == models.OrderStatusCancelled {
			continue
		}
		for _, item := range order.Items {
			b := totals[item.ProductID]
			if b == nil {
				b = &bucket{orders: make(map[uuid.UUID]struct{})}
				totals[item.ProductID] = b
			}
			b.sold += int64(item.Quantity)
			b.revenue += item.Price * float64(item.Quantity)
			// Distinct orders, not line items
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
	if len(ids) > limit {
		ids = ids[:limit]
	}

	catalog, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	ranked := make([]models.TopProduct, 0, len(ids))
	for _, id := range ids {
		product, ok := catalog[id]
		if !ok {
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

// TopRated ranks products by average review rating, review count breaking
// ties. Averages are rounded to two decimals.
func (s *StatisticsService) TopRated(ctx context.Context, limit int) ([]TopRatedProduct, error) {
	if limit <= 0 {
		limit = 5
	}

	reviews, err := s.reviews.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		sum   int64
		count int64
	}
	totals := make(map[uuid.UUID]*bucket)
	for _, review := range reviews {
		b := totals[review.ProductID]
		if b == nil {
			b = &bucket{}
			totals[review.ProductID] = b
		}
		b.sum += int64(review.Rating)
		b.count++
	}

	averages := make(map[uuid.UUID]float64, len(totals))
	ids := make([]uuid.UUID, 0, len(totals))
	for id, b := range totals {
		ids = append(ids, id)
		averages[id] = round2(float64(b.sum) / float64(b.count))
	}
	sort.Slice(ids, func(i, j int) bool {
		if averages[ids[i]] != averages[ids[j]] {
			return averages[ids[i]] > averages[ids[j]]
		}
		return totals[ids[i]].count > totals[ids[j]].count
	})
	if len(ids) > limit {
		ids = ids[:limit]
	}

	catalog, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	ranked := make([]TopRatedProduct, 0, len(ids))
	for _, id := range ids {
		product, ok := catalog[id]
		if !ok {
			continue
		}
		ranked = append(ranked, TopRatedProduct{
			Product:       product.Summary(),
			AverageRating: averages[id],
			ReviewCount:   totals[id].count,
		})
	}
	return ranked, nil
}

// CategoryStats breaks the catalog down per category. Products without a
// category are left out.
func (s *StatisticsService) CategoryStats(ctx context.Context) ([]CategoryStat, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(categories))
	for _, category := range categories {
		names[category.ID] = category.Name
	}

	type bucket struct {
		count    int64
		stock    int64
		priceSum float64
	}
	totals := make(map[uuid.UUID]*bucket)
	for _, product := range products {
		if product.CategoryID == nil {
			continue
		}
		b := totals[*product.CategoryID]
		if b == nil {
			b = &bucket{}
			totals[*product.CategoryID] = b
		}
		b.count++
		b.stock += int64(product.Stock)
		b.priceSum += product.Price
	}

	stats := make([]CategoryStat, 0, len(totals))
	for id, b := range totals {
		stats = append(stats, CategoryStat{
			CategoryID:   id,
			CategoryName: names[id],
			ProductCount: b.count,
			TotalStock:   b.stock,
			AveragePrice: round2(b.priceSum / float64(b.count)),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].ProductCount != stats[j].ProductCount {
			return stats[i].ProductCount > stats[j].ProductCount
		}
		return stats[i].CategoryName < stats[j].CategoryName
	})
	return stats, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
