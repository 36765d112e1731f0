// internal/handlers/statistics.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"shopadmin/internal/services"
	"shopadmin/internal/utils"
)

type StatisticsHandler struct {
	statistics *services.StatisticsService
}

func NewStatisticsHandler(statistics *services.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statistics: statistics}
}

// GET /statistics/overview
func (h *StatisticsHandler) GetOverview(c *gin.Context) {
	overview, err := h.statistics.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Overview fetched", overview)
}

// GET /statistics/orders
func (h *StatisticsHandler) GetStatusBreakdown(c *gin.Context) {
	breakdown, err := h.statistics.StatusBreakdown(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Order statistics fetched", breakdown)
}

// GET /statistics/revenue
func (h *StatisticsHandler) GetRevenue(c *gin.Context) {
	groupBy := c.DefaultQuery("group_by", "day")
	start := services.ParseTimeBound(c.Query("start_date"))
	end := services.ParseTimeBound(c.Query("end_date"))

	series, err := h.statistics.Revenue(c.Request.Context(), groupBy, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Revenue statistics fetched", series)
}

// GET /statistics/top-selling
func (h *StatisticsHandler) GetTopSelling(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	ranked, err := h.statistics.TopSelling(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Top selling products fetched", ranked)
}

// GET /statistics/top-rated
func (h *StatisticsHandler) GetTopRated(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	ranked, err := h.statistics.TopRated(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Top rated products fetched", ranked)
}

// GET /statistics/categories
func (h *StatisticsHandler) GetCategoryStats(c *gin.Context) {
	stats, err := h.statistics.CategoryStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Category statistics fetched", stats)
}
