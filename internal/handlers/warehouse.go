// internal/handlers/warehouse.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shopadmin/internal/repository"
	"shopadmin/internal/services"
	"shopadmin/internal/utils"
)

type WarehouseHandler struct {
	warehouse *services.WarehouseService
}

func NewWarehouseHandler(warehouse *services.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{warehouse: warehouse}
}

// GET /warehouse/overview
func (h *WarehouseHandler) GetOverview(c *gin.Context) {
	summary, err := h.warehouse.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Warehouse overview fetched", summary)
}

// GET /warehouse/products
func (h *WarehouseHandler) GetStockLevels(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	query := repository.StockQuery{
		SortBy: params.Sort,
		Page:   params.Page,
		Limit:  params.Limit,
	}
	if lowStr := c.Query("low_stock"); lowStr != "" {
		query.LowStock, _ = strconv.ParseBool(lowStr)
	}
	if outStr := c.Query("out_of_stock"); outStr != "" {
		query.OutOfStock, _ = strconv.ParseBool(outStr)
	}
	if thresholdStr := c.Query("threshold"); thresholdStr != "" {
		query.Threshold, _ = strconv.Atoi(thresholdStr)
	}
	if categoryStr := c.Query("category_id"); categoryStr != "" {
		if categoryID, err := uuid.Parse(categoryStr); err == nil {
			query.CategoryID = &categoryID
		}
	}

	products, total, err := h.warehouse.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	result := utils.CreatePaginationResult(products, total, params)
	utils.PaginatedResponse(c, "Stock levels fetched", result)
}

// GET /warehouse/low-stock
func (h *WarehouseHandler) GetLowStock(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	threshold, _ := strconv.Atoi(c.DefaultQuery("threshold", "10"))

	products, total, err := h.warehouse.LowStock(c.Request.Context(), threshold, params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	result := utils.CreatePaginationResult(products, total, params)
	utils.PaginatedResponse(c, "Low stock products fetched", result)
}

// GET /warehouse/out-of-stock
func (h *WarehouseHandler) GetOutOfStock(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	products, total, err := h.warehouse.OutOfStock(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	result := utils.CreatePaginationResult(products, total, params)
	utils.PaginatedResponse(c, "Out of stock products fetched", result)
}

// PUT /warehouse/products/:id/stock
func (h *WarehouseHandler) UpdateStock(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateStockRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.warehouse.UpdateStock(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Stock updated", product)
}
