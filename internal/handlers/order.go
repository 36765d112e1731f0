// internal/handlers/order.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"shopadmin/internal/models"
	"shopadmin/internal/services"
	"shopadmin/internal/utils"
)

type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// topQuery reads the shared ranking filters: limit, status and a permissive
// date window.
func topQuery(c *gin.Context) services.TopQuery {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	return services.TopQuery{
		Limit:  limit,
		Status: models.OrderStatus(c.Query("status")),
		Start:  services.ParseTimeBound(c.Query("start_date")),
		End:    services.ParseTimeBound(c.Query("end_date")),
	}
}

// GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Orders fetched", orders)
}

// GET /orders/top-products
func (h *OrderHandler) GetTopProducts(c *gin.Context) {
	ranked, err := h.orders.TopProducts(c.Request.Context(), topQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Top products fetched", ranked)
}

// GET /orders/top-customers
func (h *OrderHandler) GetTopCustomers(c *gin.Context) {
	ranked, err := h.orders.TopCustomers(c.Request.Context(), topQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Top customers fetched", ranked)
}

// GET /orders/user/:userId
func (h *OrderHandler) GetUserOrders(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c)
	status := models.OrderStatus(c.Query("status"))

	orders, total, err := h.orders.ListByUser(c.Request.Context(), userID, status, params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	result := utils.CreatePaginationResult(orders, total, params)
	utils.PaginatedResponse(c, "Orders fetched", result)
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Order fetched", order)
}

// POST /orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orders.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, "Order created", order)
}

// PUT /orders/:id
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orders.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Order updated", order)
}

// DELETE /orders/:id
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := h.orders.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Order deleted", order)
}
