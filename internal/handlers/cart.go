// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shopadmin/internal/services"
	"shopadmin/internal/utils"
)

type cartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

type CartHandler struct {
	carts *services.CartService
}

func NewCartHandler(carts *services.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// GET /cart/:userId
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	cart, err := h.carts.GetCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Cart fetched", cart)
}

// POST /cart/:userId/items
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	var req cartItemRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.carts.AddItem(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Item added to cart", cart)
}

// PUT /cart/:userId/items/:productId
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	productID, ok := parseID(c, "productId")
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if !bindJSON(c, &req) {
		return
	}

	cart, err := h.carts.UpdateItem(c.Request.Context(), userID, productID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Cart item updated", cart)
}

// DELETE /cart/:userId/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	productID, ok := parseID(c, "productId")
	if !ok {
		return
	}

	cart, err := h.carts.RemoveItem(c.Request.Context(), userID, productID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Item removed from cart", cart)
}

// DELETE /cart/:userId
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	if err := h.carts.Clear(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Cart cleared", nil)
}
