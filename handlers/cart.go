package handlers

import (
	"log/slog"
	"net/http"

	"store-service/internal/cart"
	"store-service/pkg/ctxmanage"
	"store-service/pkg/logkey"

	"github.com/gin-gonic/gin"
)

// GetCart returns the persisted cart for the given id. An unknown or
// unreadable cart is an empty cart, never an error.
func (h *Handler) GetCart(c *gin.Context) {
	cartID := c.Param("cartID")

	items := h.carts.Load(c.Request.Context(), cartID)
	c.JSON(http.StatusOK, gin.H{
		"items":       items,
		"total_cents": cart.TotalCents(items),
	})
}

// AddCartItem adds an item; a line with the same product and options merges
// quantities instead of duplicating.
func (h *Handler) AddCartItem(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)
	cartID := c.Param("cartID")

	var item cart.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		slog.Error("invalid cart item body", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if item.ProductID == "" || item.Slug == "" || item.Quantity < 1 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Product ID, slug and a quantity of at least 1 are required"})
		return
	}

	ctx := c.Request.Context()
	items := cart.AddItem(h.carts.Load(ctx, cartID), item)
	if err := h.carts.Save(ctx, cartID, items); err != nil {
		slog.Error("failed to persist cart", slog.String(logkey.TraceID, traceId),
			slog.String("CartID", cartID), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total_cents": cart.TotalCents(items)})
}

type cartLineRequest struct {
	ProductID string            `json:"product_id"`
	Options   map[string]string `json:"options,omitempty"`
	Quantity  int               `json:"quantity"`
}

// SetCartItemQuantity sets a line's quantity exactly; zero or less removes
// the line.
func (h *Handler) SetCartItemQuantity(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)
	cartID := c.Param("cartID")

	var req cartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("invalid cart line body", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.ProductID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
		return
	}

	ctx := c.Request.Context()
	items := cart.SetQuantity(h.carts.Load(ctx, cartID), req.ProductID, req.Options, req.Quantity)
	if err := h.carts.Save(ctx, cartID, items); err != nil {
		slog.Error("failed to persist cart", slog.String(logkey.TraceID, traceId),
			slog.String("CartID", cartID), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total_cents": cart.TotalCents(items)})
}

// RemoveCartItem removes a line; removing an absent line succeeds.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)
	cartID := c.Param("cartID")

	var req cartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("invalid cart line body", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	items := cart.RemoveItem(h.carts.Load(ctx, cartID), req.ProductID, req.Options)
	if err := h.carts.Save(ctx, cartID, items); err != nil {
		slog.Error("failed to persist cart", slog.String(logkey.TraceID, traceId),
			slog.String("CartID", cartID), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total_cents": cart.TotalCents(items)})
}

// ClearCart empties the cart and persists the empty state.
func (h *Handler) ClearCart(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)
	cartID := c.Param("cartID")

	if err := h.carts.Clear(c.Request.Context(), cartID); err != nil {
		slog.Error("failed to clear cart", slog.String(logkey.TraceID, traceId),
			slog.String("CartID", cartID), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": []cart.Item{}, "total_cents": 0})
}
