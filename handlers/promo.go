package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"store-service/internal/promo"
	"store-service/pkg/ctxmanage"
	"store-service/pkg/logkey"

	"github.com/gin-gonic/gin"
)

type promoCodeRequest struct {
	Code      string `json:"code"`
	CartTotal int64  `json:"cartTotal"`
}

// ApplyPromoCode validates a discount code against the client's cart
// subtotal and returns the computed discount. Nothing is reserved or
// counted here; usage only moves when an order is actually paid.
func (h *Handler) ApplyPromoCode(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	var req promoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("invalid promo request body", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Code == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Promo code is required"})
		return
	}

	applied, err := h.promos.Validate(c.Request.Context(), req.Code, req.CartTotal)
	if err != nil {
		h.promoError(c, traceId, req.Code, err)
		return
	}

	slog.Info("promo code applied", slog.String(logkey.TraceID, traceId),
		slog.String("Code", applied.Code), slog.Int64("DiscountCents", applied.DiscountCents))

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"code":          applied.Code,
		"discountType":  applied.DiscountType,
		"discountCents": applied.DiscountCents,
		"description":   applied.Description,
	})
}

// promoError maps the promo taxonomy onto user-facing responses: unknown
// code is a 404, every other validation failure a 400, store trouble a
// generic 500.
func (h *Handler) promoError(c *gin.Context, traceId, code string, err error) {
	var belowMin *promo.BelowMinimumError

	switch {
	case errors.Is(err, promo.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Invalid promo code"})
	case errors.Is(err, promo.ErrNotYetValid):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "This promo code is not active yet"})
	case errors.Is(err, promo.ErrExpired):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "This promo code has expired"})
	case errors.Is(err, promo.ErrUsageExceeded):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "This promo code has reached its usage limit"})
	case errors.As(err, &belowMin):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Minimum purchase of " + belowMin.Formatted() + " required"})
	default:
		slog.Error("promo validation failed", slog.String(logkey.TraceID, traceId),
			slog.String("Code", code), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate promo code"})
	}
}
