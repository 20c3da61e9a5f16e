package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"store-service/internal/cart"
	"store-service/internal/checkout"
	"store-service/internal/promo"
	"store-service/pkg/ctxmanage"
	"store-service/pkg/logkey"

	"github.com/gin-gonic/gin"
)

type checkoutRequest struct {
	CartID    string      `json:"cart_id"`
	Items     []cart.Item `json:"items"`
	PromoCode string      `json:"promo_code"`
}

// Checkout turns the submitted cart into a hosted payment session and
// returns the redirect URL. Prices in the request body are advisory only;
// the orchestrator reprices everything from the product store.
func (h *Handler) Checkout(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("invalid checkout request body", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Cart is empty or malformed"})
		return
	}

	sess, err := h.orch.CreateSession(c.Request.Context(), req.CartID, req.Items, req.PromoCode)
	if err != nil {
		h.checkoutError(c, traceId, err)
		return
	}

	slog.Info("checkout session created", slog.String(logkey.TraceID, traceId),
		slog.String("SessionID", sess.ID), slog.String("CartID", req.CartID))

	c.JSON(http.StatusOK, gin.H{"id": sess.ID, "url": sess.URL})
}

func (h *Handler) checkoutError(c *gin.Context, traceId string, err error) {
	var invalidProduct *checkout.InvalidProductError
	var gatewayErr *checkout.GatewayError
	var belowMin *promo.BelowMinimumError

	switch {
	case errors.Is(err, checkout.ErrFeatureDisabled):
		c.AbortWithStatusJSON(http.StatusNotImplemented, gin.H{"error": "Checkout is currently disabled"})
	case errors.Is(err, checkout.ErrEmptyCart):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
	case errors.Is(err, checkout.ErrMixedCurrency):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Cart items must share one currency"})
	case errors.As(err, &invalidProduct):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid product in cart: " + invalidProduct.Slug})
	case errors.Is(err, promo.ErrNotFound),
		errors.Is(err, promo.ErrNotYetValid),
		errors.Is(err, promo.ErrExpired),
		errors.Is(err, promo.ErrUsageExceeded),
		errors.As(err, &belowMin):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Promo code is no longer valid"})
	case errors.As(err, &gatewayErr):
		slog.Error("payment gateway rejected checkout", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
	default:
		slog.Error("checkout failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
	}
}
