package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"store-service/pkg/ctxmanage"
	"store-service/pkg/logkey"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type subscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Subscribe signs an address up for the newsletter. Subscribing twice is
// not an error.
func (h *Handler) Subscribe(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("invalid newsletter body", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "A valid email address is required"})
			return
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": http.StatusText(http.StatusBadRequest)})
		return
	}

	if err := h.newsStore.Subscribe(c.Request.Context(), req.Email); err != nil {
		slog.Error("failed to save subscriber", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
		return
	}

	slog.Info("newsletter subscription", slog.String(logkey.TraceID, traceId))
	c.JSON(http.StatusOK, gin.H{"message": "Subscribed successfully"})
}
