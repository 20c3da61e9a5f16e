package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"store-service/internal/contact"
	"store-service/pkg/ctxmanage"
	"store-service/pkg/logkey"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}

// Contact persists a contact-form message and forwards it to the site owner
// by email. The message is saved first; a dead mail server loses nothing.
func (h *Handler) Contact(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	if c.Request.ContentLength > 16*1024 {
		slog.Error("request body limit breached", slog.String(logkey.TraceID, traceId), slog.Int64("Size Received", c.Request.ContentLength))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Request body too large."})
		return
	}

	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("invalid contact body", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			for _, vErr := range vErrs {
				switch vErr.Tag() {
				case "required":
					c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": vErr.Field() + " value missing"})
					return
				case "email":
					c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "A valid email address is required"})
					return
				default:
					c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": http.StatusText(http.StatusBadRequest)})
					return
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": http.StatusText(http.StatusBadRequest)})
		return
	}

	id, err := h.contactStore.Save(c.Request.Context(), contact.Message{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Message,
	})
	if err != nil {
		slog.Error("failed to save contact message", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	if h.mailer.Enabled() && h.cfg.ContactRecipient != "" {
		go func() {
			err := h.mailer.SendContactNotification(h.cfg.ContactRecipient, req.Name, req.Email, req.Subject, req.Message)
			if err != nil {
				slog.Error("failed to send contact notification", slog.String(logkey.TraceID, traceId),
					slog.Int64("MessageID", id), slog.String(logkey.ERROR, err.Error()))
			}
		}()
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message sent successfully"})
}
