package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"store-service/internal/stores/kafka"
	"store-service/pkg/logkey"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
)

// Webhook receives payment events from the gateway. On a successful payment
// the order moves to paid exactly once; the promo usage counter increments
// here and nowhere else.
func (h *Handler) Webhook(c *gin.Context) {
	traceId := uuid.NewString()
	const MaxBodyBytes = int64(65536)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	var event stripe.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		slog.Error("failed to bind webhook event", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var paymentIntent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &paymentIntent); err != nil {
			slog.Error("failed to unmarshal payment intent", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		orderId := paymentIntent.Metadata["order_id"]
		cartId := paymentIntent.Metadata["cart_id"]
		promoCode := paymentIntent.Metadata["promo_code"]
		slog.Info("payment intent succeeded", slog.String(logkey.TraceID, traceId),
			slog.String("PaymentIntentID", paymentIntent.ID), slog.String("OrderID", orderId))

		ctx := c.Request.Context()
		transitioned, err := h.orderStore.MarkPaid(ctx, orderId, paymentIntent.ID)
		if err != nil {
			slog.Error("failed to update order", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}
		if !transitioned {
			// Replayed event; everything below already ran.
			c.Status(http.StatusOK)
			return
		}

		// The one place current_uses moves: the order is placed for real now.
		if promoCode != "" {
			if err := h.promoStore.IncrementUsage(ctx, promoCode); err != nil {
				slog.Error("failed to increment promo usage", slog.String(logkey.TraceID, traceId),
					slog.String("Code", promoCode), slog.String(logkey.ERROR, err.Error()))
			}
		}

		if cartId != "" {
			if err := h.carts.Clear(ctx, cartId); err != nil {
				slog.Error("failed to clear cart after payment", slog.String(logkey.TraceID, traceId),
					slog.String("CartID", cartId), slog.String(logkey.ERROR, err.Error()))
			}
		}

		h.publishOrderPaid(traceId, orderId)

		if email := paymentIntent.ReceiptEmail; email != "" && h.mailer.Enabled() {
			if err := h.mailer.SendOrderConfirmation(email, orderId); err != nil {
				slog.Error("failed to send confirmation email", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
			}
		}

		c.Status(http.StatusOK)

	default:
		slog.Info("unhandled event type", slog.String("event_type", string(event.Type)))
		c.JSON(http.StatusOK, gin.H{
			"message": "Event type not handled",
			"event":   event.Type,
		})
	}
}

// publishOrderPaid emits one kafka event per line item so fulfillment and
// inventory consumers see individual units.
func (h *Handler) publishOrderPaid(traceId, orderId string) {
	if h.k == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		order, err := h.orderStore.GetByID(ctx, orderId)
		if err != nil || order == nil {
			slog.Error("failed to load order for events", slog.String(logkey.TraceID, traceId), slog.String("OrderID", orderId))
			return
		}

		for _, item := range order.Items {
			jsonData, err := json.Marshal(kafka.OrderPaidEvent{
				OrderId:   orderId,
				ProductId: item.ProductID,
				Slug:      item.Slug,
				Quantity:  item.Quantity,
				Options:   item.Options,
				CreatedAt: time.Now().UTC(),
			})
			if err != nil {
				slog.Error("failed to marshal order paid event", slog.String(logkey.ERROR, err.Error()))
				return
			}

			if err := h.k.ProduceMessage(kafka.TopicOrderPaid, []byte(orderId), jsonData); err != nil {
				slog.Error("failed to produce message", slog.String(logkey.ERROR, err.Error()))
				return
			}
			slog.Info("order paid event produced", slog.String("OrderID", orderId), slog.String("ProductID", item.ProductID))
		}
	}()
}
