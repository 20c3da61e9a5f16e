package handlers

import (
	"context"
	"net/http"
	"os"

	"store-service/internal/cart"
	"store-service/internal/checkout"
	"store-service/internal/config"
	"store-service/internal/contact"
	"store-service/internal/email"
	"store-service/internal/orders"
	"store-service/internal/products"
	"store-service/internal/promo"
	"store-service/internal/stores/kafka"
	"store-service/middleware"

	"github.com/gin-gonic/gin"
)

// OrderStore is the slice of order persistence the handlers touch.
type OrderStore interface {
	MarkPaid(ctx context.Context, orderID, paymentIntentID string) (bool, error)
	GetByID(ctx context.Context, orderID string) (*orders.Order, error)
}

// PromoUsage consumes a promo redemption once an order is actually paid.
type PromoUsage interface {
	IncrementUsage(ctx context.Context, code string) error
}

// ProductCatalog is the read side of the product store.
type ProductCatalog interface {
	GetBySlug(ctx context.Context, slug string) (*products.Product, error)
	List(ctx context.Context, limit, offset int) ([]products.Product, error)
}

// SubscriberStore records newsletter signups.
type SubscriberStore interface {
	Subscribe(ctx context.Context, email string) error
}

// MessageStore persists contact-form submissions.
type MessageStore interface {
	Save(ctx context.Context, m contact.Message) (int64, error)
}

type Handler struct {
	cfg          config.Config
	carts        *cart.Store
	promos       *promo.Service
	promoStore   PromoUsage
	productStore ProductCatalog
	orderStore   OrderStore
	newsStore    SubscriberStore
	contactStore MessageStore
	orch         *checkout.Orchestrator
	k            *kafka.Conf
	mailer       email.Conf
}

func NewHandler(cfg config.Config, carts *cart.Store, promos *promo.Service, promoStore PromoUsage,
	productStore ProductCatalog, orderStore OrderStore, newsStore SubscriberStore,
	contactStore MessageStore, orch *checkout.Orchestrator, k *kafka.Conf, mailer email.Conf) *Handler {
	return &Handler{
		cfg:          cfg,
		carts:        carts,
		promos:       promos,
		promoStore:   promoStore,
		productStore: productStore,
		orderStore:   orderStore,
		newsStore:    newsStore,
		contactStore: contactStore,
		orch:         orch,
		k:            k,
		mailer:       mailer,
	}
}

func API(endpointPrefix string, h *Handler) *gin.Engine {
	r := gin.New()
	mode := os.Getenv("GIN_MODE")
	if mode == gin.ReleaseMode {
		gin.SetMode(mode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	r.Use(middleware.Logger(), gin.Recovery())
	r.GET("/ping", healthCheck)

	v1 := r.Group(endpointPrefix)
	{
		v1.POST("/checkout", h.Checkout)
		v1.POST("/promo-code", h.ApplyPromoCode)
		v1.POST("/webhook", h.Webhook)

		v1.GET("/products", h.ListProducts)
		v1.GET("/products/:slug", h.GetProduct)

		v1.GET("/cart/:cartID", h.GetCart)
		v1.POST("/cart/:cartID/items", h.AddCartItem)
		v1.PUT("/cart/:cartID/items", h.SetCartItemQuantity)
		v1.DELETE("/cart/:cartID/items", h.RemoveCartItem)
		v1.DELETE("/cart/:cartID", h.ClearCart)

		v1.POST("/newsletter", h.Subscribe)
		v1.POST("/contact", h.Contact)
	}

	return r
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
