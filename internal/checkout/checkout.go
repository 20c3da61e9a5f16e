package checkout

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"store-service/internal/cart"
	"store-service/internal/orders"
	"store-service/internal/products"
	"store-service/internal/promo"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
)

// ProductLookup is the slice of the product store checkout needs.
type ProductLookup interface {
	GetBySlug(ctx context.Context, slug string) (*products.Product, error)
}

// OrderRecorder persists the pending order tied to a new payment session.
type OrderRecorder interface {
	CreateOrder(ctx context.Context, o orders.Order) error
}

// PromoValidator revalidates an applied promo code against the repriced
// subtotal.
type PromoValidator interface {
	Validate(ctx context.Context, code string, subtotalCents int64) (promo.Applied, error)
}

// Config carries the checkout policy knobs.
type Config struct {
	Enabled          bool
	SuccessURL       string
	CancelURL        string
	AllowedCountries []string
}

// Session is what the handler returns to the client: the gateway session id
// and the hosted payment page to redirect to.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Orchestrator converts a client-asserted cart into a hosted payment
// session, repricing every item from the product store first.
type Orchestrator struct {
	products ProductLookup
	promos   PromoValidator
	gateway  Gateway
	orders   OrderRecorder
	cfg      Config
}

func NewOrchestrator(p ProductLookup, pr PromoValidator, g Gateway, o OrderRecorder, cfg Config) *Orchestrator {
	return &Orchestrator{products: p, promos: pr, gateway: g, orders: o, cfg: cfg}
}

// CreateSession builds and opens a payment session for the cart.
// Client-supplied prices are ignored: every line is repriced by slug from
// the product store, and any miss rejects the whole request before the
// gateway is ever called. No retry happens here; a GatewayError is the
// caller's signal to decide.
func (oc *Orchestrator) CreateSession(ctx context.Context, cartID string, items []cart.Item, promoCode string) (Session, error) {
	if !oc.cfg.Enabled {
		return Session{}, ErrFeatureDisabled
	}
	if len(items) == 0 {
		return Session{}, ErrEmptyCart
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	var subtotalCents int64
	currency := ""

	for _, it := range items {
		p, err := oc.products.GetBySlug(ctx, it.Slug)
		if err != nil {
			return Session{}, fmt.Errorf("product lookup failed: %w", err)
		}
		// A record without a price is as unsellable as a missing one;
		// never fall back to the client's copy.
		if p == nil || p.PriceCents <= 0 {
			return Session{}, &InvalidProductError{Slug: it.Slug}
		}

		subtotalCents += p.PriceCents * int64(it.Quantity)
		// A session has exactly one currency; the gateway would reject a
		// mix anyway, with a far worse error.
		if currency == "" {
			currency = p.Currency
		} else if p.Currency != currency {
			return Session{}, ErrMixedCurrency
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(it.Quantity)),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(strings.ToLower(p.Currency)),
				UnitAmount: stripe.Int64(p.PriceCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:     stripe.String(p.Title),
					Images:   productImages(p),
					Metadata: lineMetadata(p, it),
				},
			},
		})
	}

	// Revalidate the applied promo against the repriced subtotal. An
	// invalid code fails the request rather than silently charging full
	// price.
	var applied promo.Applied
	if promoCode != "" {
		var err error
		applied, err = oc.promos.Validate(ctx, promoCode, subtotalCents)
		if err != nil {
			return Session{}, err
		}
	}

	orderID := uuid.NewString()
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SubmitType: stripe.String("pay"),
		LineItems:  lineItems,
		SuccessURL: stripe.String(oc.cfg.SuccessURL),
		CancelURL:  stripe.String(oc.cfg.CancelURL),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(oc.cfg.AllowedCountries),
		},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{
				"order_id":       orderID,
				"cart_id":        cartID,
				"promo_code":     applied.Code,
				"discount_cents": strconv.FormatInt(applied.DiscountCents, 10),
			},
		},
	}

	// A monetary discount reaches the gateway as a one-time coupon;
	// free shipping carries zero cents and needs none.
	if applied.DiscountCents > 0 {
		cp, err := oc.gateway.CreateCoupon(ctx, &stripe.CouponParams{
			AmountOff: stripe.Int64(applied.DiscountCents),
			Currency:  stripe.String(strings.ToLower(currency)),
			Duration:  stripe.String(string(stripe.CouponDurationOnce)),
			Name:      stripe.String(applied.Code),
		})
		if err != nil {
			return Session{}, &GatewayError{Err: err}
		}
		params.Discounts = []*stripe.CheckoutSessionDiscountParams{
			{Coupon: stripe.String(cp.ID)},
		}
	}

	sess, err := oc.gateway.CreateSession(ctx, params)
	if err != nil {
		return Session{}, &GatewayError{Err: err}
	}

	order := orders.Order{
		ID:               orderID,
		CartID:           cartID,
		Items:            items,
		PromoCode:        applied.Code,
		DiscountCents:    applied.DiscountCents,
		AmountTotalCents: subtotalCents - applied.DiscountCents,
		Currency:         currency,
		StripeSessionID:  sess.ID,
	}
	if err := oc.orders.CreateOrder(ctx, order); err != nil {
		return Session{}, fmt.Errorf("failed to record order: %w", err)
	}

	return Session{ID: sess.ID, URL: sess.URL}, nil
}

func productImages(p *products.Product) []*string {
	if len(p.Images) == 0 {
		return nil
	}
	// The gateway only needs one image for the payment page.
	return stripe.StringSlice(p.Images[:1])
}

// lineMetadata flattens product identity and the selected variant options
// into the string-keyed metadata fulfillment reads downstream.
func lineMetadata(p *products.Product, it cart.Item) map[string]string {
	md := map[string]string{
		"product_id": p.ID,
		"slug":       p.Slug,
	}
	for name, value := range it.Options {
		md["option:"+name] = value
	}
	return md
}
