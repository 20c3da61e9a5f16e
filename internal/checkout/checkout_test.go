package checkout

import (
	"context"
	"errors"
	"testing"

	"store-service/internal/cart"
	"store-service/internal/orders"
	"store-service/internal/products"
	"store-service/internal/promo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"
)

type fakeProducts struct {
	bySlug map[string]*products.Product
	calls  int
}

func (f *fakeProducts) GetBySlug(_ context.Context, slug string) (*products.Product, error) {
	f.calls++
	return f.bySlug[slug], nil
}

type fakePromos struct {
	applied     promo.Applied
	err         error
	gotSubtotal int64
}

func (f *fakePromos) Validate(_ context.Context, _ string, subtotalCents int64) (promo.Applied, error) {
	f.gotSubtotal = subtotalCents
	return f.applied, f.err
}

type fakeGateway struct {
	sessionParams *stripe.CheckoutSessionParams
	couponParams  *stripe.CouponParams
	sessionErr    error
	calls         int
}

func (f *fakeGateway) CreateSession(_ context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.calls++
	f.sessionParams = params
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	return &stripe.CheckoutSession{ID: "cs_test_123", URL: "https://checkout.example.com/cs_test_123"}, nil
}

func (f *fakeGateway) CreateCoupon(_ context.Context, params *stripe.CouponParams) (*stripe.Coupon, error) {
	f.couponParams = params
	return &stripe.Coupon{ID: "coupon_123"}, nil
}

type fakeOrders struct {
	created []orders.Order
	err     error
}

func (f *fakeOrders) CreateOrder(_ context.Context, o orders.Order) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, o)
	return nil
}

func testConfig() Config {
	return Config{
		Enabled:          true,
		SuccessURL:       "https://example.com/success",
		CancelURL:        "https://example.com/cancel",
		AllowedCountries: []string{"US", "CA"},
	}
}

func teeProduct() *products.Product {
	return &products.Product{
		ID:         "prod-1",
		Title:      "Tour Tee",
		Slug:       "tour-tee",
		PriceCents: 2500,
		Currency:   "USD",
		Images:     []string{"https://cdn.example.com/tee-front.jpg", "https://cdn.example.com/tee-back.jpg"},
	}
}

func cartItems() []cart.Item {
	return []cart.Item{{
		ProductID:  "prod-1",
		Slug:       "tour-tee",
		PriceCents: 1, // client lies about the price
		Currency:   "USD",
		Quantity:   2,
		Options:    map[string]string{"Size": "M"},
	}}
}

func TestCreateSession_FeatureDisabledBeforeAnyCall(t *testing.T) {
	prods := &fakeProducts{}
	gw := &fakeGateway{}
	cfg := testConfig()
	cfg.Enabled = false
	orch := NewOrchestrator(prods, &fakePromos{}, gw, &fakeOrders{}, cfg)

	_, err := orch.CreateSession(context.Background(), "cart-1", cartItems(), "")

	assert.ErrorIs(t, err, ErrFeatureDisabled)
	assert.Zero(t, prods.calls)
	assert.Zero(t, gw.calls)
}

func TestCreateSession_EmptyCart(t *testing.T) {
	prods := &fakeProducts{}
	gw := &fakeGateway{}
	orch := NewOrchestrator(prods, &fakePromos{}, gw, &fakeOrders{}, testConfig())

	_, err := orch.CreateSession(context.Background(), "cart-1", nil, "")

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, prods.calls)
	assert.Zero(t, gw.calls)
}

func TestCreateSession_UnknownSlugRejectsWholeCart(t *testing.T) {
	prods := &fakeProducts{bySlug: map[string]*products.Product{"tour-tee": teeProduct()}}
	gw := &fakeGateway{}
	rec := &fakeOrders{}
	orch := NewOrchestrator(prods, &fakePromos{}, gw, rec, testConfig())

	items := append(cartItems(), cart.Item{ProductID: "prod-404", Slug: "deleted-item", Quantity: 1})
	_, err := orch.CreateSession(context.Background(), "cart-1", items, "")

	var invalid *InvalidProductError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "deleted-item", invalid.Slug)
	assert.Zero(t, gw.calls, "gateway must not be called after a lookup miss")
	assert.Empty(t, rec.created)
}

func TestCreateSession_MissingPriceIsInvalidProduct(t *testing.T) {
	unpriced := teeProduct()
	unpriced.PriceCents = 0
	prods := &fakeProducts{bySlug: map[string]*products.Product{"tour-tee": unpriced}}
	gw := &fakeGateway{}
	orch := NewOrchestrator(prods, &fakePromos{}, gw, &fakeOrders{}, testConfig())

	_, err := orch.CreateSession(context.Background(), "cart-1", cartItems(), "")

	var invalid *InvalidProductError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "tour-tee", invalid.Slug)
	assert.Zero(t, gw.calls)
}

func TestCreateSession_MixedCurrenciesRejected(t *testing.T) {
	poster := &products.Product{ID: "prod-2", Title: "Tour Poster", Slug: "tour-poster", PriceCents: 1500, Currency: "EUR"}
	prods := &fakeProducts{bySlug: map[string]*products.Product{
		"tour-tee":    teeProduct(),
		"tour-poster": poster,
	}}
	gw := &fakeGateway{}
	rec := &fakeOrders{}
	orch := NewOrchestrator(prods, &fakePromos{}, gw, rec, testConfig())

	items := append(cartItems(), cart.Item{ProductID: "prod-2", Slug: "tour-poster", Quantity: 1})
	_, err := orch.CreateSession(context.Background(), "cart-1", items, "")

	assert.ErrorIs(t, err, ErrMixedCurrency)
	assert.Zero(t, gw.calls)
	assert.Empty(t, rec.created)
}

func TestCreateSession_RepricesFromStore(t *testing.T) {
	prods := &fakeProducts{bySlug: map[string]*products.Product{"tour-tee": teeProduct()}}
	gw := &fakeGateway{}
	rec := &fakeOrders{}
	orch := NewOrchestrator(prods, &fakePromos{}, gw, rec, testConfig())

	sess, err := orch.CreateSession(context.Background(), "cart-1", cartItems(), "")
	require.NoError(t, err)

	assert.Equal(t, "cs_test_123", sess.ID)
	assert.Equal(t, "https://checkout.example.com/cs_test_123", sess.URL)

	require.Len(t, gw.sessionParams.LineItems, 1)
	li := gw.sessionParams.LineItems[0]
	assert.Equal(t, int64(2500), *li.PriceData.UnitAmount, "store price, not the client's")
	assert.Equal(t, "usd", *li.PriceData.Currency)
	assert.Equal(t, int64(2), *li.Quantity)
	assert.Equal(t, "Tour Tee", *li.PriceData.ProductData.Name)
	require.Len(t, li.PriceData.ProductData.Images, 1)
	assert.Equal(t, "https://cdn.example.com/tee-front.jpg", *li.PriceData.ProductData.Images[0])

	md := li.PriceData.ProductData.Metadata
	assert.Equal(t, "prod-1", md["product_id"])
	assert.Equal(t, "tour-tee", md["slug"])
	assert.Equal(t, "M", md["option:Size"])

	assert.Equal(t, string(stripe.CheckoutSessionModePayment), *gw.sessionParams.Mode)
	assert.Equal(t, "https://example.com/success", *gw.sessionParams.SuccessURL)
	assert.Equal(t, "https://example.com/cancel", *gw.sessionParams.CancelURL)
	require.NotNil(t, gw.sessionParams.ShippingAddressCollection)
	assert.Len(t, gw.sessionParams.ShippingAddressCollection.AllowedCountries, 2)

	require.Len(t, rec.created, 1)
	order := rec.created[0]
	assert.Equal(t, "cart-1", order.CartID)
	assert.Equal(t, "cs_test_123", order.StripeSessionID)
	assert.Equal(t, int64(5000), order.AmountTotalCents)
}

func TestCreateSession_PromoDiscountReachesGateway(t *testing.T) {
	prods := &fakeProducts{bySlug: map[string]*products.Product{"tour-tee": teeProduct()}}
	gw := &fakeGateway{}
	rec := &fakeOrders{}
	promos := &fakePromos{applied: promo.Applied{Code: "SAVE10", DiscountType: promo.DiscountPercentage, DiscountCents: 500}}
	orch := NewOrchestrator(prods, promos, gw, rec, testConfig())

	_, err := orch.CreateSession(context.Background(), "cart-1", cartItems(), "SAVE10")
	require.NoError(t, err)

	// revalidated against the repriced subtotal, not the client's numbers
	assert.Equal(t, int64(5000), promos.gotSubtotal)

	require.NotNil(t, gw.couponParams)
	assert.Equal(t, int64(500), *gw.couponParams.AmountOff)
	require.Len(t, gw.sessionParams.Discounts, 1)
	assert.Equal(t, "coupon_123", *gw.sessionParams.Discounts[0].Coupon)

	require.Len(t, rec.created, 1)
	assert.Equal(t, "SAVE10", rec.created[0].PromoCode)
	assert.Equal(t, int64(4500), rec.created[0].AmountTotalCents)
}

func TestCreateSession_InvalidPromoFailsRequest(t *testing.T) {
	prods := &fakeProducts{bySlug: map[string]*products.Product{"tour-tee": teeProduct()}}
	gw := &fakeGateway{}
	promos := &fakePromos{err: promo.ErrExpired}
	orch := NewOrchestrator(prods, promos, gw, &fakeOrders{}, testConfig())

	_, err := orch.CreateSession(context.Background(), "cart-1", cartItems(), "OLD")

	assert.ErrorIs(t, err, promo.ErrExpired)
	assert.Zero(t, gw.calls)
}

func TestCreateSession_GatewayFailureIsGatewayError(t *testing.T) {
	prods := &fakeProducts{bySlug: map[string]*products.Product{"tour-tee": teeProduct()}}
	gw := &fakeGateway{sessionErr: errors.New("rate limited")}
	rec := &fakeOrders{}
	orch := NewOrchestrator(prods, &fakePromos{}, gw, rec, testConfig())

	_, err := orch.CreateSession(context.Background(), "cart-1", cartItems(), "")

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Contains(t, gwErr.Error(), "rate limited")
	assert.Empty(t, rec.created, "no order without a session")
}
