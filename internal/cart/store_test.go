package cart

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(client), mr
}

func TestStore_RoundTrip(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	items := []Item{
		{ProductID: "p1", Title: "Tour Tee", Slug: "tour-tee", PriceCents: 2500, Currency: "USD", Quantity: 2, Options: map[string]string{"Size": "M"}},
		{ProductID: "p2", Title: "Poster", Slug: "poster", PriceCents: 1500, Currency: "USD", Quantity: 1},
	}

	require.NoError(t, store.Save(ctx, "cart-1", items))
	assert.Equal(t, items, store.Load(ctx, "cart-1"))
}

func TestStore_LoadMissingKeyIsEmpty(t *testing.T) {
	store, _ := setupTestStore(t)

	assert.Empty(t, store.Load(context.Background(), "never-saved"))
}

func TestStore_LoadMalformedBlobIsEmpty(t *testing.T) {
	store, mr := setupTestStore(t)

	require.NoError(t, mr.Set("store-service:cart:cart-1", "{not json"))

	assert.Empty(t, store.Load(context.Background(), "cart-1"))
}

func TestStore_LoadRedisDownIsEmpty(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "cart-1", []Item{{ProductID: "p1", Quantity: 1}}))
	mr.Close()

	assert.Empty(t, store.Load(ctx, "cart-1"))
}

func TestStore_NilClientIsNoop(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	assert.NoError(t, store.Save(ctx, "cart-1", []Item{{ProductID: "p1", Quantity: 1}}))
	assert.Empty(t, store.Load(ctx, "cart-1"))
}

func TestStore_ClearPersistsEmptyState(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "cart-1", []Item{{ProductID: "p1", Quantity: 1}}))
	require.NoError(t, store.Clear(ctx, "cart-1"))

	assert.Empty(t, store.Load(ctx, "cart-1"))

	// Clear writes an empty list rather than deleting the key.
	got, err := mr.Get("store-service:cart:cart-1")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", got)
}
