package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"store-service/pkg/logkey"

	"github.com/redis/go-redis/v9"
)

// Each cart is one namespaced key holding the JSON-serialized item list.
const keyPrefix = "store-service:cart:"

// Store persists carts in redis, one key per cart id.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func cartKey(cartID string) string {
	return keyPrefix + cartID
}

// Load returns the persisted cart for the given id. A missing key, a redis
// failure or malformed stored data all yield an empty cart; a broken cart
// blob must never take a request down with it.
func (s *Store) Load(ctx context.Context, cartID string) []Item {
	if s.client == nil {
		return nil
	}

	data, err := s.client.Get(ctx, cartKey(cartID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		slog.Error("cart load failed, treating as empty", slog.String("CartID", cartID), slog.String(logkey.ERROR, err.Error()))
		return nil
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		slog.Error("cart blob malformed, treating as empty", slog.String("CartID", cartID), slog.String(logkey.ERROR, err.Error()))
		return nil
	}
	return items
}

// Save serializes and persists the full item list under the cart's key.
// Without a configured client it silently does nothing.
func (s *Store) Save(ctx context.Context, cartID string, items []Item) error {
	if s.client == nil {
		return nil
	}

	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	if err := s.client.Set(ctx, cartKey(cartID), data, 0).Err(); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}

// Clear empties the cart and persists the empty state.
func (s *Store) Clear(ctx context.Context, cartID string) error {
	return s.Save(ctx, cartID, []Item{})
}
