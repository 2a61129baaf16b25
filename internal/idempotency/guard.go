// Package idempotency guards order placement against duplicate submissions
// carrying the same Idempotency-Key.
package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const pendingMarker = "pending"

// ErrInFlight means another request with the same key has been claimed and
// not yet completed.
var ErrInFlight = errors.New("idempotency key in flight")

// Guard records one marker per (restaurant, key) in Redis. A claimed key
// holds "pending" until the order commits, then the order id.
type Guard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGuard(client *redis.Client, ttl time.Duration) *Guard {
	return &Guard{client: client, ttl: ttl}
}

func (g *Guard) markerKey(restaurantID uuid.UUID, key string) string {
	return "idem:order:" + restaurantID.String() + ":" + key
}

// Claim reserves key. When the key was already claimed it returns the order
// id the first request produced, or ErrInFlight while that request is still
// running.
func (g *Guard) Claim(ctx context.Context, restaurantID uuid.UUID, key string) (uuid.UUID, error) {
	k := g.markerKey(restaurantID, key)
	ok, err := g.client.SetNX(ctx, k, pendingMarker, g.ttl).Result()
	if err != nil {
		return uuid.Nil, fmt.Errorf("claim idempotency key: %w", err)
	}
	if ok {
		return uuid.Nil, nil
	}

	val, err := g.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		// Expired between SETNX and GET; the next attempt can claim it.
		return uuid.Nil, ErrInFlight
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("read idempotency key: %w", err)
	}
	if val == pendingMarker {
		return uuid.Nil, ErrInFlight
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt idempotency marker %q: %w", val, err)
	}
	return id, nil
}

// Complete records the committed order id against key.
func (g *Guard) Complete(ctx context.Context, restaurantID uuid.UUID, key string, orderID uuid.UUID) error {
	if err := g.client.Set(ctx, g.markerKey(restaurantID, key), orderID.String(), g.ttl).Err(); err != nil {
		return fmt.Errorf("complete idempotency key: %w", err)
	}
	return nil
}

// Release frees key after a failed placement so the customer can retry.
func (g *Guard) Release(ctx context.Context, restaurantID uuid.UUID, key string) error {
	if err := g.client.Del(ctx, g.markerKey(restaurantID, key)).Err(); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}
