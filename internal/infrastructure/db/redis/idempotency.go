package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyChecker replays booking requests that carry a previously seen
// Idempotency-Key. Key format: booking:idem:<key> → appointment id.
type IdempotencyChecker struct {
	client *redis.Client
}

// NewIdempotencyChecker creates an IdempotencyChecker wrapping the given client.
func NewIdempotencyChecker(client *redis.Client) *IdempotencyChecker {
	return &IdempotencyChecker{client: client}
}

// Lookup returns the appointment id recorded under key, if any.
func (c *IdempotencyChecker) Lookup(ctx context.Context, key string) (string, bool, error) {
	id, err := c.client.Get(ctx, c.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return id, true, nil
}

// Remember records the appointment created under key (expires after idempotencyTTL).
func (c *IdempotencyChecker) Remember(ctx context.Context, key, appointmentID string) error {
	return c.client.Set(ctx, c.key(key), appointmentID, idempotencyTTL).Err()
}

func (c *IdempotencyChecker) key(key string) string {
	return "booking:idem:" + key
}
