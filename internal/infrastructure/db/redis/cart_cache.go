package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/webstore/storefront-api/internal/core/domain"
)

const defaultCartCacheTTL = 15 * time.Minute

// CartIDCache caches the username → cart ID resolution used on every login.
// Key format: cart:<username>
type CartIDCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartIDCache creates a CartIDCache wrapping the given Redis client.
func NewCartIDCache(client *redis.Client, ttl time.Duration) *CartIDCache {
	if ttl <= 0 {
		ttl = defaultCartCacheTTL
	}
	return &CartIDCache{client: client, ttl: ttl}
}

// Get returns the cached cart ID for the username. A miss is not an error.
func (c *CartIDCache) Get(ctx context.Context, username string) (int64, bool, error) {
	val, err := c.client.Get(ctx, c.key(username)).Result()
	if err == redis.Nil {
		return domain.NoCartID, false, nil
	}
	if err != nil {
		return domain.NoCartID, false, fmt.Errorf("cart cache get: %w", err)
	}

	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return domain.NoCartID, false, fmt.Errorf("cart cache decode: %w", err)
	}
	return id, true, nil
}

// Set records the cart ID for the username (expires after the cache TTL).
func (c *CartIDCache) Set(ctx context.Context, username string, cartID int64) error {
	return c.client.Set(ctx, c.key(username), strconv.FormatInt(cartID, 10), c.ttl).Err()
}

func (c *CartIDCache) key(username string) string {
	return "cart:" + username
}
