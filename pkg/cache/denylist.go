package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const denylistKeyPrefix = "token_denylist:"

// DenyToken marks a token as revoked until it would have expired anyway.
func DenyToken(ctx context.Context, client *redis.Client, token string, ttl time.Duration) error {
	return client.Set(ctx, denylistKeyPrefix+token, "1", ttl).Err()
}

// IsTokenDenied reports whether a token was revoked by logout. Errors are
// treated as "not denied" so an unavailable redis does not lock everyone out.
func IsTokenDenied(ctx context.Context, client *redis.Client, token string) bool {
	if client == nil {
		return false
	}
	n, err := client.Exists(ctx, denylistKeyPrefix+token).Result()
	if err != nil {
		return false
	}
	return n > 0
}
