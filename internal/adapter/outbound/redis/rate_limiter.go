package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/uniedit/anet/internal/port/outbound"
)

const rateLimitKeyPrefix = "anet:ratelimit:"

// rateLimiter implements outbound.RateLimiterPort with one counter per window.
type rateLimiter struct {
	client redis.UniversalClient
	now    func() time.Time
}

// NewRateLimiter creates a new rate limiter adapter.
func NewRateLimiter(client redis.UniversalClient) outbound.RateLimiterPort {
	return &rateLimiter{client: client, now: time.Now}
}

func (r *rateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error) {
	if window <= 0 {
		return true, limit, nil
	}

	// Counters are bucketed by window start so they expire on their own.
	bucket := r.now().UnixNano() / window.Nanoseconds()
	fullKey := fmt.Sprintf("%s%s:%d", rateLimitKeyPrefix, key, bucket)

	count, err := r.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("incr rate counter: %w", err)
	}
	if count == 1 {
		if err := r.client.Expire(ctx, fullKey, window).Err(); err != nil {
			return false, 0, fmt.Errorf("expire rate counter: %w", err)
		}
	}

	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return count <= int64(limit), remaining, nil
}

// Compile-time check
var _ outbound.RateLimiterPort = (*rateLimiter)(nil)
