package outbound

import (
	"context"
	"time"
)

// RateLimiterPort counts API calls per key over a fixed window.
type RateLimiterPort interface {
	// Allow records one call and reports whether it fits within limit, along
	// with the calls left in the current window.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (allowed bool, remaining int, err error)
}

// IdempotencyStorePort keeps recorded responses for replayed mutating calls.
type IdempotencyStorePort interface {
	// Lock claims key for ttl. It returns false when another request holds it.
	Lock(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Unlock releases a claim taken by Lock.
	Unlock(ctx context.Context, key string) error

	// Get returns the recorded response, or nil when there is none.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put records a response for ttl.
	Put(ctx context.Context, key string, data []byte, ttl time.Duration) error
}
