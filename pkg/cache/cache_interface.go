package cache

import (
	"context"
	"time"
)

// Cache is the contract of the cache layer.
// Implementations: Redis (infrastructure/cache), in-memory fakes in tests.
type Cache interface {
	// Get loads a value and unmarshals it into dest.
	// found = false on a cache miss, dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value with a TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Incr atomically increments an integer counter, creating it at 1.
	// The counter is readable with Get into an int64.
	Incr(ctx context.Context, key string) (int64, error)

	// Delete removes keys
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern (e.g. "movies:list:*")
	DeletePattern(ctx context.Context, pattern string) error

	// Ping checks the connection
	Ping(ctx context.Context) error
}
