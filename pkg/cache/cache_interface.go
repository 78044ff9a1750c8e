package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer so Redis can be swapped for
// another backend.
type Cache interface {
	// Get unmarshals the cached value into dest.
	// found is false on a miss, in which case dest is untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value (marshalled as JSON unless it is a string or []byte) with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern.
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error
}
