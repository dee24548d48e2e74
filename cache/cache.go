package cache

import (
	"context"
	"time"
)

// Store is a small TTL key-value store used for the duplicate-submission
// guard and one-time login codes. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the value for key and whether it exists and has not expired.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key for ttl.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete removes key if present.
	Delete(ctx context.Context, key string) error
}
