// Package cache stores computed layouts so repeated runs over the same
// records skip the layout engine.
//
// Backends implement [Cache]: [FileCache] for the CLI, [RedisCache] for the
// API server and [NullCache] when caching is disabled. Keys come from a
// [Keyer]; [DefaultKeyer] hashes the canonical record JSON together with
// every option that changes the result.
//
// Cache errors are advisory. Callers log them and carry on computing.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored bytes and true, or nil and false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the backend.
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}
