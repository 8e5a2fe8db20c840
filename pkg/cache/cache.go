// Package cache stores rendered artifacts keyed by a hash of everything
// that affects their bytes.
//
// Three implementations are provided:
//
//   - [FileCache]: one JSON file per entry under a directory, used by the CLI
//   - [RedisCache]: a shared cache for the HTTP server
//   - [NullCache]: caching disabled
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes the resolved settings,
// rating, text and output options; [ScopedKeyer] prefixes keys so several
// deployments can share one Redis database.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry. A miss is reported through
// the boolean result, not an error.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// NullCache drops every write, so each render runs the full pipeline.
// The CLI uses it for --no-cache and when no cache directory is available.
type NullCache struct{}

// NewNullCache returns a Cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

var (
	_ Cache = NullCache{}
	_ Cache = (*FileCache)(nil)
	_ Cache = (*RedisCache)(nil)
)
