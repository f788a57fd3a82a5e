// Package cache stores computed timelines and rendered artifacts.
//
// All backends implement [Cache], a byte-oriented key/value store with
// optional expiry. [Keyer] derives stable keys from a scene hash and the
// options that influence the cached value, so that changing any option
// produces a different key.
//
// Backends:
//
//   - [NullCache]: never stores anything (--no-cache)
//   - [FileCache]: sharded JSON files under the user cache directory
//   - [RedisCache]: a Redis server, expiry handled by Redis
//   - [MongoCache]: a MongoDB collection with a TTL index
//
// Use [Open] to construct a backend from [Options].
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store for serialized results.
type Cache interface {
	// Get returns the stored bytes and true, or false on a miss. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases any connections held by the backend.
	Close() error
}

// Default TTLs for cached values.
const (
	TimelineTTL = 7 * 24 * time.Hour
	ArtifactTTL = 24 * time.Hour
)
