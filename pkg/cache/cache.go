// Package cache provides the storage used by the CLI to reuse layout
// snapshots and rendered artifacts between runs.
//
// # Backends
//
// [FileCache] stores entries as JSON files below a directory, sharded by
// key hash. [NullCache] never stores anything and is used when caching is
// disabled. [Observed] wraps any backend and reports hits, misses and writes
// to [observability.CacheHooks].
//
// # Keys
//
// A [Keyer] derives keys from content hashes: a snapshot key from the hash
// of a run configuration, an artifact key from the hash of a snapshot plus
// render options. [ScopedKeyer] prefixes every key, which keeps caches of
// different tool versions apart.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default lifetimes of cached entries.
const (
	TTLSnapshot = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
