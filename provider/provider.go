// Package provider defines the optional hot tier that a diskcache consults
// before touching the filesystem.
//
// The cache stores the exact envelope bytes it writes to disk, keyed by
// "diskcache:<salt>:<digest>", with the cache TTL. Implementations MUST be
// byte-for-byte transparent: Get returns exactly what Set was given. Values
// that fail the envelope checksum are deleted and treated as misses.
//
// A sweep that deletes an entry file also deletes its hot-tier key, so a
// forced GC empties the tier for every salt it finds on disk.
package provider

import (
	"context"
	"time"
)

// Provider is a minimal byte store with TTLs. Must be safe for concurrent use.
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL. cost is len(value); stores that
	// do not budget by cost ignore it. Returns ok=false when the store
	// rejected the write under pressure.
	Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (ok bool, err error)

	// Del removes a key (best-effort). Missing keys are not an error.
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
