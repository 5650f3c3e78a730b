// Package cache stores derived scan artifacts: serialized trees, layouts,
// and rendered output. Entries are strictly a recomputation shortcut — a
// cache wipe never loses data, the next scan rebuilds everything.
package cache

import (
	"context"
	"time"
)

// TTLs per artifact class. Trees go stale with the filesystem, so they
// expire quickly; layouts and rendered artifacts are pure functions of their
// inputs and can live longer.
const (
	TTLTree     = 5 * time.Minute
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A non-positive TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
