// Package cache provides byte-level caching for generated scenes and
// rendered artifacts.
//
// # Backends
//
//   - [FileCache]: sharded entry files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// # Keys
//
// A [Keyer] derives keys from the inputs that determine an entry. Scene
// keys depend only on the seed; artifact keys also cover the format, theme
// and size. Keys hash their parts with SHA-256:
//
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(42, cache.ArtifactKeyOpts{Format: "svg", Theme: "dark"})
//
// Wrap a keyer with [NewScopedKeyer] to namespace every key, for example by
// release so a deploy never serves artifacts from an older renderer.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with an optional TTL. A zero TTL means
// the entry never expires.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default TTLs. Scenes and artifacts are pure functions of their keys, so
// the TTLs only bound disk and memory use.
const (
	TTLScene    = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)
