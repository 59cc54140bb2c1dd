// Package cache provides pluggable storage for computed layouts and rendered
// artifacts.
//
// Every backend implements [Cache], a byte-oriented key/value store with
// per-entry TTL:
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per entry, for CLI usage
//   - [RedisCache]: shared cache for multi-instance servers
//   - [MongoCache]: document store with a TTL index
//
// [Compressed] wraps any backend with snappy block compression.
//
// Keys are produced by a [Keyer] so that every caller derives the same key
// for the same (graph, config) pair. [ScopedKeyer] prefixes keys for
// namespace isolation.
//
// Remote backends wrap transient failures with [Retryable]; callers may use
// [RetryWithBackoff] to retry them.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with expiration.
//
// Get returns (nil, false, nil) on a miss. Implementations must be safe for
// concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default TTLs. Layouts are pure functions of their inputs, so entries only
// expire to bound storage.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// =============================================================================
// Keys
// =============================================================================

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key for a layout of the graph with the given hash.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key for a rendered artifact of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every engine parameter that affects a layout.
type LayoutKeyOpts struct {
	Iterations int      `json:"iterations"`
	KAttract   float64  `json:"k_attract"`
	KRepulse   float64  `json:"k_repulse"`
	KCenter    float64  `json:"k_center"`
	StepSize   float64  `json:"step_size"`
	MaxRadius  *float64 `json:"max_radius,omitempty"`
}

// ArtifactKeyOpts holds every render parameter that affects an artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale"`
}

// DefaultKeyer produces "layout:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
