// Package cache provides pluggable byte caches for expensive pipeline
// stages, plus the key scheme that addresses them.
//
// Generation is deterministic, so a cache entry keyed on the full input
// (seed and options) can be replayed forever: TTLs exist for backends
// with bounded storage, not for correctness.
package cache

import (
	"context"
	"time"
)

// Cache TTLs per entry kind. Entries are replayable from their inputs,
// so these only bound disk and memory growth.
const (
	// TTLGalaxy applies to generated galaxy snapshots.
	TTLGalaxy = 30 * 24 * time.Hour

	// TTLReport applies to all-pairs connectivity reports.
	TTLReport = 7 * 24 * time.Hour
)

// Cache is a byte-oriented cache with optional expiry. Implementations
// must treat a missing key as (nil, false, nil), not an error.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for the pipeline's cacheable stages.
type Keyer interface {
	// GalaxyKey addresses a fully generated galaxy snapshot. The inputs
	// are hashed, so any option change produces a fresh key.
	GalaxyKey(seed uint64, worldOpts, railPolicy any) string

	// ReportKey addresses an all-pairs connectivity report for a galaxy
	// snapshot hash and departure time.
	ReportKey(snapshotHash string, departure time.Time) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GalaxyKey generates a key for galaxy snapshot caching.
func (k *DefaultKeyer) GalaxyKey(seed uint64, worldOpts, railPolicy any) string {
	return hashKey("galaxy", seed, worldOpts, railPolicy)
}

// ReportKey generates a key for connectivity report caching.
func (k *DefaultKeyer) ReportKey(snapshotHash string, departure time.Time) string {
	return hashKey("report", snapshotHash, departure.UTC())
}

// ScopedKeyer wraps a Keyer with a prefix so separate settings or users
// get isolated cache namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// GalaxyKey generates a prefixed key for galaxy snapshot caching.
func (k *ScopedKeyer) GalaxyKey(seed uint64, worldOpts, railPolicy any) string {
	return k.prefix + k.inner.GalaxyKey(seed, worldOpts, railPolicy)
}

// ReportKey generates a prefixed key for connectivity report caching.
func (k *ScopedKeyer) ReportKey(snapshotHash string, departure time.Time) string {
	return k.prefix + k.inner.ReportKey(snapshotHash, departure)
}
