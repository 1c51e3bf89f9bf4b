// Package pipeline provides the complete galaxy build pipeline.
//
// This package implements the worldgen → railgen → validate sequence so
// every entry point shares one code path and one caching scheme.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Worldgen: Place star systems, planets, and civilizations
//  2. Railgen: Grow the rail network and its firing schedules
//  3. Validate: Check the finished galaxy against network invariants
//
// Generation is deterministic, so a finished galaxy is cached under a
// key derived from the seed and every option. Validation always runs on
// the final galaxy, cached or not: findings are part of the result, and
// whether any finding is fatal is the caller's decision.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Seed: 42,
//	    Name: "Perseus Reach",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	galaxy := result.Galaxy
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/spindlespace/spindle/pkg/railgen"
	"github.com/spindlespace/spindle/pkg/universe"
	"github.com/spindlespace/spindle/pkg/validate"
	"github.com/spindlespace/spindle/pkg/worldgen"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Tools
// =============================================================================

const (
	// DefaultSeed is the default generation seed.
	DefaultSeed = uint64(42)

	// DefaultName is the default galaxy name.
	DefaultName = "Unnamed Reach"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the galaxy build pipeline.
// This struct supports JSON serialization so runs can be recorded and
// replayed.
type Options struct {
	// Seed drives every random decision. The same seed with the same
	// options reproduces the galaxy bit for bit.
	Seed uint64 `json:"seed,omitempty"`

	// Name is the human-facing galaxy name.
	Name string `json:"name,omitempty"`

	// World configures star system generation.
	World worldgen.Options `json:"world,omitempty"`

	// Rails configures rail network generation.
	Rails railgen.Policy `json:"rails,omitempty"`

	// SkipOffsets disables hub schedule staggering.
	SkipOffsets bool `json:"skip_offsets,omitempty"`

	// Refresh bypasses the cache and regenerates.
	Refresh bool `json:"refresh,omitempty"`

	// GeneratedAt stamps the galaxy's generation time. Left zero it
	// stays zero, which keeps snapshots reproducible; set it only when
	// provenance matters more than bit-identical output.
	GeneratedAt time.Time `json:"generated_at,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. This method is idempotent - calling it multiple times has the
// same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Name == "" {
		o.Name = DefaultName
	}
	if err := o.World.ValidateAndSetDefaults(); err != nil {
		return fmt.Errorf("world options: %w", err)
	}
	if err := o.Rails.ValidateAndSetDefaults(); err != nil {
		return fmt.Errorf("rail policy: %w", err)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// GalaxyID derives the deterministic galaxy identifier for these options.
func (o *Options) GalaxyID() string {
	return fmt.Sprintf("GAL-%08X", uint32(o.Seed))
}

// =============================================================================
// Result - Pipeline Outputs
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Galaxy is the finished, schedule-optimized galaxy.
	Galaxy *universe.Galaxy

	// SnapshotHash is the content hash of the serialized galaxy.
	SnapshotHash string

	// Validation is the invariant check over the finished galaxy.
	Validation validate.Result

	// Network summarizes the generated rail network.
	Network railgen.NetworkStats

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the galaxy came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics. Stage durations are only
// meaningful on a cache miss; a cached galaxy reports zero generation time.
type Stats struct {
	SystemCount  int
	RailCount    int
	GenerateTime time.Duration
	ValidateTime time.Duration
}

// CacheInfo tracks cache hits for the pipeline.
type CacheInfo struct {
	GalaxyHit bool // Whether the galaxy came from cache
}
