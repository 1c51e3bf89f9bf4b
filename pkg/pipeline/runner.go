package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/spindlespace/spindle/pkg/cache"
	"github.com/spindlespace/spindle/pkg/observability"
	"github.com/spindlespace/spindle/pkg/railgen"
	"github.com/spindlespace/spindle/pkg/snapshot"
	"github.com/spindlespace/spindle/pkg/timetable"
	"github.com/spindlespace/spindle/pkg/universe"
	"github.com/spindlespace/spindle/pkg/validate"
	"github.com/spindlespace/spindle/pkg/worldgen"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete worldgen → railgen → validate pipeline with
// caching. Validation always runs, even on a cached galaxy, and its
// findings never abort the run: a broken galaxy with findings is a valid
// result.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	generateStart := time.Now()
	galaxy, hit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	result := &Result{
		Galaxy:  galaxy,
		Network: railgen.Stats(galaxy),
		CacheInfo: CacheInfo{
			GalaxyHit: hit,
		},
	}
	result.Stats.SystemCount = galaxy.SystemCount()
	result.Stats.RailCount = galaxy.RailCount()
	if !hit {
		result.Stats.GenerateTime = time.Since(generateStart)
	}

	if data, err := snapshot.Marshal(galaxy); err == nil {
		result.SnapshotHash = cache.Hash(data)
	}

	validateStart := time.Now()
	result.Validation = validate.Galaxy(galaxy)
	result.Stats.ValidateTime = time.Since(validateStart)
	observability.Pipeline().OnValidateComplete(ctx, len(result.Validation.Findings), result.Stats.ValidateTime)

	r.Logger.Info("pipeline complete",
		"galaxy", galaxy.ID,
		"systems", result.Stats.SystemCount,
		"rails", result.Stats.RailCount,
		"valid", result.Validation.Valid,
		"findings", len(result.Validation.Findings),
		"cached", hit)
	return result, nil
}

// GenerateWithCacheInfo builds the galaxy with caching and reports
// whether it came from cache.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (*universe.Galaxy, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.GalaxyKey(opts.Seed, opts.World, opts.Rails)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if g, err := snapshot.Read(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, "galaxy")
				return g, true, nil // Cache hit
			}
			// Corrupt entry: fall through and regenerate.
		}
	}
	observability.Cache().OnCacheMiss(ctx, "galaxy")

	galaxy, err := r.generate(ctx, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := snapshot.Marshal(galaxy); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLGalaxy)
		observability.Cache().OnCacheSet(ctx, "galaxy", len(data))
	}
	return galaxy, false, nil // Cache miss
}

// Generate is a convenience wrapper that calls GenerateWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Generate(ctx context.Context, opts Options) (*universe.Galaxy, error) {
	g, _, err := r.GenerateWithCacheInfo(ctx, opts)
	return g, err
}

// generate runs the uncached worldgen → railgen → offsets sequence.
func (r *Runner) generate(ctx context.Context, opts Options) (*universe.Galaxy, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 1: star systems.
	worldStart := time.Now()
	observability.Pipeline().OnWorldgenStart(ctx, opts.Seed, opts.World.SystemCount)
	worlds, err := worldgen.New(opts.Seed, opts.World, opts.Logger)
	if err != nil {
		observability.Pipeline().OnWorldgenComplete(ctx, opts.Seed, 0, time.Since(worldStart), err)
		return nil, fmt.Errorf("worldgen: %w", err)
	}
	systems := worlds.Generate()
	observability.Pipeline().OnWorldgenComplete(ctx, opts.Seed, len(systems), time.Since(worldStart), nil)
	r.Logger.Info("placed star systems",
		"count", len(systems),
		"duration", time.Since(worldStart))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: rail network.
	railStart := time.Now()
	observability.Pipeline().OnRailgenStart(ctx, opts.Seed, len(systems))
	rails, err := railgen.New(opts.Seed, opts.Rails, opts.Logger)
	if err != nil {
		observability.Pipeline().OnRailgenComplete(ctx, opts.Seed, 0, 0, time.Since(railStart), err)
		return nil, fmt.Errorf("railgen: %w", err)
	}
	network, err := rails.Generate(systems)
	if err != nil {
		observability.Pipeline().OnRailgenComplete(ctx, opts.Seed, 0, 0, time.Since(railStart), err)
		return nil, fmt.Errorf("railgen: %w", err)
	}
	observability.Pipeline().OnRailgenComplete(ctx, opts.Seed, len(network.Rails), len(network.Rejected), time.Since(railStart), nil)

	built := network.Rails
	if !opts.SkipOffsets {
		built = railgen.OptimizeOffsets(built, opts.Rails.OffsetEpoch)
	}
	r.Logger.Info("built rail network",
		"rails", len(built),
		"rejected", len(network.Rejected),
		"duration", time.Since(railStart))

	// Assemble.
	galaxy := universe.NewGalaxy(opts.GalaxyID(), opts.Name, opts.Seed, opts.GeneratedAt)
	for _, s := range systems {
		if err := galaxy.AddSystem(s); err != nil {
			return nil, fmt.Errorf("assemble system %s: %w", s.ID, err)
		}
	}
	for _, rail := range built {
		if err := galaxy.AddRail(rail); err != nil {
			return nil, fmt.Errorf("assemble rail %s: %w", rail.ID, err)
		}
	}
	galaxy.SetSourceVeins(network.SourceVeins)
	return galaxy, nil
}

// Report runs the all-pairs connectivity survey for a galaxy with
// caching. The snapshot hash keys the cache entry, so a changed galaxy
// never serves a stale report.
func (r *Runner) Report(ctx context.Context, galaxy *universe.Galaxy, departure time.Time) (*timetable.Report, error) {
	data, err := snapshot.Marshal(galaxy)
	if err != nil {
		return nil, fmt.Errorf("hash galaxy: %w", err)
	}
	cacheKey := r.Keyer.ReportKey(cache.Hash(data), departure)

	if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		var report timetable.Report
		if err := json.Unmarshal(cached, &report); err == nil {
			return &report, nil
		}
	}

	report, err := timetable.AllPairs(ctx, galaxy, departure)
	if err != nil {
		return nil, err
	}
	if encoded, err := json.Marshal(report); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, encoded, cache.TTLReport)
	}
	return report, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
