// Package pkg provides the core libraries for Spindle galaxy generation.
//
// # Overview
//
// Spindle builds galaxy-scale settings around interstellar rail networks:
// star systems with planets and civilizations, joined by directed rails
// whose firing timetables never close a causal loop. The pkg directory is
// organized into these areas:
//
//  1. [universe] - Domain types (systems, rails, galaxies, schedules)
//  2. [worldgen] / [railgen] - Procedural generation of systems and rails
//  3. [topo] / [validate] - Cycle detection and invariant checking
//  4. [timetable] - Firing schedules, journey planning, connectivity
//  5. [snapshot] / [cache] / [config] - Persistence and infrastructure
//  6. [pipeline] - Orchestration (worldgen → railgen → validate)
//  7. [render] - Rail map visualization (DOT/SVG)
//
// # Architecture
//
// The typical data flow through Spindle:
//
//	Seed + Options
//	         ↓
//	    [worldgen] package (place star systems)
//	         ↓
//	    [railgen] package (grow the rail network)
//	         ↓
//	    [validate] package (check network invariants)
//	         ↓
//	    Snapshot / rail map / timetable output
//
// # Quick Start
//
// Generate a galaxy and plan a journey:
//
//	import (
//	    "context"
//	    "github.com/spindlespace/spindle/pkg/pipeline"
//	    "github.com/spindlespace/spindle/pkg/timetable"
//	)
//
//	// 1. Build the galaxy
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Seed: 42,
//	    Name: "Perseus Reach",
//	})
//
//	// 2. Plan a journey
//	journey, ok := timetable.PlanJourney(result.Galaxy, "SYS-AB12CD34", "SYS-9876FEDC",
//	    result.Galaxy.GenerationTime)
//
// Determinism is the load-bearing property: the same seed with the same
// options reproduces the galaxy bit for bit, so snapshots can be cached,
// shared, and regenerated on demand.
package pkg
