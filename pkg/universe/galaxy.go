package universe

import (
	"errors"
	"maps"
	"slices"
	"time"
)

var (
	// ErrInvalidID is returned by AddSystem and AddRail when the entity ID
	// is empty. All entities must have non-empty identifiers.
	ErrInvalidID = errors.New("entity ID must not be empty")

	// ErrDuplicateSystemID is returned by AddSystem when a system with the
	// same ID already exists in the galaxy.
	ErrDuplicateSystemID = errors.New("duplicate system ID")

	// ErrDuplicateRailID is returned by AddRail when a rail with the same
	// ID already exists in the galaxy.
	ErrDuplicateRailID = errors.New("duplicate rail ID")
)

// Galaxy is the aggregate of systems and rails produced by one generation
// pass. After assembly it is treated as immutable: queries never modify it,
// and schedule optimization produces a replacement via WithRails rather
// than mutating rails in place.
//
// A Galaxy stores what it is given, including structurally broken rail
// sets (dangling endpoints, duplicate routes). Enforcement is the
// validator's job so that malformed input surfaces as findings instead of
// being silently rejected at assembly time.
type Galaxy struct {
	ID             string
	Name           string
	Seed           uint64
	GenerationTime time.Time

	systems  map[string]System
	rails    map[string]Rail
	outgoing map[string][]string // system id -> outgoing rail ids, insertion order
	sources  []string            // source-vein system ids
}

// NewGalaxy creates an empty galaxy with the given identity.
func NewGalaxy(id, name string, seed uint64, generated time.Time) *Galaxy {
	return &Galaxy{
		ID:             id,
		Name:           name,
		Seed:           seed,
		GenerationTime: generated,
		systems:        make(map[string]System),
		rails:          make(map[string]Rail),
		outgoing:       make(map[string][]string),
	}
}

// AddSystem adds a system to the galaxy.
// Returns ErrInvalidID for an empty ID or ErrDuplicateSystemID if the ID
// is already present.
func (g *Galaxy) AddSystem(s System) error {
	if s.ID == "" {
		return ErrInvalidID
	}
	if _, exists := g.systems[s.ID]; exists {
		return ErrDuplicateSystemID
	}
	g.systems[s.ID] = s
	return nil
}

// AddRail adds a rail and indexes it under its origin system.
// Returns ErrInvalidID for an empty ID or ErrDuplicateRailID if the ID is
// already present. Endpoints are not checked here; a rail naming an
// unknown system is stored and reported by the validator.
func (g *Galaxy) AddRail(r Rail) error {
	if r.ID == "" {
		return ErrInvalidID
	}
	if _, exists := g.rails[r.ID]; exists {
		return ErrDuplicateRailID
	}
	g.rails[r.ID] = r
	g.outgoing[r.From] = append(g.outgoing[r.From], r.ID)
	return nil
}

// SetSourceVeins records which systems seeded the rail network.
func (g *Galaxy) SetSourceVeins(ids []string) { g.sources = slices.Clone(ids) }

// SourceVeins returns the source-vein system ids in selection order.
func (g *Galaxy) SourceVeins() []string { return slices.Clone(g.sources) }

// System returns the system with the given ID and whether it exists.
func (g *Galaxy) System(id string) (System, bool) {
	s, ok := g.systems[id]
	return s, ok
}

// Rail returns the rail with the given ID and whether it exists.
func (g *Galaxy) Rail(id string) (Rail, bool) {
	r, ok := g.rails[id]
	return r, ok
}

// Systems returns all systems sorted by ID for deterministic iteration.
func (g *Galaxy) Systems() []System {
	out := make([]System, 0, len(g.systems))
	for _, id := range slices.Sorted(maps.Keys(g.systems)) {
		out = append(out, g.systems[id])
	}
	return out
}

// Rails returns all rails sorted by ID for deterministic iteration.
func (g *Galaxy) Rails() []Rail {
	out := make([]Rail, 0, len(g.rails))
	for _, id := range slices.Sorted(maps.Keys(g.rails)) {
		out = append(out, g.rails[id])
	}
	return out
}

// SystemCount returns the number of systems.
func (g *Galaxy) SystemCount() int { return len(g.systems) }

// RailCount returns the number of rails.
func (g *Galaxy) RailCount() int { return len(g.rails) }

// RailsFrom returns the rails departing the given system, in the order
// they were added. The adjacency index makes this O(outdegree) instead of
// a whole-graph scan.
func (g *Galaxy) RailsFrom(systemID string) []Rail {
	ids := g.outgoing[systemID]
	rails := make([]Rail, 0, len(ids))
	for _, id := range ids {
		rails = append(rails, g.rails[id])
	}
	return rails
}

// RailBetween returns the rail from one system to another, if one exists.
func (g *Galaxy) RailBetween(from, to string) (Rail, bool) {
	for _, id := range g.outgoing[from] {
		if r := g.rails[id]; r.To == to {
			return r, true
		}
	}
	return Rail{}, false
}

// ConnectedSystems returns the sorted ids of systems touched by at least
// one rail endpoint.
func (g *Galaxy) ConnectedSystems() []string {
	set := make(map[string]struct{})
	for _, r := range g.rails {
		set[r.From] = struct{}{}
		set[r.To] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set))
}

// TotalPopulation returns the population of every system combined.
func (g *Galaxy) TotalPopulation() int64 {
	var total int64
	for _, s := range g.systems {
		total += s.TotalPopulation()
	}
	return total
}

// TotalGravitiumDeposits returns the combined deposits of all systems.
func (g *Galaxy) TotalGravitiumDeposits() float64 {
	var total float64
	for _, s := range g.systems {
		total += s.GravitiumDeposits
	}
	return total
}

// TotalGravitiumCost returns the combined construction cost of all rails.
func (g *Galaxy) TotalGravitiumCost() float64 {
	var total float64
	for _, r := range g.rails {
		total += r.GravitiumCost
	}
	return total
}

// WithRails returns a copy of the galaxy whose rail set is replaced by the
// given rails. Systems, identity, and source veins carry over unchanged;
// the adjacency index is rebuilt. This is the whole-value replacement used
// by schedule offset optimization.
func (g *Galaxy) WithRails(rails []Rail) *Galaxy {
	next := &Galaxy{
		ID:             g.ID,
		Name:           g.Name,
		Seed:           g.Seed,
		GenerationTime: g.GenerationTime,
		systems:        g.systems,
		rails:          make(map[string]Rail, len(rails)),
		outgoing:       make(map[string][]string),
		sources:        slices.Clone(g.sources),
	}
	for _, r := range rails {
		next.rails[r.ID] = r
		next.outgoing[r.From] = append(next.outgoing[r.From], r.ID)
	}
	return next
}
