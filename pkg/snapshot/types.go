package snapshot

import (
	"fmt"
	"time"

	"github.com/spindlespace/spindle/pkg/universe"
)

// =============================================================================
// Snapshot - Galaxy Serialization Format
// =============================================================================

// Galaxy is the canonical serialization format for a generated galaxy.
// Used for files, caching, and cross-tool compatibility.
//
// The format is human-readable and designed for round-trip fidelity:
// generate → save → load produces an identical galaxy. Timestamps are
// RFC 3339 in UTC.
type Galaxy struct {
	ID             string    `json:"id" bson:"id"`
	Name           string    `json:"name" bson:"name"`
	Seed           uint64    `json:"seed" bson:"seed"`
	GenerationTime time.Time `json:"generation_time" bson:"generation_time"`
	SourceVeins    []string  `json:"source_veins,omitempty" bson:"source_veins,omitempty"`
	Systems        []System  `json:"systems" bson:"systems"`
	Rails          []Rail    `json:"rails" bson:"rails"`
}

// System is the serialized form of a star system.
type System struct {
	ID                string             `json:"id" bson:"id"`
	Name              string             `json:"name" bson:"name"`
	Position          universe.Position  `json:"position" bson:"position"`
	StarType          universe.StarType  `json:"star_type" bson:"star_type"`
	StarMass          float64            `json:"star_mass,omitempty" bson:"star_mass,omitempty"`
	StarAge           float64            `json:"star_age,omitempty" bson:"star_age,omitempty"`
	Planets           []Planet           `json:"planets,omitempty" bson:"planets,omitempty"`
	Population        int64              `json:"population,omitempty" bson:"population,omitempty"`
	TechLevel         universe.TechTier  `json:"tech_level" bson:"tech_level"`
	FactionControl    string             `json:"faction_control,omitempty" bson:"faction_control,omitempty"`
	GravitiumDeposits float64            `json:"gravitium_deposits,omitempty" bson:"gravitium_deposits,omitempty"`
	TradeCodes        []string           `json:"trade_codes,omitempty" bson:"trade_codes,omitempty"`
}

// Planet is the serialized form of a planet.
type Planet struct {
	ID            string                 `json:"id" bson:"id"`
	Name          string                 `json:"name" bson:"name"`
	Class         universe.PlanetClass   `json:"class" bson:"class"`
	OrbitalRadius float64                `json:"orbital_radius,omitempty" bson:"orbital_radius,omitempty"`
	Mass          float64                `json:"mass,omitempty" bson:"mass,omitempty"`
	Habitability  float64                `json:"habitability,omitempty" bson:"habitability,omitempty"`
	Population    int64                  `json:"population,omitempty" bson:"population,omitempty"`
	Atmosphere    string                 `json:"atmosphere,omitempty" bson:"atmosphere,omitempty"`
	Resources     map[string]float64     `json:"resources,omitempty" bson:"resources,omitempty"`
}

// Rail is the serialized form of a rail.
type Rail struct {
	ID               string             `json:"id" bson:"id"`
	From             string             `json:"from" bson:"from"`
	To               string             `json:"to" bson:"to"`
	Class            universe.RailClass `json:"class" bson:"class"`
	Length           float64            `json:"length" bson:"length"`
	ConstructionDate time.Time          `json:"construction_date" bson:"construction_date"`
	IntervalDays     int                `json:"interval_days" bson:"interval_days"`
	NextFire         time.Time          `json:"next_fire" bson:"next_fire"`
	GravitiumCost    float64            `json:"gravitium_cost" bson:"gravitium_cost"`
	MaxCapacity      float64            `json:"max_capacity" bson:"max_capacity"`
}

// =============================================================================
// Galaxy ↔ Snapshot Conversion
// =============================================================================

// FromGalaxy converts a galaxy to its serialization format.
// Systems and rails are sorted by ID for deterministic output.
func FromGalaxy(g *universe.Galaxy) Galaxy {
	out := Galaxy{
		ID:             g.ID,
		Name:           g.Name,
		Seed:           g.Seed,
		GenerationTime: g.GenerationTime.UTC(),
		SourceVeins:    g.SourceVeins(),
	}
	for _, s := range g.Systems() {
		out.Systems = append(out.Systems, fromSystem(s))
	}
	for _, r := range g.Rails() {
		out.Rails = append(out.Rails, Rail(r))
	}
	return out
}

// ToGalaxy rebuilds a galaxy from its serialized form. Duplicate or
// empty ids fail with the assembly errors of the underlying model.
func ToGalaxy(doc Galaxy) (*universe.Galaxy, error) {
	g := universe.NewGalaxy(doc.ID, doc.Name, doc.Seed, doc.GenerationTime)
	for _, s := range doc.Systems {
		if err := g.AddSystem(toSystem(s)); err != nil {
			return nil, fmt.Errorf("system %s: %w", s.ID, err)
		}
	}
	for _, r := range doc.Rails {
		if err := g.AddRail(universe.Rail(r)); err != nil {
			return nil, fmt.Errorf("rail %s: %w", r.ID, err)
		}
	}
	g.SetSourceVeins(doc.SourceVeins)
	return g, nil
}

func fromSystem(s universe.System) System {
	out := System{
		ID:                s.ID,
		Name:              s.Name,
		Position:          s.Position,
		StarType:          s.StarType,
		StarMass:          s.StarMass,
		StarAge:           s.StarAge,
		Population:        s.Population,
		TechLevel:         s.TechLevel,
		FactionControl:    s.FactionControl,
		GravitiumDeposits: s.GravitiumDeposits,
		TradeCodes:        s.TradeCodes,
	}
	for _, p := range s.Planets {
		out.Planets = append(out.Planets, Planet(p))
	}
	return out
}

func toSystem(s System) universe.System {
	out := universe.System{
		ID:                s.ID,
		Name:              s.Name,
		Position:          s.Position,
		StarType:          s.StarType,
		StarMass:          s.StarMass,
		StarAge:           s.StarAge,
		Population:        s.Population,
		TechLevel:         s.TechLevel,
		FactionControl:    s.FactionControl,
		GravitiumDeposits: s.GravitiumDeposits,
		TradeCodes:        s.TradeCodes,
	}
	for _, p := range s.Planets {
		out.Planets = append(out.Planets, universe.Planet(p))
	}
	return out
}
