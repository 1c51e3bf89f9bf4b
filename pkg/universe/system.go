package universe

import (
	"maps"
	"slices"
)

// Planet is a major body orbiting a system's star. Planets are value types
// created once by world generation and never mutated afterwards.
type Planet struct {
	ID            string
	Name          string
	Class         PlanetClass
	OrbitalRadius float64 // AU
	Mass          float64 // Earth masses
	Habitability  float64 // 0-1
	Population    int64
	Atmosphere    string
	Resources     map[string]float64 // resource name -> deposit size (tons)
}

// HasLife reports whether the planet hosts a significant biosphere or
// settled population.
func (p Planet) HasLife() bool {
	return p.Population > 0 || p.Habitability > 0.3
}

// System is a star system node in the galaxy. It is immutable after
// creation: derived facts are computed on demand rather than stored.
type System struct {
	ID                string
	Name              string
	Position          Position
	StarType          StarType
	StarMass          float64 // solar masses
	StarAge           float64 // billion years
	Planets           []Planet
	Population        int64 // off-world population (stations, habitats)
	TechLevel         TechTier
	FactionControl    string
	GravitiumDeposits float64 // tons, never negative
	TradeCodes        []string
}

// TotalPopulation returns the system population including all planets.
func (s System) TotalPopulation() int64 {
	total := s.Population
	for _, p := range s.Planets {
		total += p.Population
	}
	return total
}

// HabitableWorlds returns the planets that host life.
func (s System) HabitableWorlds() []Planet {
	var worlds []Planet
	for _, p := range s.Planets {
		if p.HasLife() {
			worlds = append(worlds, p)
		}
	}
	return worlds
}

// ResourceSet returns the sorted set of resource names present on any
// planet in the system. Used by trade volume estimation: systems with
// dissimilar resource sets trade more.
func (s System) ResourceSet() []string {
	set := make(map[string]struct{})
	for _, p := range s.Planets {
		for name := range p.Resources {
			set[name] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}
