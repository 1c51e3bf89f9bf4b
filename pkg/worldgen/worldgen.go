// Package worldgen procedurally populates a galaxy with star systems.
//
// Stellar classes follow real population frequencies (most stars are red
// dwarfs), planet properties derive from orbital temperature, and
// civilizations scale with habitability. Like the rest of generation the
// package is deterministic: a seed fully decides the output.
package worldgen

import (
	"io"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/spindlespace/spindle/pkg/universe"
)

// Generator populates galaxies. Create one per run with New.
type Generator struct {
	opts   Options
	rng    *rand.Rand
	ids    universe.IDSource
	logger *log.Logger
}

// New creates a generator for the given seed and options.
// A nil logger discards debug output.
func New(seed uint64, opts Options, logger *log.Logger) (*Generator, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Generator{
		opts:   opts,
		rng:    rand.New(rand.NewPCG(seed, seed^0x5eed)),
		ids:    universe.NewSeededIDs(seed),
		logger: logger,
	}, nil
}

// Generate creates the configured number of star systems. Fewer systems
// may be returned when the disc is too crowded to place them all at the
// minimum spacing.
func (g *Generator) Generate() []universe.System {
	positions := g.positions()
	systems := make([]universe.System, 0, len(positions))
	for _, pos := range positions {
		systems = append(systems, g.system(pos))
	}
	g.logger.Info("generated star systems",
		"requested", g.opts.SystemCount,
		"placed", len(systems))
	return systems
}

// positions scatters systems through a flattened disc by dart throwing:
// random candidates are kept only if they clear the minimum spacing from
// every accepted position. Gives up after 100 attempts per requested
// system, so dense configurations come up short rather than looping.
func (g *Generator) positions() []universe.Position {
	minDistance := g.opts.Radius * g.opts.SpacingFactor
	maxAttempts := g.opts.SystemCount * 100

	var positions []universe.Position
	for attempts := 0; len(positions) < g.opts.SystemCount && attempts < maxAttempts; attempts++ {
		candidate := universe.Position{
			X: uniform(g.rng, -g.opts.Radius, g.opts.Radius),
			Y: uniform(g.rng, -g.opts.Radius, g.opts.Radius),
			Z: uniform(g.rng, -g.opts.Radius*g.opts.Flattening, g.opts.Radius*g.opts.Flattening),
		}

		tooClose := false
		for _, existing := range positions {
			if candidate.DistanceTo(existing) < minDistance {
				tooClose = true
				break
			}
		}
		if !tooClose {
			positions = append(positions, candidate)
		}
	}
	return positions
}

// system generates one complete star system at the given position.
func (g *Generator) system(pos universe.Position) universe.System {
	id := g.ids.SystemID()

	starType := g.starType()
	starMass := g.starMass(starType)
	starAge := g.starAge(starType)

	count := g.planetCount(starType)
	planets := make([]universe.Planet, 0, count)
	var planetPop int64
	for i := 0; i < count; i++ {
		// Orbits follow a rough Titius-Bode spacing with jitter.
		orbit := 0.3*math.Pow(1.5, float64(i)) + uniform(g.rng, -0.1, 0.1)
		p := g.planet(id, i, orbit, starMass)
		planetPop += p.Population
		planets = append(planets, p)
	}

	stationPop := g.stationPopulation(planetPop)
	tech := g.techLevel(stationPop + planetPop)

	var deposits float64
	for _, p := range planets {
		deposits += p.Resources["gravitium"]
	}
	// Rarely a system holds a major vein beyond its planets' deposits.
	if g.rng.Float64() < 0.02 {
		deposits += uniform(g.rng, 100.0, 5000.0)
	}

	s := universe.System{
		ID:                id,
		Name:              g.opts.NamePrefix + " " + strings.TrimPrefix(id, "SYS-"),
		Position:          pos,
		StarType:          starType,
		StarMass:          starMass,
		StarAge:           starAge,
		Planets:           planets,
		Population:        stationPop,
		TechLevel:         tech,
		FactionControl:    g.factionControl(stationPop+planetPop, tech),
		GravitiumDeposits: deposits,
	}
	s.TradeCodes = tradeCodes(s)
	return s
}

// starType draws a stellar class from real population frequencies: 76%
// red dwarfs down to one O star in two thousand.
func (g *Generator) starType() universe.StarType {
	draw := g.rng.Float64()
	switch {
	case draw < 0.76:
		return universe.StarM
	case draw < 0.88:
		return universe.StarK
	case draw < 0.96:
		return universe.StarG
	case draw < 0.99:
		return universe.StarF
	case draw < 0.995:
		return universe.StarA
	case draw < 0.9995:
		return universe.StarB
	default:
		return universe.StarO
	}
}

var starMassRanges = map[universe.StarType][2]float64{
	universe.StarM: {0.08, 0.5},
	universe.StarK: {0.5, 0.8},
	universe.StarG: {0.8, 1.2},
	universe.StarF: {1.2, 1.6},
	universe.StarA: {1.6, 2.5},
	universe.StarB: {2.5, 16.0},
	universe.StarO: {16.0, 90.0},
}

func (g *Generator) starMass(t universe.StarType) float64 {
	bounds, ok := starMassRanges[t]
	if !ok {
		bounds = [2]float64{0.5, 2.0}
	}
	return uniform(g.rng, bounds[0], bounds[1])
}

// starAge draws an age in billions of years; long-lived classes skew old.
func (g *Generator) starAge(t universe.StarType) float64 {
	switch t {
	case universe.StarM, universe.StarK:
		return uniform(g.rng, 1.0, 12.0)
	case universe.StarG:
		return uniform(g.rng, 1.0, 10.0)
	case universe.StarF:
		return uniform(g.rng, 0.5, 4.0)
	case universe.StarA:
		return uniform(g.rng, 0.1, 1.0)
	default:
		return uniform(g.rng, 0.01, 0.5)
	}
}

func (g *Generator) planetCount(t universe.StarType) int {
	switch t {
	case universe.StarM, universe.StarK:
		return weighted(g.rng, []int{0, 1, 2, 3, 4, 5}, []int{5, 15, 25, 30, 20, 5})
	case universe.StarG:
		return weighted(g.rng, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, []int{2, 8, 15, 20, 25, 15, 10, 3, 2})
	case universe.StarF:
		return weighted(g.rng, []int{0, 1, 2, 3, 4, 5, 6}, []int{5, 10, 20, 25, 25, 10, 5})
	default:
		return weighted(g.rng, []int{0, 1, 2, 3, 4}, []int{20, 30, 25, 15, 10})
	}
}

func (g *Generator) planet(systemID string, index int, orbit, starMass float64) universe.Planet {
	class := g.planetClass(orbit, starMass)
	mass := g.planetMass(class)
	hab := g.habitability(orbit, starMass, class)

	letter := string(rune('A' + index))
	return universe.Planet{
		ID:            systemID + "-" + letter,
		Name:          "Planet " + letter,
		Class:         class,
		OrbitalRadius: orbit,
		Mass:          mass,
		Habitability:  hab,
		Population:    g.population(hab),
		Atmosphere:    g.atmosphere(class, mass),
		Resources:     g.resources(class),
	}
}

// planetClass picks a class from the planet's equilibrium temperature,
// derived from stellar luminosity and orbital distance.
func (g *Generator) planetClass(orbit, starMass float64) universe.PlanetClass {
	temp := math.Sqrt(luminosity(starMass) / (16 * math.Pi * orbit * orbit))

	switch {
	case temp > 2.0:
		return weighted(g.rng,
			[]universe.PlanetClass{universe.PlanetDesert, universe.PlanetTerrestrial},
			[]int{70, 30})
	case temp > 1.5:
		return weighted(g.rng,
			[]universe.PlanetClass{universe.PlanetTerrestrial, universe.PlanetDesert},
			[]int{60, 40})
	case temp > 0.5:
		if orbit > 3.0 {
			return weighted(g.rng,
				[]universe.PlanetClass{universe.PlanetGasGiant, universe.PlanetIceGiant},
				[]int{60, 40})
		}
		return weighted(g.rng,
			[]universe.PlanetClass{universe.PlanetTerrestrial, universe.PlanetOcean, universe.PlanetDesert},
			[]int{50, 30, 20})
	default:
		if orbit > 5.0 {
			return weighted(g.rng,
				[]universe.PlanetClass{universe.PlanetGasGiant, universe.PlanetIceGiant},
				[]int{40, 60})
		}
		return weighted(g.rng,
			[]universe.PlanetClass{universe.PlanetIce, universe.PlanetTerrestrial},
			[]int{70, 30})
	}
}

// luminosity approximates the mass-luminosity relation in solar units.
func luminosity(starMass float64) float64 {
	switch {
	case starMass < 0.43:
		return 0.23 * math.Pow(starMass, 2.3)
	case starMass < 2.0:
		return math.Pow(starMass, 4)
	default:
		return 1.4 * math.Pow(starMass, 3.5)
	}
}

var planetMassRanges = map[universe.PlanetClass][2]float64{
	universe.PlanetTerrestrial: {0.1, 5.0},
	universe.PlanetOcean:       {0.5, 3.0},
	universe.PlanetDesert:      {0.2, 2.0},
	universe.PlanetIce:         {0.1, 2.0},
	universe.PlanetGasGiant:    {50.0, 500.0},
	universe.PlanetIceGiant:    {10.0, 50.0},
	universe.PlanetAsteroid:    {0.001, 0.1},
}

func (g *Generator) planetMass(class universe.PlanetClass) float64 {
	bounds, ok := planetMassRanges[class]
	if !ok {
		bounds = [2]float64{0.1, 5.0}
	}
	return uniform(g.rng, bounds[0], bounds[1])
}

var habitabilityModifiers = map[universe.PlanetClass]float64{
	universe.PlanetTerrestrial: 1.0,
	universe.PlanetOcean:       1.2,
	universe.PlanetDesert:      0.3,
	universe.PlanetIce:         0.2,
	universe.PlanetAsteroid:    0.0,
}

// habitability scores a planet in [0, 1] from its position relative to
// the star's habitable zone, scaled by planet class. Giants score zero.
func (g *Generator) habitability(orbit, starMass float64, class universe.PlanetClass) float64 {
	if class == universe.PlanetGasGiant || class == universe.PlanetIceGiant {
		return 0.0
	}

	lum := luminosity(starMass)
	innerHZ := math.Sqrt(lum / 1.1)
	outerHZ := math.Sqrt(lum / 0.53)

	base := 1.0
	switch {
	case orbit < innerHZ:
		base = math.Max(0.0, 1.0-(innerHZ-orbit)/innerHZ)
	case orbit > outerHZ:
		base = math.Max(0.0, 1.0-(orbit-outerHZ)/outerHZ)
	}

	modifier, ok := habitabilityModifiers[class]
	if !ok {
		modifier = 0.5
	}
	return math.Min(1.0, base*modifier)
}

// population settles a planet by habitability band. Even pleasant worlds
// stay empty 30% of the time; colonization is not exhaustive.
func (g *Generator) population(hab float64) int64 {
	if hab < 0.1 {
		return 0
	}

	var pop int64
	switch {
	case hab > 0.8:
		pop = uniformInt(g.rng, 1_000_000, 10_000_000_000)
	case hab > 0.6:
		pop = uniformInt(g.rng, 100_000, 1_000_000_000)
	case hab > 0.4:
		pop = uniformInt(g.rng, 10_000, 100_000_000)
	case hab > 0.2:
		pop = uniformInt(g.rng, 1_000, 10_000_000)
	default:
		pop = uniformInt(g.rng, 100, 1_000_000)
	}

	if g.rng.Float64() < 0.3 {
		return 0
	}
	return pop
}

var terrestrialAtmospheres = []string{
	"nitrogen/oxygen", "carbon dioxide", "nitrogen/methane", "noble gases",
}

func (g *Generator) atmosphere(class universe.PlanetClass, mass float64) string {
	switch {
	case class == universe.PlanetGasGiant || class == universe.PlanetIceGiant:
		return "dense hydrogen/helium"
	case class == universe.PlanetAsteroid, mass < 0.1:
		return "none"
	case mass < 0.5:
		return "thin"
	}
	switch class {
	case universe.PlanetTerrestrial:
		return terrestrialAtmospheres[g.rng.IntN(len(terrestrialAtmospheres))]
	case universe.PlanetOcean:
		return "nitrogen/oxygen/water vapor"
	case universe.PlanetDesert:
		return "carbon dioxide/nitrogen"
	case universe.PlanetIce:
		return "thin carbon dioxide"
	default:
		return "unknown"
	}
}

// resources assigns deposits by planet class. Gravitium is the rare one:
// a 5% chance regardless of class, 10 to 1000 tons when present.
func (g *Generator) resources(class universe.PlanetClass) map[string]float64 {
	resources := make(map[string]float64)

	if g.rng.Float64() < 0.05 {
		resources["gravitium"] = uniform(g.rng, 10.0, 1000.0)
	}

	switch class {
	case universe.PlanetTerrestrial:
		resources["metals"] = uniform(g.rng, 0.1, 5.0)
		resources["rare_earth"] = uniform(g.rng, 0.01, 1.0)
	case universe.PlanetAsteroid:
		resources["metals"] = uniform(g.rng, 5.0, 50.0)
		resources["rare_earth"] = uniform(g.rng, 1.0, 10.0)
	case universe.PlanetGasGiant:
		resources["hydrogen"] = uniform(g.rng, 100.0, 1000.0)
		resources["helium"] = uniform(g.rng, 10.0, 100.0)
	case universe.PlanetIce:
		resources["water"] = uniform(g.rng, 10.0, 100.0)
	}
	return resources
}

// stationPopulation adds off-world habitats proportional to the settled
// planetary population.
func (g *Generator) stationPopulation(planetPop int64) int64 {
	switch {
	case planetPop > 1_000_000_000:
		return uniformInt(g.rng, 10_000_000, 100_000_000)
	case planetPop > 10_000_000:
		return uniformInt(g.rng, 100_000, 10_000_000)
	case planetPop > 100_000:
		return uniformInt(g.rng, 1_000, 100_000)
	default:
		return 0
	}
}

// techLevel maps total population to a development tier. Only the most
// populous systems have a shot at rail-age engineering or beyond.
func (g *Generator) techLevel(totalPop int64) universe.TechTier {
	switch {
	case totalPop < 1_000:
		return universe.TierPrimitive
	case totalPop < 100_000:
		return universe.TierIndustrial
	case totalPop < 10_000_000:
		return universe.TierNuclear
	case totalPop < 1_000_000_000:
		return universe.TierFusion
	case totalPop < 10_000_000_000:
		return universe.TierAntimatter
	default:
		return weighted(g.rng,
			[]universe.TechTier{universe.TierAntimatter, universe.TierRailAge, universe.TierSingularity},
			[]int{70, 25, 5})
	}
}

var (
	railAgeFactions = []string{
		"Terran Federation", "Fissari Coalition", "Independent Worlds",
		"Corporate Syndicate", "Outer Rim Alliance",
	}
	localFactions = []string{
		"independent", "local government", "corporate", "tribal",
	}
)

func (g *Generator) factionControl(totalPop int64, tech universe.TechTier) string {
	switch {
	case totalPop < 10_000:
		return "independent"
	case tech.CanBuildRails():
		return railAgeFactions[g.rng.IntN(len(railAgeFactions))]
	default:
		return localFactions[g.rng.IntN(len(localFactions))]
	}
}

// tradeCodes derives the two-letter trade classification codes used on
// charts: population extremes, notable resources, habitability, and tech.
func tradeCodes(s universe.System) []string {
	var codes []string

	total := s.TotalPopulation()
	if total > 1_000_000_000 {
		codes = append(codes, "Hi")
	} else if total < 1_000 {
		codes = append(codes, "Lo")
	}

	var hasMetals, hasWater, hasGravitium bool
	for _, p := range s.Planets {
		if _, ok := p.Resources["metals"]; ok {
			hasMetals = true
		}
		if _, ok := p.Resources["water"]; ok {
			hasWater = true
		}
		if _, ok := p.Resources["gravitium"]; ok {
			hasGravitium = true
		}
	}
	if hasMetals {
		codes = append(codes, "In")
	}
	if hasWater {
		codes = append(codes, "Wa")
	}
	if hasGravitium {
		codes = append(codes, "Gv")
	}

	switch habitable := len(s.HabitableWorlds()); {
	case habitable == 0:
		codes = append(codes, "Ba")
	case habitable >= 3:
		codes = append(codes, "Ga")
	}

	switch {
	case s.TechLevel == universe.TierRailAge:
		codes = append(codes, "Ht")
	case s.TechLevel >= universe.TierSingularity:
		codes = append(codes, "TL")
	}
	return codes
}
