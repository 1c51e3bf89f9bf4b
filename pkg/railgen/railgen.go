// Package railgen constructs the galaxy's rail network.
//
// Generation runs in two phases. Spanning construction grows a
// cost-weighted tree outward from the source-vein systems, always taking
// the single cheapest edge from the connected frontier to an unconnected
// system. Redundancy augmentation then gives some singly-connected
// systems a backup link to a nearby neighbor. Every planned edge is
// instantiated into a concrete rail and accepted only if the network
// stays free of closed causal loops; rejected edges are dropped, not
// retried.
//
// A generator is deterministic: the same seed and system set reproduce
// the same rails, attributes, and schedules bit for bit. Randomness comes
// from a seeded PCG stream and identifiers from a seeded ID source, so no
// process-global state leaks in.
package railgen

import (
	"io"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/spindlespace/spindle/pkg/topo"
	"github.com/spindlespace/spindle/pkg/universe"
)

// classIntervalDays is the inclusive range of firing intervals per rail
// class. Trunk lines fire weekly or better; frontier spurs may fire twice
// a year.
var classIntervalDays = map[universe.RailClass][2]int{
	universe.RailA: {1, 7},
	universe.RailB: {7, 30},
	universe.RailC: {30, 180},
	universe.RailD: {180, 365},
}

// classAnnualTonnage is the design throughput per class in tons per year.
// Per-firing capacity is derived from it and the chosen interval.
var classAnnualTonnage = map[universe.RailClass]float64{
	universe.RailA: 1_000_000,
	universe.RailB: 600_000,
	universe.RailC: 1_800,
	universe.RailD: 182.5,
}

// Edge is a planned connection between two systems, carrying the
// spanning cost that selected it.
type Edge struct {
	From string
	To   string
	Cost float64
}

// Result is the outcome of one generation run.
type Result struct {
	// Rails in acceptance order; the order doubles as the build-out
	// calendar since construction dates advance monotonically.
	Rails []universe.Rail

	// SourceVeins lists the seed systems in selection order
	// (descending gravitium deposits).
	SourceVeins []string

	// Rejected lists planned edges dropped because instantiating them
	// would have closed a causal loop.
	Rejected []Edge
}

// Generator builds rail networks. Create one per run with New; a
// generator's random stream advances as it works, so reuse across runs
// would break reproducibility.
type Generator struct {
	policy Policy
	rng    *rand.Rand
	ids    universe.IDSource
	logger *log.Logger
}

// New creates a generator for the given seed and policy.
// A nil logger discards debug output.
func New(seed uint64, policy Policy, logger *log.Logger) (*Generator, error) {
	if err := policy.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Generator{
		policy: policy,
		rng:    rand.New(rand.NewPCG(seed, seed^0xdeadbeef)),
		ids:    universe.NewSeededIDs(seed),
		logger: logger,
	}, nil
}

// SourceVeins returns the ids of systems rich enough in gravitium to
// seed the network, ordered by descending deposits (ties by id). Honors
// the policy's MaxSourceVeins cap.
func (g *Generator) SourceVeins(systems []universe.System) []string {
	var veins []universe.System
	for _, s := range systems {
		if s.GravitiumDeposits >= g.policy.SourceVeinThreshold {
			veins = append(veins, s)
		}
	}
	slices.SortFunc(veins, func(a, b universe.System) int {
		if a.GravitiumDeposits != b.GravitiumDeposits {
			if a.GravitiumDeposits > b.GravitiumDeposits {
				return -1
			}
			return 1
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	if g.policy.MaxSourceVeins > 0 && len(veins) > g.policy.MaxSourceVeins {
		veins = veins[:g.policy.MaxSourceVeins]
	}
	ids := make([]string, len(veins))
	for i, s := range veins {
		ids[i] = s.ID
	}
	return ids
}

// Generate plans and instantiates the full rail network for the given
// system set. The input is never mutated.
//
// Degenerate inputs are valid results, not errors: no source veins means
// an empty network, and systems beyond economic reach are simply left
// off the network.
func (g *Generator) Generate(systems []universe.System) (*Result, error) {
	byID := make(map[string]universe.System, len(systems))
	ids := make([]string, 0, len(systems))
	for _, s := range systems {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}
	slices.Sort(ids)

	veins := g.SourceVeins(systems)
	result := &Result{SourceVeins: veins}
	if len(veins) == 0 {
		g.logger.Debug("no source veins above threshold; empty network",
			"threshold", g.policy.SourceVeinThreshold)
		return result, nil
	}

	planned := g.spanningEdges(byID, ids, veins)
	spanCount := len(planned)
	planned = append(planned, g.redundancyEdges(byID, ids, planned)...)

	g.logger.Debug("planned edges",
		"spanning", spanCount,
		"redundancy", len(planned)-spanCount)

	g.instantiate(byID, planned, result)

	g.logger.Info("generated rail network",
		"systems", len(systems),
		"source_veins", len(veins),
		"rails", len(result.Rails),
		"rejected", len(result.Rejected))
	return result, nil
}

// spanningEdges grows the network from the source veins, one cheapest
// frontier-to-outside edge at a time. The frontier is scanned in join
// order and candidates in sorted-id order, so ties always resolve to the
// first-found edge and the plan is reproducible.
func (g *Generator) spanningEdges(byID map[string]universe.System, sortedIDs, veins []string) []Edge {
	inTree := make(map[string]bool, len(veins))
	treeOrder := make([]string, 0, len(byID))
	for _, v := range veins {
		inTree[v] = true
		treeOrder = append(treeOrder, v)
	}

	var edges []Edge
	for len(treeOrder) < len(byID) {
		var (
			best      Edge
			bestFound bool
		)
		for _, fromID := range treeOrder {
			from := byID[fromID]
			for _, toID := range sortedIDs {
				if inTree[toID] {
					continue
				}
				to := byID[toID]
				cost := SpanningCost(from, to, ClassForPair(from, to))
				if !bestFound || cost < best.Cost {
					best = Edge{From: fromID, To: toID, Cost: cost}
					bestFound = true
				}
			}
		}
		if !bestFound {
			break // nothing reachable remains; partial network
		}
		edges = append(edges, best)
		inTree[best.To] = true
		treeOrder = append(treeOrder, best.To)
	}
	return edges
}

// redundancyEdges plans backup connections for bottleneck systems:
// systems with exactly one planned connection, taken in first-appearance
// order. Each passes a seeded probability gate and then links to its
// nearest neighbor within the policy radius, unless the pair is already
// linked in either direction.
func (g *Generator) redundancyEdges(byID map[string]universe.System, sortedIDs []string, planned []Edge) []Edge {
	counts := make(map[string]int)
	var order []string
	note := func(id string) {
		if _, seen := counts[id]; !seen {
			order = append(order, id)
		}
		counts[id]++
	}
	for _, e := range planned {
		note(e.From)
		note(e.To)
	}

	linked := make(map[[2]string]bool, len(planned))
	for _, e := range planned {
		linked[[2]string{e.From, e.To}] = true
	}
	isLinked := func(a, b string) bool {
		return linked[[2]string{a, b}] || linked[[2]string{b, a}]
	}

	var extra []Edge
	for _, id := range order {
		if counts[id] != 1 {
			continue
		}
		if g.rng.Float64() >= g.policy.RedundancyProbability {
			continue
		}
		bottleneck := byID[id]

		var (
			nearest     string
			nearestDist float64
		)
		for _, otherID := range sortedIDs {
			if otherID == id || isLinked(id, otherID) {
				continue
			}
			dist := bottleneck.Position.DistanceTo(byID[otherID].Position)
			if dist >= g.policy.RedundancyRadius {
				continue
			}
			if nearest == "" || dist < nearestDist {
				nearest, nearestDist = otherID, dist
			}
		}
		if nearest == "" {
			continue
		}

		target := byID[nearest]
		cost := SpanningCost(bottleneck, target, ClassForPair(bottleneck, target))
		extra = append(extra, Edge{From: id, To: nearest, Cost: cost})
		linked[[2]string{id, nearest}] = true
	}
	return extra
}

// instantiate turns planned edges into concrete rails, keeping only those
// that leave the accepted set acyclic. Construction dates advance with
// each accepted rail in proportion to its length, forming the build-out
// calendar.
func (g *Generator) instantiate(byID map[string]universe.System, planned []Edge, result *Result) {
	date := g.policy.ConstructionStart
	for _, e := range planned {
		rail := g.buildRail(byID[e.From], byID[e.To], date)

		candidate := append(slices.Clone(result.Rails), rail)
		if topo.HasCycle(topo.EdgesOf(candidate)) {
			result.Rejected = append(result.Rejected, e)
			g.logger.Debug("rejected rail: would close a causal loop",
				"from", e.From, "to", e.To)
			continue
		}

		result.Rails = append(result.Rails, rail)
		years := int(rail.Length / g.policy.ConstructionRate)
		if years < 1 {
			years = 1
		}
		date = date.Add(time.Duration(float64(years) * universe.DaysPerYear * float64(universe.Day)))
	}
}

// buildRail instantiates one rail: class from estimated trade, interval
// and capacity from class-specific ranges, first firing within one
// interval of completion. The construction cost carries no planning
// penalties; those only steer edge selection.
func (g *Generator) buildRail(from, to universe.System, date time.Time) universe.Rail {
	distance := from.Position.DistanceTo(to.Position)
	class := ClassForPair(from, to)

	bounds := classIntervalDays[class]
	interval := bounds[0] + g.rng.IntN(bounds[1]-bounds[0]+1)
	capacity := classAnnualTonnage[class] / (universe.DaysPerYear / float64(interval))
	nextFire := date.Add(universe.Days(1 + g.rng.IntN(interval)))

	return universe.Rail{
		ID:               g.ids.RailID(),
		From:             from.ID,
		To:               to.ID,
		Class:            class,
		Length:           distance,
		ConstructionDate: date,
		IntervalDays:     interval,
		NextFire:         nextFire,
		GravitiumCost:    universe.GravitiumCost(distance, class),
		MaxCapacity:      capacity,
	}
}
