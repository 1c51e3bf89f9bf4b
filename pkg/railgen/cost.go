package railgen

import (
	"math"

	"github.com/spindlespace/spindle/pkg/universe"
)

// Penalty multipliers for endpoints that make construction harder.
// A sub-Rail-Age civilization needs imported engineering (x2 per
// endpoint); a population under the labor floor needs imported workers
// (x1.5 per endpoint).
const (
	techPenalty    = 2.0
	popPenalty     = 1.5
	laborFloor     = 10_000
	minAnnualTrade = 100.0 // tons/year floor for any pair of systems
)

// EstimateAnnualTrade estimates yearly trade volume (tons) between two
// systems: the geometric mean of the two populations scaled down, boosted
// by resource-set dissimilarity (each resource one side has and the other
// lacks adds 10%) and technology gap (each tier of difference adds 20%).
// Never returns less than minAnnualTrade.
func EstimateAnnualTrade(from, to universe.System) float64 {
	volume := math.Sqrt(float64(from.TotalPopulation())*float64(to.TotalPopulation())) / 1000.0

	volume *= 1.0 + float64(symmetricDifference(from.ResourceSet(), to.ResourceSet()))*0.1

	techDiff := int(from.TechLevel) - int(to.TechLevel)
	if techDiff < 0 {
		techDiff = -techDiff
	}
	volume *= 1.0 + float64(techDiff)*0.2

	return math.Max(minAnnualTrade, volume)
}

// ClassForPair picks the rail class that carries the estimated trade
// volume between two systems.
func ClassForPair(from, to universe.System) universe.RailClass {
	return universe.ClassForAnnualVolume(EstimateAnnualTrade(from, to))
}

// SpanningCost is the edge weight used by spanning construction: the
// class-appropriate gravitium cost for the distance, multiplied by the
// tech and labor penalties of each endpoint. This is a planning weight,
// not the rail's eventual construction cost (which carries no penalties).
func SpanningCost(from, to universe.System, class universe.RailClass) float64 {
	cost := universe.GravitiumCost(from.Position.DistanceTo(to.Position), class)

	if !from.TechLevel.CanBuildRails() {
		cost *= techPenalty
	}
	if !to.TechLevel.CanBuildRails() {
		cost *= techPenalty
	}
	if from.TotalPopulation() < laborFloor {
		cost *= popPenalty
	}
	if to.TotalPopulation() < laborFloor {
		cost *= popPenalty
	}
	return cost
}

// symmetricDifference counts elements in exactly one of two sorted
// string sets.
func symmetricDifference(a, b []string) int {
	var count, i, j int
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			i++
			j++
		case a[i] < b[j]:
			count++
			i++
		default:
			count++
			j++
		}
	}
	return count + (len(a) - i) + (len(b) - j)
}
