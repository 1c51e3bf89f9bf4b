package universe

import "time"

// RailClass is one of four rail capacity/frequency tiers. Higher classes
// carry more annual tonnage and fire more often.
type RailClass string

// Rail classes, from trunk lines down to frontier spurs.
const (
	RailA RailClass = "RFC-A" // ~1M t/yr, core-core trunk
	RailB RailClass = "RFC-B" // ~50k t/mo, regional
	RailC RailClass = "RFC-C" // ~5k t/day equivalent, frontier
	RailD RailClass = "RFC-D" // ~500 t/day equivalent, frontier spur
)

// railBaseCost is the per-class gravitium cost coefficient in tons.
// Total construction cost scales with the square of rail length.
var railBaseCost = map[RailClass]float64{
	RailA: 1000.0,
	RailB: 500.0,
	RailC: 100.0,
	RailD: 50.0,
}

// GravitiumCost returns the gravitium required to build a rail of the
// given class spanning distance light-years. Cost scales with distance
// squared: holding a longer spindle open is disproportionately expensive.
func GravitiumCost(distance float64, class RailClass) float64 {
	return railBaseCost[class] * distance * distance
}

// ClassForAnnualVolume quantizes an estimated annual trade volume (tons
// per year) into the rail class that can carry it.
func ClassForAnnualVolume(tonsPerYear float64) RailClass {
	switch {
	case tonsPerYear >= 1_000_000:
		return RailA
	case tonsPerYear >= 600_000:
		return RailB
	case tonsPerYear >= 1_800:
		return RailC
	default:
		return RailD
	}
}

// DaysPerYear is the mean length of a year in days, used for all
// capacity and calendar arithmetic.
const DaysPerYear = 365.25

// Day is the length of one day.
const Day = 24 * time.Hour

// Days converts a whole number of days to a duration.
func Days(n int) time.Duration { return time.Duration(n) * Day }

// Rail is a directed, scheduled transport edge between two systems.
// Rails are immutable: "updating" a rail means constructing a new value,
// typically via WithNextFire.
type Rail struct {
	ID               string
	From             string // origin system id
	To               string // destination system id
	Class            RailClass
	Length           float64 // light-years; must match endpoint distance within 1%
	ConstructionDate time.Time
	IntervalDays     int // days between firings
	NextFire         time.Time
	GravitiumCost    float64 // tons
	MaxCapacity      float64 // tons per firing
}

// Interval returns the firing interval as a duration.
func (r Rail) Interval() time.Duration { return Days(r.IntervalDays) }

// AnnualCapacity returns the rail's throughput in tons per year:
// per-firing capacity times firings per year.
func (r Rail) AnnualCapacity() float64 {
	if r.IntervalDays <= 0 {
		return 0
	}
	return r.MaxCapacity * (DaysPerYear / float64(r.IntervalDays))
}

// WithNextFire returns a copy of the rail with a replaced firing anchor.
// The receiver is unchanged.
func (r Rail) WithNextFire(t time.Time) Rail {
	r.NextFire = t
	return r
}

// LengthTolerance is the maximum relative deviation allowed between a
// rail's recorded length and the distance between its endpoints.
const LengthTolerance = 0.01

// LengthConsistent reports whether the rail's recorded length matches the
// actual endpoint distance within LengthTolerance.
func (r Rail) LengthConsistent(from, to System) bool {
	actual := from.Position.DistanceTo(to.Position)
	diff := actual - r.Length
	if diff < 0 {
		diff = -diff
	}
	return diff <= r.Length*LengthTolerance
}
