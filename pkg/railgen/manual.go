package railgen

import (
	"fmt"
	"time"

	"github.com/spindlespace/spindle/pkg/universe"
)

// ManualRail instantiates a single rail outside a generation run, for
// extending an existing galaxy by hand. The class follows the estimated
// trade between the endpoints, the same quantization generated rails
// use. A zero intervalDays picks the midpoint of the class range; an
// explicit interval must fall inside it. The first firing lands exactly
// one interval after completion, so hand-added rails carry no hidden
// randomness.
func ManualRail(ids universe.IDSource, from, to universe.System, intervalDays int, completed time.Time) (universe.Rail, error) {
	if from.ID == to.ID {
		return universe.Rail{}, fmt.Errorf("rail endpoints must differ: %s", from.ID)
	}

	class := ClassForPair(from, to)
	bounds := classIntervalDays[class]
	if intervalDays == 0 {
		intervalDays = (bounds[0] + bounds[1]) / 2
	}
	if intervalDays < bounds[0] || intervalDays > bounds[1] {
		return universe.Rail{}, fmt.Errorf("interval %d days outside class %s range [%d, %d]",
			intervalDays, class, bounds[0], bounds[1])
	}

	distance := from.Position.DistanceTo(to.Position)
	return universe.Rail{
		ID:               ids.RailID(),
		From:             from.ID,
		To:               to.ID,
		Class:            class,
		Length:           distance,
		ConstructionDate: completed,
		IntervalDays:     intervalDays,
		NextFire:         completed.Add(universe.Days(intervalDays)),
		GravitiumCost:    universe.GravitiumCost(distance, class),
		MaxCapacity:      classAnnualTonnage[class] / (universe.DaysPerYear / float64(intervalDays)),
	}, nil
}
