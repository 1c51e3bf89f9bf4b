package railgen

import (
	"slices"
	"strings"
	"time"

	"github.com/spindlespace/spindle/pkg/universe"
)

// OptimizeOffsets staggers the first firings of rails sharing an origin
// so a hub's departures spread across time instead of clustering. Rails
// are grouped by origin system; within each group of two or more they are
// ordered by ascending interval (ties by id) and rail i's next firing
// becomes
//
//	epoch + ⌊interval_i * i / n⌋ days
//
// where n is the group size. Offsets are whole days; firings stay on
// the calendar grid. Singleton origins keep their firings as built. The
// input slice is not modified; the returned slice preserves the input
// order.
func OptimizeOffsets(rails []universe.Rail, epoch time.Time) []universe.Rail {
	byOrigin := make(map[string][]int)
	var origins []string
	for i, r := range rails {
		if _, seen := byOrigin[r.From]; !seen {
			origins = append(origins, r.From)
		}
		byOrigin[r.From] = append(byOrigin[r.From], i)
	}

	out := slices.Clone(rails)
	for _, origin := range origins {
		group := byOrigin[origin]
		if len(group) < 2 {
			continue
		}
		slices.SortFunc(group, func(a, b int) int {
			if rails[a].IntervalDays != rails[b].IntervalDays {
				return rails[a].IntervalDays - rails[b].IntervalDays
			}
			return strings.Compare(rails[a].ID, rails[b].ID)
		})
		n := len(group)
		for i, idx := range group {
			offsetDays := rails[idx].IntervalDays * i / n
			out[idx] = rails[idx].WithNextFire(epoch.Add(universe.Days(offsetDays)))
		}
	}
	return out
}
