package timetable

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/spindlespace/spindle/pkg/universe"
)

// Connection summarizes one ordered system pair in a connectivity report.
type Connection struct {
	From      string        `json:"from"`
	To        string        `json:"to"`
	Reachable bool          `json:"reachable"`
	Hops      int           `json:"hops,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
}

// Report is the all-pairs connectivity survey of a galaxy at a point in
// time. Pairs appear in sorted (from, to) order.
type Report struct {
	Departure   time.Time    `json:"departure"`
	Connections []Connection `json:"connections"`
}

// AllPairs surveys every ordered pair of distinct systems: whether a
// route exists, its hop count, and its journey duration (first firing
// taken to final arrival) when departing at or after the given time.
//
// Origins are surveyed concurrently, one goroutine per origin up to
// GOMAXPROCS, and results are reassembled in sorted order so the report
// is deterministic. The survey is quadratic in system count; it is meant
// for setting-sized galaxies, not astronomical ones.
func AllPairs(ctx context.Context, g *universe.Galaxy, depart time.Time) (*Report, error) {
	systems := g.Systems()
	rows := make([][]Connection, len(systems))

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(runtime.GOMAXPROCS(0))
	for i, origin := range systems {
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := make([]Connection, 0, len(systems)-1)
			for _, dest := range systems {
				if dest.ID == origin.ID {
					continue
				}
				conn := Connection{From: origin.ID, To: dest.ID}
				if journey, ok := PlanJourney(g, origin.ID, dest.ID, depart); ok {
					conn.Reachable = true
					conn.Hops = len(journey.Legs)
					conn.Duration = journey.Duration()
				}
				row = append(row, conn)
			}
			rows[i] = row
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Departure: depart}
	for _, row := range rows {
		report.Connections = append(report.Connections, row...)
	}
	return report, nil
}
