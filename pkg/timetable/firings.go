// Package timetable answers schedule and routing queries against a
// finished galaxy.
//
// Every query is a pure function of the galaxy: rails carry an
// (interval, next-fire) anchor, and firings are projected forward from
// that anchor on demand. Nothing here stores schedule state, so queries
// are safe to run concurrently and always agree with each other.
package timetable

import (
	"time"

	"github.com/spindlespace/spindle/pkg/universe"
)

// NextFiring returns the rail's first firing at or after t. The firing
// sequence starts at the rail's anchor; times before it have no firings.
// Returns false for a rail with a non-positive interval.
func NextFiring(r universe.Rail, t time.Time) (time.Time, bool) {
	if r.IntervalDays <= 0 {
		return time.Time{}, false
	}
	fire := r.NextFire
	for fire.Before(t) {
		fire = fire.Add(r.Interval())
	}
	return fire, true
}

// Firings returns the rail's next n firings at or after t, in ascending
// order.
func Firings(r universe.Rail, t time.Time, n int) []time.Time {
	fire, ok := NextFiring(r, t)
	if !ok || n <= 0 {
		return nil
	}
	out := make([]time.Time, 0, n)
	for len(out) < n {
		out = append(out, fire)
		fire = fire.Add(r.Interval())
	}
	return out
}

// FiringsBetween returns every firing in the half-open window [from, to).
func FiringsBetween(r universe.Rail, from, to time.Time) []time.Time {
	fire, ok := NextFiring(r, from)
	if !ok {
		return nil
	}
	var out []time.Time
	for fire.Before(to) {
		out = append(out, fire)
		fire = fire.Add(r.Interval())
	}
	return out
}

// ScheduleBetween materializes the rail's window [from, to) as a
// Schedule value for display.
func ScheduleBetween(r universe.Rail, from, to time.Time) universe.Schedule {
	return universe.Schedule{
		RailID:     r.ID,
		Departures: FiringsBetween(r, from, to),
		Transit:    universe.TransitTime,
	}
}

// NearestFiring returns the firing closest to the preferred time, looking
// up to `window` on either side. When two firings are equally close the
// earlier one wins. Returns false if no firing lands inside the window.
func NearestFiring(r universe.Rail, preferred time.Time, window time.Duration) (time.Time, bool) {
	fire, ok := NextFiring(r, preferred.Add(-window))
	if !ok {
		return time.Time{}, false
	}
	limit := preferred.Add(window)

	var (
		best     time.Time
		bestGap  time.Duration
		haveBest bool
	)
	for !fire.After(limit) {
		gap := preferred.Sub(fire)
		if gap < 0 {
			gap = -gap
		}
		if !haveBest || gap < bestGap {
			best, bestGap, haveBest = fire, gap, true
		}
		fire = fire.Add(r.Interval())
	}
	return best, haveBest
}
