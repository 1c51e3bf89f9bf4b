package timetable

import (
	"time"

	"github.com/spindlespace/spindle/pkg/universe"
)

// Route returns a minimum-hop path of system ids from one system to
// another, or false if no rail sequence connects them. The trivial route
// from a system to itself is the single-element path.
//
// Breadth-first search over the galaxy's adjacency index; among
// equal-length paths the one whose rails were added first wins, so routes
// are stable for a given galaxy.
func Route(g *universe.Galaxy, from, to string) ([]string, bool) {
	if _, ok := g.System(from); !ok {
		return nil, false
	}
	if _, ok := g.System(to); !ok {
		return nil, false
	}
	if from == to {
		return []string{from}, true
	}

	parent := map[string]string{from: ""}
	queue := []string{from}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, r := range g.RailsFrom(current) {
			if _, seen := parent[r.To]; seen {
				continue
			}
			parent[r.To] = current
			if r.To == to {
				return assemble(parent, from, to), true
			}
			queue = append(queue, r.To)
		}
	}
	return nil, false
}

func assemble(parent map[string]string, from, to string) []string {
	var reversed []string
	for at := to; at != ""; at = parent[at] {
		reversed = append(reversed, at)
	}
	path := make([]string, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		path = append(path, reversed[i])
	}
	return path
}

// Leg is one rail traversal within a journey.
type Leg struct {
	Rail      universe.Rail
	Departure time.Time
	Arrival   time.Time
}

// Journey is a timed itinerary between two systems. Waiting happens at
// stations: each leg departs on the first firing at or after arrival of
// the previous leg.
type Journey struct {
	Path      []string // system ids, origin first
	Legs      []Leg
	Requested time.Time // when the traveler wanted to leave
	Departure time.Time // first firing actually taken
	Arrival   time.Time
}

// Duration is the journey time proper: final arrival minus the first
// firing taken. Layovers between legs count; waiting for the first
// firing does not (see Wait).
func (j Journey) Duration() time.Duration {
	return j.Arrival.Sub(j.Departure)
}

// Wait is the time between the requested departure and the first firing
// taken. Duration plus Wait gives the door-to-door figure.
func (j Journey) Wait() time.Duration {
	return j.Departure.Sub(j.Requested)
}

// PlanJourney times the minimum-hop route between two systems starting at
// the requested departure time. Returns false when no route exists or a
// rail on the route never fires.
//
// The zero-leg journey (from == to) departs and arrives at the requested
// time.
func PlanJourney(g *universe.Galaxy, from, to string, depart time.Time) (Journey, bool) {
	path, ok := Route(g, from, to)
	if !ok {
		return Journey{}, false
	}

	journey := Journey{
		Path:      path,
		Requested: depart,
		Departure: depart,
		Arrival:   depart,
	}

	cursor := depart
	for i := 0; i+1 < len(path); i++ {
		rail, ok := g.RailBetween(path[i], path[i+1])
		if !ok {
			return Journey{}, false
		}
		fire, ok := NextFiring(rail, cursor)
		if !ok {
			return Journey{}, false
		}
		arrival := fire.Add(universe.TransitTime)
		journey.Legs = append(journey.Legs, Leg{Rail: rail, Departure: fire, Arrival: arrival})
		cursor = arrival
	}

	if len(journey.Legs) > 0 {
		journey.Departure = journey.Legs[0].Departure
		journey.Arrival = journey.Legs[len(journey.Legs)-1].Arrival
	}
	return journey, true
}

// PreferredDeparture finds the departure closest to a preferred instant
// for the route between two systems: the route's first rail is resolved
// and its firings scanned within ±window of the preferred time, earlier
// winning ties. Absent when no route exists, the route has no legs
// (from == to), or no firing falls inside the window.
func PreferredDeparture(g *universe.Galaxy, from, to string, preferred time.Time, window time.Duration) (time.Time, bool) {
	path, ok := Route(g, from, to)
	if !ok || len(path) < 2 {
		return time.Time{}, false
	}
	rail, ok := g.RailBetween(path[0], path[1])
	if !ok {
		return time.Time{}, false
	}
	return NearestFiring(rail, preferred, window)
}
