package timetable

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/spindlespace/spindle/pkg/universe"
)

var epoch = time.Date(3000, time.January, 1, 0, 0, 0, 0, time.UTC)

func day(n int) time.Time { return epoch.Add(universe.Days(n)) }

func testRail(id, from, to string, intervalDays, nextFireDay int) universe.Rail {
	return universe.Rail{
		ID:               id,
		From:             from,
		To:               to,
		Class:            universe.RailC,
		Length:           10,
		ConstructionDate: epoch,
		IntervalDays:     intervalDays,
		NextFire:         day(nextFireDay),
		GravitiumCost:    universe.GravitiumCost(10, universe.RailC),
		MaxCapacity:      150,
	}
}

// lineGalaxy wires SYS-A -> SYS-B -> SYS-C at 10 LY spacing, with SYS-X
// isolated. Both rails fire every 5 days, anchored at day 10.
func lineGalaxy(t *testing.T) *universe.Galaxy {
	t.Helper()
	g := universe.NewGalaxy("GAL-TEST", "test", 1, epoch)
	for i, id := range []string{"SYS-A", "SYS-B", "SYS-C", "SYS-X"} {
		err := g.AddSystem(universe.System{
			ID:       id,
			Name:     id,
			Position: universe.Position{X: float64(i) * 10},
		})
		if err != nil {
			t.Fatalf("AddSystem(%s): %v", id, err)
		}
	}
	for _, r := range []universe.Rail{
		testRail("RAIL-AB", "SYS-A", "SYS-B", 5, 10),
		testRail("RAIL-BC", "SYS-B", "SYS-C", 5, 10),
	} {
		if err := g.AddRail(r); err != nil {
			t.Fatalf("AddRail(%s): %v", r.ID, err)
		}
	}
	return g
}

func TestFiringsFromAnchor(t *testing.T) {
	r := testRail("RAIL-1", "SYS-A", "SYS-B", 5, 10)

	// Asking before the anchor starts the sequence at the anchor.
	got := Firings(r, day(0), 3)
	want := []time.Time{day(10), day(15), day(20)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Firings from day 0 = %v, want %v", got, want)
	}

	// Asking mid-sequence advances to the next firing, never back.
	got = Firings(r, day(12), 3)
	want = []time.Time{day(15), day(20), day(25)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Firings from day 12 = %v, want %v", got, want)
	}

	// A query landing exactly on a firing includes it.
	got = Firings(r, day(15), 1)
	if len(got) != 1 || !got[0].Equal(day(15)) {
		t.Errorf("Firings from day 15 = %v, want [day 15]", got)
	}
}

func TestFiringsBetween(t *testing.T) {
	r := testRail("RAIL-1", "SYS-A", "SYS-B", 5, 10)

	got := FiringsBetween(r, day(0), day(21))
	want := []time.Time{day(10), day(15), day(20)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FiringsBetween = %v, want %v", got, want)
	}

	// The window end is exclusive.
	if got := FiringsBetween(r, day(0), day(10)); got != nil {
		t.Errorf("empty window returned %v", got)
	}
}

func TestNextFiringBrokenRail(t *testing.T) {
	r := testRail("RAIL-1", "SYS-A", "SYS-B", 0, 10)
	if _, ok := NextFiring(r, day(0)); ok {
		t.Error("rail with zero interval should never fire")
	}
}

func TestNearestFiring(t *testing.T) {
	r := testRail("RAIL-1", "SYS-A", "SYS-B", 5, 10)

	// Day 13 sits between firings at days 10 and 15; 15 is closer.
	got, ok := NearestFiring(r, day(13), universe.Days(30))
	if !ok || !got.Equal(day(15)) {
		t.Errorf("NearestFiring(day 13) = %v, %v; want day 15", got, ok)
	}

	// Day 12 is closer to the firing behind it.
	got, ok = NearestFiring(r, day(12), universe.Days(30))
	if !ok || !got.Equal(day(10)) {
		t.Errorf("NearestFiring(day 12) = %v, %v; want day 10", got, ok)
	}

	// Equidistant prefers the earlier firing. Day 12.5 is 2.5 days from
	// both neighbors.
	got, ok = NearestFiring(r, day(12).Add(12*time.Hour), universe.Days(30))
	if !ok || !got.Equal(day(10)) {
		t.Errorf("NearestFiring(day 12.5) = %v, %v; want day 10", got, ok)
	}

	// A window too narrow to hold any firing reports none.
	if _, ok := NearestFiring(r, day(0), universe.Days(2)); ok {
		t.Error("expected no firing within 2 days of day 0")
	}
}

func TestRoute(t *testing.T) {
	g := lineGalaxy(t)

	path, ok := Route(g, "SYS-A", "SYS-C")
	if !ok || !reflect.DeepEqual(path, []string{"SYS-A", "SYS-B", "SYS-C"}) {
		t.Errorf("Route A->C = %v, %v", path, ok)
	}

	// Rails are one-way: no route back.
	if _, ok := Route(g, "SYS-C", "SYS-A"); ok {
		t.Error("expected no route against rail direction")
	}

	if _, ok := Route(g, "SYS-A", "SYS-X"); ok {
		t.Error("expected no route to an isolated system")
	}

	path, ok = Route(g, "SYS-B", "SYS-B")
	if !ok || !reflect.DeepEqual(path, []string{"SYS-B"}) {
		t.Errorf("self route = %v, %v", path, ok)
	}

	if _, ok := Route(g, "SYS-A", "SYS-NOWHERE"); ok {
		t.Error("expected no route to an unknown system")
	}
}

func TestPlanJourney(t *testing.T) {
	g := lineGalaxy(t)

	journey, ok := PlanJourney(g, "SYS-A", "SYS-C", day(0))
	if !ok {
		t.Fatal("expected a journey A->C")
	}
	if len(journey.Legs) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(journey.Legs))
	}

	// First leg takes the day-10 firing; transit lands an hour later,
	// and the second rail's next firing after that is day 15.
	if !journey.Legs[0].Departure.Equal(day(10)) {
		t.Errorf("leg 1 departs %v, want day 10", journey.Legs[0].Departure)
	}
	if !journey.Legs[1].Departure.Equal(day(15)) {
		t.Errorf("leg 2 departs %v, want day 15", journey.Legs[1].Departure)
	}
	wantArrival := day(15).Add(universe.TransitTime)
	if !journey.Arrival.Equal(wantArrival) {
		t.Errorf("arrival %v, want %v", journey.Arrival, wantArrival)
	}

	// Duration runs from the first firing taken, not the requested
	// departure: the ten days waiting for the day-10 firing belong to
	// Wait, never to the journey itself.
	if want := wantArrival.Sub(day(10)); journey.Duration() != want {
		t.Errorf("duration %v, want %v", journey.Duration(), want)
	}
	if want := day(10).Sub(day(0)); journey.Wait() != want {
		t.Errorf("wait %v, want %v", journey.Wait(), want)
	}

	// Zero-leg journey.
	journey, ok = PlanJourney(g, "SYS-B", "SYS-B", day(3))
	if !ok || len(journey.Legs) != 0 || journey.Duration() != 0 || journey.Wait() != 0 {
		t.Errorf("self journey = %+v, %v", journey, ok)
	}

	if _, ok := PlanJourney(g, "SYS-A", "SYS-X", day(0)); ok {
		t.Error("expected no journey to an isolated system")
	}
}

func TestPreferredDeparture(t *testing.T) {
	g := lineGalaxy(t)

	// The A->C route departs on RAIL-AB, which fires on days 10, 15, 20.
	// Day 13 is closest to the day-15 firing.
	got, ok := PreferredDeparture(g, "SYS-A", "SYS-C", day(13), universe.Days(30))
	if !ok || !got.Equal(day(15)) {
		t.Errorf("PreferredDeparture(day 13) = %v, %v; want day 15", got, ok)
	}

	// A window too narrow to hold a firing reports none.
	if _, ok := PreferredDeparture(g, "SYS-A", "SYS-C", day(0), universe.Days(2)); ok {
		t.Error("expected no departure within 2 days of day 0")
	}

	// No route, no departure.
	if _, ok := PreferredDeparture(g, "SYS-C", "SYS-A", day(13), universe.Days(30)); ok {
		t.Error("expected no departure against rail direction")
	}

	// The legless self route has nothing to board.
	if _, ok := PreferredDeparture(g, "SYS-B", "SYS-B", day(13), universe.Days(30)); ok {
		t.Error("expected no departure for a self route")
	}
}

func TestAllPairs(t *testing.T) {
	g := lineGalaxy(t)

	report, err := AllPairs(context.Background(), g, day(0))
	if err != nil {
		t.Fatalf("AllPairs: %v", err)
	}
	// 4 systems, 12 ordered pairs.
	if len(report.Connections) != 12 {
		t.Fatalf("expected 12 connections, got %d", len(report.Connections))
	}

	index := make(map[[2]string]Connection)
	for _, c := range report.Connections {
		index[[2]string{c.From, c.To}] = c
	}

	ac := index[[2]string{"SYS-A", "SYS-C"}]
	if !ac.Reachable || ac.Hops != 2 {
		t.Errorf("A->C = %+v, want reachable in 2 hops", ac)
	}
	if ca := index[[2]string{"SYS-C", "SYS-A"}]; ca.Reachable {
		t.Errorf("C->A should be unreachable, got %+v", ca)
	}
	if ax := index[[2]string{"SYS-A", "SYS-X"}]; ax.Reachable {
		t.Errorf("A->X should be unreachable, got %+v", ax)
	}

	// The concurrent survey assembles deterministically.
	again, err := AllPairs(context.Background(), g, day(0))
	if err != nil {
		t.Fatalf("AllPairs: %v", err)
	}
	if !reflect.DeepEqual(report, again) {
		t.Error("AllPairs is not deterministic across runs")
	}
}

func TestAllPairsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := AllPairs(ctx, lineGalaxy(t), day(0)); err == nil {
		t.Error("expected an error from a canceled context")
	}
}
