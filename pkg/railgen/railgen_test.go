package railgen

import (
	"reflect"
	"testing"
	"time"

	"github.com/spindlespace/spindle/pkg/topo"
	"github.com/spindlespace/spindle/pkg/universe"
)

func testSystem(id string, x float64, pop int64, deposits float64) universe.System {
	return universe.System{
		ID:                id,
		Name:              id,
		Position:          universe.Position{X: x},
		StarType:          universe.StarG,
		Population:        pop,
		TechLevel:         universe.TierRailAge,
		GravitiumDeposits: deposits,
	}
}

// testCluster is a small line of systems with a single rich vein at the
// origin: SYS-A (vein), SYS-B, SYS-C, SYS-D at 10 LY spacing.
func testCluster() []universe.System {
	return []universe.System{
		testSystem("SYS-A", 0, 2_000_000, 5000),
		testSystem("SYS-B", 10, 1_000_000, 0),
		testSystem("SYS-C", 20, 500_000, 0),
		testSystem("SYS-D", 30, 100_000, 0),
	}
}

func mustGenerate(t *testing.T, seed uint64, systems []universe.System) *Result {
	t.Helper()
	gen, err := New(seed, Policy{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := gen.Generate(systems)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return res
}

func TestGenerateConnectsAllSystems(t *testing.T) {
	res := mustGenerate(t, 42, testCluster())

	if len(res.SourceVeins) != 1 || res.SourceVeins[0] != "SYS-A" {
		t.Fatalf("expected SYS-A as the only source vein, got %v", res.SourceVeins)
	}

	reached := map[string]bool{"SYS-A": true}
	for _, r := range res.Rails {
		reached[r.From] = true
		reached[r.To] = true
	}
	for _, id := range []string{"SYS-A", "SYS-B", "SYS-C", "SYS-D"} {
		if !reached[id] {
			t.Errorf("system %s not connected to the network", id)
		}
	}
}

func TestGenerateIsAcyclic(t *testing.T) {
	res := mustGenerate(t, 7, testCluster())

	if topo.HasCycle(topo.EdgesOf(res.Rails)) {
		t.Fatal("generated network contains a closed causal loop")
	}
	// The invariant holds for every prefix of the acceptance sequence,
	// not just the final network.
	for i := range res.Rails {
		if topo.HasCycle(topo.EdgesOf(res.Rails[:i+1])) {
			t.Fatalf("acceptance prefix of %d rails contains a loop", i+1)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	first := mustGenerate(t, 1234, testCluster())
	second := mustGenerate(t, 1234, testCluster())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed produced different networks:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestGenerateRailAttributes(t *testing.T) {
	res := mustGenerate(t, 99, testCluster())
	byID := make(map[string]universe.System)
	for _, s := range testCluster() {
		byID[s.ID] = s
	}

	prev := time.Time{}
	for _, r := range res.Rails {
		from, to := byID[r.From], byID[r.To]

		if !r.LengthConsistent(from, to) {
			t.Errorf("rail %s length %.2f inconsistent with endpoint distance %.2f",
				r.ID, r.Length, from.Position.DistanceTo(to.Position))
		}
		if want := universe.GravitiumCost(r.Length, r.Class); r.GravitiumCost != want {
			t.Errorf("rail %s cost %.1f, want %.1f", r.ID, r.GravitiumCost, want)
		}

		bounds := classIntervalDays[r.Class]
		if r.IntervalDays < bounds[0] || r.IntervalDays > bounds[1] {
			t.Errorf("rail %s interval %d outside class %s range %v", r.ID, r.IntervalDays, r.Class, bounds)
		}

		// First firing lands within one interval after completion.
		if !r.NextFire.After(r.ConstructionDate) {
			t.Errorf("rail %s fires at %v, before its completion %v", r.ID, r.NextFire, r.ConstructionDate)
		}
		if r.NextFire.After(r.ConstructionDate.Add(r.Interval())) {
			t.Errorf("rail %s first firing %v more than one interval after completion", r.ID, r.NextFire)
		}

		// Build-out calendar only moves forward.
		if r.ConstructionDate.Before(prev) {
			t.Errorf("rail %s completed %v, before the previous rail's %v", r.ID, r.ConstructionDate, prev)
		}
		prev = r.ConstructionDate
	}
}

func TestGenerateNoSourceVeins(t *testing.T) {
	systems := []universe.System{
		testSystem("SYS-A", 0, 1_000_000, 10), // well under the threshold
		testSystem("SYS-B", 10, 1_000_000, 0),
	}
	res := mustGenerate(t, 5, systems)

	if len(res.SourceVeins) != 0 {
		t.Errorf("expected no source veins, got %v", res.SourceVeins)
	}
	if len(res.Rails) != 0 {
		t.Errorf("expected empty network, got %d rails", len(res.Rails))
	}
}

func TestSourceVeinOrderAndCap(t *testing.T) {
	systems := []universe.System{
		testSystem("SYS-A", 0, 1000, 2000),
		testSystem("SYS-B", 10, 1000, 9000),
		testSystem("SYS-C", 20, 1000, 9000),
		testSystem("SYS-D", 30, 1000, 500), // below threshold
	}

	gen, err := New(1, Policy{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := gen.SourceVeins(systems)
	want := []string{"SYS-B", "SYS-C", "SYS-A"} // descending deposits, ties by id
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SourceVeins = %v, want %v", got, want)
	}

	gen, err = New(1, Policy{MaxSourceVeins: 2}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := gen.SourceVeins(systems); len(got) != 2 {
		t.Errorf("capped SourceVeins = %v, want 2 entries", got)
	}
}

func TestInstantiateRejectsLoops(t *testing.T) {
	systems := testCluster()
	byID := make(map[string]universe.System, len(systems))
	for _, s := range systems {
		byID[s.ID] = s
	}

	// The third edge closes A -> B -> C -> A and must be dropped.
	planned := []Edge{
		{From: "SYS-A", To: "SYS-B"},
		{From: "SYS-B", To: "SYS-C"},
		{From: "SYS-C", To: "SYS-A"},
	}

	gen, err := New(3, Policy{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var res Result
	gen.instantiate(byID, planned, &res)

	if len(res.Rails) != 2 {
		t.Fatalf("expected 2 accepted rails, got %d", len(res.Rails))
	}
	if len(res.Rejected) != 1 || res.Rejected[0].From != "SYS-C" {
		t.Errorf("expected the loop-closing edge rejected, got %v", res.Rejected)
	}
	// A rejected edge must not advance the construction calendar: with
	// 10 LY rails at the default 10 LY/yr rate, the second rail starts
	// exactly one year after the first.
	gap := res.Rails[1].ConstructionDate.Sub(res.Rails[0].ConstructionDate)
	if want := time.Duration(universe.DaysPerYear * float64(universe.Day)); gap != want {
		t.Errorf("construction gap = %v, want %v", gap, want)
	}
}

func TestOptimizeOffsets(t *testing.T) {
	epoch := DefaultOffsetEpoch
	base := time.Date(2900, time.June, 1, 0, 0, 0, 0, time.UTC)
	rail := func(id string, interval int) universe.Rail {
		return universe.Rail{
			ID: id, From: "SYS-HUB", To: "SYS-" + id,
			Class: universe.RailC, IntervalDays: interval,
			ConstructionDate: base, NextFire: base.Add(universe.Days(1)),
		}
	}

	rails := []universe.Rail{rail("R1", 20), rail("R2", 5), rail("R3", 10)}
	solo := universe.Rail{
		ID: "R4", From: "SYS-LONE", To: "SYS-X",
		Class: universe.RailD, IntervalDays: 200,
		ConstructionDate: base, NextFire: base.Add(universe.Days(3)),
	}
	rails = append(rails, solo)

	got := OptimizeOffsets(rails, epoch)

	// Ascending interval order is R2 (5d), R3 (10d), R1 (20d); rail i of
	// n gets epoch + ⌊interval*i/n⌋ whole days, so R3 lands on day 3,
	// not day 10/3.
	offsets := map[string]int{
		"R2": 0,
		"R3": 10 * 1 / 3,
		"R1": 20 * 2 / 3,
	}
	for _, r := range got {
		if r.ID == "R4" {
			if !r.NextFire.Equal(solo.NextFire) {
				t.Errorf("singleton origin rescheduled: %v", r.NextFire)
			}
			continue
		}
		want := epoch.Add(universe.Days(offsets[r.ID]))
		if !r.NextFire.Equal(want) {
			t.Errorf("rail %s next fire = %v, want %v", r.ID, r.NextFire, want)
		}
	}

	// Input untouched.
	if !rails[0].NextFire.Equal(base.Add(universe.Days(1))) {
		t.Error("OptimizeOffsets mutated its input")
	}
}

func TestManualRail(t *testing.T) {
	from := testSystem("SYS-A", 0, 2_000_000, 0)
	to := testSystem("SYS-B", 10, 1_000_000, 0)
	completed := time.Date(3000, time.March, 1, 0, 0, 0, 0, time.UTC)
	ids := universe.NewSeededIDs(1)

	rail, err := ManualRail(ids, from, to, 0, completed)
	if err != nil {
		t.Fatalf("ManualRail: %v", err)
	}

	class := ClassForPair(from, to)
	if rail.Class != class {
		t.Errorf("class = %s, want %s", rail.Class, class)
	}
	bounds := classIntervalDays[class]
	if want := (bounds[0] + bounds[1]) / 2; rail.IntervalDays != want {
		t.Errorf("default interval = %d, want class midpoint %d", rail.IntervalDays, want)
	}
	if !rail.NextFire.Equal(completed.Add(rail.Interval())) {
		t.Errorf("first firing %v, want one interval after completion", rail.NextFire)
	}
	if !rail.LengthConsistent(from, to) {
		t.Errorf("length %.2f inconsistent with endpoint distance", rail.Length)
	}
	if want := universe.GravitiumCost(rail.Length, class); rail.GravitiumCost != want {
		t.Errorf("cost %.1f, want %.1f", rail.GravitiumCost, want)
	}
	if want := classAnnualTonnage[class] / (universe.DaysPerYear / float64(rail.IntervalDays)); rail.MaxCapacity != want {
		t.Errorf("capacity %.3f, want %.3f", rail.MaxCapacity, want)
	}

	if _, err := ManualRail(ids, from, to, bounds[1]+1, completed); err == nil {
		t.Error("out-of-range interval accepted")
	}
	if _, err := ManualRail(ids, from, from, 0, completed); err == nil {
		t.Error("self-rail accepted")
	}
}
