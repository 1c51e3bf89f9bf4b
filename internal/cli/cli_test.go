package cli

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/spindlespace/spindle/pkg/errors"
	"github.com/spindlespace/spindle/pkg/snapshot"
	"github.com/spindlespace/spindle/pkg/universe"
)

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"new", "add", "info", "validate", "route", "timetable", "map", "report", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestParseDepart(t *testing.T) {
	fallback := time.Date(3000, time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"empty uses fallback", "", fallback, false},
		{"rfc3339", "3000-06-01T12:00:00Z", time.Date(3000, time.June, 1, 12, 0, 0, 0, time.UTC), false},
		{"bare date", "3000-06-01", time.Date(3000, time.June, 1, 0, 0, 0, 0, time.UTC), false},
		{"garbage", "next tuesday", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDepart(tt.input, fallback)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDepart(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && !got.Equal(tt.want) {
				t.Errorf("parseDepart(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDepartDefault(t *testing.T) {
	epoch := time.Date(3000, time.January, 1, 0, 0, 0, 0, time.UTC)
	g := universe.NewGalaxy("GAL-1", "test", 1, epoch)
	for _, s := range []universe.System{{ID: "SYS-A"}, {ID: "SYS-B"}} {
		if err := g.AddSystem(s); err != nil {
			t.Fatal(err)
		}
	}

	if got := departDefault(g); !got.Equal(epoch) {
		t.Errorf("railless galaxy should default to generation time, got %v", got)
	}

	late := epoch.Add(universe.Days(400))
	err := g.AddRail(universe.Rail{
		ID: "RAIL-1", From: "SYS-A", To: "SYS-B",
		Class: universe.RailD, Length: 1,
		ConstructionDate: late, IntervalDays: 5, NextFire: late,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := departDefault(g); !got.Equal(late) {
		t.Errorf("departDefault = %v, want latest completion %v", got, late)
	}
}

// writeTestSnapshot persists a two-system galaxy and returns its path.
func writeTestSnapshot(t *testing.T) string {
	t.Helper()
	epoch := time.Date(3000, time.January, 1, 0, 0, 0, 0, time.UTC)
	g := universe.NewGalaxy("GAL-1", "test", 1, epoch)
	systems := []universe.System{
		{ID: "SYS-000000AA", Name: "Alpha", StarType: universe.StarG,
			Population: 2_000_000, TechLevel: universe.TierRailAge},
		{ID: "SYS-000000BB", Name: "Beta", Position: universe.Position{X: 10},
			StarType: universe.StarG, Population: 1_000_000, TechLevel: universe.TierRailAge},
	}
	for _, s := range systems {
		if err := g.AddSystem(s); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "galaxy.json")
	if err := snapshot.WriteFile(g, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCommand(args ...string) error {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	return root.Execute()
}

func TestAddRailCommand(t *testing.T) {
	path := writeTestSnapshot(t)

	if err := runCommand("add", "rail", path, "SYS-000000AA", "SYS-000000BB"); err != nil {
		t.Fatalf("add rail: %v", err)
	}

	g, err := snapshot.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	rail, ok := g.RailBetween("SYS-000000AA", "SYS-000000BB")
	if !ok {
		t.Fatal("added rail not persisted")
	}
	if err := errors.ValidateRailID(rail.ID); err != nil {
		t.Errorf("minted rail id %q invalid: %v", rail.ID, err)
	}
	if rail.IntervalDays <= 0 {
		t.Errorf("rail interval = %d, want positive", rail.IntervalDays)
	}

	// Same direction again is a duplicate.
	if err := runCommand("add", "rail", path, "SYS-000000AA", "SYS-000000BB"); err == nil {
		t.Error("duplicate rail accepted")
	}
	// The reverse direction would close a causal loop.
	if err := runCommand("add", "rail", path, "SYS-000000BB", "SYS-000000AA"); err == nil {
		t.Error("loop-closing rail accepted")
	}
}

func TestAddSystemCommand(t *testing.T) {
	path := writeTestSnapshot(t)

	if err := runCommand("add", "system", path, "Gamma", "--x", "20", "--deposits", "500"); err != nil {
		t.Fatalf("add system: %v", err)
	}

	g, err := snapshot.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if g.SystemCount() != 3 {
		t.Fatalf("system count = %d, want 3", g.SystemCount())
	}
	for _, s := range g.Systems() {
		if s.Name != "Gamma" {
			continue
		}
		if err := errors.ValidateSystemID(s.ID); err != nil {
			t.Errorf("minted system id %q invalid: %v", s.ID, err)
		}
		if s.Position.X != 20 || s.GravitiumDeposits != 500 {
			t.Errorf("system attributes not persisted: %+v", s)
		}
		return
	}
	t.Fatal("added system not persisted")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{3 * time.Hour, "3h"},
		{48 * time.Hour, "2d"},
		{50 * time.Hour, "2d 2h"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
