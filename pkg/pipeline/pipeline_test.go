package pipeline

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/spindlespace/spindle/pkg/cache"
	"github.com/spindlespace/spindle/pkg/snapshot"
	"github.com/spindlespace/spindle/pkg/validate"
	"github.com/spindlespace/spindle/pkg/worldgen"
)

func testOptions() Options {
	return Options{
		Seed: 1234,
		Name: "Test Reach",
		// Small but non-trivial: enough systems for a real network.
		World: worldgen.Options{SystemCount: 25, Radius: 60},
	}
}

func TestExecute(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), testOptions())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Galaxy == nil {
		t.Fatal("no galaxy in result")
	}
	if result.Galaxy.ID != "GAL-000004D2" {
		t.Errorf("galaxy id = %s", result.Galaxy.ID)
	}
	if result.Stats.SystemCount != result.Galaxy.SystemCount() {
		t.Errorf("stats disagree with galaxy: %d vs %d", result.Stats.SystemCount, result.Galaxy.SystemCount())
	}
	if result.SnapshotHash == "" {
		t.Error("missing snapshot hash")
	}
	if result.CacheInfo.GalaxyHit {
		t.Error("first run should not hit the cache")
	}

	// A freshly generated network satisfies every structural invariant.
	// An economic deficit finding is possible: generation does not
	// budget against deposits, it only reports through validation.
	for _, code := range []validate.Code{
		validate.CodeCausalLoop,
		validate.CodeDanglingEndpoint,
		validate.CodeDuplicateRoute,
		validate.CodeLengthMismatch,
	} {
		if found := result.Validation.ByCode(code); len(found) != 0 {
			t.Errorf("generated galaxy has %s findings: %v", code, found)
		}
	}
}

func TestExecuteDeterministic(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	first, err := runner.Execute(context.Background(), testOptions())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	second, err := runner.Execute(context.Background(), testOptions())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if first.SnapshotHash != second.SnapshotHash {
		t.Error("same options produced different snapshot hashes")
	}

	a, err := snapshot.Marshal(first.Galaxy)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	b, err := snapshot.Marshal(second.Galaxy)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(a) != string(b) {
		t.Error("same options produced different snapshots")
	}
}

func TestExecuteUsesCache(t *testing.T) {
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fileCache, nil, nil)
	defer runner.Close()

	ctx := context.Background()
	first, err := runner.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.GalaxyHit {
		t.Error("first run should miss")
	}

	second, err := runner.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.GalaxyHit {
		t.Error("second run should hit the cache")
	}
	if first.SnapshotHash != second.SnapshotHash {
		t.Error("cached galaxy differs from generated one")
	}

	// Refresh bypasses the cache but regenerates identically.
	opts := testOptions()
	opts.Refresh = true
	third, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if third.CacheInfo.GalaxyHit {
		t.Error("refresh run should not hit the cache")
	}
	if third.SnapshotHash != first.SnapshotHash {
		t.Error("refresh produced a different galaxy")
	}
}

func TestExecuteSeedChangesGalaxy(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	first, err := runner.Execute(context.Background(), testOptions())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	opts := testOptions()
	opts.Seed = 99
	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.SnapshotHash == second.SnapshotHash {
		t.Error("different seeds produced identical galaxies")
	}
}

func TestReport(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	ctx := context.Background()
	result, err := runner.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	departure := time.Date(3000, time.June, 1, 0, 0, 0, 0, time.UTC)
	report, err := runner.Report(ctx, result.Galaxy, departure)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}

	n := result.Galaxy.SystemCount()
	if want := n * (n - 1); len(report.Connections) != want {
		t.Errorf("expected %d ordered pairs, got %d", want, len(report.Connections))
	}

	again, err := runner.Report(ctx, result.Galaxy, departure)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if !reflect.DeepEqual(report, again) {
		t.Error("report is not deterministic")
	}
}

func TestExecuteCanceled(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := runner.Execute(ctx, testOptions()); err == nil {
		t.Error("expected an error from a canceled context")
	}
}
