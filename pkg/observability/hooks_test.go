package observability

import (
	"context"
	"testing"
	"time"
)

type countingPipelineHooks struct {
	NoopPipelineHooks
	worldgenStarts int
	railgenDone    int
}

func (h *countingPipelineHooks) OnWorldgenStart(context.Context, uint64, int) {
	h.worldgenStarts++
}

func (h *countingPipelineHooks) OnRailgenComplete(context.Context, uint64, int, int, time.Duration, error) {
	h.railgenDone++
}

type countingCacheHooks struct {
	NoopCacheHooks
	hits, misses int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)  { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string) { h.misses++ }

func TestPipelineHooksRegistration(t *testing.T) {
	t.Cleanup(Reset)

	hooks := &countingPipelineHooks{}
	SetPipelineHooks(hooks)

	ctx := context.Background()
	Pipeline().OnWorldgenStart(ctx, 42, 50)
	Pipeline().OnWorldgenStart(ctx, 42, 50)
	Pipeline().OnRailgenComplete(ctx, 42, 60, 2, time.Second, nil)

	if hooks.worldgenStarts != 2 {
		t.Errorf("worldgenStarts = %d, want 2", hooks.worldgenStarts)
	}
	if hooks.railgenDone != 1 {
		t.Errorf("railgenDone = %d, want 1", hooks.railgenDone)
	}
}

func TestCacheHooksRegistration(t *testing.T) {
	t.Cleanup(Reset)

	hooks := &countingCacheHooks{}
	SetCacheHooks(hooks)

	ctx := context.Background()
	Cache().OnCacheMiss(ctx, "galaxy")
	Cache().OnCacheHit(ctx, "galaxy")
	Cache().OnCacheHit(ctx, "report")

	if hooks.hits != 2 || hooks.misses != 1 {
		t.Errorf("hits = %d, misses = %d, want 2 and 1", hooks.hits, hooks.misses)
	}
}

func TestSetNilKeepsCurrentHooks(t *testing.T) {
	t.Cleanup(Reset)

	hooks := &countingPipelineHooks{}
	SetPipelineHooks(hooks)
	SetPipelineHooks(nil)

	Pipeline().OnWorldgenStart(context.Background(), 1, 1)
	if hooks.worldgenStarts != 1 {
		t.Error("nil registration should not replace the current hooks")
	}
}

func TestReset(t *testing.T) {
	SetPipelineHooks(&countingPipelineHooks{})
	SetCacheHooks(&countingCacheHooks{})
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset should restore no-op pipeline hooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset should restore no-op cache hooks")
	}
}
