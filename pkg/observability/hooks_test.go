package observability

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	l := NoopLayoutHooks{}
	l.OnSupply(3, time.Millisecond)
	l.OnGenerationFailed(1)
	l.OnEvict(2)
	l.OnInvalidate(0, true)
	l.OnJump(10, 250)
	l.OnPredict(4, time.Millisecond)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "snapshot")
	c.OnCacheMiss(ctx, "snapshot")
	c.OnCacheSet(ctx, "snapshot", 1024)
}

func TestCounters(t *testing.T) {
	c := &Counters{}
	c.OnSupply(3, 2*time.Millisecond)
	c.OnSupply(2, time.Millisecond)
	c.OnGenerationFailed(7)
	c.OnEvict(1)
	c.OnEvict(2)
	c.OnInvalidate(0, true)
	c.OnJump(4, 100)
	c.OnPredict(5, time.Millisecond)

	if c.SupplyPasses != 2 || c.Supplied != 5 {
		t.Errorf("supply = %d passes / %d items, want 2 / 5", c.SupplyPasses, c.Supplied)
	}
	if c.SupplyTime != 3*time.Millisecond {
		t.Errorf("SupplyTime = %v, want 3ms", c.SupplyTime)
	}
	if c.Failed != 1 || c.Evicted != 2 || c.Invalidations != 1 || c.Jumps != 1 {
		t.Errorf("unexpected counters: %+v", c)
	}
	if c.PredictSlices != 1 || c.PredictSteps != 5 {
		t.Errorf("predict = %d slices / %d steps, want 1 / 5", c.PredictSlices, c.PredictSteps)
	}
}

func TestChain(t *testing.T) {
	a, b := &Counters{}, &Counters{}
	h := Chain(a, nil, b)

	h.OnSupply(1, 0)
	h.OnGenerationFailed(0)
	h.OnEvict(0)
	h.OnInvalidate(0, false)
	h.OnJump(0, 0)
	h.OnPredict(2, 0)

	for name, c := range map[string]*Counters{"a": a, "b": b} {
		if c.Supplied != 1 || c.Failed != 1 || c.Evicted != 1 || c.Invalidations != 1 || c.Jumps != 1 || c.PredictSteps != 2 {
			t.Errorf("counter %s missed events: %+v", name, c)
		}
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)

	h.OnSupply(0, 0)
	if buf.Len() != 0 {
		t.Errorf("empty supply pass should not log, got %q", buf.String())
	}

	h.OnEvict(42)
	if !strings.Contains(buf.String(), "evicted item") || !strings.Contains(buf.String(), "42") {
		t.Errorf("OnEvict output = %q", buf.String())
	}
}

func TestNewLogHooksNilLogger(t *testing.T) {
	if h := NewLogHooks(nil); h.Logger == nil {
		t.Error("NewLogHooks(nil) should fall back to the default logger")
	}
}

func TestCacheCounters(t *testing.T) {
	ctx := context.Background()
	var c CacheCounters
	c.OnCacheMiss(ctx, "snapshot")
	c.OnCacheSet(ctx, "snapshot", 120)
	c.OnCacheHit(ctx, "snapshot")
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 30)

	want := CacheCounters{Hits: 2, Misses: 1, Sets: 2, Bytes: 150}
	if c != want {
		t.Errorf("counters = %+v, want %+v", c, want)
	}
}
