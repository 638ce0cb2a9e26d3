// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Hooks are injected where they are used:
// a layout engine receives its [LayoutHooks] at construction and a cache is
// wrapped with its [CacheHooks]. There is no process-wide registry, so two
// engines in one process never share instrumentation by accident.
//
// # Usage
//
//	counters := &observability.Counters{}
//	hooks := observability.Chain(counters, observability.NewLogHooks(logger))
//	engine := waterflow.New(gen, cfg, size, waterflow.WithHooks(hooks))
//	// ... run frames ...
//	fmt.Println(counters.Supplied, counters.Evicted)
package observability

import (
	"context"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from a waterfall layout engine. Calls happen
// synchronously on the goroutine that drives the engine.
type LayoutHooks interface {
	// OnSupply reports one supply pass and the number of items it placed.
	OnSupply(placed int, duration time.Duration)

	// OnGenerationFailed reports an index the item generator could not build.
	OnGenerationFailed(index int)

	// OnEvict reports a materialized item released outside the cache window.
	OnEvict(index int)

	// OnInvalidate reports geometry dropped from index onward (or everything).
	OnInvalidate(from int, all bool)

	// OnJump reports a committed scroll-to-index with its resulting offset.
	OnJump(index int, offset float64)

	// OnPredict reports one predictive layout slice.
	OnPredict(steps int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnSupply(int, time.Duration)  {}
func (NoopLayoutHooks) OnGenerationFailed(int)       {}
func (NoopLayoutHooks) OnEvict(int)                  {}
func (NoopLayoutHooks) OnInvalidate(int, bool)       {}
func (NoopLayoutHooks) OnJump(int, float64)          {}
func (NoopLayoutHooks) OnPredict(int, time.Duration) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Composition
// =============================================================================

type chain []LayoutHooks

// Chain fans every event out to each of hooks in order. Nil entries are skipped.
func Chain(hooks ...LayoutHooks) LayoutHooks {
	c := make(chain, 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			c = append(c, h)
		}
	}
	return c
}

func (c chain) OnSupply(placed int, d time.Duration) {
	for _, h := range c {
		h.OnSupply(placed, d)
	}
}

func (c chain) OnGenerationFailed(index int) {
	for _, h := range c {
		h.OnGenerationFailed(index)
	}
}

func (c chain) OnEvict(index int) {
	for _, h := range c {
		h.OnEvict(index)
	}
}

func (c chain) OnInvalidate(from int, all bool) {
	for _, h := range c {
		h.OnInvalidate(from, all)
	}
}

func (c chain) OnJump(index int, offset float64) {
	for _, h := range c {
		h.OnJump(index, offset)
	}
}

func (c chain) OnPredict(steps int, d time.Duration) {
	for _, h := range c {
		h.OnPredict(steps, d)
	}
}
