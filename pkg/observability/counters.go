package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// Counters accumulates layout event totals. The zero value is ready to use.
// Like the engine it observes, it is not safe for concurrent use.
type Counters struct {
	SupplyPasses  int
	Supplied      int
	Failed        int
	Evicted       int
	Invalidations int
	Jumps         int
	PredictSlices int
	PredictSteps  int
	SupplyTime    time.Duration
	PredictTime   time.Duration
}

func (c *Counters) OnSupply(placed int, d time.Duration) {
	c.SupplyPasses++
	c.Supplied += placed
	c.SupplyTime += d
}

func (c *Counters) OnGenerationFailed(int) { c.Failed++ }
func (c *Counters) OnEvict(int)            { c.Evicted++ }
func (c *Counters) OnInvalidate(int, bool) { c.Invalidations++ }
func (c *Counters) OnJump(int, float64)    { c.Jumps++ }

func (c *Counters) OnPredict(steps int, d time.Duration) {
	c.PredictSlices++
	c.PredictSteps += steps
	c.PredictTime += d
}

// LogHooks writes every layout event to a logger at debug level.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks creates log hooks. A nil logger falls back to log.Default().
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{Logger: l}
}

func (h *LogHooks) OnSupply(placed int, d time.Duration) {
	if placed > 0 {
		h.Logger.Debug("supplied items", "placed", placed, "duration", d)
	}
}

func (h *LogHooks) OnGenerationFailed(index int) {
	h.Logger.Debug("generation failed", "index", index)
}

func (h *LogHooks) OnEvict(index int) {
	h.Logger.Debug("evicted item", "index", index)
}

func (h *LogHooks) OnInvalidate(from int, all bool) {
	h.Logger.Debug("invalidated layout", "from", from, "all", all)
}

func (h *LogHooks) OnJump(index int, offset float64) {
	h.Logger.Debug("jumped to index", "index", index, "offset", offset)
}

func (h *LogHooks) OnPredict(steps int, d time.Duration) {
	if steps > 0 {
		h.Logger.Debug("predictive layout", "steps", steps, "duration", d)
	}
}

var (
	_ LayoutHooks = NoopLayoutHooks{}
	_ LayoutHooks = (*Counters)(nil)
	_ LayoutHooks = (*LogHooks)(nil)
	_ LayoutHooks = chain(nil)
	_ CacheHooks  = NoopCacheHooks{}
)

// CacheCounters tallies cache traffic.
type CacheCounters struct {
	Hits   int
	Misses int
	Sets   int
	Bytes  int
}

func (c *CacheCounters) OnCacheHit(context.Context, string)  { c.Hits++ }
func (c *CacheCounters) OnCacheMiss(context.Context, string) { c.Misses++ }

func (c *CacheCounters) OnCacheSet(_ context.Context, _ string, size int) {
	c.Sets++
	c.Bytes += size
}

var _ CacheHooks = (*CacheCounters)(nil)
