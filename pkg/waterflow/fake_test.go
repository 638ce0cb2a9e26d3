package waterflow

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

// fakeGen is an in-memory generator that records every callback.
type fakeGen struct {
	count  int
	sizes  []float64
	def    float64
	fail   map[int]bool
	footer float64

	built       map[int]int
	deleted     map[int]int
	measured    map[int]int
	footerCalls int
	live, peak  int

	clock   *fakeClock
	onBuild func(index int)
}

func newFakeGen(count int, def float64) *fakeGen {
	return &fakeGen{
		count:    count,
		def:      def,
		fail:     map[int]bool{},
		built:    map[int]int{},
		deleted:  map[int]int{},
		measured: map[int]int{},
	}
}

func (g *fakeGen) size(index int) float64 {
	if index < len(g.sizes) {
		return g.sizes[index]
	}
	return g.def
}

func (g *fakeGen) GetTotalCount() int { return g.count }

func (g *fakeGen) BuildChildByIndex(index int) (Item, bool) {
	g.built[index]++
	if g.onBuild != nil {
		g.onBuild(index)
	}
	if g.fail[index] {
		return nil, false
	}
	g.live++
	g.peak = max(g.peak, g.live)
	return &fakeItem{g: g, index: index}, true
}

func (g *fakeGen) DeleteChildByIndex(index int) {
	g.deleted[index]++
	g.live--
}

func (g *fakeGen) RequestFooter() (Item, bool) {
	g.footerCalls++
	if g.footer <= 0 {
		return nil, false
	}
	return FixedItem(g.footer), true
}

type fakeItem struct {
	g     *fakeGen
	index int
}

func (it *fakeItem) Measure(c LayoutConstraint) Size {
	it.g.measured[it.index]++
	if it.g.clock != nil {
		it.g.clock.advance(time.Millisecond)
	}
	return c.Axis.Compose(it.g.size(it.index), c.Axis.Cross(c.MaxSize))
}

// fakeClock only moves when told to.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type fakeAnimator struct {
	calls    int
	from, to Offset
}

func (a *fakeAnimator) Animate(from, to Offset) {
	a.calls++
	a.from, a.to = from, to
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestEngine(t *testing.T, gen ItemGenerator, cfg Config, size Size, opts ...Option) *Engine {
	t.Helper()
	base := []Option{WithLogger(quietLogger()), WithClock(newFakeClock().now)}
	return New(gen, cfg, size, append(base, opts...)...)
}

func columnsConfig(template string) Config {
	cfg := DefaultConfig()
	cfg.ColumnsTemplate = template
	return cfg
}

// checkPartition asserts that the column table covers the placed indices
// exactly once.
func checkPartition(t *testing.T, e *Engine) {
	t.Helper()
	seen := map[int]int{}
	for _, col := range e.Columns() {
		for _, index := range col.Items {
			seen[index]++
		}
	}
	placed := e.Indices()
	if len(seen) != len(placed) {
		t.Fatalf("column table holds %d indices, matrix holds %d", len(seen), len(placed))
	}
	for _, index := range placed {
		if seen[index] != 1 {
			t.Fatalf("index %d appears %d times in column table", index, seen[index])
		}
	}
}

func checkBounds(t *testing.T, e *Engine, count int) {
	t.Helper()
	for _, index := range e.Indices() {
		if index < 0 || index >= count {
			t.Fatalf("matrix key %d outside [0, %d)", index, count)
		}
	}
	for _, index := range e.Materialized() {
		if _, ok := e.Style(index); !ok {
			t.Fatalf("materialized index %d has no geometry", index)
		}
	}
}

func checkCacheSound(t *testing.T, e *Engine) {
	t.Helper()
	main := e.axis.Main(e.Viewport())
	lo := e.Offset() - e.Config().CacheSize
	hi := e.Offset() + main + e.Config().CacheSize
	for _, index := range e.Materialized() {
		s, _ := e.Style(index)
		if s.End() < lo || s.MainPos > hi {
			t.Fatalf("index %d [%v, %v] outside cache window [%v, %v]", index, s.MainPos, s.End(), lo, hi)
		}
	}
}
