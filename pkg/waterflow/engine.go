package waterflow

import (
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/waterflow/pkg/observability"
	"github.com/matzehuels/waterflow/pkg/template"
)

// Engine is a virtualized waterfall layout engine. It owns the flow matrix,
// the column trackers and every materialized item. An Engine must only be
// used from one goroutine.
type Engine struct {
	gen      ItemGenerator
	cfg      Config
	logger   *log.Logger
	hooks    observability.LayoutHooks
	now      func() time.Time
	animator Animator

	axis       Axis
	mainGap    float64
	crossGap   float64
	constraint ItemConstraintSize

	matrix *flowMatrix
	cols   columnTracker
	view   viewport
	items  arena
	cached map[int]struct{}
	failed map[int]struct{}

	total       int
	next        int
	reachedTail bool
	footer      footerState
	dirty       bool
	inCallback  bool

	pending       int
	pendingSource ScrollSource
	hasPending    bool

	events events
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithHooks installs layout event hooks.
func WithHooks(h observability.LayoutHooks) Option {
	return func(e *Engine) {
		if h != nil {
			e.hooks = h
		}
	}
}

// WithClock replaces time.Now, which bounds predictive layout.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithAnimator installs the scroll controller used for animated jumps.
func WithAnimator(a Animator) Option {
	return func(e *Engine) { e.animator = a }
}

// WithOnReachStart registers a callback fired when the viewport reaches the start.
func WithOnReachStart(fn func()) Option {
	return func(e *Engine) { e.events.onReachStart = fn }
}

// WithOnReachEnd registers a callback fired when the viewport reaches the end
// of a fully supplied flow.
func WithOnReachEnd(fn func()) Option {
	return func(e *Engine) { e.events.onReachEnd = fn }
}

// WithOnScrollIndex registers a callback fired when the first or last
// visible index changes.
func WithOnScrollIndex(fn func(first, last int)) Option {
	return func(e *Engine) { e.events.onScrollIndex = fn }
}

// New creates an engine for gen with the given configuration and viewport
// size. No generator method is called until the first layout pass.
func New(gen ItemGenerator, cfg Config, size Size, opts ...Option) *Engine {
	e := &Engine{
		gen:    gen,
		cfg:    cfg.normalized(),
		logger: log.Default(),
		hooks:  observability.NoopLayoutHooks{},
		now:    time.Now,
		matrix: newFlowMatrix(),
		cached: make(map[int]struct{}),
		failed: make(map[int]struct{}),
		events: newEvents(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.setSize(size)
	e.view.cacheSize = e.cfg.CacheSize
	e.applyTracks(e.parseTracks())
	return e
}

// =============================================================================
// Configuration
// =============================================================================

// Config returns the normalized configuration.
func (e *Engine) Config() Config { return e.cfg }

// SetConfig replaces the configuration. Any change affecting geometry
// invalidates the whole layout on the next pass.
func (e *Engine) SetConfig(cfg Config) {
	cfg = cfg.normalized()
	if !layoutEqual(cfg, e.cfg) {
		e.dirty = true
	}
	e.cfg = cfg
	e.view.cacheSize = cfg.CacheSize
	e.setSize(e.Viewport())
}

// Viewport returns the current physical viewport size.
func (e *Engine) Viewport() Size {
	return e.axis.Compose(e.view.mainSize, e.view.crossSize)
}

// SetViewport resizes the viewport. A cross-axis change re-derives the
// columns and invalidates the layout on the next pass.
func (e *Engine) SetViewport(size Size) {
	cross := e.view.crossSize
	e.setSize(size)
	if e.view.crossSize != cross {
		e.dirty = true
	}
}

func (e *Engine) setSize(size Size) {
	e.axis = e.cfg.Direction.Axis()
	e.view.mainSize = nonNegative(e.axis.Main(size))
	e.view.crossSize = nonNegative(e.axis.Cross(size))
}

func (e *Engine) parseTracks() template.Tracks {
	e.mainGap, e.crossGap = e.cfg.gaps()
	e.constraint = e.cfg.ItemConstraint.ForAxis(e.axis)
	tmpl := e.cfg.crossTemplate()
	tracks, err := template.ParseStrict(tmpl, e.view.crossSize, e.crossGap)
	if err != nil {
		e.logger.Warn("invalid template, using a single track", "template", tmpl, "err", err)
	}
	return tracks
}

func (e *Engine) applyTracks(t template.Tracks) {
	e.cols.setTracks(t.Sizes, template.Offsets(t.Sizes, e.crossGap))
}

// =============================================================================
// Layout pass
// =============================================================================

// Layout runs one frame's layout pass: it syncs the item count, re-derives
// the columns if the configuration or cross size changed, resolves a pending
// jump, supplies items up to the viewport end, rebuilds released items that
// came back into view, places the footer, releases items outside the cache
// window and fires scroll events.
func (e *Engine) Layout() {
	if e.reentrant("Layout") {
		return
	}
	e.syncTotalCount()
	if e.dirty {
		e.relayout()
	}
	if e.hasPending {
		index, source := e.pending, e.pendingSource
		e.hasPending = false
		if err := e.ScrollToIndex(index, source); err != nil {
			e.logger.Debug("pending jump dropped", "index", index, "err", err)
		}
	}

	e.supply(e.view.end())
	e.placeFooter()
	e.view.offset = e.clampLogical(e.view.offset)
	e.materializeVisible()
	e.DealCache()
	e.fireEvents()
}

// =============================================================================
// Generator calls
// =============================================================================

// reentrant reports (and logs) a call made from inside a generator callback.
func (e *Engine) reentrant(op string) bool {
	if e.inCallback {
		e.logger.Warn("ignoring re-entrant engine call from generator", "op", op)
		return true
	}
	return false
}

func (e *Engine) callout(fn func()) {
	e.inCallback = true
	defer func() { e.inCallback = false }()
	fn()
}

func (e *Engine) build(index int) (item Item, ok bool) {
	e.callout(func() { item, ok = e.gen.BuildChildByIndex(index) })
	return item, ok && item != nil
}

func (e *Engine) measure(item Item, cross float64) float64 {
	var size Size
	lc := e.constraint.layoutConstraint(e.axis, cross)
	e.callout(func() { size = item.Measure(lc) })
	return e.constraint.ClampMain(e.axis.Main(size))
}

// release returns a materialized item to the generator.
func (e *Engine) release(index int) {
	if !e.items.take(index) {
		return
	}
	delete(e.cached, index)
	e.callout(func() { e.gen.DeleteChildByIndex(index) })
}

// syncTotalCount refreshes the item count and drops geometry that now lies
// past the end of the data source.
func (e *Engine) syncTotalCount() {
	var total int
	e.callout(func() { total = e.gen.GetTotalCount() })
	total = max(total, 0)

	prev := e.total
	e.total = total
	if last, ok := e.matrix.last(); (ok && last >= total) || e.next > total {
		e.logger.Debug("item count shrank below placed items", "count", total, "previous", prev)
		e.ClearLayout(total, false)
	}
	if total > prev && e.reachedTail && e.next < total {
		e.reachedTail = false
		e.footer.placed = false
	}
}

// =============================================================================
// Queries
// =============================================================================

// TotalCount returns the item count seen by the last layout pass.
func (e *Engine) TotalCount() int { return e.total }

// Style returns the placed geometry of index.
func (e *Engine) Style(index int) (FlowStyle, bool) { return e.matrix.get(index) }

// Indices returns every placed index in ascending order.
func (e *Engine) Indices() []int { return e.matrix.indices() }

// Columns returns a snapshot of the column trackers.
func (e *Engine) Columns() []ColumnInfo { return e.cols.info() }

// Materialized returns the indices currently holding a live item.
func (e *Engine) Materialized() []int { return e.items.indices() }

// IsMaterialized reports whether index holds a live item.
func (e *Engine) IsMaterialized(index int) bool { return e.items.get(index) != nil }

// CacheIndices returns materialized indices that lie outside the strict viewport.
func (e *Engine) CacheIndices() []int {
	out := make([]int, 0, len(e.cached))
	for i := range e.cached {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// ReachedTail reports whether every item has been supplied.
func (e *Engine) ReachedTail() bool { return e.reachedTail }

// NextIndex returns the next index the supply engine will place.
func (e *Engine) NextIndex() int { return e.next }

// Offset returns the logical main-axis offset of the viewport start.
func (e *Engine) Offset() float64 { return e.view.offset }

// ContentExtent returns the main-axis size of everything placed so far,
// footer included.
func (e *Engine) ContentExtent() float64 {
	end := e.cols.contentEnd(e.mainGap)
	if e.footer.placed {
		end = max(end, e.footer.style.End())
	}
	return end
}

// Rect returns the physical rectangle of index relative to the viewport
// origin, honoring reversed directions.
func (e *Engine) Rect(index int) (Rect, bool) {
	s, ok := e.matrix.get(index)
	if !ok {
		return Rect{}, false
	}
	return e.rect(s), true
}

func (e *Engine) rect(s FlowStyle) Rect {
	main := s.MainPos - e.view.offset
	if e.cfg.Direction.Reversed() {
		main = e.view.end() - s.End()
	}
	if e.axis == Horizontal {
		return Rect{X: main, Y: s.CrossPos, Width: s.MainSize, Height: s.CrossSize}
	}
	return Rect{X: s.CrossPos, Y: main, Width: s.CrossSize, Height: s.MainSize}
}

// VisibleRange returns the lowest and highest indices intersecting the
// viewport, or (-1, -1) when nothing is visible.
func (e *Engine) VisibleRange() (first, last int) {
	first, last = -1, -1
	for _, index := range e.cols.window(e.matrix, e.view.offset, e.view.end()) {
		s, _ := e.matrix.get(index)
		if !e.view.visible(s) {
			continue
		}
		if first < 0 {
			first = index
		}
		last = index
	}
	return first, last
}
