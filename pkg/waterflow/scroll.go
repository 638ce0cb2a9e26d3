package waterflow

// PositionController is the scroll-position contract the engine exposes to
// an external scroll container.
type PositionController interface {
	JumpTo(index int32, source int32)
	GetScrollDirection() Axis
	GetCurrentOffset() Offset
}

var _ PositionController = (*Engine)(nil)

// JumpTo records a jump target for the next layout pass. A later call
// replaces an earlier pending one.
func (e *Engine) JumpTo(index int32, source int32) {
	e.pending = int(index)
	e.pendingSource = ScrollSource(source)
	e.hasPending = true
}

// GetScrollDirection returns the main axis.
func (e *Engine) GetScrollDirection() Axis { return e.axis }

// GetCurrentOffset returns the physical scroll offset.
func (e *Engine) GetCurrentOffset() Offset { return e.physicalOffset(e.view.offset) }

// ScrollBy moves the viewport by delta along the logical main axis, towards
// higher indices when positive. The result is clamped at the start and, once
// the tail is known, at the end. Call [Engine.Layout] to supply and recycle
// for the new position.
func (e *Engine) ScrollBy(delta float64) {
	if e.reentrant("ScrollBy") {
		return
	}
	e.view.offset = e.clampLogical(e.view.offset + delta)
}

type events struct {
	onReachStart  func()
	onReachEnd    func()
	onScrollIndex func(first, last int)

	atStart bool
	atEnd   bool
	first   int
	last    int
}

func newEvents() events { return events{first: -1, last: -1} }

// fireEvents reports edge and visible-range transitions since the last pass.
func (e *Engine) fireEvents() {
	ev := &e.events

	atStart := e.view.offset <= 0
	if atStart && !ev.atStart && ev.onReachStart != nil {
		ev.onReachStart()
	}
	ev.atStart = atStart

	atEnd := e.reachedTail && e.view.end() >= e.ContentExtent()
	if atEnd && !ev.atEnd && ev.onReachEnd != nil {
		ev.onReachEnd()
	}
	ev.atEnd = atEnd

	first, last := e.VisibleRange()
	if (first != ev.first || last != ev.last) && ev.onScrollIndex != nil {
		ev.onScrollIndex(first, last)
	}
	ev.first, ev.last = first, last
}
