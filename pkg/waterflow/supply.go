package waterflow

// SupplyItems advances the flow matrix from start until every column reaches
// target or the data source is exhausted, and returns the number of items
// committed.
//
// The cursor only moves forward: a start below it is raised to the cursor so
// that placed indices are never measured twice. Items the generator fails to
// build are skipped without consuming column space.
func (e *Engine) SupplyItems(start int, target float64) int {
	if e.reentrant("SupplyItems") {
		return 0
	}
	e.syncTotalCount()
	if e.dirty {
		e.relayout()
	}
	if start != e.next {
		e.logger.Debug("supply start normalized to cursor", "start", start, "cursor", e.next)
	}
	return e.supply(target)
}

// maxSupplyPerPass bounds the items one supply pass may place. Items that
// do not advance their column (zero size, no gap) would otherwise never lift
// the waterline and drain the whole data source in a single pass; the rest
// is picked up by the next pass or by predictive layout.
const maxSupplyPerPass = 1024

func (e *Engine) supply(target float64) int {
	began := e.now()
	placed, steps := 0, 0
	for e.next < e.total && e.cols.minEnd() < target {
		if steps == maxSupplyPerPass {
			e.logger.Debug("supply pass limit reached", "cursor", e.next, "waterline", e.cols.minEnd(), "target", target)
			break
		}
		steps++
		if e.supplyOne() {
			placed++
		}
	}
	e.markTail()
	if placed > 0 {
		e.hooks.OnSupply(placed, e.now().Sub(began))
	}
	return placed
}

// supplyOne places the item at the cursor into the shortest column. It
// reports false when the generator failed for that index.
func (e *Engine) supplyOne() bool {
	index := e.next
	e.next++

	item, ok := e.build(index)
	if !ok {
		e.failed[index] = struct{}{}
		e.logger.Warn("item generation failed, skipping", "index", index)
		e.hooks.OnGenerationFailed(index)
		return false
	}

	col := e.cols.shortest()
	width := e.cols.widths[col]
	main := e.measure(item, width)
	style := FlowStyle{
		MainPos:   e.cols.ends[col],
		CrossPos:  e.cols.offsets[col],
		MainSize:  main,
		CrossSize: width,
	}
	e.matrix.put(index, style)
	e.cols.place(col, index, main+e.mainGap)
	e.items.put(index, item)
	e.track(index, style)
	return true
}

func (e *Engine) markTail() {
	if e.next >= e.total {
		e.reachedTail = true
	}
}

// track keeps the cache index set in step with the viewport for a
// materialized item.
func (e *Engine) track(index int, s FlowStyle) {
	if e.view.visible(s) {
		delete(e.cached, index)
		return
	}
	e.cached[index] = struct{}{}
}

// rematerialize rebuilds a released item from its retained geometry. The
// item is not measured again.
func (e *Engine) rematerialize(index int) bool {
	s, ok := e.matrix.get(index)
	if !ok || e.items.get(index) != nil {
		return false
	}
	item, ok := e.build(index)
	if !ok {
		e.failed[index] = struct{}{}
		e.logger.Warn("item rebuild failed", "index", index)
		e.hooks.OnGenerationFailed(index)
		return false
	}
	e.items.put(index, item)
	e.track(index, s)
	return true
}

// retained returns the first placed, released index inside [lo, hi].
func (e *Engine) retained(lo, hi float64, visibleOnly bool) (int, bool) {
	for _, index := range e.cols.window(e.matrix, lo, hi) {
		if e.items.get(index) != nil {
			continue
		}
		if _, bad := e.failed[index]; bad {
			continue
		}
		if visibleOnly {
			if s, _ := e.matrix.get(index); !e.view.visible(s) {
				continue
			}
		}
		return index, true
	}
	return 0, false
}

// materializeVisible rebuilds every released item intersecting the viewport.
func (e *Engine) materializeVisible() int {
	n := 0
	for {
		index, ok := e.retained(e.view.offset, e.view.end(), true)
		if !ok {
			return n
		}
		if e.rematerialize(index) {
			n++
		}
	}
}
