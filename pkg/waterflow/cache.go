package waterflow

import "slices"

// DealCache releases every materialized item whose placed interval lies
// fully outside the cache window and returns how many were released.
// Geometry of released items stays in the flow matrix.
func (e *Engine) DealCache() int {
	if e.reentrant("DealCache") {
		return 0
	}
	evicted := 0
	for _, index := range e.items.indices() {
		if s, ok := e.matrix.get(index); ok && e.view.inCache(s) {
			e.track(index, s)
			continue
		}
		e.release(index)
		e.hooks.OnEvict(index)
		evicted++
	}
	if evicted > 0 {
		lo, hi := e.view.cacheWindow()
		e.logger.Debug("released items outside cache window", "count", evicted, "lo", lo, "hi", hi)
	}
	return evicted
}

// ClearFlowMatrix drops geometry for indices >= index, or all geometry when
// clearAll is set. Items whose geometry is dropped are released, the column
// table is trimmed to the surviving geometry and the supply cursor is
// rewound, so the next pass re-supplies from index.
func (e *Engine) ClearFlowMatrix(index int, clearAll bool) {
	if e.reentrant("ClearFlowMatrix") {
		return
	}
	from := e.clearMatrix(index, clearAll)
	e.logger.Debug("flow matrix cleared", "from", from, "all", from == 0)
}

// clearMatrix truncates the flow matrix and keeps every structure derived
// from it in step: live items, failures, column assignments and waterlines,
// the cursor and the footer. It returns the first dropped index.
func (e *Engine) clearMatrix(index int, clearAll bool) int {
	var dropped []int
	if clearAll || index <= 0 {
		index = 0
		dropped = e.matrix.reset()
	} else {
		dropped = e.matrix.truncate(index)
	}
	for _, i := range dropped {
		e.release(i)
	}
	for _, i := range e.items.from(index) {
		e.release(i)
	}
	for i := range e.failed {
		if i >= index {
			delete(e.failed, i)
		}
	}
	if index == 0 {
		e.cols.clearAll()
	} else {
		e.cols.trim(index, e.matrix, e.mainGap)
	}
	e.next = min(e.next, index)
	if e.next < e.total {
		e.reachedTail = false
	}
	e.footer.placed = false
	return index
}

// ClearItemsByCrossIndex empties column crossIndex, or every column when
// clearAll is set. The table is first resized to the column count the
// current template yields. Placement is sequential, so emptying one column
// rewinds the layout to the lowest index that column held; geometry from
// there on is dropped and re-supplied by the next pass.
func (e *Engine) ClearItemsByCrossIndex(crossIndex int, clearAll bool) {
	if e.reentrant("ClearItemsByCrossIndex") {
		return
	}
	tracks := e.parseTracks()
	if !slices.Equal(tracks.Sizes, e.cols.widths) {
		clearAll = true
	}
	e.applyTracks(tracks)
	if clearAll {
		e.clearMatrix(0, true)
		return
	}
	if crossIndex < 0 || crossIndex >= e.cols.count() {
		return
	}
	list := e.cols.items[crossIndex]
	if len(list) == 0 {
		return
	}
	from := e.clearMatrix(list[0], false)
	e.logger.Debug("column cleared", "column", crossIndex, "from", from)
}

// ClearLayout invalidates the layout from index onward (or entirely) and
// re-derives the columns. A change in column count or widths always clears
// everything, since surviving geometry would no longer match its track.
func (e *Engine) ClearLayout(index int, clearAll bool) {
	if e.reentrant("ClearLayout") {
		return
	}
	tracks := e.parseTracks()
	if !slices.Equal(tracks.Sizes, e.cols.widths) {
		clearAll = true
	}
	e.applyTracks(tracks)

	from := e.clearMatrix(index, clearAll)
	e.reachedTail = false

	e.logger.Debug("layout invalidated", "from", from, "all", from == 0)
	e.hooks.OnInvalidate(from, from == 0)
}

// OnDataSourceUpdated notifies the engine that items from index onward
// changed. The count is re-read and stale geometry past index is cleared.
func (e *Engine) OnDataSourceUpdated(index int) {
	if e.reentrant("OnDataSourceUpdated") {
		return
	}
	e.syncTotalCount()
	e.ClearLayout(min(max(index, 0), e.total), false)
}

func (e *Engine) relayout() {
	e.dirty = false
	e.ClearLayout(0, true)
}
