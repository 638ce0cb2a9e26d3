package waterflow

import "time"

// Predictor walks predictive layout work one unit at a time. Each call to
// Next either rebuilds one released item inside the cache window or supplies
// one new item while the waterline is short of the cache window end.
type Predictor struct {
	e *Engine
}

// Predictor returns an iterator over the pending predictive work.
func (e *Engine) Predictor() *Predictor { return &Predictor{e: e} }

// Next performs one unit of work and reports whether there was any.
func (p *Predictor) Next() bool {
	e := p.e
	if e.inCallback {
		return false
	}
	if e.dirty {
		e.relayout()
	}
	lo, hi := e.view.cacheWindow()
	if index, ok := e.retained(lo, hi, false); ok {
		e.rematerialize(index)
		return true
	}
	if e.next < e.total && e.cols.minEnd() < hi {
		e.supplyOne()
		e.markTail()
		return true
	}
	e.markTail()
	return false
}

// OnPredictLayout spends at most deadline on predictive work and returns the
// number of steps taken. The loop stops before a step whose cost, judged by
// the previous step, would overrun the deadline. A non-positive deadline
// does nothing.
func (e *Engine) OnPredictLayout(deadline time.Duration) int {
	if deadline <= 0 || e.reentrant("OnPredictLayout") {
		return 0
	}
	p := e.Predictor()
	start := e.now()
	var (
		last  time.Duration
		steps int
	)
	for {
		before := e.now()
		if before.Sub(start)+last > deadline {
			break
		}
		if !p.Next() {
			break
		}
		last = e.now().Sub(before)
		steps++
	}
	if e.reachedTail {
		e.placeFooter()
	}
	if steps > 0 {
		e.hooks.OnPredict(steps, e.now().Sub(start))
	}
	return steps
}
