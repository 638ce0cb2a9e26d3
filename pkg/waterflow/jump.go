package waterflow

import (
	"github.com/matzehuels/waterflow/pkg/errors"
)

// Animator is an external scroll controller that animates jumps. It receives
// the physical offsets before and after the jump; the engine commits the
// target offset once Animate returns.
type Animator interface {
	Animate(from, to Offset)
}

// ScrollToIndex moves the viewport so that index is presented at its start
// (its trailing edge for reversed directions). Unplaced indices are supplied
// first. Out-of-range indices return an INDEX_OUT_OF_RANGE error and leave
// the viewport untouched; an index the generator failed to build returns
// GENERATION_FAILED.
func (e *Engine) ScrollToIndex(index int, source ScrollSource) error {
	if e.inCallback {
		e.logger.Warn("ignoring re-entrant engine call from generator", "op", "ScrollToIndex")
		return errors.New(errors.ErrCodeReentrant, "ScrollToIndex called from a generator callback")
	}
	e.syncTotalCount()
	if e.dirty {
		e.relayout()
	}
	if index < 0 || index >= e.total {
		return errors.New(errors.ErrCodeIndexOutOfRange, "index %d out of range [0, %d)", index, e.total)
	}

	if !e.matrix.has(index) {
		// Items passed on the way are measured for their geometry only;
		// whatever the target's window needs is rebuilt after the move.
		supplied, released := 0, 0
		for e.next <= index && e.next < e.total {
			at := e.next
			if !e.supplyOne() {
				continue
			}
			supplied++
			if s, _ := e.matrix.get(at); at < index && !e.view.inCache(s) {
				e.release(at)
				released++
			}
		}
		e.markTail()
		if supplied > 0 {
			e.logger.Debug("supplied up to jump target", "index", index, "placed", supplied, "released", released)
		}
	}
	s, ok := e.matrix.get(index)
	if !ok {
		return errors.New(errors.ErrCodeGenerationFailed, "item %d could not be generated", index)
	}

	to := alignedOffset(s, e.view.mainSize, e.cfg.Direction.Reversed())
	e.supply(to + e.view.mainSize)
	e.placeFooter()
	to = e.clampLogical(to)

	if source == SourceAnimated && e.animator != nil {
		e.animator.Animate(e.physicalOffset(e.view.offset), e.physicalOffset(to))
	}
	e.view.offset = to
	e.materializeVisible()
	e.DealCache()

	e.logger.Debug("jumped to index", "index", index, "offset", to, "source", source)
	e.hooks.OnJump(index, to)
	return nil
}

// alignedOffset is the logical viewport offset presenting s. Reversed flows
// line up the trailing edge, which exposes E - (mainPos + mainSize).
func alignedOffset(s FlowStyle, viewMain float64, reversed bool) float64 {
	if reversed {
		return s.End() - viewMain
	}
	return s.MainPos
}

// clampLogical keeps an offset at or above zero and, once the tail is known,
// at or below the last full viewport.
func (e *Engine) clampLogical(offset float64) float64 {
	if e.reachedTail {
		offset = min(offset, e.ContentExtent()-e.view.mainSize)
	}
	return max(offset, 0)
}

// physicalOffset converts a logical offset into the offset a scroll
// container sees. Reversed flows measure from the trailing edge.
func (e *Engine) physicalOffset(logical float64) Offset {
	main := logical
	if e.cfg.Direction.Reversed() {
		main = max(e.ContentExtent()-logical-e.view.mainSize, 0)
	}
	if e.axis == Horizontal {
		return Offset{X: main}
	}
	return Offset{Y: main}
}
