package waterflow

// footerState tracks the one-shot trailing footer. The handle survives
// invalidation; only its geometry is forgotten.
type footerState struct {
	requested bool
	item      Item
	placed    bool
	style     FlowStyle
}

// placeFooter requests (once) and places the footer after the tallest
// column. It does nothing until the tail has been reached.
func (e *Engine) placeFooter() {
	if !e.reachedTail || e.footer.placed {
		return
	}
	if !e.footer.requested {
		e.footer.requested = true
		var (
			item Item
			ok   bool
		)
		e.callout(func() { item, ok = e.gen.RequestFooter() })
		if ok && item != nil {
			e.footer.item = item
		}
	}
	if e.footer.item == nil {
		return
	}

	cross := e.constraint.ClampCross(e.view.crossSize)
	main := e.measure(e.footer.item, cross)
	e.footer.style = FlowStyle{
		MainPos:   e.cols.contentEnd(e.mainGap),
		MainSize:  main,
		CrossSize: cross,
	}
	e.footer.placed = true
	e.logger.Debug("footer placed", "pos", e.footer.style.MainPos, "size", main)
}

// Footer returns the footer geometry once it has been placed.
func (e *Engine) Footer() (FlowStyle, bool) {
	return e.footer.style, e.footer.placed
}

// FooterRect is the physical counterpart of [Engine.Footer].
func (e *Engine) FooterRect() (Rect, bool) {
	if !e.footer.placed {
		return Rect{}, false
	}
	return e.rect(e.footer.style), true
}
