package waterflow

// viewport is the visible window in logical main-axis coordinates, where
// item 0 starts at 0 regardless of direction.
type viewport struct {
	offset    float64
	mainSize  float64
	crossSize float64
	cacheSize float64
}

func (v viewport) end() float64 { return v.offset + v.mainSize }

// cacheWindow is the viewport widened by the cache margin on both sides.
func (v viewport) cacheWindow() (lo, hi float64) {
	return v.offset - v.cacheSize, v.end() + v.cacheSize
}

// visible excludes items that only touch the viewport edge.
func (v viewport) visible(s FlowStyle) bool {
	return s.End() > v.offset && s.MainPos < v.end()
}

func (v viewport) inCache(s FlowStyle) bool {
	lo, hi := v.cacheWindow()
	return s.intersects(lo, hi)
}
