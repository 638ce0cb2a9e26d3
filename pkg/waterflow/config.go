package waterflow

import "math"

// Config is the layout configuration of an engine. It is treated as a value
// object: the engine copies it and never mutates the caller's copy.
type Config struct {
	ColumnsTemplate string
	RowsTemplate    string
	ColumnsGap      float64
	RowsGap         float64
	ItemConstraint  ItemConstraint
	Direction       Direction
	// CacheSize is the main-axis margin kept materialized on each side of
	// the viewport.
	CacheSize float64
}

// DefaultConfig returns a two-column vertical flow with no gaps.
func DefaultConfig() Config {
	return Config{
		ColumnsTemplate: "1fr 1fr",
		RowsTemplate:    "1fr",
		Direction:       Column,
	}
}

func (c Config) normalized() Config {
	c.ColumnsGap = nonNegative(c.ColumnsGap)
	c.RowsGap = nonNegative(c.RowsGap)
	c.CacheSize = nonNegative(c.CacheSize)
	return c
}

// crossTemplate returns the template string that divides the cross axis.
func (c Config) crossTemplate() string {
	if c.Direction.Axis() == Horizontal {
		return c.RowsTemplate
	}
	return c.ColumnsTemplate
}

// gaps returns the (main, cross) gaps for the configured direction.
func (c Config) gaps() (main, cross float64) {
	if c.Direction.Axis() == Horizontal {
		return c.ColumnsGap, c.RowsGap
	}
	return c.RowsGap, c.ColumnsGap
}

// layoutEqual reports whether a and b produce the same geometry. CacheSize
// only moves the cache window and does not invalidate placed items.
func layoutEqual(a, b Config) bool {
	a.CacheSize, b.CacheSize = 0, 0
	return a == b
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
