package waterflow

import (
	"fmt"
	"math"
	"strings"
)

// Direction is the layout direction of a flow. Column directions scroll
// vertically, Row directions scroll horizontally.
type Direction int

const (
	Column Direction = iota
	Row
	ColumnReverse
	RowReverse
)

// String returns the configuration spelling of d.
func (d Direction) String() string {
	switch d {
	case Row:
		return "row"
	case ColumnReverse:
		return "column-reverse"
	case RowReverse:
		return "row-reverse"
	default:
		return "column"
	}
}

// Axis returns the main (scroll) axis of d.
func (d Direction) Axis() Axis {
	if d == Row || d == RowReverse {
		return Horizontal
	}
	return Vertical
}

// Reversed reports whether items grow from the trailing edge.
func (d Direction) Reversed() bool {
	return d == ColumnReverse || d == RowReverse
}

// ParseDirection parses "column", "row", "column-reverse" or "row-reverse".
// Underscores and case are tolerated.
func ParseDirection(s string) (Direction, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-") {
	case "", "column":
		return Column, nil
	case "row":
		return Row, nil
	case "column-reverse":
		return ColumnReverse, nil
	case "row-reverse":
		return RowReverse, nil
	}
	return Column, fmt.Errorf("unknown direction %q", s)
}

// Axis is a scroll axis.
type Axis int

const (
	Vertical Axis = iota
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Main returns the component of s along the axis.
func (a Axis) Main(s Size) float64 {
	if a == Horizontal {
		return s.Width
	}
	return s.Height
}

// Cross returns the component of s perpendicular to the axis.
func (a Axis) Cross(s Size) float64 {
	if a == Horizontal {
		return s.Height
	}
	return s.Width
}

// Compose builds a physical size from main and cross components.
func (a Axis) Compose(main, cross float64) Size {
	if a == Horizontal {
		return Size{Width: main, Height: cross}
	}
	return Size{Width: cross, Height: main}
}

// Size is a physical width/height pair.
type Size struct {
	Width  float64
	Height float64
}

// Offset is a physical scroll offset.
type Offset struct {
	X float64
	Y float64
}

// Rect is a physical rectangle.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// FlowStyle is the placed rectangle of one item in main/cross terms.
type FlowStyle struct {
	MainPos   float64
	CrossPos  float64
	MainSize  float64
	CrossSize float64
}

// End returns the main-axis position just past the item.
func (s FlowStyle) End() float64 { return s.MainPos + s.MainSize }

func (s FlowStyle) intersects(lo, hi float64) bool {
	return s.End() >= lo && s.MainPos <= hi
}

// ItemConstraint is the configuration-surface constraint in physical terms.
// A zero maximum means unbounded.
type ItemConstraint struct {
	MinWidth  float64
	MinHeight float64
	MaxWidth  float64
	MaxHeight float64
}

// ItemConstraintSize is an ItemConstraint projected onto an axis.
type ItemConstraintSize struct {
	MinCrossSize float64
	MaxCrossSize float64
	MinMainSize  float64
	MaxMainSize  float64
}

// ForAxis projects c onto axis, normalizing negative and inverted bounds.
func (c ItemConstraint) ForAxis(axis Axis) ItemConstraintSize {
	cs := ItemConstraintSize{
		MinCrossSize: c.MinWidth,
		MaxCrossSize: c.MaxWidth,
		MinMainSize:  c.MinHeight,
		MaxMainSize:  c.MaxHeight,
	}
	if axis == Horizontal {
		cs = ItemConstraintSize{
			MinCrossSize: c.MinHeight,
			MaxCrossSize: c.MaxHeight,
			MinMainSize:  c.MinWidth,
			MaxMainSize:  c.MaxWidth,
		}
	}
	cs.MinCrossSize = max(cs.MinCrossSize, 0)
	cs.MinMainSize = max(cs.MinMainSize, 0)
	if cs.MaxCrossSize > 0 && cs.MaxCrossSize < cs.MinCrossSize {
		cs.MaxCrossSize = cs.MinCrossSize
	}
	if cs.MaxMainSize > 0 && cs.MaxMainSize < cs.MinMainSize {
		cs.MaxMainSize = cs.MinMainSize
	}
	return cs
}

// ClampMain clamps a measured main size.
func (c ItemConstraintSize) ClampMain(v float64) float64 {
	return clamp(v, c.MinMainSize, c.MaxMainSize)
}

// ClampCross clamps a cross size.
func (c ItemConstraintSize) ClampCross(v float64) float64 {
	return clamp(v, c.MinCrossSize, c.MaxCrossSize)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		v = lo
	}
	if hi > 0 && v > hi {
		v = hi
	}
	return v
}

// LayoutConstraint is handed to [Item.Measure]. Cross bounds are fixed to the
// track the item lands in; main bounds come from the item constraint, with
// +Inf meaning unbounded.
type LayoutConstraint struct {
	MinSize Size
	MaxSize Size
	// Axis is the main (scroll) axis of the flow.
	Axis Axis
}

func (c ItemConstraintSize) layoutConstraint(axis Axis, cross float64) LayoutConstraint {
	cross = c.ClampCross(cross)
	maxMain := c.MaxMainSize
	if maxMain <= 0 {
		maxMain = math.Inf(1)
	}
	return LayoutConstraint{
		MinSize: axis.Compose(c.MinMainSize, cross),
		MaxSize: axis.Compose(maxMain, cross),
		Axis:    axis,
	}
}

// ScrollSource distinguishes scroll-to-index callers.
type ScrollSource int32

const (
	// SourceImmediate jumps without animation.
	SourceImmediate ScrollSource = iota
	// SourceAnimated asks the installed Animator to animate the jump.
	SourceAnimated
)

func (s ScrollSource) String() string {
	if s == SourceAnimated {
		return "animated"
	}
	return "immediate"
}
