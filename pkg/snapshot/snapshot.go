// Package snapshot serializes the state of a waterflow engine to JSON.
//
// A snapshot captures everything needed to redraw a layout without the
// engine: the column trackers, every placed item in content-space physical
// coordinates, which items hold a live element, the footer and the
// viewport. Renderers in pkg/render consume snapshots rather than engines,
// so a layout computed once (and cached) can be visualized many times.
//
// # Coordinates
//
// Item rectangles are physical and relative to the content origin, not to
// the viewport. For reversed directions the main axis is mirrored against
// the content extent (or the viewport, when the content is shorter), so
// item 0 sits at the bottom (or right) edge.
// [Snapshot.ViewportRect] gives the viewport in the same space.
package snapshot

import (
	"encoding/json"
	"os"

	"github.com/matzehuels/waterflow/pkg/errors"
	"github.com/matzehuels/waterflow/pkg/waterflow"
)

// Version is the current snapshot format version.
const Version = 1

// =============================================================================
// Snapshot - Serialized Engine State
// =============================================================================

// Snapshot is the serialized state of one engine.
type Snapshot struct {
	Version     int      `json:"version"`
	Direction   string   `json:"direction"`
	Viewport    Size     `json:"viewport"`
	Offset      float64  `json:"offset"`
	Physical    Point    `json:"physical_offset"`
	Extent      float64  `json:"extent"`
	Total       int      `json:"total"`
	Next        int      `json:"next"`
	ReachedTail bool     `json:"reached_tail"`
	Columns     []Column `json:"columns"`
	Items       []Item   `json:"items"`
	Footer      *Item    `json:"footer,omitempty"`
	Visible     Range    `json:"visible"`
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point is a physical position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is a physical rectangle in content space.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Range is an inclusive index range; -1 on both ends means empty.
type Range struct {
	First int `json:"first"`
	Last  int `json:"last"`
}

// Empty reports whether the range holds no index.
func (r Range) Empty() bool { return r.First < 0 }

// Column is one column tracker.
type Column struct {
	Index  int     `json:"index"`
	Offset float64 `json:"offset"`
	Width  float64 `json:"width"`
	End    float64 `json:"end"`
	Items  []int   `json:"items"`
}

// Item is one placed item.
type Item struct {
	Index     int     `json:"index"`
	Column    int     `json:"column"`
	MainPos   float64 `json:"main_pos"`
	MainSize  float64 `json:"main_size"`
	CrossPos  float64 `json:"cross_pos"`
	CrossSize float64 `json:"cross_size"`
	Rect      Rect    `json:"rect"`

	// Materialized items hold a live element. Cached is the subset that
	// lies outside the strict viewport.
	Materialized bool `json:"materialized,omitempty"`
	Cached       bool `json:"cached,omitempty"`
}

// Horizontal reports whether the snapshot scrolls along x.
func (s Snapshot) Horizontal() bool {
	d, err := waterflow.ParseDirection(s.Direction)
	return err == nil && d.Axis() == waterflow.Horizontal
}

// Reversed reports whether item 0 sits at the far end of the content.
func (s Snapshot) Reversed() bool {
	d, err := waterflow.ParseDirection(s.Direction)
	return err == nil && d.Reversed()
}

// ViewportRect is the viewport in content space.
func (s Snapshot) ViewportRect() Rect {
	return Rect{X: s.Physical.X, Y: s.Physical.Y, Width: s.Viewport.Width, Height: s.Viewport.Height}
}

// ContentSize is the full physical size of the content: the extent along
// the main axis and the viewport along the cross axis.
func (s Snapshot) ContentSize() Size {
	if s.Horizontal() {
		return Size{Width: max(s.Extent, s.Viewport.Width), Height: s.Viewport.Height}
	}
	return Size{Width: s.Viewport.Width, Height: max(s.Extent, s.Viewport.Height)}
}

// Item returns the item at index.
func (s Snapshot) Item(index int) (Item, bool) {
	for _, it := range s.Items {
		if it.Index == index {
			return it, true
		}
	}
	return Item{}, false
}

// =============================================================================
// Capture
// =============================================================================

// FromEngine captures the current state of e. It only reads; callers run
// [waterflow.Engine.Layout] first when they want a settled state.
func FromEngine(e *waterflow.Engine) Snapshot {
	dir := e.Config().Direction
	axis := dir.Axis()
	extent := e.ContentExtent()
	vp := e.Viewport()
	off := e.GetCurrentOffset()
	first, last := e.VisibleRange()
	mirror := max(extent, axis.Main(vp))

	s := Snapshot{
		Version:     Version,
		Direction:   dir.String(),
		Viewport:    Size{Width: vp.Width, Height: vp.Height},
		Offset:      e.Offset(),
		Physical:    Point{X: off.X, Y: off.Y},
		Extent:      extent,
		Total:       e.TotalCount(),
		Next:        e.NextIndex(),
		ReachedTail: e.ReachedTail(),
		Visible:     Range{First: first, Last: last},
	}

	column := make(map[int]int)
	for _, c := range e.Columns() {
		s.Columns = append(s.Columns, Column{
			Index:  c.Index,
			Offset: c.Offset,
			Width:  c.Width,
			End:    c.End,
			Items:  c.Items,
		})
		for _, i := range c.Items {
			column[i] = c.Index
		}
	}

	cached := make(map[int]bool)
	for _, i := range e.CacheIndices() {
		cached[i] = true
	}
	for _, i := range e.Indices() {
		st, _ := e.Style(i)
		col, ok := column[i]
		if !ok {
			col = -1
		}
		it := newItem(i, col, st, axis, dir.Reversed(), mirror)
		it.Materialized = e.IsMaterialized(i)
		it.Cached = cached[i]
		s.Items = append(s.Items, it)
	}

	if st, ok := e.Footer(); ok {
		f := newItem(-1, -1, st, axis, dir.Reversed(), mirror)
		s.Footer = &f
	}
	return s
}

func newItem(index, col int, st waterflow.FlowStyle, axis waterflow.Axis, reversed bool, mirror float64) Item {
	main := st.MainPos
	if reversed {
		main = mirror - st.End()
	}
	r := Rect{X: st.CrossPos, Y: main, Width: st.CrossSize, Height: st.MainSize}
	if axis == waterflow.Horizontal {
		r = Rect{X: main, Y: st.CrossPos, Width: st.MainSize, Height: st.CrossSize}
	}
	return Item{
		Index:     index,
		Column:    col,
		MainPos:   st.MainPos,
		MainSize:  st.MainSize,
		CrossPos:  st.CrossPos,
		CrossSize: st.CrossSize,
		Rect:      r,
	}
}

// =============================================================================
// Serialization API
// =============================================================================

// Marshal serializes a snapshot to pretty-printed JSON.
func Marshal(s Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal snapshot")
	}
	return data, nil
}

// Unmarshal parses JSON into a snapshot and checks the format version.
func Unmarshal(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal snapshot")
	}
	if s.Version != Version {
		return Snapshot{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported snapshot version %d (want %d)", s.Version, Version)
	}
	if _, err := waterflow.ParseDirection(s.Direction); err != nil {
		return Snapshot{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "snapshot direction")
	}
	return s, nil
}

// WriteFile writes a snapshot to a JSON file.
func WriteFile(s Snapshot, path string) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a snapshot from a JSON file.
func ReadFile(path string) (Snapshot, error) {
	if err := errors.ValidateFilePath(path); err != nil {
		return Snapshot{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Snapshot{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "snapshot %s not found", path)
	}
	if err != nil {
		return Snapshot{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return Unmarshal(data)
}
