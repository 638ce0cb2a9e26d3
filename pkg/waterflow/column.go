package waterflow

import (
	"math"
	"slices"
	"sort"
)

// columnTracker holds per-column waterlines, widths and assignments.
type columnTracker struct {
	ends    []float64
	widths  []float64
	offsets []float64
	items   [][]int
}

// setTracks installs new track geometry, resizing bookkeeping to the new
// count. Existing assignments of surviving columns are kept.
func (c *columnTracker) setTracks(widths, offsets []float64) {
	n := len(widths)
	c.widths = slices.Clone(widths)
	c.offsets = slices.Clone(offsets)
	if len(c.ends) > n {
		c.ends = c.ends[:n]
		c.items = c.items[:n]
	}
	for len(c.ends) < n {
		c.ends = append(c.ends, 0)
		c.items = append(c.items, nil)
	}
}

func (c *columnTracker) count() int { return len(c.widths) }

// shortest returns the column with the smallest waterline, lowest index on ties.
func (c *columnTracker) shortest() int {
	best := 0
	for i := 1; i < len(c.ends); i++ {
		if c.ends[i] < c.ends[best] {
			best = i
		}
	}
	return best
}

func (c *columnTracker) minEnd() float64 {
	if len(c.ends) == 0 {
		return math.Inf(1)
	}
	return slices.Min(c.ends)
}

// contentEnd is the largest column end excluding the trailing main gap.
func (c *columnTracker) contentEnd(gap float64) float64 {
	end := 0.0
	for i, e := range c.ends {
		if len(c.items[i]) > 0 {
			end = max(end, e-gap)
		}
	}
	return end
}

func (c *columnTracker) place(col, index int, advance float64) {
	c.ends[col] += advance
	c.items[col] = append(c.items[col], index)
}

// clearAll drops every assignment and waterline.
func (c *columnTracker) clearAll() {
	for i := range c.ends {
		c.ends[i] = 0
		c.items[i] = nil
	}
}

// trim drops assignments >= from and rewinds each waterline to the end of
// its last surviving item.
func (c *columnTracker) trim(from int, m *flowMatrix, gap float64) {
	for col, list := range c.items {
		keep := sort.SearchInts(list, from)
		c.items[col] = list[:keep]
		c.ends[col] = 0
		if keep > 0 {
			if s, ok := m.get(list[keep-1]); ok {
				c.ends[col] = s.End() + gap
			}
		}
	}
}

// window returns placed indices intersecting [lo, hi] in ascending order.
// Items within one column are stacked, so each column is binary searched.
func (c *columnTracker) window(m *flowMatrix, lo, hi float64) []int {
	var out []int
	for _, list := range c.items {
		start := sort.Search(len(list), func(i int) bool {
			s, _ := m.get(list[i])
			return s.End() >= lo
		})
		for _, index := range list[start:] {
			s, _ := m.get(index)
			if s.MainPos > hi {
				break
			}
			out = append(out, index)
		}
	}
	slices.Sort(out)
	return out
}

// ColumnInfo is a read-only view of one column.
type ColumnInfo struct {
	Index  int
	Offset float64
	Width  float64
	End    float64
	Items  []int
}

func (c *columnTracker) info() []ColumnInfo {
	out := make([]ColumnInfo, len(c.widths))
	for i := range c.widths {
		out[i] = ColumnInfo{
			Index:  i,
			Offset: c.offsets[i],
			Width:  c.widths[i],
			End:    c.ends[i],
			Items:  slices.Clone(c.items[i]),
		}
	}
	return out
}
