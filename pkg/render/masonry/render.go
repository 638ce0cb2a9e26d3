package masonry

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/waterflow/pkg/snapshot"
)

const (
	greyMin = 0x90
	greyMax = 0xe0

	retainedStroke = "#9a9a9a"
	viewportStroke = "#d9480f"
	footerFill     = "#e7f5ff"
)

// RenderOption configures [RenderSVG].
type RenderOption func(*renderer)

type renderer struct {
	ids      bool
	viewport bool
	columns  bool
	retained bool
	padding  float64
}

// WithIDs labels every item with its index.
func WithIDs() RenderOption { return func(r *renderer) { r.ids = true } }

// WithViewport outlines the viewport.
func WithViewport() RenderOption { return func(r *renderer) { r.viewport = true } }

// WithColumns draws a faint guide behind every column track.
func WithColumns() RenderOption { return func(r *renderer) { r.columns = true } }

// WithoutRetained hides items whose element was released.
func WithoutRetained() RenderOption { return func(r *renderer) { r.retained = false } }

// WithPadding adds a margin around the picture.
func WithPadding(p float64) RenderOption {
	return func(r *renderer) { r.padding = max(p, 0) }
}

func newRenderer(opts ...RenderOption) renderer {
	r := renderer{retained: true, padding: 8}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws s as an SVG document.
func RenderSVG(s snapshot.Snapshot, opts ...RenderOption) []byte {
	r := newRenderer(opts...)
	size := s.ContentSize()
	w, h := size.Width+2*r.padding, size.Height+2*r.padding

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	buf.WriteString("  <style>\n")
	buf.WriteString("    .item { stroke: #333; stroke-width: 1; }\n")
	buf.WriteString("    .item.retained { fill: none; stroke-dasharray: 4 3; }\n")
	buf.WriteString("    .item.cached { stroke-width: 2; }\n")
	buf.WriteString("    .label { font-family: monospace; font-size: 11px; fill: #111; text-anchor: middle; dominant-baseline: central; }\n")
	buf.WriteString("  </style>\n")
	fmt.Fprintf(&buf, `  <g transform="translate(%.1f %.1f)">`+"\n", r.padding, r.padding)

	if r.columns {
		renderColumns(&buf, s, size)
	}
	for _, it := range s.Items {
		if !it.Materialized && !r.retained {
			continue
		}
		renderItem(&buf, it, r.ids)
	}
	if s.Footer != nil {
		f := s.Footer.Rect
		fmt.Fprintf(&buf, `    <rect class="footer" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#1971c2"/>`+"\n",
			f.X, f.Y, f.Width, f.Height, footerFill)
	}
	if r.viewport {
		v := s.ViewportRect()
		fmt.Fprintf(&buf, `    <rect class="viewport" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="3"/>`+"\n",
			v.X, v.Y, v.Width, v.Height, viewportStroke)
	}

	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderColumns(buf *bytes.Buffer, s snapshot.Snapshot, size snapshot.Size) {
	for _, c := range s.Columns {
		x, y, w, h := c.Offset, 0.0, c.Width, size.Height
		if s.Horizontal() {
			x, y, w, h = 0, c.Offset, size.Width, c.Width
		}
		fmt.Fprintf(buf, `    <rect class="column" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#f8f9fa"/>`+"\n", x, y, w, h)
	}
}

func renderItem(buf *bytes.Buffer, it snapshot.Item, ids bool) {
	r := it.Rect
	class, fill := "item", greyForIndex(it.Index)
	switch {
	case !it.Materialized:
		class, fill = "item retained", "none"
	case it.Cached:
		class = "item cached"
	}
	stroke := ""
	if !it.Materialized {
		stroke = fmt.Sprintf(` stroke="%s"`, retainedStroke)
	}
	fmt.Fprintf(buf, `    <rect id="item-%d" class="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"%s/>`+"\n",
		it.Index, class, r.X, r.Y, r.Width, r.Height, fill, stroke)
	if ids {
		fmt.Fprintf(buf, `    <text class="label" x="%.1f" y="%.1f">%d</text>`+"\n", r.X+r.Width/2, r.Y+r.Height/2, it.Index)
	}
}

// greyForIndex maps index deterministically into [greyMin, greyMax].
func greyForIndex(index int) string {
	h := uint32(index)*2654435761 + 0x9e3779b9
	h ^= h >> 16
	v := greyMin + int(h%uint32(greyMax-greyMin+1))
	return fmt.Sprintf("#%02x%02x%02x", v, v, v)
}
