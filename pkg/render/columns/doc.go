// Package columns renders waterflow snapshots as column-chain diagrams.
//
// # Overview
//
// Each column becomes a Graphviz cluster whose nodes are the items placed in
// it, linked in placement order. Reading across clusters shows how the
// shortest-column rule distributed the list. Evicted items are dashed and
// grey; items held for the cache window get a heavier outline.
//
// # Usage
//
//	dot := columns.ToDOT(snap, columns.Options{Detailed: true})
//	svg, err := columns.RenderSVG(ctx, dot)
//
// For PDF or PNG output, convert the SVG:
//
//	png, err := render.Convert(svg, render.FormatPNG, 2.0)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package columns
