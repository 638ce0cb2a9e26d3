// Package render draws waterflow snapshots.
//
// # Overview
//
// Renderers consume a [snapshot.Snapshot] rather than a live engine, so a
// layout computed once can be drawn any number of times:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Masonry pictures of the placed rectangles (in [masonry] subpackage)
//   - Column-chain diagrams via Graphviz (in [columns] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). [Convert] picks one by
// [Format]:
//
//	svg := masonry.RenderSVG(snap, masonry.WithIDs())
//	png, err := render.Convert(svg, render.FormatPNG, 2.0)
//
// # Masonry
//
// The [masonry] subpackage draws every placed item at its content-space
// position, with materialized items filled and retained-geometry items
// outlined, plus the viewport and an optional footer.
//
// # Columns
//
// The [columns] subpackage emits one Graphviz cluster per column with edges
// along each column's item chain, which makes the shortest-column choice
// easy to follow:
//
//	dot := columns.ToDOT(snap, columns.Options{})
//	svg, err := columns.RenderSVG(dot)
//
// [snapshot.Snapshot]: github.com/matzehuels/waterflow/pkg/snapshot#Snapshot
// [masonry]: github.com/matzehuels/waterflow/pkg/render/masonry
// [columns]: github.com/matzehuels/waterflow/pkg/render/columns
package render
