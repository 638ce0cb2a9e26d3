// Package masonry renders waterflow snapshots as SVG masonry pictures.
//
// # Overview
//
// Every placed item becomes a rectangle at its content-space position.
// Items holding a live element are filled with a grey derived from their
// index; items that were evicted but keep their geometry are drawn as
// dashed outlines, so the picture shows at a glance which part of the list
// is materialized. Items inside the cache window but outside the strict
// viewport get a heavier stroke.
//
// # Usage
//
//	snap := snapshot.FromEngine(e)
//	svg := masonry.RenderSVG(snap, masonry.WithViewport(), masonry.WithIDs())
//
// # Options
//
//   - [WithIDs]: label items with their index
//   - [WithViewport]: outline the viewport
//   - [WithColumns]: shade each column track
//   - [WithoutRetained]: skip evicted items
//   - [WithPadding]: margin around the picture (default 8)
package masonry
