// Package waterflow implements a virtualized waterfall (masonry) layout
// engine.
//
// # Overview
//
// A waterfall layout packs items of uneven main-axis size into fixed-width
// columns, always appending the next item to the shortest column. The
// engine does this lazily: only the items needed to fill the viewport are
// built and measured, and items that scroll far enough away are released
// back to the [ItemGenerator] while their geometry is kept.
//
// # Basic Usage
//
// Construct an [Engine] with a generator, a [Config] and the viewport size,
// then call [Engine.Layout] once per frame:
//
//	e := waterflow.New(gen, waterflow.DefaultConfig(), waterflow.Size{Width: 400, Height: 800})
//	e.Layout()
//	e.ScrollBy(120)
//	e.Layout()
//
// Placed geometry is read back with [Engine.Style] (main/cross terms) or
// [Engine.Rect] (physical rectangle relative to the viewport).
//
// # Directions
//
// [Column] and [ColumnReverse] scroll vertically; their ColumnsTemplate
// divides the width and RowsGap separates items. [Row] and [RowReverse]
// scroll horizontally with RowsTemplate and ColumnsGap. Offsets inside the
// engine are logical, with item 0 at zero; reversed directions invert them
// only at the edges ([Engine.Rect], [Engine.GetCurrentOffset]).
//
// # Recycling
//
// [Engine.DealCache] releases every item whose placed interval misses the
// viewport widened by Config.CacheSize on both sides. Released items are
// rebuilt from their retained geometry when they come back, without being
// measured again. Data-source changes are reported with
// [Engine.OnDataSourceUpdated]; a shrinking count is also detected at the
// start of every layout pass.
//
// # Predictive Layout
//
// [Engine.OnPredictLayout] spends idle frame time filling the cache margin,
// one item per step, and stops before the deadline would be overrun. The
// same work is available step by step through [Engine.Predictor].
//
// # Concurrency
//
// An Engine is owned by a single goroutine and holds no locks. Generator
// callbacks must not call back into the engine; such calls are ignored and
// logged.
package waterflow
