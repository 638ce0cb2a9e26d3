package waterflow

// ItemGenerator materializes items on demand. It is installed once when the
// engine is constructed and invoked synchronously. Implementations must not
// call back into the engine from any of these methods.
type ItemGenerator interface {
	// GetTotalCount reports how many items the data source holds.
	GetTotalCount() int

	// BuildChildByIndex materializes the item at index. Returning false (or
	// a nil item) signals a generation failure; the engine skips the index.
	BuildChildByIndex(index int) (Item, bool)

	// DeleteChildByIndex releases an item previously returned by BuildChildByIndex.
	DeleteChildByIndex(index int)

	// RequestFooter materializes the optional trailing footer. It is called
	// at most once per engine.
	RequestFooter() (Item, bool)
}

// Item is a materialized child owned by the engine until released.
type Item interface {
	// Measure returns the item's size under c. Only the main-axis component
	// is used; the cross size always equals the track width.
	Measure(c LayoutConstraint) Size
}

// MeasureFunc adapts a function to the Item interface.
type MeasureFunc func(c LayoutConstraint) Size

// Measure calls f(c).
func (f MeasureFunc) Measure(c LayoutConstraint) Size { return f(c) }

// FixedItem is an Item with a constant main-axis size.
type FixedItem float64

// Measure returns the fixed main size and the maximum cross size.
func (f FixedItem) Measure(c LayoutConstraint) Size {
	return c.Axis.Compose(float64(f), c.Axis.Cross(c.MaxSize))
}
