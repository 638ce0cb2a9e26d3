package waterflow_test

import (
	"fmt"

	"github.com/matzehuels/waterflow/pkg/waterflow"
)

// cards is a minimal generator of items with fixed heights.
type cards []float64

func (c cards) GetTotalCount() int { return len(c) }

func (c cards) BuildChildByIndex(i int) (waterflow.Item, bool) {
	return waterflow.FixedItem(c[i]), true
}

func (c cards) DeleteChildByIndex(int) {}

func (c cards) RequestFooter() (waterflow.Item, bool) { return nil, false }

func Example() {
	gen := cards{120, 80, 60, 100, 40}
	e := waterflow.New(gen, waterflow.DefaultConfig(), waterflow.Size{Width: 400, Height: 600})
	e.Layout()

	for _, i := range e.Indices() {
		r, _ := e.Rect(i)
		fmt.Printf("item %d: x=%v y=%v h=%v\n", i, r.X, r.Y, r.Height)
	}
	fmt.Println("extent:", e.ContentExtent())
	// Output:
	// item 0: x=0 y=0 h=120
	// item 1: x=200 y=0 h=80
	// item 2: x=200 y=80 h=60
	// item 3: x=0 y=120 h=100
	// item 4: x=200 y=140 h=40
	// extent: 220
}

func ExampleEngine_ScrollToIndex() {
	gen := make(cards, 100)
	for i := range gen {
		gen[i] = 50
	}
	cfg := waterflow.DefaultConfig()
	cfg.ColumnsTemplate = "1fr"
	e := waterflow.New(gen, cfg, waterflow.Size{Width: 100, Height: 200})

	if err := e.ScrollToIndex(40, waterflow.SourceImmediate); err != nil {
		fmt.Println("error:", err)
		return
	}
	first, last := e.VisibleRange()
	fmt.Println("offset:", e.GetCurrentOffset().Y)
	fmt.Println("visible:", first, last)
	// Output:
	// offset: 2000
	// visible: 40 43
}
