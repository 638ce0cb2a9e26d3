package waterflow

import (
	"math"
	"testing"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"", Column, false},
		{"column", Column, false},
		{"Row", Row, false},
		{"column_reverse", ColumnReverse, false},
		{" row-reverse ", RowReverse, false},
		{"diagonal", Column, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDirection(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if !tt.wantErr && tt.in != "" {
				if back, _ := ParseDirection(got.String()); back != got {
					t.Errorf("String round trip %v -> %v", got, back)
				}
			}
		})
	}
}

func TestDirectionAxes(t *testing.T) {
	for _, d := range []Direction{Column, ColumnReverse} {
		if d.Axis() != Vertical {
			t.Errorf("%v axis = %v", d, d.Axis())
		}
	}
	for _, d := range []Direction{Row, RowReverse} {
		if d.Axis() != Horizontal {
			t.Errorf("%v axis = %v", d, d.Axis())
		}
	}
	if Column.Reversed() || !RowReverse.Reversed() {
		t.Error("Reversed() wrong")
	}
}

func TestItemConstraintForAxis(t *testing.T) {
	c := ItemConstraint{MinWidth: 10, MinHeight: -5, MaxWidth: 5, MaxHeight: 200}

	v := c.ForAxis(Vertical)
	want := ItemConstraintSize{MinCrossSize: 10, MaxCrossSize: 10, MinMainSize: 0, MaxMainSize: 200}
	if v != want {
		t.Errorf("vertical = %+v, want %+v", v, want)
	}
	h := c.ForAxis(Horizontal)
	want = ItemConstraintSize{MinCrossSize: 0, MaxCrossSize: 200, MinMainSize: 10, MaxMainSize: 10}
	if h != want {
		t.Errorf("horizontal = %+v, want %+v", h, want)
	}

	if got := v.ClampMain(math.NaN()); got != 0 {
		t.Errorf("ClampMain(NaN) = %v", got)
	}
	if got := (ItemConstraintSize{}).ClampMain(1e6); got != 1e6 {
		t.Errorf("unbounded ClampMain = %v", got)
	}
}

func TestLayoutConstraint(t *testing.T) {
	lc := ItemConstraintSize{MinMainSize: 5}.layoutConstraint(Vertical, 120)
	if lc.MinSize != (Size{Width: 120, Height: 5}) {
		t.Errorf("min = %+v", lc.MinSize)
	}
	if lc.MaxSize.Width != 120 || !math.IsInf(lc.MaxSize.Height, 1) {
		t.Errorf("max = %+v", lc.MaxSize)
	}

	lc = ItemConstraintSize{MaxMainSize: 40}.layoutConstraint(Horizontal, 60)
	if lc.MaxSize != (Size{Width: 40, Height: 60}) || lc.Axis != Horizontal {
		t.Errorf("horizontal = %+v", lc)
	}
}

func TestFixedItem(t *testing.T) {
	lc := ItemConstraintSize{}.layoutConstraint(Horizontal, 80)
	if got := FixedItem(25).Measure(lc); got != (Size{Width: 25, Height: 80}) {
		t.Errorf("Measure = %+v", got)
	}
	f := MeasureFunc(func(c LayoutConstraint) Size { return Size{Width: 1, Height: 2} })
	if got := f.Measure(lc); got.Height != 2 {
		t.Errorf("MeasureFunc = %+v", got)
	}
}
