package dataset

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/waterflow/pkg/errors"
	"github.com/matzehuels/waterflow/pkg/waterflow"
)

func TestSizeDeterministic(t *testing.T) {
	a := New(Spec{Count: 10, Seed: 42, MinMain: 10, MaxMain: 100})
	b := New(Spec{Count: 10, Seed: 42, MinMain: 10, MaxMain: 100})
	c := New(Spec{Count: 10, Seed: 43, MinMain: 10, MaxMain: 100})

	differs := false
	for i := range 10 {
		if a.Size(i) != b.Size(i) {
			t.Errorf("size %d differs for equal seeds", i)
		}
		if a.Size(i) != c.Size(i) {
			differs = true
		}
		if v := a.Size(i); v < 10 || v > 100 {
			t.Errorf("size %d = %v outside [10, 100]", i, v)
		}
	}
	if !differs {
		t.Error("different seeds gave identical sizes")
	}
}

func TestExplicitSizesAndFlatRange(t *testing.T) {
	s := New(Spec{Count: 5, Sizes: []float64{7, 8}, MinMain: 30, MaxMain: 30})
	for i, want := range []float64{7, 8, 30, 30} {
		if got := s.Size(i); got != want {
			t.Errorf("Size(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestSourceCallbacks(t *testing.T) {
	s := New(Spec{Count: 3, Sizes: []float64{10, 20, 30}, Fail: []int{1}, Footer: 15})

	if _, ok := s.BuildChildByIndex(1); ok {
		t.Error("failing index built")
	}
	if _, ok := s.BuildChildByIndex(3); ok {
		t.Error("out-of-range index built")
	}
	item, ok := s.BuildChildByIndex(2)
	if !ok {
		t.Fatal("index 2 not built")
	}
	lc := waterflow.LayoutConstraint{MaxSize: waterflow.Size{Width: 50}, Axis: waterflow.Vertical}
	if got := item.Measure(lc); got != (waterflow.Size{Width: 50, Height: 30}) {
		t.Errorf("Measure = %+v", got)
	}
	if !s.IsLive(2) {
		t.Error("index 2 not live")
	}
	s.DeleteChildByIndex(2)
	s.DeleteChildByIndex(2)

	st := s.Stats()
	want := Stats{Built: 1, Failed: 2, Deleted: 1, Measured: 1}
	if st != want {
		t.Errorf("stats = %+v, want %+v", st, want)
	}
	if st.Live() != 0 {
		t.Errorf("live = %d", st.Live())
	}
	if f, ok := s.RequestFooter(); !ok || f.Measure(lc).Height != 15 {
		t.Error("footer not built")
	}
}

func TestAspectItems(t *testing.T) {
	s := New(Spec{Count: 1, Sizes: []float64{1.5}, Aspect: true, MinMain: 1, MaxMain: 2})
	item, _ := s.BuildChildByIndex(0)
	lc := waterflow.LayoutConstraint{MaxSize: waterflow.Size{Width: 40, Height: 100}, Axis: waterflow.Horizontal}
	if got := item.Measure(lc); got != (waterflow.Size{Width: 150, Height: 100}) {
		t.Errorf("aspect Measure = %+v", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		ok   bool
	}{
		{"Default", DefaultSpec(), true},
		{"NegativeCount", Spec{Count: -1}, false},
		{"InvertedRange", Spec{MinMain: 10, MaxMain: 5}, false},
		{"AspectZero", Spec{Aspect: true, MaxMain: 2}, false},
		{"NegativeSize", Spec{Sizes: []float64{1, -1}}, false},
		{"NegativeFooter", Spec{Footer: -3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Fatalf("err = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestSourceDrivesEngine(t *testing.T) {
	src := New(Spec{Count: 100, Seed: 3, MinMain: 40, MaxMain: 120, Fail: []int{5}})
	cfg := waterflow.DefaultConfig()
	cfg.CacheSize = 100
	e := waterflow.New(src, cfg, waterflow.Size{Width: 300, Height: 400}, waterflow.WithLogger(log.New(io.Discard)))
	e.Layout()
	e.ScrollBy(1500)
	e.Layout()

	if got, want := src.Stats().Live(), len(e.Materialized()); got != want {
		t.Errorf("source live = %d, engine materialized = %d", got, want)
	}
	for _, i := range e.Materialized() {
		if !src.IsLive(i) {
			t.Errorf("engine holds %d but source released it", i)
		}
	}

	src.SetCount(10)
	e.Layout()
	for _, i := range e.Indices() {
		if i >= 10 {
			t.Errorf("index %d survived count shrink", i)
		}
	}
}
