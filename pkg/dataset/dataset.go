// Package dataset provides synthetic item sources for the waterflow engine,
// used by the CLI and by tests that need realistic uneven item sizes.
package dataset

import (
	"math/rand/v2"

	"github.com/matzehuels/waterflow/pkg/errors"
	"github.com/matzehuels/waterflow/pkg/waterflow"
)

// Spec describes a synthetic item list.
type Spec struct {
	// Count is the initial number of items.
	Count int `toml:"count" json:"count"`
	// Seed drives size generation. Equal seeds give equal sizes per index.
	Seed uint64 `toml:"seed" json:"seed"`
	// MinMain and MaxMain bound random main-axis sizes. In aspect mode they
	// bound the main/cross ratio instead.
	MinMain float64 `toml:"min_main" json:"min_main"`
	MaxMain float64 `toml:"max_main" json:"max_main"`
	// Sizes overrides the first len(Sizes) items.
	Sizes []float64 `toml:"sizes" json:"sizes,omitempty"`
	// Aspect makes items scale with the track they land in.
	Aspect bool `toml:"aspect" json:"aspect,omitempty"`
	// Fail lists indices whose generation fails.
	Fail []int `toml:"fail" json:"fail,omitempty"`
	// Footer is the main size of the trailing footer; zero means none.
	Footer float64 `toml:"footer" json:"footer,omitempty"`
}

// DefaultSpec returns a 200-item list of cards between 60 and 240 units.
func DefaultSpec() Spec {
	return Spec{Count: 200, Seed: 1, MinMain: 60, MaxMain: 240}
}

// Validate checks the spec for impossible values.
func (s Spec) Validate() error {
	if s.Count < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "dataset count must be non-negative, got %d", s.Count)
	}
	if s.MinMain < 0 || s.MaxMain < s.MinMain {
		return errors.New(errors.ErrCodeInvalidConfig, "dataset size range [%v, %v] is invalid", s.MinMain, s.MaxMain)
	}
	if s.Aspect && s.MinMain <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "aspect ratios must be positive, got min %v", s.MinMain)
	}
	for i, v := range s.Sizes {
		if v < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "dataset size %d is negative (%v)", i, v)
		}
	}
	if s.Footer < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "footer size must be non-negative, got %v", s.Footer)
	}
	return nil
}

// Stats counts generator callbacks.
type Stats struct {
	Built        int
	Failed       int
	Deleted      int
	Measured     int
	FooterBuilds int
}

// Live is the number of items built and not yet deleted.
func (s Stats) Live() int { return s.Built - s.Deleted }

// Source is a [waterflow.ItemGenerator] over a Spec.
type Source struct {
	spec  Spec
	count int
	fail  map[int]bool
	live  map[int]bool
	stats Stats
}

// New creates a source for spec.
func New(spec Spec) *Source {
	s := &Source{
		spec:  spec,
		count: max(spec.Count, 0),
		fail:  make(map[int]bool, len(spec.Fail)),
		live:  make(map[int]bool),
	}
	for _, i := range spec.Fail {
		s.fail[i] = true
	}
	return s
}

// Spec returns the spec the source was built from.
func (s *Source) Spec() Spec { return s.spec }

// SetCount changes the reported item count. Callers notify the engine with
// [waterflow.Engine.OnDataSourceUpdated] or rely on the next layout pass.
func (s *Source) SetCount(n int) { s.count = max(n, 0) }

// Stats returns callback totals so far.
func (s *Source) Stats() Stats { return s.stats }

// IsLive reports whether index is currently built.
func (s *Source) IsLive(index int) bool { return s.live[index] }

// Size returns the main size (or ratio, in aspect mode) of index.
func (s *Source) Size(index int) float64 {
	if index < len(s.spec.Sizes) {
		return s.spec.Sizes[index]
	}
	lo, hi := s.spec.MinMain, s.spec.MaxMain
	if hi <= lo {
		return lo
	}
	seed := s.spec.Seed
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef^uint64(index)))
	return lo + rng.Float64()*(hi-lo)
}

func (s *Source) GetTotalCount() int { return s.count }

func (s *Source) BuildChildByIndex(index int) (waterflow.Item, bool) {
	if index < 0 || index >= s.count || s.fail[index] {
		s.stats.Failed++
		return nil, false
	}
	s.stats.Built++
	s.live[index] = true
	return &Item{src: s, Index: index, Value: s.Size(index), Aspect: s.spec.Aspect}, true
}

func (s *Source) DeleteChildByIndex(index int) {
	if !s.live[index] {
		return
	}
	delete(s.live, index)
	s.stats.Deleted++
}

func (s *Source) RequestFooter() (waterflow.Item, bool) {
	if s.spec.Footer <= 0 {
		return nil, false
	}
	s.stats.FooterBuilds++
	return waterflow.FixedItem(s.spec.Footer), true
}

// Item is one synthetic card.
type Item struct {
	src    *Source
	Index  int
	Value  float64
	Aspect bool
}

// Measure returns the card size; in aspect mode the main size is the track
// width times the ratio.
func (it *Item) Measure(c waterflow.LayoutConstraint) waterflow.Size {
	if it.src != nil {
		it.src.stats.Measured++
	}
	cross := c.Axis.Cross(c.MaxSize)
	main := it.Value
	if it.Aspect {
		main = cross * it.Value
	}
	return c.Axis.Compose(main, cross)
}

var _ waterflow.ItemGenerator = (*Source)(nil)
