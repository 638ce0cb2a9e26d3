package template

import (
	"math"
	"testing"

	"github.com/matzehuels/waterflow/pkg/errors"
)

func approxEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		template  string
		available float64
		gap       float64
		want      []float64
	}{
		{"two equal flex", "1fr 1fr", 200, 0, []float64{100, 100}},
		{"weighted flex", "1fr 3fr", 400, 0, []float64{100, 300}},
		{"flex with gap", "1fr 1fr", 210, 10, []float64{100, 100}},
		{"fixed px", "50px 60px", 500, 0, []float64{50, 60}},
		{"bare numbers", "50 60", 500, 0, []float64{50, 60}},
		{"vp unit", "40vp", 500, 0, []float64{40}},
		{"percent", "25% 75%", 400, 0, []float64{100, 300}},
		{"mixed", "100px 1fr 25%", 400, 0, []float64{100, 200, 100}},
		{"mixed with gap", "100px 1fr", 410, 10, []float64{100, 300}},
		{"overfull fixed leaves flex empty", "300px 1fr", 200, 0, []float64{300, 0}},
		{"empty defaults to single flex", "", 320, 0, []float64{320}},
		{"whitespace only", "   ", 320, 8, []float64{320}},
		{"repeat", "repeat(3, 1fr)", 300, 0, []float64{100, 100, 100}},
		{"repeat group", "repeat(2, 50px 1fr)", 300, 0, []float64{50, 100, 50, 100}},
		{"auto-fill", "repeat(auto-fill, 100px)", 350, 0, []float64{100, 100, 100}},
		{"auto-fill with gap", "repeat(auto-fill, 100px)", 300, 10, []float64{100, 100}},
		{"auto-fill too narrow keeps one", "repeat(auto-fill, 100px)", 40, 0, []float64{100}},
		{"negative gap clamps", "1fr 1fr", 200, -20, []float64{100, 100}},
		{"negative available clamps", "1fr", -50, 0, []float64{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.template, tt.available, tt.gap)
			if got.Count != len(tt.want) {
				t.Fatalf("Parse(%q).Count = %d, want %d", tt.template, got.Count, len(tt.want))
			}
			if !approxEqual(got.Sizes, tt.want) {
				t.Errorf("Parse(%q).Sizes = %v, want %v", tt.template, got.Sizes, tt.want)
			}
		})
	}
}

func TestParseMalformedFallsBack(t *testing.T) {
	tests := []string{
		"abc",
		"1fr abc",
		"-10px",
		"0fr",
		"1fr)",
		"repeat(2, 1fr",
		"repeat(x, 1fr)",
		"repeat(0, 1fr)",
		"repeat(3)",
		"repeat(auto-fill, 1fr)",
		"NaNpx",
	}

	for _, tmpl := range tests {
		t.Run(tmpl, func(t *testing.T) {
			got := Parse(tmpl, 240, 12)
			if got.Count != 1 || !approxEqual(got.Sizes, []float64{240}) {
				t.Errorf("Parse(%q) = %+v, want single 240 track", tmpl, got)
			}

			strict, err := ParseStrict(tmpl, 240, 12)
			if err == nil {
				t.Fatalf("ParseStrict(%q) expected error", tmpl)
			}
			if !errors.Is(err, errors.ErrCodeInvalidTemplate) {
				t.Errorf("ParseStrict(%q) code = %v, want %v", tmpl, errors.GetCode(err), errors.ErrCodeInvalidTemplate)
			}
			if strict.Count != 1 {
				t.Errorf("ParseStrict(%q) fallback count = %d, want 1", tmpl, strict.Count)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	tracks, err := Tokenize("100px repeat(2, 1fr) 10%", 0, 0)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	want := []Track{
		{Kind: Fixed, Value: 100},
		{Kind: Flex, Value: 1},
		{Kind: Flex, Value: 1},
		{Kind: Percent, Value: 10},
	}
	if len(tracks) != len(want) {
		t.Fatalf("Tokenize len = %d, want %d", len(tracks), len(want))
	}
	for i := range want {
		if tracks[i] != want[i] {
			t.Errorf("track[%d] = %+v, want %+v", i, tracks[i], want[i])
		}
	}
}

func TestOffsets(t *testing.T) {
	got := Offsets([]float64{100, 50, 25}, 10)
	want := []float64{0, 110, 170}
	if !approxEqual(got, want) {
		t.Errorf("Offsets = %v, want %v", got, want)
	}

	if got := Offsets(nil, 10); len(got) != 0 {
		t.Errorf("Offsets(nil) = %v, want empty", got)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Fixed, "px"},
		{Percent, "%"},
		{Flex, "fr"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
