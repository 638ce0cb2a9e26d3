package masonry

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/matzehuels/waterflow/pkg/snapshot"
)

func testSnapshot() snapshot.Snapshot {
	return snapshot.Snapshot{
		Version:   snapshot.Version,
		Direction: "column",
		Viewport:  snapshot.Size{Width: 200, Height: 100},
		Physical:  snapshot.Point{Y: 40},
		Extent:    300,
		Columns: []snapshot.Column{
			{Index: 0, Offset: 0, Width: 100, End: 300, Items: []int{0, 2}},
			{Index: 1, Offset: 100, Width: 100, End: 120, Items: []int{1}},
		},
		Items: []snapshot.Item{
			{Index: 0, Rect: snapshot.Rect{X: 0, Y: 0, Width: 100, Height: 50}},
			{Index: 1, Rect: snapshot.Rect{X: 100, Y: 0, Width: 100, Height: 120}, Materialized: true},
			{Index: 2, Rect: snapshot.Rect{X: 0, Y: 50, Width: 100, Height: 250}, Materialized: true, Cached: true},
		},
		Footer: &snapshot.Item{Index: -1, Rect: snapshot.Rect{Y: 300, Width: 200, Height: 20}},
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testSnapshot(), WithIDs(), WithViewport()))

	for _, want := range []string{
		`viewBox="0 0 216.0 316.0"`,
		`id="item-0" class="item retained"`,
		`id="item-1" class="item"`,
		`id="item-2" class="item cached"`,
		`class="viewport" x="0.0" y="40.0" width="200.0" height="100.0"`,
		`class="footer"`,
		`>2</text>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("svg not closed")
	}
}

func TestRenderOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    []RenderOption
		want    []string
		notWant []string
	}{
		{"Default", nil, []string{"item-0"}, []string{"class=\"viewport\"", "<text", "class=\"column\""}},
		{"WithoutRetained", []RenderOption{WithoutRetained()}, []string{"item-1"}, []string{"item-0"}},
		{"WithColumns", []RenderOption{WithColumns()}, []string{`class="column" x="100.0"`}, nil},
		{"NoPadding", []RenderOption{WithPadding(0)}, []string{`viewBox="0 0 200.0 300.0"`, `translate(0.0 0.0)`}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := string(RenderSVG(testSnapshot(), tt.opts...))
			for _, w := range tt.want {
				if !strings.Contains(svg, w) {
					t.Errorf("missing %q", w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(svg, w) {
					t.Errorf("unexpected %q", w)
				}
			}
		})
	}
}

func TestGreyForIndex(t *testing.T) {
	hex := regexp.MustCompile(`^#[0-9a-f]{6}$`)
	for i := range 200 {
		g := greyForIndex(i)
		if !hex.MatchString(g) {
			t.Fatalf("greyForIndex(%d) = %q", i, g)
		}
		var r, gg, b int
		if _, err := fmt.Sscanf(g, "#%02x%02x%02x", &r, &gg, &b); err != nil {
			t.Fatal(err)
		}
		if r != gg || gg != b || r < greyMin || r > greyMax {
			t.Errorf("greyForIndex(%d) = %q out of range", i, g)
		}
	}
	if greyForIndex(3) != greyForIndex(3) {
		t.Error("not deterministic")
	}
}
