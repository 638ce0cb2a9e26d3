package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/waterflow/pkg/errors"
	"github.com/matzehuels/waterflow/pkg/waterflow"
)

const sample = `
[layout]
columns_template = "repeat(3, 1fr)"
rows_gap = 4
direction = "column-reverse"
cache_size = 120
max_height = 300

[viewport]
width = 600
height = 400

[dataset]
count = 50
seed = 9
min_main = 20
max_main = 90
fail = [3, 7]

[scroll]
steps = 2
step = 150
jump_to = 10
predict_budget = "2ms"
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Layout.ColumnsTemplate != "repeat(3, 1fr)" || cfg.Layout.CacheSize != 120 {
		t.Errorf("layout = %+v", cfg.Layout)
	}
	// Keys absent from the file keep defaults.
	if cfg.Layout.ColumnsGap != Default().Layout.ColumnsGap {
		t.Errorf("columns_gap = %v, want default", cfg.Layout.ColumnsGap)
	}
	if cfg.Dataset.Count != 50 || len(cfg.Dataset.Fail) != 2 {
		t.Errorf("dataset = %+v", cfg.Dataset)
	}
	if cfg.Scroll.PredictBudget.Std() != 2*time.Millisecond || cfg.Scroll.JumpTo != 10 {
		t.Errorf("scroll = %+v", cfg.Scroll)
	}

	ec, err := cfg.EngineConfig()
	if err != nil {
		t.Fatal(err)
	}
	if ec.Direction != waterflow.ColumnReverse || ec.ItemConstraint.MaxHeight != 300 || ec.RowsGap != 4 {
		t.Errorf("engine config = %+v", ec)
	}
	if cfg.ViewportSize() != (waterflow.Size{Width: 600, Height: 400}) {
		t.Errorf("viewport = %+v", cfg.ViewportSize())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
		msg  string
	}{
		{"Syntax", "[layout\n", errors.ErrCodeInvalidFormat, ""},
		{"UnknownKey", "[layout]\ncolumns = 3\n", errors.ErrCodeInvalidConfig, "layout.columns"},
		{"NegativeGap", "[layout]\nrows_gap = -1\n", errors.ErrCodeInvalidConfig, "rows_gap"},
		{"BadDirection", "[layout]\ndirection = \"up\"\n", errors.ErrCodeInvalidConfig, "direction"},
		{"BadTemplate", "[layout]\ncolumns_template = \"1fr 2xx\"\n", errors.ErrCodeInvalidTemplate, "columns_template"},
		{"BadRowsTemplate", "[layout]\ndirection = \"row\"\nrows_template = \"repeat(0, 1fr)\"\n", errors.ErrCodeInvalidTemplate, "rows_template"},
		{"ZeroViewport", "[viewport]\nwidth = 0\n", errors.ErrCodeInvalidConfig, "viewport.width"},
		{"BadDataset", "[dataset]\ncount = -4\n", errors.ErrCodeInvalidConfig, "count"},
		{"BadDuration", "[scroll]\npredict_budget = \"soon\"\n", errors.ErrCodeInvalidFormat, ""},
		{"NegativeSteps", "[scroll]\nsteps = -1\n", errors.ErrCodeInvalidConfig, "steps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, tt.code) {
				t.Fatalf("err = %v, want code %s", err, tt.code)
			}
			if tt.msg != "" && !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("err %q does not mention %q", err, tt.msg)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.toml")
	if err := os.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Viewport.Width != 600 {
		t.Errorf("width = %v", cfg.Viewport.Width)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file err = %v", err)
	}
	if _, err := Load(""); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("empty path err = %v", err)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[layout]\nbogus = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("bad file err = %v", err)
	}
}

func TestHash(t *testing.T) {
	a, b := Default(), Default()
	if a.Hash() != b.Hash() {
		t.Error("equal configs hash differently")
	}
	b.Layout.CacheSize++
	if a.Hash() == b.Hash() {
		t.Error("different configs hash equally")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Dataset.Fail = []int{2}
	data, err := cfg.Encode()
	if err != nil {
		t.Fatal(err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Encode()): %v\n%s", err, data)
	}
	if back.Hash() != cfg.Hash() {
		t.Errorf("round trip changed config:\n%s", data)
	}
}
