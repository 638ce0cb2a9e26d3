// Package config loads waterflow run configurations from TOML files.
//
// A configuration bundles everything a CLI run needs: the engine layout,
// the viewport size, the synthetic dataset and a scroll script:
//
//	[layout]
//	columns_template = "repeat(auto-fill, 180px)"
//	columns_gap = 8
//	rows_gap = 8
//	direction = "column"
//	cache_size = 400
//
//	[viewport]
//	width = 800
//	height = 600
//
//	[dataset]
//	count = 500
//	seed = 7
//	min_main = 80
//	max_main = 260
//
//	[scroll]
//	steps = 6
//	step = 350
//	predict_budget = "4ms"
//
// Unknown keys are rejected so that typos do not silently fall back to
// defaults.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/waterflow/pkg/cache"
	"github.com/matzehuels/waterflow/pkg/dataset"
	"github.com/matzehuels/waterflow/pkg/errors"
	"github.com/matzehuels/waterflow/pkg/template"
	"github.com/matzehuels/waterflow/pkg/waterflow"
)

// Config is a complete run configuration.
type Config struct {
	Layout   Layout       `toml:"layout" json:"layout"`
	Viewport Viewport     `toml:"viewport" json:"viewport"`
	Dataset  dataset.Spec `toml:"dataset" json:"dataset"`
	Scroll   Scroll       `toml:"scroll" json:"scroll"`
}

// Layout mirrors [waterflow.Config] with a file-friendly direction string.
type Layout struct {
	ColumnsTemplate string  `toml:"columns_template" json:"columns_template"`
	RowsTemplate    string  `toml:"rows_template" json:"rows_template"`
	ColumnsGap      float64 `toml:"columns_gap" json:"columns_gap"`
	RowsGap         float64 `toml:"rows_gap" json:"rows_gap"`
	Direction       string  `toml:"direction" json:"direction"`
	CacheSize       float64 `toml:"cache_size" json:"cache_size"`
	MinWidth        float64 `toml:"min_width" json:"min_width,omitempty"`
	MinHeight       float64 `toml:"min_height" json:"min_height,omitempty"`
	MaxWidth        float64 `toml:"max_width" json:"max_width,omitempty"`
	MaxHeight       float64 `toml:"max_height" json:"max_height,omitempty"`
}

// Viewport is the physical viewport size.
type Viewport struct {
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`
}

// Scroll is a scripted scroll session: Steps scrolls of Step units, each
// followed by a layout pass and a predictive slice of PredictBudget. A
// non-negative JumpTo jumps to that index before scrolling.
type Scroll struct {
	Steps         int      `toml:"steps" json:"steps"`
	Step          float64  `toml:"step" json:"step"`
	JumpTo        int      `toml:"jump_to" json:"jump_to"`
	PredictBudget Duration `toml:"predict_budget" json:"predict_budget"`
}

// Duration is a time.Duration spelled like "4ms" in files.
type Duration time.Duration

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid duration %q", text)
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the standard library duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Layout: Layout{
			ColumnsTemplate: "1fr 1fr 1fr",
			RowsTemplate:    "1fr",
			ColumnsGap:      8,
			RowsGap:         8,
			Direction:       waterflow.Column.String(),
			CacheSize:       300,
		},
		Viewport: Viewport{Width: 720, Height: 540},
		Dataset:  dataset.DefaultSpec(),
		Scroll: Scroll{
			Steps:         4,
			Step:          400,
			JumpTo:        -1,
			PredictBudget: Duration(4 * time.Millisecond),
		},
	}
}

// Load reads and validates the configuration at path. Keys missing from the
// file keep their [Default] values.
func Load(path string) (Config, error) {
	if err := errors.ValidateFilePath(path); err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrap(errors.GetCode(err), err, "load %s", path)
	}
	return cfg, nil
}

// Parse decodes and validates TOML data over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	l := c.Layout
	for _, g := range []struct {
		name string
		v    float64
	}{
		{"columns_gap", l.ColumnsGap},
		{"rows_gap", l.RowsGap},
		{"min_width", l.MinWidth},
		{"min_height", l.MinHeight},
		{"max_width", l.MaxWidth},
		{"max_height", l.MaxHeight},
	} {
		if err := errors.ValidateGap(g.name, g.v); err != nil {
			return err
		}
	}
	if err := errors.ValidateCacheSize(l.CacheSize); err != nil {
		return err
	}
	dir, err := waterflow.ParseDirection(l.Direction)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout.direction")
	}
	if err := errors.ValidateExtent("viewport.width", c.Viewport.Width); err != nil {
		return err
	}
	if err := errors.ValidateExtent("viewport.height", c.Viewport.Height); err != nil {
		return err
	}

	name, tmpl, gap, avail := "columns_template", l.ColumnsTemplate, l.ColumnsGap, c.Viewport.Width
	if dir.Axis() == waterflow.Horizontal {
		name, tmpl, gap, avail = "rows_template", l.RowsTemplate, l.RowsGap, c.Viewport.Height
	}
	if _, err := template.ParseStrict(tmpl, avail, gap); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTemplate, err, "layout.%s", name)
	}

	if err := c.Dataset.Validate(); err != nil {
		return err
	}
	if c.Scroll.Steps < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scroll.steps must be non-negative, got %d", c.Scroll.Steps)
	}
	if c.Scroll.PredictBudget < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scroll.predict_budget must be non-negative")
	}
	return nil
}

// EngineConfig converts the layout section to an engine configuration.
func (c Config) EngineConfig() (waterflow.Config, error) {
	dir, err := waterflow.ParseDirection(c.Layout.Direction)
	if err != nil {
		return waterflow.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout.direction")
	}
	l := c.Layout
	return waterflow.Config{
		ColumnsTemplate: l.ColumnsTemplate,
		RowsTemplate:    l.RowsTemplate,
		ColumnsGap:      l.ColumnsGap,
		RowsGap:         l.RowsGap,
		ItemConstraint: waterflow.ItemConstraint{
			MinWidth:  l.MinWidth,
			MinHeight: l.MinHeight,
			MaxWidth:  l.MaxWidth,
			MaxHeight: l.MaxHeight,
		},
		Direction: dir,
		CacheSize: l.CacheSize,
	}, nil
}

// ViewportSize returns the viewport as an engine size.
func (c Config) ViewportSize() waterflow.Size {
	return waterflow.Size{Width: c.Viewport.Width, Height: c.Viewport.Height}
}

// Hash identifies the configuration for caching. Equal configurations
// always hash equally.
func (c Config) Hash() string {
	data, _ := json.Marshal(c)
	return cache.Hash(data)
}

// Encode writes c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return buf.Bytes(), nil
}
