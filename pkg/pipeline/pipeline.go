// Package pipeline runs scripted waterflow sessions and renders their
// snapshots, with caching.
//
// This package is shared by every CLI command so that a session computed by
// 'layout' and one computed on the fly by 'browse' or 'visualize' behave
// identically.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Layout: build an engine over a synthetic dataset, replay the scroll
//     script of a configuration and capture a [snapshot.Snapshot]
//  2. Render: draw a snapshot as a masonry picture or a column diagram
//     (SVG, PNG, PDF, DOT or JSON)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, hit, err := runner.LayoutWithCacheInfo(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	artifacts, err := runner.Render(ctx, res.Snapshot, pipeline.Options{
//	    VizType: pipeline.VizMasonry,
//	    Formats: []string{"svg"},
//	})
//	svg := artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/waterflow/pkg/cache"
)

// =============================================================================
// Default Values
// =============================================================================

// Visualization types.
const (
	VizMasonry = "masonry"
	VizColumns = "columns"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizMasonry

// DefaultScale is the PNG scale factor used when none is given.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizMasonry: true,
	VizColumns: true,
}

// =============================================================================
// Options - Render Configuration
// =============================================================================

// Options configures the render stage.
type Options struct {
	VizType      string   `json:"viz_type,omitempty"`
	Formats      []string `json:"formats,omitempty"`
	ShowIDs      bool     `json:"show_ids,omitempty"`
	ShowViewport bool     `json:"show_viewport,omitempty"`
	ShowColumns  bool     `json:"show_columns,omitempty"` // masonry only
	Detailed     bool     `json:"detailed,omitempty"`     // columns only
	Scale        float64  `json:"scale,omitempty"`        // PNG only

	Logger *log.Logger `json:"-"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return fmt.Errorf("invalid viz_type: %q (must be one of: masonry, columns)", vizType)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// IsColumns returns true if this is a column diagram.
func (o *Options) IsColumns() bool {
	return o.VizType == VizColumns
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		VizType:      o.VizType,
		Format:       format,
		ShowIDs:      o.ShowIDs,
		ShowViewport: o.ShowViewport,
		ShowColumns:  o.ShowColumns,
		Detailed:     o.Detailed,
		Scale:        o.Scale,
	}
}
