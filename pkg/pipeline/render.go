package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/waterflow/pkg/errors"
	"github.com/matzehuels/waterflow/pkg/render"
	"github.com/matzehuels/waterflow/pkg/render/columns"
	"github.com/matzehuels/waterflow/pkg/render/masonry"
	"github.com/matzehuels/waterflow/pkg/snapshot"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, s snapshot.Snapshot, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if opts.IsColumns() {
		return renderColumns(ctx, s, opts)
	}
	return renderMasonry(s, opts)
}

// renderMasonry generates masonry outputs.
func renderMasonry(s snapshot.Snapshot, opts Options) (map[string][]byte, error) {
	svg := masonry.RenderSVG(s, masonryOptions(opts)...)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svg
		case FormatPNG:
			data, err = render.ToPNG(svg, opts.Scale)
		case FormatPDF:
			data, err = render.ToPDF(svg)
		case FormatJSON:
			data, err = snapshot.Marshal(s)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported masonry format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func masonryOptions(opts Options) []masonry.RenderOption {
	var out []masonry.RenderOption
	if opts.ShowIDs {
		out = append(out, masonry.WithIDs())
	}
	if opts.ShowViewport {
		out = append(out, masonry.WithViewport())
	}
	if opts.ShowColumns {
		out = append(out, masonry.WithColumns())
	}
	return out
}

// renderColumns generates column diagram outputs. The DOT source is laid out
// once and shared by every graphical format.
func renderColumns(ctx context.Context, s snapshot.Snapshot, opts Options) (map[string][]byte, error) {
	dot := columns.ToDOT(s, columns.Options{Detailed: opts.Detailed || opts.ShowIDs})
	artifacts := make(map[string][]byte)

	var svg []byte
	svgOnce := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = columns.RenderSVG(ctx, dot)
		return svg, err
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = svgOnce()
		case FormatPNG, FormatPDF:
			if data, err = svgOnce(); err == nil {
				data, err = render.Convert(data, render.Format(format), opts.Scale)
			}
		case FormatJSON:
			data, err = snapshot.Marshal(s)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported columns format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
