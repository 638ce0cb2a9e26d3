package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waterflow/pkg/pipeline"
	"github.com/matzehuels/waterflow/pkg/snapshot"
)

// visualizeCommand creates the visualize command for rendering a snapshot.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{VizType: pipeline.DefaultVizType, Scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "visualize [snapshot.json]",
		Short: "Render a layout snapshot",
		Long: `Render a layout snapshot.

The visualize command takes a snapshot file (produced by 'layout') and draws
it either as a masonry picture (-t masonry) or as a diagram of the column
trackers (-t columns). Masonry pictures show live items filled, evicted
items as dashed outlines and items in the cache window with a heavier
stroke. Column diagrams are rendered with Graphviz.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := defaultSnapshot
			if len(args) == 1 {
				input = args[0]
			}
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateVizType(opts.VizType); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), input, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	cmd.Flags().StringVarP(&opts.VizType, "type", "t", opts.VizType, "visualization type: masonry (default), columns")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.ShowIDs, "ids", false, "label items with their index")
	cmd.Flags().BoolVar(&opts.ShowViewport, "viewport", false, "outline the viewport (masonry)")
	cmd.Flags().BoolVar(&opts.ShowColumns, "columns", false, "shade column tracks (masonry)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show item positions and sizes (columns)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG scale factor")

	return cmd
}

// runVisualize loads the snapshot and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	prog := newProgress(loggerFromContext(ctx))

	snap, err := snapshot.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", opts.VizType))
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, snap, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	if err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		vizType:   opts.VizType,
		cacheHit:  cacheHit,
	}); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d of %d items", len(snap.Items), snap.Total))
	return nil
}

// =============================================================================
// Output
// =============================================================================

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	vizType   string
	cacheHit  bool
}

// writeArtifacts writes one file per format. A single format goes to
// output as given; several formats share the base path of output.
func writeArtifacts(p artifactWriteParams) error {
	paths := artifactPaths(p.formats, p.input, p.output, p.vizType)
	for _, format := range p.formats {
		path := paths[format]
		if err := os.WriteFile(path, p.artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	if p.cacheHit {
		printSuccess("Rendered %s (cached)", strings.Join(p.formats, ", "))
	} else {
		printSuccess("Rendered %s", strings.Join(p.formats, ", "))
	}
	for _, format := range p.formats {
		printFile(paths[format])
	}
	return nil
}

// artifactPaths maps every format to its output file.
func artifactPaths(formats []string, input, output, vizType string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	if vizType != "" && output == "" {
		base += "." + vizType
	}
	for _, format := range formats {
		paths[format] = base + "." + format
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. The ".snapshot"
// infix that 'layout' adds is stripped too. If output has a format
// extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, ".snapshot")
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
