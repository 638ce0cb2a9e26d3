package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waterflow/pkg/config"
	"github.com/matzehuels/waterflow/pkg/snapshot"
)

// layoutOverrides are command-line replacements for configuration values.
// Only flags the user set are applied.
type layoutOverrides struct {
	steps     int
	step      float64
	jump      int
	columns   string
	direction string
	count     int
	seed      uint64
	width     float64
	height    float64
}

// layoutCommand creates the layout command for running a scripted session.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		ov      layoutOverrides
	)

	cmd := &cobra.Command{
		Use:   "layout [config.toml]",
		Short: "Run a scripted scroll session and write its snapshot",
		Long: `Run a scripted scroll session and write its snapshot.

The layout command builds a waterflow engine over a synthetic item list,
lays out the first viewport, optionally jumps to an index, then scrolls the
configured number of steps. The final engine state is written as a
snapshot JSON file that 'visualize' renders.

Without a config file the built-in defaults are used. Flags override single
values of either.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			cfg, err := loadConfig(input)
			if err != nil {
				return err
			}
			applyOverrides(&cfg, ov, cmd.Flags().Changed)
			return c.runLayout(cmd.Context(), cfg, input, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <config>.snapshot.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	cmd.Flags().IntVar(&ov.steps, "steps", 0, "number of scroll steps")
	cmd.Flags().Float64Var(&ov.step, "step", 0, "scroll distance per step")
	cmd.Flags().IntVar(&ov.jump, "jump", -1, "jump to this index before scrolling")
	cmd.Flags().StringVar(&ov.columns, "columns", "", `columns template, e.g. "1fr 2fr" or "repeat(auto-fill, 160px)"`)
	cmd.Flags().StringVar(&ov.direction, "direction", "", "layout direction: column, row, column-reverse, row-reverse")
	cmd.Flags().IntVar(&ov.count, "count", 0, "number of items")
	cmd.Flags().Uint64Var(&ov.seed, "seed", 0, "seed for item sizes")
	cmd.Flags().Float64Var(&ov.width, "width", 0, "viewport width")
	cmd.Flags().Float64Var(&ov.height, "height", 0, "viewport height")

	return cmd
}

// loadConfig reads path, or returns the defaults when path is empty.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// applyOverrides copies every flag for which changed reports true.
func applyOverrides(cfg *config.Config, ov layoutOverrides, changed func(string) bool) {
	if changed("steps") {
		cfg.Scroll.Steps = ov.steps
	}
	if changed("step") {
		cfg.Scroll.Step = ov.step
	}
	if changed("jump") {
		cfg.Scroll.JumpTo = ov.jump
	}
	if changed("columns") {
		cfg.Layout.ColumnsTemplate = ov.columns
	}
	if changed("direction") {
		cfg.Layout.Direction = ov.direction
	}
	if changed("count") {
		cfg.Dataset.Count = ov.count
	}
	if changed("seed") {
		cfg.Dataset.Seed = ov.seed
	}
	if changed("width") {
		cfg.Viewport.Width = ov.width
	}
	if changed("height") {
		cfg.Viewport.Height = ov.height
	}
}

// snapshotPath derives the output path of a layout run.
func snapshotPath(output, input string) string {
	switch {
	case output != "":
		return output
	case input == "":
		return defaultSnapshot
	default:
		return strings.TrimSuffix(input, filepath.Ext(input)) + ".snapshot.json"
	}
}

// runLayout runs the session and writes its snapshot.
func (c *CLI) runLayout(ctx context.Context, cfg config.Config, input, output string, noCache bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, fmt.Sprintf("Laying out %d items...", cfg.Dataset.Count))
	spinner.Start()

	res, cacheHit, err := runner.LayoutWithCacheInfo(ctx, cfg)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := snapshotPath(output, input)
	if err := snapshot.WriteFile(res.Snapshot, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(layoutStats{
		placed:       len(res.Snapshot.Items),
		total:        res.Snapshot.Total,
		materialized: res.Stats.Source.Live(),
		failed:       res.Stats.Layout.Failed,
		cached:       cacheHit,
	})
	if res.Stats.Layout.Failed > 0 {
		printWarning("%d items failed to build and were skipped", res.Stats.Layout.Failed)
	}
	printNewline()
	printNextStep("Render", "waterflow visualize "+outputPath)

	return nil
}
