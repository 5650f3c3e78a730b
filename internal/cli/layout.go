package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spacetile/spacetile/pkg/pipeline"
	"github.com/spacetile/spacetile/pkg/treemap"
)

// layoutCommand creates the layout command for computing treemap layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)
	opts := pipeline.Options{Width: c.Config.Canvas.Width, Height: c.Config.Canvas.Height}
	opts.SetDefaults()

	cmd := &cobra.Command{
		Use:   "layout <path|tree.json>",
		Short: "Compute a squarified treemap layout",
		Long: `Compute a squarified treemap layout.

The layout command takes a tree.json file (produced by 'scan') or a directory
path (scanned on the fly) and packs its rectangles into the given canvas using
the squarified algorithm, which keeps tiles close to square. The output is a
layout.json file that can be rendered to SVG using the 'render' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Refresh = refresh
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache and recompute")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "canvas height")

	return cmd
}

// runLayout loads or scans the tree, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	tree, err := c.loadOrScanTree(ctx, runner, input, opts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	layout, cacheHit, err := runner.ComputeLayout(ctx, tree, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := treemap.WriteLayoutFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printLayoutStats(len(layout.Rects), cacheHit)
	printNewline()
	printNextStep("Render", "spacetile render "+outputPath)

	return nil
}

// loadOrScanTree reads a tree.json file, or scans the input when it names a
// directory instead.
func (c *CLI) loadOrScanTree(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options) (*treemap.Node, error) {
	if info, err := os.Stat(input); err == nil && info.IsDir() {
		opts.Root = input
		tree, partial, err := runner.Scan(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", input, err)
		}
		if partial {
			printWarning("Deadline expired; layout covers a partial tree")
		}
		return tree, nil
	}
	tree, err := treemap.ReadTreeFile(input)
	if err != nil {
		return nil, fmt.Errorf("load tree %s: %w", input, err)
	}
	return tree, nil
}
