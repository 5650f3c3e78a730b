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

// renderCommand creates the render command for producing artifacts from a layout.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		labels     bool
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "render <layout.json>",
		Short: "Render a treemap layout to SVG or JSON",
		Long: `Render a treemap layout to SVG or JSON.

The render command takes a layout.json file (produced by 'layout') and writes
one artifact per requested format. Rectangles are filled by their dominant
file category; pass --labels to print names inside tiles that are large
enough to fit them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], output, formats, labels, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	cmd.Flags().BoolVar(&labels, "labels", false, "draw names inside tiles that have room")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache and re-render")

	return cmd
}

// runRender loads the layout, renders the requested formats, and writes one
// file per format.
func (c *CLI) runRender(ctx context.Context, input, output string, formats []string, labels, noCache, refresh bool) error {
	layout, err := treemap.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{Formats: formats, Labels: labels, Refresh: refresh, Logger: c.Logger}

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	base := artifactBase(output, input)
	for _, format := range formats {
		path := base + "." + format
		if len(formats) == 1 && output != "" {
			path = output
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}

	printSuccess("Rendered %d artifact(s)", len(formats))
	printLayoutStats(len(layout.Rects), cacheHit)

	return nil
}

// artifactBase derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input. If output carries a
// format extension (.svg, .json), that extension is stripped so per-format
// suffixes compose cleanly.
func artifactBase(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if pipeline.ValidFormats[ext] {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}
