package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spacetile/spacetile/pkg/category"
	"github.com/spacetile/spacetile/pkg/treemap"
)

// scanCommand creates the scan command for producing size trees.
func (c *CLI) scanCommand() *cobra.Command {
	var (
		output      string
		noCache     bool
		refresh     bool
		hidden      bool
		timeoutSecs int
	)

	cmd := &cobra.Command{
		Use:   "scan <path>",
		Short: "Scan a directory into a category-annotated size tree",
		Long: `Scan a directory into a category-annotated size tree.

The scanner walks one level at a time, keeping only the largest entries per
directory so trees stay small enough to lay out instantly. Subdirectory sizes
are approximated from their immediate contents. Scans never fail: unreadable
paths show up as a zero-byte "Error" node.

The output is a tree.json file that 'layout' turns into a treemap. When no
output file is given the tree is written to stdout.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScan(cmd.Context(), args[0], output, hidden, timeoutSecs, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache and rescan")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "include hidden files and directories")
	cmd.Flags().IntVar(&timeoutSecs, "timeout", 0, "scan deadline in seconds (0 uses the configured default)")

	return cmd
}

// runScan scans the root directory and writes the resulting tree.
func (c *CLI) runScan(ctx context.Context, root, output string, hidden bool, timeoutSecs int, noCache, refresh bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.scanOptions(root, hidden, timeoutSecs, refresh)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Scanning %s...", root))
	spinner.Start()

	tree, partial, cacheHit, err := runner.ScanWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Scan failed")
		return fmt.Errorf("scan %s: %w", root, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if output == "" {
		return treemap.WriteTree(tree, os.Stdout)
	}
	if err := treemap.WriteTreeFile(tree, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	if partial {
		printWarning("Deadline of %s expired; tree is partial", opts.Timeout)
	}
	printSuccess("Scanned %s", root)
	printFile(output)
	printScanStats(tree.Count(), tree.MaxDepth(), tree.Size, cacheHit)
	printCategoryBreakdown(tree)
	printNewline()
	printNextStep("Layout", "spacetile layout "+output)

	return nil
}

// printCategoryBreakdown prints per-category totals for the scanned tree,
// largest first.
func printCategoryBreakdown(tree *treemap.Node) {
	totals := make(map[category.Category]int64)
	sumByCategory(tree, totals)

	for _, cat := range category.All {
		if totals[cat] == 0 {
			continue
		}
		printCategoryLine(cat, totals[cat], tree.Size)
	}
}

// sumByCategory accumulates leaf sizes into totals keyed by category.
func sumByCategory(n *treemap.Node, totals map[category.Category]int64) {
	if !n.IsDir() {
		totals[n.Category] += n.Size
		return
	}
	for _, child := range n.Children {
		sumByCategory(child, totals)
	}
}
