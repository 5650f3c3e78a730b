// Package cli implements the spacetile command-line interface.
//
// This package provides commands for scanning directories into size trees,
// computing squarified treemap layouts, rendering them as SVG or JSON, and
// browsing a directory interactively in the terminal. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - scan: Walk a directory and produce a category-annotated size tree
//   - layout: Compute a squarified treemap layout from a size tree
//   - render: Generate SVG or JSON artifacts from a layout
//   - view: Browse a directory as an interactive terminal treemap
//   - cache: Manage the local result cache
package cli

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/spacetile/spacetile/pkg/buildinfo"
	"github.com/spacetile/spacetile/pkg/cache"
	"github.com/spacetile/spacetile/pkg/config"
	"github.com/spacetile/spacetile/pkg/pipeline"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config
}

// New creates a new CLI instance with a default logger and the on-disk
// configuration (or defaults when no config file exists).
func New(w io.Writer, level log.Level) *CLI {
	cfg, err := config.Load(config.Path())
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
	if err != nil {
		logger.Warnf("Ignoring config %s: %v", config.Path(), err)
		cfg = config.Default()
	}
	return &CLI{Logger: logger, Config: cfg}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "spacetile",
		Short:        "Spacetile visualizes disk usage as squarified treemaps",
		Long:         `Spacetile is a CLI tool for visualizing disk usage. It scans a directory into a category-annotated size tree and lays it out as a squarified treemap, where every file and folder becomes a rectangle proportional to its size.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.scanCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache || c.Config.Cache.Disabled)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(config.CacheDir())
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// scanOptions builds pipeline options from the shared scan flags, falling
// back to the loaded config for anything the flags leave at zero.
func (c *CLI) scanOptions(root string, hidden bool, timeoutSecs int, refresh bool) pipeline.Options {
	opts := pipeline.Options{
		Root:          root,
		IncludeHidden: hidden || c.Config.Scan.IncludeHidden,
		Refresh:       refresh,
		Logger:        c.Logger,
	}
	if timeoutSecs > 0 {
		opts.Timeout = time.Duration(timeoutSecs) * time.Second
	} else {
		opts.Timeout = c.Config.Timeout()
	}
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
