// Package pipeline provides the core scan → layout → render pipeline.
//
// This package centralizes the path-in, rectangles-out flow so the CLI and
// any embedding caller behave identically. The three stages are:
//
//  1. Scan: build a bounded, categorized node tree from a root path
//  2. Layout: squarify the tree against a target canvas
//  3. Render: produce output artifacts (JSON, SVG)
//
// Each stage can be run independently or as part of the complete pipeline,
// and each stage's result is cached under a key derived from its inputs.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Root:    "/home/u/Downloads",
//	    Width:   800,
//	    Height:  600,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/spacetile/spacetile/pkg/errors"
)

// Default values shared by every entry point.
const (
	// DefaultWidth is the default canvas width in user units.
	DefaultWidth = 800.0

	// DefaultHeight is the default canvas height in user units.
	DefaultHeight = 600.0

	// DefaultTimeout is the default scan wall-clock budget.
	DefaultTimeout = 30 * time.Second
)

// Output format constants.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatSVG:  true,
}

// Options contains all configuration for one pipeline run.
type Options struct {
	// Scan options
	Root          string        `json:"root"`
	IncludeHidden bool          `json:"include_hidden,omitempty"`
	Timeout       time.Duration `json:"timeout,omitempty"`
	Refresh       bool          `json:"refresh,omitempty"`

	// Layout options
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Labels  bool     `json:"labels,omitempty"`

	// Logger receives stage progress. Nil inherits the runner's logger.
	Logger *log.Logger `json:"-"`
}

// SetDefaults fills zero-valued fields with pipeline defaults.
func (o *Options) SetDefaults() {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
}

// ValidateForScan checks the options needed by the scan stage.
func (o Options) ValidateForScan() error {
	if o.Root == "" {
		return errors.New(errors.ErrCodeInvalidPath, "root path is required")
	}
	return nil
}

// ValidateForRender checks the options needed by the render stage.
func (o Options) ValidateForRender() error {
	return ValidateFormats(o.Formats)
}

// ValidateFormat checks a single output format.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (valid: json, svg)", format)
	}
	return nil
}

// ValidateFormats checks a list of output formats. An empty list is valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}
