package pipeline

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/spacetile/spacetile/pkg/cache"
	apperrors "github.com/spacetile/spacetile/pkg/errors"
	"github.com/spacetile/spacetile/pkg/observability"
	"github.com/spacetile/spacetile/pkg/render"
	"github.com/spacetile/spacetile/pkg/scan"
	"github.com/spacetile/spacetile/pkg/treemap"
)

// Runner executes pipeline stages with caching. Create one with NewRunner
// and reuse it: the runner owns the scan governor, so concurrent callers get
// the at-most-one-scan-in-flight guarantee.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	mu        sync.Mutex
	gov       *scan.Governor
	govHidden bool
}

// NewRunner creates a pipeline runner. A nil cache disables caching, a nil
// keyer uses the default key derivation, and a nil logger discards output.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Result is the output of a complete pipeline run.
type Result struct {
	Tree      *treemap.Node
	Layout    treemap.LayoutExport
	Artifacts map[string][]byte

	// Partial reports that the scan deadline expired and the tree covers
	// only what was collected before cancellation.
	Partial bool
}

// Execute runs scan → layout → render and returns everything produced.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	opts.SetDefaults()
	if err := opts.ValidateForScan(); err != nil {
		return nil, err
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	tree, partial, _, err := r.ScanWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}

	layout, _, err := r.ComputeLayout(ctx, tree, opts)
	if err != nil {
		return nil, err
	}

	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return nil, err
	}

	return &Result{Tree: tree, Layout: layout, Artifacts: artifacts, Partial: partial}, nil
}

// ScanWithCacheInfo scans the root directory, consulting the cache first.
// The bools report whether the scan was cut short by its deadline and
// whether the tree came from cache.
func (r *Runner) ScanWithCacheInfo(ctx context.Context, opts Options) (*treemap.Node, bool, bool, error) {
	opts.SetDefaults()
	if err := opts.ValidateForScan(); err != nil {
		return nil, false, false, err
	}

	key := r.Keyer.TreeKey(opts.Root, cache.TreeKeyOpts{IncludeHidden: opts.IncludeHidden})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if tree, err := treemap.UnmarshalTree(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "tree")
				return tree, false, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "tree")
	}

	observability.Pipeline().OnScanStart(ctx, opts.Root)
	start := time.Now()

	tree, partial := r.governor(opts).Scan(ctx, opts.Root)

	elapsed := time.Since(start)
	observability.Pipeline().OnScanComplete(ctx, opts.Root, tree.Count(), elapsed, partial)
	r.Logger.Debug("scan complete",
		"root", opts.Root,
		"nodes", tree.Count(),
		"partial", partial,
		"elapsed", elapsed.Round(time.Millisecond))

	// Partial trees are not cached: the next request should retry the scan
	// rather than pin an incomplete view for the TTL.
	if !partial {
		if data, err := treemap.MarshalTree(tree); err == nil {
			if r.Cache.Set(ctx, key, data, cache.TTLTree) == nil {
				observability.Cache().OnCacheSet(ctx, "tree", len(data))
			}
		}
	}

	return tree, partial, false, nil
}

// Scan is a convenience wrapper that discards the cache hit info.
func (r *Runner) Scan(ctx context.Context, opts Options) (*treemap.Node, bool, error) {
	tree, partial, _, err := r.ScanWithCacheInfo(ctx, opts)
	return tree, partial, err
}

// ComputeLayout squarifies a tree against the options' canvas, consulting
// the cache first. The bool reports a cache hit.
func (r *Runner) ComputeLayout(ctx context.Context, tree *treemap.Node, opts Options) (treemap.LayoutExport, bool, error) {
	opts.SetDefaults()
	if tree == nil {
		return treemap.LayoutExport{}, false, apperrors.New(apperrors.ErrCodeInvalidInput, "nil tree")
	}

	treeData, err := treemap.MarshalTree(tree)
	if err != nil {
		return treemap.LayoutExport{}, false, fmt.Errorf("serialize tree for cache key: %w", err)
	}
	key := r.Keyer.LayoutKey(cache.Hash(treeData), cache.LayoutKeyOpts{Width: opts.Width, Height: opts.Height})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if cached, err := treemap.UnmarshalLayout(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	observability.Pipeline().OnLayoutStart(ctx, tree.Count())
	start := time.Now()

	canvas := treemap.Rect{W: opts.Width, H: opts.Height}
	layout := treemap.ExportLayout(treemap.Layout(tree, canvas), canvas)

	observability.Pipeline().OnLayoutComplete(ctx, len(layout.Rects), time.Since(start))

	if data, err := treemap.MarshalLayout(layout); err == nil {
		if r.Cache.Set(ctx, key, data, cache.TTLLayout) == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return layout, false, nil
}

// RenderWithCacheInfo produces every requested format from a layout. The
// bool reports that all artifacts came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout treemap.LayoutExport, opts Options) (map[string][]byte, bool, error) {
	opts.SetDefaults()
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := treemap.MarshalLayout(layout)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true

	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, cache.ArtifactKeyOpts{Format: format, Labels: opts.Labels})
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	rendered, err := renderFormats(layout, layoutData, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, cache.ArtifactKeyOpts{Format: format, Labels: opts.Labels})
		if r.Cache.Set(ctx, key, data, cache.TTLArtifact) == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, layout treemap.LayoutExport, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, opts)
	return artifacts, err
}

// renderFormats produces each requested artifact.
func renderFormats(layout treemap.LayoutExport, layoutJSON []byte, opts Options) (map[string][]byte, error) {
	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			out[format] = layoutJSON
		case FormatSVG:
			var svgOpts []render.SVGOption
			if opts.Labels {
				svgOpts = append(svgOpts, render.WithLabels())
			}
			out[format] = render.SVG(layout, svgOpts...)
		default:
			return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported format %q", format)
		}
	}
	return out, nil
}

// governor returns the runner's scan governor, rebuilding it when the scan
// configuration changes. Reusing one governor keeps scans single-flight.
func (r *Runner) governor(opts Options) *scan.Governor {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gov == nil || r.govHidden != opts.IncludeHidden || r.gov.Timeout() != opts.Timeout {
		scanner := &scan.Scanner{IncludeHidden: opts.IncludeHidden, Logger: r.Logger}
		r.gov = scan.NewGovernor(scanner, opts.Timeout)
		r.govHidden = opts.IncludeHidden
	}
	return r.gov
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
