// Package pkg provides the core libraries for Spacetile disk-usage visualization.
//
// # Overview
//
// Spacetile turns a directory tree into a squarified treemap where every file
// and folder becomes a rectangle proportional to its size on disk. The pkg
// directory is organized into four main areas:
//
//  1. Domain logic (scanning, classification, layout)
//  2. Infrastructure (caching, configuration, observability)
//  3. Rendering (SVG and JSON artifacts)
//  4. Orchestration (the scan → layout → render pipeline)
//
// # Architecture
//
// The typical data flow through Spacetile:
//
//	Directory on disk
//	         ↓
//	    [scan] package (bounded walk, size approximation)
//	         ↓
//	    [treemap] package (node model + squarified layout)
//	         ↓
//	    [render] package (SVG / JSON artifacts)
//
// # Main Packages
//
// [category] - File classification by extension into eight broad categories
// (images, videos, audio, documents, code, archives, system, other).
//
// [scan] - Bounded filesystem scanner. Directories are enumerated one level
// at a time, only the largest entries are kept, and subdirectory sizes are
// approximated from their immediate contents. The Governor wraps the scanner
// with a wall-clock deadline and keeps scans single-flight.
//
// [treemap] - The node tree model with size and category rollup, the
// squarified layout algorithm, and JSON serialization for trees and layouts.
//
// [render] - SVG rendering of computed layouts with per-category fills.
//
// [pipeline] - Complete pipeline (scan → layout → render) used by the CLI
// and embedding callers. Each stage's result is cached under a key derived
// from its inputs.
//
// [cache] - Content-addressed file cache with TTL expiry, plus the key
// derivation shared by all pipeline stages.
//
// [config] - TOML configuration loaded from the XDG config directory.
//
// [observability] - Pluggable hooks invoked at pipeline stage and cache
// boundaries.
//
// # Quick Start
//
// Scan a directory and render a treemap:
//
//	import "github.com/spacetile/spacetile/pkg/pipeline"
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Root:    "/home/u/Downloads",
//	    Formats: []string{"svg"},
//	})
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/treemap/...  # Specific package
package pkg
