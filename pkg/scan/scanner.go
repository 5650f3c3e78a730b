// Package scan builds sized, categorized treemap node trees from the
// filesystem.
//
// Scans are bounded rather than exhaustive: only the first few dozen entries
// of each directory are considered, and sub-directories one level down get an
// approximate size instead of a full recursive walk. That keeps the cost of a
// scan predictable and caps the node count handed to the layout engine.
//
// A scan never fails. Unreadable roots degrade to a zero-size "Error" leaf,
// unreadable entries are skipped, and cancellation returns whatever was
// collected so far.
package scan

import (
	"cmp"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/spacetile/spacetile/pkg/category"
	"github.com/spacetile/spacetile/pkg/treemap"
)

const (
	// maxEnumerate caps how many directory entries are even considered.
	maxEnumerate = 50

	// maxChildren caps how many children survive the size sort.
	maxChildren = 30

	// sizerConcurrency bounds the goroutines used to approximate
	// sub-directory sizes.
	sizerConcurrency = 8
)

// Scanner walks a directory tree within fixed bounds. The zero value is
// ready to use; scans are read-only so a Scanner may be shared.
type Scanner struct {
	// IncludeHidden scans dot-prefixed entries too. Off by default.
	IncludeHidden bool

	// Logger receives debug output. Nil disables logging.
	Logger *log.Logger
}

// New returns a Scanner with default settings.
func New() *Scanner {
	return &Scanner{}
}

// Scan builds the node tree for root. It never returns an error: a path that
// cannot be stat'ed yields the safe-default "Error" leaf, and a cancelled
// context yields the partial tree collected so far.
func (s *Scanner) Scan(ctx context.Context, root string) *treemap.Node {
	info, err := os.Stat(root)
	if err != nil {
		s.debug("unreadable root", "path", root, "err", err)
		return treemap.NewError(root)
	}

	name := filepath.Base(root)
	if !info.IsDir() {
		return treemap.NewFile(name, root, info.Size(), 0)
	}

	children := s.scanEntries(ctx, root)
	return treemap.NewDir(name, root, 0, children)
}

// candidate is one directory entry before the size sort and truncation.
type candidate struct {
	name  string
	path  string
	isDir bool
	size  int64
}

// scanEntries enumerates the immediate entries of dir, sizes them, and
// returns the largest as child nodes. Cancellation is checked before each
// entry; entries collected before the signal are kept.
func (s *Scanner) scanEntries(ctx context.Context, dir string) []*treemap.Node {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// Partial results beat total failure: an unreadable directory is
		// just a directory with no visible children.
		s.debug("enumerate failed", "path", dir, "err", err)
		return nil
	}

	var cands []candidate
	for _, e := range entries {
		if cancelled(ctx) {
			s.debug("scan cancelled", "path", dir, "collected", len(cands))
			break
		}
		if len(cands) >= maxEnumerate {
			break
		}
		if s.hidden(e.Name()) {
			continue
		}

		full := filepath.Join(dir, e.Name())
		if e.IsDir() {
			cands = append(cands, candidate{name: e.Name(), path: full, isDir: true})
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		cands = append(cands, candidate{name: e.Name(), path: full, size: info.Size()})
	}

	s.sizeDirs(ctx, cands)

	// Largest first, then keep only the top entries. The truncation bounds
	// both the tree and the layout engine's input.
	sortBySize(cands)
	if len(cands) > maxChildren {
		cands = cands[:maxChildren]
	}

	children := make([]*treemap.Node, 0, len(cands))
	for _, c := range cands {
		if c.isDir {
			children = append(children, &treemap.Node{
				Name:     c.name,
				Path:     c.path,
				Size:     c.size,
				Category: category.Other,
				Depth:    1,
			})
			continue
		}
		children = append(children, treemap.NewFile(c.name, c.path, c.size, 1))
	}
	return children
}

// sizeDirs fills in approximate sizes for directory candidates. Each
// directory is sized by summing the files among its own first visible
// entries, one level only. Sizing runs concurrently but writes only to the
// candidate's own slot, so results are deterministic.
func (s *Scanner) sizeDirs(ctx context.Context, cands []candidate) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sizerConcurrency)
	for i := range cands {
		if !cands[i].isDir {
			continue
		}
		i := i
		g.Go(func() error {
			cands[i].size = s.approxDirSize(gctx, cands[i].path)
			return nil
		})
	}
	// Workers never return errors; Wait is only a join point.
	_ = g.Wait()
}

// approxDirSize sums the file sizes among the first visible entries of dir.
// Nested directories contribute nothing: the approximation trades accuracy
// below the first level for scan cost.
func (s *Scanner) approxDirSize(ctx context.Context, dir string) int64 {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}

	var total int64
	seen := 0
	for _, e := range entries {
		if cancelled(ctx) || seen >= maxEnumerate {
			break
		}
		if s.hidden(e.Name()) {
			continue
		}
		seen++
		if e.IsDir() {
			continue
		}
		if info, err := e.Info(); err == nil {
			total += info.Size()
		}
	}
	return total
}

func (s *Scanner) hidden(name string) bool {
	return !s.IncludeHidden && strings.HasPrefix(name, ".")
}

func (s *Scanner) debug(msg string, kv ...any) {
	if s.Logger != nil {
		s.Logger.Debug(msg, kv...)
	}
}

// cancelled polls the context without blocking.
func cancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// sortBySize orders candidates largest first, stable so equal-size entries
// keep enumeration order.
func sortBySize(cands []candidate) {
	slices.SortStableFunc(cands, func(a, b candidate) int {
		return cmp.Compare(b.size, a.size)
	})
}
