package scan

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/spacetile/spacetile/pkg/treemap"
)

// DefaultTimeout is the wall-clock budget a Governor grants a scan.
const DefaultTimeout = 30 * time.Second

// Governor runs scans under a wall-clock deadline and enforces that at most
// one scan is in flight at a time. The deadline is a cancellation request,
// not a hard cutoff: when it fires the scan is signalled to stop, and the
// Governor still returns whatever partial tree the scan produces. How quickly
// the scan yields depends on the Scanner reaching its per-entry cancellation
// checks.
type Governor struct {
	scanner *Scanner
	timeout time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewGovernor wraps a Scanner with a deadline. A non-positive timeout falls
// back to DefaultTimeout.
func NewGovernor(s *Scanner, timeout time.Duration) *Governor {
	if s == nil {
		s = New()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Governor{scanner: s, timeout: timeout}
}

// Scan runs one governed scan. If another scan is already in flight on this
// Governor it is cancelled and awaited first, so callers always observe at
// most one scan running.
//
// The returned bool reports whether the deadline expired, letting callers
// label the tree as partial. The tree itself is never nil.
func (g *Governor) Scan(ctx context.Context, root string) (*treemap.Node, bool) {
	g.mu.Lock()
	for g.cancel != nil {
		g.cancel()
		prev := g.done
		g.mu.Unlock()
		<-prev
		g.mu.Lock()
	}

	scanCtx, cancel := context.WithTimeout(ctx, g.timeout)
	done := make(chan struct{})
	g.cancel, g.done = cancel, done
	g.mu.Unlock()

	tree := g.scanner.Scan(scanCtx, root)
	expired := errors.Is(scanCtx.Err(), context.DeadlineExceeded)
	cancel()

	g.mu.Lock()
	if g.done == done {
		g.cancel, g.done = nil, nil
	}
	g.mu.Unlock()
	close(done)

	return tree, expired
}

// Timeout returns the configured deadline.
func (g *Governor) Timeout() time.Duration { return g.timeout }
