package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spacetile/spacetile/pkg/category"
)

// writeFile creates a file of the given size under dir.
func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScanNonexistentPath(t *testing.T) {
	n := New().Scan(context.Background(), "/no/such/path")

	if n.Name != "Error" {
		t.Errorf("Name = %q, want Error", n.Name)
	}
	if n.Size != 0 || n.Category != category.Other || len(n.Children) != 0 {
		t.Errorf("unexpected error node: %+v", n)
	}
}

func TestScanSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "photo.jpg", 1234)

	n := New().Scan(context.Background(), path)

	if n.Name != "photo.jpg" || n.Size != 1234 || n.Category != category.Images {
		t.Errorf("unexpected file node: %+v", n)
	}
	if n.IsDir() {
		t.Error("file scan should produce a leaf")
	}
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "big.mp4", 3000)
	writeFile(t, dir, "mid.jpg", 2000)
	writeFile(t, dir, "small.txt", 1000)
	writeFile(t, dir, ".hidden", 99999)

	n := New().Scan(context.Background(), dir)

	if len(n.Children) != 3 {
		t.Fatalf("got %d children, want 3 (hidden excluded)", len(n.Children))
	}
	if n.Size != 6000 {
		t.Errorf("Size = %d, want 6000", n.Size)
	}
	wantOrder := []string{"big.mp4", "mid.jpg", "small.txt"}
	for i, c := range n.Children {
		if c.Name != wantOrder[i] {
			t.Errorf("children[%d] = %q, want %q", i, c.Name, wantOrder[i])
		}
		if c.Depth != 1 {
			t.Errorf("children[%d].Depth = %d, want 1", i, c.Depth)
		}
	}
	if n.Category != category.Videos {
		t.Errorf("dominant category = %v, want Videos", n.Category)
	}
}

func TestScanIncludeHidden(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".hidden", 500)
	writeFile(t, dir, "plain.txt", 100)

	s := New()
	s.IncludeHidden = true
	n := s.Scan(context.Background(), dir)

	if len(n.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(n.Children))
	}
}

func TestScanTruncatesToTopChildren(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 60; i++ {
		writeFile(t, dir, fmt.Sprintf("f%02d.dat", i), (i+1)*10)
	}

	n := New().Scan(context.Background(), dir)

	if len(n.Children) > maxChildren {
		t.Fatalf("got %d children, want at most %d", len(n.Children), maxChildren)
	}
	for i := 1; i < len(n.Children); i++ {
		if n.Children[i].Size > n.Children[i-1].Size {
			t.Fatalf("children not sorted by descending size at %d", i)
		}
	}
}

func TestScanSubdirectoryApproximateSize(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, sub, "a.bin", 700)
	writeFile(t, sub, "b.bin", 300)
	nested := filepath.Join(sub, "nested")
	if err := os.Mkdir(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	// Below the first level: must not contribute to the approximation.
	writeFile(t, nested, "deep.bin", 50000)

	n := New().Scan(context.Background(), dir)

	if len(n.Children) != 1 {
		t.Fatalf("got %d children, want 1", len(n.Children))
	}
	c := n.Children[0]
	if c.Name != "sub" || c.Size != 1000 {
		t.Errorf("sub node = %q size %d, want sub size 1000", c.Name, c.Size)
	}
	if len(c.Children) != 0 {
		t.Errorf("placeholder dir should have no children, got %d", len(c.Children))
	}
}

func TestScanCancelledBeforeStart(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", 100)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n := New().Scan(ctx, dir)

	if n == nil {
		t.Fatal("cancelled scan must still return a node")
	}
	if len(n.Children) != 0 {
		t.Errorf("got %d children, want 0 after pre-cancelled context", len(n.Children))
	}
}

// countdownCtx cancels itself after its Done channel has been polled a fixed
// number of times, simulating cancellation arriving mid-enumeration.
type countdownCtx struct {
	context.Context
	mu        sync.Mutex
	remaining int
	done      chan struct{}
	closed    bool
}

func newCountdownCtx(polls int) *countdownCtx {
	return &countdownCtx{
		Context:   context.Background(),
		remaining: polls,
		done:      make(chan struct{}),
	}
}

func (c *countdownCtx) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remaining--
	if c.remaining < 0 && !c.closed {
		c.closed = true
		close(c.done)
	}
	return c.done
}

func (c *countdownCtx) Err() error {
	select {
	case <-c.done:
		return context.Canceled
	default:
		return nil
	}
}

func TestScanCancelledMidEnumeration(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 20; i++ {
		writeFile(t, dir, fmt.Sprintf("f%02d.dat", i), 100+i)
	}

	// The scanner polls once before each entry; allow exactly 10 polls.
	ctx := newCountdownCtx(10)
	n := New().Scan(ctx, dir)

	if len(n.Children) != 10 {
		t.Fatalf("got %d children, want exactly the 10 entries before cancellation", len(n.Children))
	}
	// ReadDir enumerates lexically, so the surviving set is f00..f09.
	seen := map[string]bool{}
	for _, c := range n.Children {
		seen[c.Name] = true
		if c.Size < 100 || c.Size > 109 {
			t.Errorf("unexpected child %q size %d", c.Name, c.Size)
		}
	}
	for i := 0; i < 10; i++ {
		name := fmt.Sprintf("f%02d.dat", i)
		if !seen[name] {
			t.Errorf("missing pre-cancellation entry %s", name)
		}
	}
}

func TestGovernorReturnsTree(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", 100)

	g := NewGovernor(New(), time.Minute)
	tree, expired := g.Scan(context.Background(), dir)

	if tree == nil || len(tree.Children) != 1 {
		t.Fatalf("unexpected tree: %+v", tree)
	}
	if expired {
		t.Error("fast scan should not report an expired deadline")
	}
}

func TestGovernorExpiredDeadline(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", 100)

	g := NewGovernor(New(), time.Nanosecond)
	tree, expired := g.Scan(context.Background(), dir)

	if tree == nil {
		t.Fatal("governor must return a tree even after the deadline")
	}
	if !expired {
		t.Error("nanosecond budget should report an expired deadline")
	}
}

func TestGovernorDefaultTimeout(t *testing.T) {
	g := NewGovernor(nil, 0)
	if g.Timeout() != DefaultTimeout {
		t.Errorf("Timeout() = %v, want %v", g.Timeout(), DefaultTimeout)
	}
}

func TestGovernorConcurrentScans(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 5; i++ {
		writeFile(t, dir, fmt.Sprintf("f%d.txt", i), 100)
	}

	g := NewGovernor(New(), time.Minute)

	var wg sync.WaitGroup
	trees := make([]bool, 4)
	for i := 0; i < 4; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			tree, _ := g.Scan(context.Background(), dir)
			trees[i] = tree != nil
		}()
	}
	wg.Wait()

	for i, ok := range trees {
		if !ok {
			t.Errorf("scan %d returned nil tree", i)
		}
	}
}
