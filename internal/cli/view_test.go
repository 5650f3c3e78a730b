package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spacetile/spacetile/pkg/treemap"
)

func viewFixture() *treemap.Node {
	return treemap.NewDir("root", "/root", 0, []*treemap.Node{
		treemap.NewDir("big", "/root/big", 1, []*treemap.Node{
			treemap.NewFile("movie.mp4", "/root/big/movie.mp4", 6000, 2),
		}),
		treemap.NewFile("photo.jpg", "/root/photo.jpg", 3000, 1),
		treemap.NewFile("notes.txt", "/root/notes.txt", 1000, 1),
	})
}

func sizedModel(t *testing.T) viewModel {
	t.Helper()
	m := newViewModel(viewFixture(), false)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(viewModel)
}

func TestViewModelLayoutFillsTiles(t *testing.T) {
	m := sizedModel(t)
	if len(m.tiles) != 3 {
		t.Fatalf("expected 3 tiles, got %d", len(m.tiles))
	}
	// Largest entry first.
	if m.tiles[0].node.Name != "big" {
		t.Errorf("expected largest tile first, got %q", m.tiles[0].node.Name)
	}
}

func TestViewModelZoom(t *testing.T) {
	m := sizedModel(t)

	// Cursor starts on the largest tile, which is a directory.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(viewModel)
	if m.current().Name != "big" {
		t.Fatalf("expected zoom into big, at %q", m.current().Name)
	}
	if len(m.tiles) != 1 {
		t.Errorf("expected 1 tile after zoom, got %d", len(m.tiles))
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = updated.(viewModel)
	if m.current().Name != "root" {
		t.Errorf("expected zoom back to root, at %q", m.current().Name)
	}
}

func TestViewModelZoomOutAtRootIsNoop(t *testing.T) {
	m := sizedModel(t)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = updated.(viewModel)
	if m.current().Name != "root" {
		t.Errorf("expected to stay at root, at %q", m.current().Name)
	}
}

func TestViewModelCursorMove(t *testing.T) {
	m := sizedModel(t)
	start := m.selected()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(viewModel)
	if m.selected() == start {
		// The largest tile sits on the left edge, so moving right must land
		// somewhere else.
		t.Error("expected cursor to move right to a different tile")
	}
}

func TestViewModelRendersWithoutSize(t *testing.T) {
	m := newViewModel(viewFixture(), false)
	if got := m.View(); got != "Loading..." {
		t.Errorf("expected loading placeholder before first resize, got %q", got)
	}
}
