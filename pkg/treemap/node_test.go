package treemap

import (
	"testing"

	"github.com/spacetile/spacetile/pkg/category"
)

func TestNewFileClassifies(t *testing.T) {
	tests := []struct {
		name string
		want category.Category
	}{
		{"photo.jpg", category.Images},
		{"movie.MKV", category.Videos},
		{"song.flac", category.Audio},
		{"report.pdf", category.Documents},
		{"main.go", category.Code},
		{"backup.tar.gz", category.Archives},
		{"mystery.xyz123", category.Other},
		{"README", category.Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewFile(tt.name, "/tmp/"+tt.name, 10, 1)
			if n.Category != tt.want {
				t.Errorf("category = %v, want %v", n.Category, tt.want)
			}
			if n.IsDir() {
				t.Error("file node should not be a directory")
			}
		})
	}
}

func TestNewDirRollsUpSize(t *testing.T) {
	children := []*Node{
		NewFile("a.jpg", "/d/a.jpg", 100, 1),
		NewFile("b.mp4", "/d/b.mp4", 250, 1),
		NewDir("sub", "/d/sub", 1, []*Node{
			NewFile("c.txt", "/d/sub/c.txt", 50, 2),
		}),
	}
	dir := NewDir("d", "/d", 0, children)

	if dir.Size != 400 {
		t.Errorf("Size = %d, want 400", dir.Size)
	}
	if got := dir.Count(); got != 5 {
		t.Errorf("Count() = %d, want 5", got)
	}
	if got := dir.MaxDepth(); got != 2 {
		t.Errorf("MaxDepth() = %d, want 2", got)
	}
}

func TestNewDirDominantCategory(t *testing.T) {
	tests := []struct {
		name     string
		children []*Node
		want     category.Category
	}{
		{
			name: "largest summed category wins",
			children: []*Node{
				NewFile("a.jpg", "", 100, 1),
				NewFile("b.jpg", "", 100, 1),
				NewFile("c.mp4", "", 150, 1),
			},
			want: category.Images,
		},
		{
			name: "tie resolves to earliest category",
			children: []*Node{
				NewFile("a.mp4", "", 100, 1),
				NewFile("b.jpg", "", 100, 1),
			},
			want: category.Images,
		},
		{
			name:     "no children",
			children: nil,
			want:     category.Other,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := NewDir("d", "/d", 0, tt.children)
			if dir.Category != tt.want {
				t.Errorf("category = %v, want %v", dir.Category, tt.want)
			}
		})
	}
}

func TestNewError(t *testing.T) {
	n := NewError("/no/such/path")
	if n.Name != "Error" || n.Size != 0 || n.Category != category.Other || len(n.Children) != 0 {
		t.Errorf("unexpected error node: %+v", n)
	}
}

func TestBase(t *testing.T) {
	if got := (&Node{Name: "x", Path: "/a/b"}).Base(); got != "x" {
		t.Errorf("Base() = %q, want x", got)
	}
	if got := (&Node{Path: "/a/b"}).Base(); got != "b" {
		t.Errorf("Base() = %q, want b", got)
	}
}
