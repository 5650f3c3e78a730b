// Package treemap provides the sized node tree produced by a filesystem scan
// and the squarified layout algorithm that turns it into area-proportional
// rectangles.
//
// Nodes are plain immutable values: a scan builds a tree wholesale, the layout
// reads it, and the next scan replaces it. Nothing in this package mutates a
// node after construction, so trees and layouts can be shared and recomputed
// freely across goroutines.
package treemap

import (
	"path/filepath"

	"github.com/spacetile/spacetile/pkg/category"
)

// Node is one filesystem entry in a scan result. A leaf is a file; a node
// with children is a directory. Size is bytes on disk for files and the sum
// of children for directories.
type Node struct {
	Name     string
	Path     string
	Size     int64
	Category category.Category
	Children []*Node
	Depth    int
}

// NewFile builds a leaf node for a regular file, classified by extension.
func NewFile(name, path string, size int64, depth int) *Node {
	return &Node{
		Name:     name,
		Path:     path,
		Size:     size,
		Category: category.FromPath(name),
		Depth:    depth,
	}
}

// NewDir builds a directory node, rolling up size and dominant category from
// children. A directory with no children has size 0 and category Other.
func NewDir(name, path string, depth int, children []*Node) *Node {
	var total int64
	sums := make(map[category.Category]int64)
	for _, c := range children {
		total += c.Size
		sums[c.Category] += c.Size
	}
	return &Node{
		Name:     name,
		Path:     path,
		Size:     total,
		Category: dominant(sums),
		Children: children,
		Depth:    depth,
	}
}

// NewError builds the safe-default leaf returned for unreadable roots.
func NewError(path string) *Node {
	return &Node{
		Name:     "Error",
		Path:     path,
		Category: category.Other,
	}
}

// dominant picks the category with the greatest summed size. Ties resolve to
// the earliest category in declaration order; an empty map resolves to Other.
func dominant(sums map[category.Category]int64) category.Category {
	if len(sums) == 0 {
		return category.Other
	}
	best := category.Other
	var bestSize int64 = -1
	for _, c := range category.All {
		if s, ok := sums[c]; ok && s > bestSize {
			best, bestSize = c, s
		}
	}
	return best
}

// IsDir reports whether the node has children.
func (n *Node) IsDir() bool { return len(n.Children) > 0 }

// Count returns the total number of nodes in the subtree, including n.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// MaxDepth returns the greatest Depth value in the subtree.
func (n *Node) MaxDepth() int {
	max := n.Depth
	for _, c := range n.Children {
		if d := c.MaxDepth(); d > max {
			max = d
		}
	}
	return max
}

// Base returns the display name for a node, falling back to the final path
// element when Name is empty.
func (n *Node) Base() string {
	if n.Name != "" {
		return n.Name
	}
	return filepath.Base(n.Path)
}
