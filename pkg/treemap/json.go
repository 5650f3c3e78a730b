package treemap

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spacetile/spacetile/pkg/category"
)

// treeNode is the wire form of a Node. Kept separate from Node so the JSON
// shape can stay stable if the in-memory model grows.
type treeNode struct {
	Name     string     `json:"name"`
	Path     string     `json:"path,omitempty"`
	Size     int64      `json:"size"`
	Category string     `json:"category"`
	Depth    int        `json:"depth,omitempty"`
	Children []treeNode `json:"children,omitempty"`
}

func toWire(n *Node) treeNode {
	w := treeNode{
		Name:     n.Name,
		Path:     n.Path,
		Size:     n.Size,
		Category: n.Category.String(),
		Depth:    n.Depth,
	}
	if len(n.Children) > 0 {
		w.Children = make([]treeNode, len(n.Children))
		for i, c := range n.Children {
			w.Children[i] = toWire(c)
		}
	}
	return w
}

func fromWire(w treeNode) *Node {
	n := &Node{
		Name:     w.Name,
		Path:     w.Path,
		Size:     w.Size,
		Category: category.Parse(w.Category),
		Depth:    w.Depth,
	}
	if len(w.Children) > 0 {
		n.Children = make([]*Node, len(w.Children))
		for i, c := range w.Children {
			n.Children[i] = fromWire(c)
		}
	}
	return n
}

// WriteTree encodes a node tree as indented JSON. The output round-trips
// through [ReadTree].
func WriteTree(n *Node, w io.Writer) error {
	if n == nil {
		return fmt.Errorf("nil tree")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toWire(n)); err != nil {
		return fmt.Errorf("encode tree: %w", err)
	}
	return nil
}

// ReadTree decodes a node tree written by [WriteTree].
func ReadTree(r io.Reader) (*Node, error) {
	var w treeNode
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	return fromWire(w), nil
}

// MarshalTree returns the JSON form of a tree, for caching.
func MarshalTree(n *Node) ([]byte, error) {
	if n == nil {
		return nil, fmt.Errorf("nil tree")
	}
	return json.Marshal(toWire(n))
}

// UnmarshalTree decodes a tree produced by [MarshalTree].
func UnmarshalTree(data []byte) (*Node, error) {
	var w treeNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	return fromWire(w), nil
}

// WriteTreeFile writes a tree to a JSON file at path.
func WriteTreeFile(n *Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteTree(n, f)
}

// ReadTreeFile reads a tree from a JSON file at path.
func ReadTreeFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadTree(f)
}

// LayoutExport is the serializable form of one layout pass: the canvas it
// was computed for plus every placed rectangle.
type LayoutExport struct {
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Rects  []RectExport `json:"rects"`
}

// RectExport is one placed rectangle on the wire.
type RectExport struct {
	Name     string  `json:"name"`
	Path     string  `json:"path,omitempty"`
	Category string  `json:"category"`
	Size     int64   `json:"size"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
}

// ExportLayout converts placements to their serializable form.
func ExportLayout(placements []Placement, canvas Rect) LayoutExport {
	out := LayoutExport{
		Width:  canvas.W,
		Height: canvas.H,
		Rects:  make([]RectExport, len(placements)),
	}
	for i, p := range placements {
		out.Rects[i] = RectExport{
			Name:     p.Node.Base(),
			Path:     p.Node.Path,
			Category: p.Node.Category.String(),
			Size:     p.Node.Size,
			X:        p.Rect.X,
			Y:        p.Rect.Y,
			W:        p.Rect.W,
			H:        p.Rect.H,
		}
	}
	return out
}

// Placements reconstructs placement values from a serialized layout. The
// nodes carry only the fields the wire format preserves.
func (l LayoutExport) Placements() []Placement {
	out := make([]Placement, len(l.Rects))
	for i, r := range l.Rects {
		out[i] = Placement{
			Node: &Node{
				Name:     r.Name,
				Path:     r.Path,
				Size:     r.Size,
				Category: category.Parse(r.Category),
			},
			Rect: Rect{X: r.X, Y: r.Y, W: r.W, H: r.H},
		}
	}
	return out
}

// MarshalLayout returns the JSON form of a layout, for caching.
func MarshalLayout(l LayoutExport) ([]byte, error) {
	return json.Marshal(l)
}

// UnmarshalLayout decodes a layout produced by [MarshalLayout].
func UnmarshalLayout(data []byte) (LayoutExport, error) {
	var l LayoutExport
	if err := json.Unmarshal(data, &l); err != nil {
		return LayoutExport{}, fmt.Errorf("decode layout: %w", err)
	}
	return l, nil
}

// WriteLayoutFile writes a layout to an indented JSON file at path.
func WriteLayoutFile(l LayoutExport, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return nil
}

// ReadLayoutFile reads a layout from a JSON file at path.
func ReadLayoutFile(path string) (LayoutExport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LayoutExport{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
