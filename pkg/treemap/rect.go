package treemap

// Rect is an axis-aligned rectangle in canvas coordinates. All values are in
// user units (typically pixels).
type Rect struct {
	X, Y, W, H float64
}

// Area returns W × H.
func (r Rect) Area() float64 { return r.W * r.H }

// ShortSide returns the smaller of W and H.
func (r Rect) ShortSide() float64 {
	if r.W < r.H {
		return r.W
	}
	return r.H
}

// LongSide returns the larger of W and H.
func (r Rect) LongSide() float64 {
	if r.W > r.H {
		return r.W
	}
	return r.H
}

// Placement pairs a node with its assigned rectangle for one layout pass.
// Placements are ephemeral: recomputed whenever the tree or canvas changes,
// never stored across passes.
type Placement struct {
	Node *Node
	Rect Rect
}
