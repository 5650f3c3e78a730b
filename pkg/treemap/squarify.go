package treemap

import (
	"cmp"
	"math"
	"slices"
)

// Squarify lays out the given nodes inside r as non-overlapping rectangles
// whose areas are proportional to node sizes. It implements the squarified
// treemap algorithm: nodes are sorted by descending size and grouped greedily
// into rows, each row extended only while doing so does not worsen the row's
// worst aspect ratio against the shorter side of the remaining rectangle.
//
// The input slice is not modified. Degenerate inputs never fail: an empty
// slice or a zero total size yields no placements, and a zero-width or
// zero-height rectangle yields zero-area placements.
func Squarify(nodes []*Node, r Rect) []Placement {
	if len(nodes) == 0 {
		return nil
	}

	sorted := make([]*Node, len(nodes))
	copy(sorted, nodes)
	slices.SortStableFunc(sorted, func(a, b *Node) int {
		return cmp.Compare(b.Size, a.Size)
	})

	var total float64
	for _, n := range sorted {
		total += float64(n.Size)
	}
	if total <= 0 {
		return nil
	}

	if r.W <= 0 || r.H <= 0 {
		out := make([]Placement, len(sorted))
		for i, n := range sorted {
			out[i] = Placement{Node: n, Rect: r}
		}
		return out
	}

	// Work in area units: each node's target area is its share of the
	// canvas. The worst-ratio test is only meaningful on this scale.
	scale := r.Area() / total
	areas := make([]float64, len(sorted))
	for i, n := range sorted {
		areas[i] = float64(n.Size) * scale
	}

	out := make([]Placement, 0, len(sorted))
	rem := r

	i := 0
	for i < len(sorted) {
		if areas[i] <= 0 {
			// Only zero-size nodes left. They occupy no area; pin them to
			// the edge of whatever space remains.
			for ; i < len(sorted); i++ {
				out = append(out, Placement{Node: sorted[i], Rect: Rect{X: rem.X, Y: rem.Y}})
			}
			break
		}

		short := rem.ShortSide()

		// Grow the row while the worst ratio does not get worse. A row
		// always takes at least one node so the loop makes progress.
		start := i
		rowArea := areas[i]
		rowMax := rowArea
		rowMin := rowArea
		i++
		ratio := worstRatio(short, rowMax, rowMin, rowArea)

		for i < len(sorted) && areas[i] > 0 {
			a := areas[i]
			nextMax := math.Max(rowMax, a)
			nextMin := math.Min(rowMin, a)
			next := worstRatio(short, nextMax, nextMin, rowArea+a)
			if next > ratio {
				break
			}
			rowArea += a
			rowMax, rowMin, ratio = nextMax, nextMin, next
			i++
		}

		out = append(out, layRow(sorted[start:i], areas[start:i], rowArea, &rem)...)
	}

	return out
}

// layRow slices one finished row into the remaining rectangle and shrinks the
// rectangle by the row's footprint. The row is laid along the shorter side:
// a wider-than-tall rectangle takes it as a full-height column on the left
// with items stacked top to bottom, otherwise as a full-width band along the
// top with items placed left to right.
func layRow(row []*Node, areas []float64, rowArea float64, rem *Rect) []Placement {
	placed := make([]Placement, 0, len(row))

	if rem.W > rem.H {
		colW := rowArea / rem.H
		y := rem.Y
		for k, n := range row {
			h := areas[k] / colW
			placed = append(placed, Placement{Node: n, Rect: Rect{X: rem.X, Y: y, W: colW, H: h}})
			y += h
		}
		rem.X += colW
		rem.W -= colW
	} else {
		bandH := rowArea / rem.W
		x := rem.X
		for k, n := range row {
			w := areas[k] / bandH
			placed = append(placed, Placement{Node: n, Rect: Rect{X: x, Y: rem.Y, W: w, H: bandH}})
			x += w
		}
		rem.Y += bandH
		rem.H -= bandH
	}
	return placed
}

// worstRatio is the row-extension stopping criterion: the worst width:height
// aspect any member of the row would get if the row were laid out now along
// a side of the given length.
func worstRatio(side, maxArea, minArea, rowArea float64) float64 {
	s2 := side * side
	t2 := rowArea * rowArea
	return math.Max(s2*maxArea/t2, t2/(s2*minArea))
}

// Layout computes the placements for one node against a target rectangle.
// A leaf occupies the whole rectangle; a directory is squarified over its
// children. A nil node yields no placements.
func Layout(node *Node, r Rect) []Placement {
	if node == nil {
		return nil
	}
	if !node.IsDir() {
		return []Placement{{Node: node, Rect: r}}
	}
	return Squarify(node.Children, r)
}
