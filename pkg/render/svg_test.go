package render

import (
	"strings"
	"testing"

	"github.com/spacetile/spacetile/pkg/treemap"
)

func sampleLayout() treemap.LayoutExport {
	return treemap.LayoutExport{
		Width:  200,
		Height: 100,
		Rects: []treemap.RectExport{
			{Name: "videos dir", Category: "videos", Size: 1 << 30, X: 0, Y: 0, W: 100, H: 100},
			{Name: "a<b>.jpg", Category: "images", Size: 2048, X: 100, Y: 0, W: 100, H: 50},
			{Name: "tiny.txt", Category: "documents", Size: 1, X: 100, Y: 50, W: 100, H: 50},
		},
	}
}

func TestSVGStructure(t *testing.T) {
	out := string(SVG(sampleLayout()))

	if !strings.HasPrefix(out, "<svg ") || !strings.HasSuffix(out, "</svg>\n") {
		t.Fatalf("output is not a complete SVG document:\n%s", out)
	}
	if !strings.Contains(out, `viewBox="0 0 200.0 100.0"`) {
		t.Errorf("viewBox does not match canvas:\n%s", out)
	}
	if got := strings.Count(out, "<rect "); got != 3 {
		t.Errorf("got %d rects, want 3", got)
	}
}

func TestSVGEscapesNames(t *testing.T) {
	out := string(SVG(sampleLayout()))

	if strings.Contains(out, "a<b>.jpg") {
		t.Error("unescaped markup leaked into output")
	}
	if !strings.Contains(out, "a&lt;b&gt;.jpg") {
		t.Error("expected escaped name in output")
	}
}

func TestSVGLabels(t *testing.T) {
	plain := string(SVG(sampleLayout()))
	if strings.Contains(plain, "<text ") {
		t.Error("labels rendered without WithLabels")
	}

	labelled := string(SVG(sampleLayout(), WithLabels()))
	if !strings.Contains(labelled, "<text ") {
		t.Error("WithLabels produced no text elements")
	}
	// 1 GiB formatted human-readably somewhere in the labels.
	if !strings.Contains(labelled, "GB") && !strings.Contains(labelled, "GiB") {
		t.Errorf("expected humanized size in labels:\n%s", labelled)
	}
}

func TestSVGPaddingClampsToZero(t *testing.T) {
	l := treemap.LayoutExport{
		Width:  10,
		Height: 10,
		Rects: []treemap.RectExport{
			{Name: "sliver", Category: "other", Size: 1, X: 0, Y: 0, W: 1, H: 10},
		},
	}
	out := string(SVG(l, WithPadding(5)))

	if strings.Contains(out, `width="-`) || strings.Contains(out, `height="-`) {
		t.Errorf("padding produced negative dimensions:\n%s", out)
	}
}

func TestSVGEmptyLayout(t *testing.T) {
	out := string(SVG(treemap.LayoutExport{Width: 100, Height: 100}))
	if strings.Count(out, "<rect ") != 0 {
		t.Error("empty layout should render no rects")
	}
}
