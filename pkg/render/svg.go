// Package render turns computed treemap layouts into output artifacts.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/spacetile/spacetile/pkg/category"
	"github.com/spacetile/spacetile/pkg/treemap"
)

// Fill colors per category, chosen to stay readable on a dark background.
var categoryFills = map[category.Category]string{
	category.Images:    "#4C9F70",
	category.Videos:    "#C061CB",
	category.Audio:     "#E8B93F",
	category.Documents: "#5B8DEF",
	category.Code:      "#E36E5B",
	category.Archives:  "#8A7F5C",
	category.System:    "#7A7A8C",
	category.Other:     "#4A4A55",
}

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels  bool
	padding float64
}

// WithLabels draws a name and size label inside rectangles large enough to
// hold one.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithPadding insets each rectangle by p user units on every side.
func WithPadding(p float64) SVGOption { return func(r *svgRenderer) { r.padding = p } }

// minimum rectangle dimensions for a readable label.
const (
	labelMinW = 60
	labelMinH = 24
)

// SVG renders a layout as a standalone SVG document. Every placement becomes
// one <rect> filled by category; the output dimensions match the layout's
// canvas.
func SVG(l treemap.LayoutExport, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)

	for _, rect := range l.Rects {
		renderRect(&buf, &r, rect)
	}
	if r.labels {
		for _, rect := range l.Rects {
			renderLabel(&buf, &r, rect)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderRect(buf *bytes.Buffer, r *svgRenderer, rect treemap.RectExport) {
	x, y := rect.X+r.padding, rect.Y+r.padding
	w, h := rect.W-2*r.padding, rect.H-2*r.padding
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	fill := categoryFills[category.Parse(rect.Category)]
	fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="#1A1A1F" stroke-width="1">`+"\n",
		x, y, w, h, fill)
	fmt.Fprintf(buf, "    <title>%s (%s)</title>\n", escape(rect.Name), humanize.Bytes(uint64(max64(rect.Size, 0))))
	buf.WriteString("  </rect>\n")
}

func renderLabel(buf *bytes.Buffer, r *svgRenderer, rect treemap.RectExport) {
	if rect.W-2*r.padding < labelMinW || rect.H-2*r.padding < labelMinH {
		return
	}
	cx := rect.X + rect.W/2
	cy := rect.Y + rect.H/2
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" text-anchor="middle" font-family="sans-serif" font-size="11" fill="#F5F5F7">%s</text>`+"\n",
		cx, cy-2, escape(rect.Name))
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" text-anchor="middle" font-family="sans-serif" font-size="9" fill="#C8C8CE">%s</text>`+"\n",
		cx, cy+10, humanize.Bytes(uint64(max64(rect.Size, 0))))
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string { return escaper.Replace(s) }

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
