// Package shape defines the star polygon and turns it into closed paths.
//
// Star outlines are authored on a normalized 100×100 canvas ([Canvas]) and
// scaled to the rendered star size with [Scale]. [BuildClosedPath] joins the
// points in order and closes the loop; sinks walk the resulting [Path]
// elements or use [Path.SVG] directly.
package shape

import (
	"strconv"
	"strings"
)

// Canvas is the edge length of the square the star points are authored on.
const Canvas = 100.0

// DefaultStarPoints is a five-pointed star on the 100×100 canvas, starting
// at the top tip and walking clockwise.
var DefaultStarPoints = []Point{
	{49.5, 0.0},
	{60.5, 35.0},
	{99.0, 35.0},
	{67.5, 58.0},
	{78.5, 92.0},
	{49.5, 71.0},
	{20.5, 92.0},
	{31.5, 58.0},
	{0.0, 35.0},
	{38.5, 35.0},
}

// Default returns a copy of [DefaultStarPoints].
func Default() []Point {
	return append([]Point(nil), DefaultStarPoints...)
}

// Scale returns a new slice with every coordinate multiplied by factor.
// The input is not modified.
func Scale(points []Point, factor float64) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = p.Scale(factor)
	}
	return out
}

// ScaleTo scales canvas points to a square of the given edge length.
func ScaleTo(points []Point, size float64) []Point {
	return Scale(points, size/Canvas)
}

// ElementKind identifies a path command.
type ElementKind int

const (
	// MoveToKind starts a new subpath at P.
	MoveToKind ElementKind = iota + 1
	// LineToKind draws a straight line to P.
	LineToKind
	// ClosePathKind draws a line back to the start of the subpath.
	ClosePathKind
)

// Element is a single path command.
type Element struct {
	Kind ElementKind
	P    Point
}

// Path is a sequence of path commands.
type Path struct {
	Elements []Element
}

// BuildClosedPath connects points in order and closes the loop back to the
// first point. Point count is not validated: an empty input yields an empty
// path and a single point yields a degenerate move-and-close.
func BuildClosedPath(points []Point) Path {
	if len(points) == 0 {
		return Path{}
	}
	els := make([]Element, 0, len(points)+1)
	els = append(els, Element{Kind: MoveToKind, P: points[0]})
	for _, p := range points[1:] {
		els = append(els, Element{Kind: LineToKind, P: p})
	}
	els = append(els, Element{Kind: ClosePathKind})
	return Path{Elements: els}
}

// Empty reports whether the path has no elements.
func (p Path) Empty() bool { return len(p.Elements) == 0 }

// Points returns the vertices of the path in order, without the closing
// element.
func (p Path) Points() []Point {
	pts := make([]Point, 0, len(p.Elements))
	for _, el := range p.Elements {
		if el.Kind != ClosePathKind {
			pts = append(pts, el.P)
		}
	}
	return pts
}

// Bounds returns the bounding box of the path's vertices.
// An empty path has a zero Rect.
func (p Path) Bounds() Rect {
	pts := p.Points()
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{X0: pts[0].X, Y0: pts[0].Y, X1: pts[0].X, Y1: pts[0].Y}
	for _, pt := range pts[1:] {
		r = r.Union(Rect{X0: pt.X, Y0: pt.Y, X1: pt.X, Y1: pt.Y})
	}
	return r
}

// SVG returns the path as an SVG path data string, e.g. "M0,0 L10,0 L5,8 Z".
func (p Path) SVG() string {
	var b strings.Builder
	for i, el := range p.Elements {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch el.Kind {
		case MoveToKind:
			b.WriteByte('M')
			writePoint(&b, el.P)
		case LineToKind:
			b.WriteByte('L')
			writePoint(&b, el.P)
		case ClosePathKind:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

func writePoint(b *strings.Builder, p Point) {
	b.WriteString(FormatCoord(p.X))
	b.WriteByte(',')
	b.WriteString(FormatCoord(p.Y))
}

// FormatCoord formats a coordinate with at most three decimals and no
// trailing zeros.
func FormatCoord(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
