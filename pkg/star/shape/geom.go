package shape

import (
	"fmt"
	"math"
)

// Point is a position in user space (y grows downwards).
type Point struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
}

// Scale multiplies both coordinates by f.
func (pt Point) Scale(f float64) Point {
	return Point{X: pt.X * f, Y: pt.Y * f}
}

// Translate moves the point by (dx, dy).
func (pt Point) Translate(dx, dy float64) Point {
	return Point{X: pt.X + dx, Y: pt.Y + dy}
}

// IsNaN reports whether at least one of x and y is NaN.
func (pt Point) IsNaN() bool {
	return math.IsNaN(pt.X) || math.IsNaN(pt.Y)
}

// Size is a width and height pair.
type Size struct {
	Width  float64
	Height float64
}

// Sz returns the size w×h.
func Sz(w, h float64) Size {
	return Size{Width: w, Height: h}
}

func (sz Size) String() string {
	return fmt.Sprintf("%g×%g", sz.Width, sz.Height)
}

// Rect is an axis-aligned rectangle spanning [X0, X1] × [Y0, Y1].
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// NewRect returns the rectangle with the given origin and size.
func NewRect(origin Point, size Size) Rect {
	return Rect{X0: origin.X, Y0: origin.Y, X1: origin.X + size.Width, Y1: origin.Y + size.Height}
}

// Origin returns the top left corner.
func (r Rect) Origin() Point { return Point{X: r.X0, Y: r.Y0} }

// Width returns X1 − X0.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns Y1 − Y0.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Size returns the rectangle's width and height.
func (r Rect) Size() Size { return Size{Width: r.Width(), Height: r.Height()} }

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		X0: min(r.X0, o.X0),
		Y0: min(r.Y0, o.Y0),
		X1: max(r.X1, o.X1),
		Y1: max(r.Y1, o.Y1),
	}
}
