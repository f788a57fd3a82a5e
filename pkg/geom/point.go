package geom

import "math"

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Pt is a convenience constructor for Point.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns the component-wise sum of p and q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns the component-wise difference p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// HorizontalDistance returns |p.X - q.X|.
func (p Point) HorizontalDistance(q Point) float64 { return math.Abs(p.X - q.X) }

// VerticalDistance returns |p.Y - q.Y|.
func (p Point) VerticalDistance(q Point) float64 { return math.Abs(p.Y - q.Y) }

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Size is a width/height pair.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle given by its origin and size.
// Coordinates grow rightwards and downwards.
type Rect struct {
	X, Y, W, H float64
}

// R is a convenience constructor for Rect.
func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// Origin returns the top-left corner of the rectangle.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{W: r.W, H: r.H} }

// Center returns the geometric center of the rectangle.
func (r Rect) Center() Point { return Point{X: r.X + r.W/2, Y: r.Y + r.H/2} }

// Offset returns r translated by p.
func (r Rect) Offset(p Point) Rect { return Rect{X: r.X + p.X, Y: r.Y + p.Y, W: r.W, H: r.H} }
