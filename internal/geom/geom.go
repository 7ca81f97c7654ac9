// Package geom holds the plain 2D math used by the canvas: points, sizes,
// axis-aligned rectangles, the containment test that gates drags and the
// rotation helpers used by keyboard transforms.
package geom

import (
	"fmt"
	"image"
	"math"
)

const (
	// RotationStep is the angle applied by a single rotate gesture.
	RotationStep = 15.0
	// ScaleStep multiplies on scale-up and divides on scale-down.
	ScaleStep = 1.1
)

// Point is a location in canvas coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Eq reports whether p and q are within eps of each other on both axes.
func (p Point) Eq(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

func (p Point) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

// Size is a width/height pair.
type Size struct {
	W, H float64
}

// Sz is shorthand for Size{W: w, H: h}.
func Sz(w, h float64) Size { return Size{W: w, H: h} }

// Scale returns the size multiplied by f on both axes.
func (s Size) Scale(f float64) Size { return Size{s.W * f, s.H * f} }

func (s Size) String() string { return fmt.Sprintf("%gx%g", s.W, s.H) }

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X, Y, W, H float64
}

// CenteredAt returns a rectangle of size s whose center is c.
func CenteredAt(c Point, s Size) Rect {
	return Rect{X: c.X - s.W/2, Y: c.Y - s.H/2, W: s.W, H: s.H}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// TopLeft returns the minimum corner.
func (r Rect) TopLeft() Point { return Point{r.X, r.Y} }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point { return Point{r.X + r.W/2, r.Y + r.H/2} }

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{r.W, r.H} }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// ContainsPoint reports whether p lies inside r, boundaries included.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// Image converts r to integer pixel bounds, rounding each edge to the
// nearest pixel.
func (r Rect) Image() image.Rectangle {
	return image.Rect(
		int(math.Round(r.Left())),
		int(math.Round(r.Top())),
		int(math.Round(r.Right())),
		int(math.Round(r.Bottom())),
	)
}

func (r Rect) String() string {
	return fmt.Sprintf("{x:%g y:%g w:%g h:%g}", r.X, r.Y, r.W, r.H)
}

// Contains reports whether a rectangle of the given size centred at center
// lies entirely within region. Boundaries are inclusive. Rotation is not
// considered: callers pass the unrotated size of the candidate, so a rotated
// element may be rejected where it would visually fit and accepted where its
// rotated silhouette overflows.
func Contains(region Rect, center Point, size Size) bool {
	return center.X-size.W/2 >= region.Left() &&
		center.X+size.W/2 <= region.Right() &&
		center.Y-size.H/2 >= region.Top() &&
		center.Y+size.H/2 <= region.Bottom()
}

// Rotate rotates p about pivot by degrees. Positive angles turn clockwise in
// screen coordinates (y down), negative angles counter-clockwise.
func Rotate(p Point, degrees float64, pivot Point) Point {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx := p.X - pivot.X
	dy := p.Y - pivot.Y
	return Point{
		X: pivot.X + dx*cos - dy*sin,
		Y: pivot.Y + dx*sin + dy*cos,
	}
}

// NormalizeDegrees maps any angle into [0, 360).
func NormalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

// AngleEq compares two angles modulo 360 within eps.
func AngleEq(a, b, eps float64) bool {
	diff := math.Abs(NormalizeDegrees(a) - NormalizeDegrees(b))
	return diff <= eps || 360-diff <= eps
}
