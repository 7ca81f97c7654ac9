package geom

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Affine is a 2D affine transform laid out as
//
//	| a  c  e |
//	| b  d  f |
//	| 0  0  1 |
type Affine [6]float64

// Identity returns the identity transform.
func Identity() Affine { return Affine{1, 0, 0, 1, 0, 0} }

// Translate returns a translation by (tx, ty).
func Translate(tx, ty float64) Affine { return Affine{1, 0, 0, 1, tx, ty} }

// ScaleBy returns a uniform or non-uniform scale.
func ScaleBy(sx, sy float64) Affine { return Affine{sx, 0, 0, sy, 0, 0} }

// RotateBy returns a rotation by degrees about the origin.
func RotateBy(degrees float64) Affine {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// Mul returns m*o: o is applied first, then m.
func (m Affine) Mul(o Affine) Affine {
	return Affine{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// Apply transforms p.
func (m Affine) Apply(p Point) Point {
	return Point{m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]}
}

// Invert returns the inverse transform, or the identity if m is singular.
func (m Affine) Invert() Affine {
	det := m[0]*m[3] - m[1]*m[2]
	if det == 0 {
		return Identity()
	}
	inv := 1 / det
	return Affine{
		m[3] * inv,
		-m[1] * inv,
		-m[2] * inv,
		m[0] * inv,
		(m[2]*m[5] - m[3]*m[4]) * inv,
		(m[1]*m[4] - m[0]*m[5]) * inv,
	}
}

// Aff3 converts m to the row-major layout used by golang.org/x/image/draw.
func (m Affine) Aff3() f64.Aff3 {
	return f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}
}

// Placement composes the transform that maps a local box of size s (origin
// at its top-left) onto the canvas so that its center lands on c, rotated by
// degrees and scaled by k about that center.
func Placement(c Point, s Size, degrees, k float64) Affine {
	return Translate(c.X, c.Y).
		Mul(RotateBy(degrees)).
		Mul(ScaleBy(k, k)).
		Mul(Translate(-s.W/2, -s.H/2))
}
