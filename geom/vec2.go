// Package geom provides the 2D vector and box algebra used by the rest of
// go-pcbvh. Types are small values, copied by assignment; there is no
// allocation anywhere in this package.
package geom

import "math"

// Vec2 is a 2D point or vector of double precision components.
type Vec2 struct {
	X, Y float64
}

// Pt returns the vector (x, y).
func Pt(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Add returns v+w.
func (v Vec2) Add(w Vec2) Vec2 { return Vec2{v.X + w.X, v.Y + w.Y} }

// Sub returns v-w.
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2{v.X - w.X, v.Y - w.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product of v and w.
func (v Vec2) Dot(w Vec2) float64 { return v.X*w.X + v.Y*w.Y }

// LenSqr returns the squared euclidean norm of v.
func (v Vec2) LenSqr() float64 { return v.X*v.X + v.Y*v.Y }

// Len returns the euclidean norm of v.
func (v Vec2) Len() float64 { return math.Sqrt(v.LenSqr()) }

// Min returns the componentwise minimum of v and w.
func (v Vec2) Min(w Vec2) Vec2 {
	return Vec2{math.Min(v.X, w.X), math.Min(v.Y, w.Y)}
}

// Max returns the componentwise maximum of v and w.
func (v Vec2) Max(w Vec2) Vec2 {
	return Vec2{math.Max(v.X, w.X), math.Max(v.Y, w.Y)}
}

// DistSqr returns the squared distance between v and w.
func (v Vec2) DistSqr(w Vec2) float64 { return v.Sub(w).LenSqr() }

// Angle returns the polar angle of v relative to the origin, in [0, 2π).
func (v Vec2) Angle() float64 {
	a := math.Atan2(v.Y, v.X)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
