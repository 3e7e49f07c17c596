package geom

import "math"

// Box2 is an axis-aligned bounding box, defined by its Min and Max corners.
//
// A Box2 is empty when Min.X > Max.X or Min.Y > Max.Y; EmptyBox returns
// such a value, and Extend/ExtendBox grow it into a non-empty box that
// contains the given point or box.
type Box2 struct {
	Min, Max Vec2
}

// EmptyBox returns the canonical empty box, ready to be grown with Extend
// or ExtendBox.
func EmptyBox() Box2 {
	return Box2{
		Min: Vec2{X: math.Inf(1), Y: math.Inf(1)},
		Max: Vec2{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// BoxFromPoints returns the smallest box containing p0 and p1.
func BoxFromPoints(p0, p1 Vec2) Box2 {
	return Box2{Min: p0.Min(p1), Max: p0.Max(p1)}
}

// Empty reports whether b holds no points.
func (b Box2) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

// Extend returns the smallest box containing b and p.
func (b Box2) Extend(p Vec2) Box2 {
	if b.Empty() {
		return Box2{Min: p, Max: p}
	}
	return Box2{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// ExtendBox returns the smallest box containing b and o.
func (b Box2) ExtendBox(o Box2) Box2 {
	if o.Empty() {
		return b
	}
	if b.Empty() {
		return o
	}
	return Box2{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Center returns the center of b. Undefined for an empty box.
func (b Box2) Center() Vec2 {
	return Vec2{
		X: (b.Min.X + b.Max.X) * 0.5,
		Y: (b.Min.Y + b.Max.Y) * 0.5,
	}
}

// HalfExtents returns half the width and height of b.
func (b Box2) HalfExtents() Vec2 {
	return Vec2{
		X: (b.Max.X - b.Min.X) * 0.5,
		Y: (b.Max.Y - b.Min.Y) * 0.5,
	}
}

// Dx returns the width of b.
func (b Box2) Dx() float64 { return b.Max.X - b.Min.X }

// Dy returns the height of b.
func (b Box2) Dy() float64 { return b.Max.Y - b.Min.Y }

// Perimeter returns 2*(width+height), the quantity minimized by the
// perimeter-area heuristic during BVH construction.
func (b Box2) Perimeter() float64 {
	return 2 * (b.Dx() + b.Dy())
}

// Area returns the box area.
func (b Box2) Area() float64 {
	return b.Dx() * b.Dy()
}

// Overlaps reports whether b and o share at least one point, edges
// included.
func (b Box2) Overlaps(o Box2) bool {
	if b.Min.X > o.Max.X || b.Max.X < o.Min.X {
		return false
	}
	if b.Min.Y > o.Max.Y || b.Max.Y < o.Min.Y {
		return false
	}
	return true
}

// Contains reports whether p lies within b, edges included.
func (b Box2) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// DistSqr returns the squared distance from p to the nearest point of b (0
// if p is inside b).
func (b Box2) DistSqr(p Vec2) float64 {
	dx := 0.0
	if p.X < b.Min.X {
		dx = b.Min.X - p.X
	} else if p.X > b.Max.X {
		dx = p.X - b.Max.X
	}
	dy := 0.0
	if p.Y < b.Min.Y {
		dy = b.Min.Y - p.Y
	} else if p.Y > b.Max.Y {
		dy = p.Y - b.Max.Y
	}
	return dx*dx + dy*dy
}

// Square returns the smallest square box centered on b's center that
// contains b entirely, growing the shorter axis to match the longer one.
func (b Box2) Square() Box2 {
	c := b.Center()
	half := math.Max(b.HalfExtents().X, b.HalfExtents().Y)
	sq := Box2{
		Min: Vec2{X: c.X - half, Y: c.Y - half},
		Max: Vec2{X: c.X + half, Y: c.Y + half},
	}
	// Clamp so the square always contains the original box even if
	// half*2 rounds short on an already-square input.
	return sq.ExtendBox(b)
}
