package primitive

import (
	"math"

	"github.com/arl/go-pcbvh/geom"
)

// segmentOverlapsBox tests a segment against an axis-aligned box with a
// Liang-Barsky style parametric clip: the segment is written as
// p0 + t*(p1-p0), t ∈ [0,1], and each of the box's 4 half-plane
// constraints shrinks the admissible [tmin,tmax] range. The segment
// overlaps the box iff that range stays non-empty; this is exact,
// unlike a bbox-only test.
func segmentOverlapsBox(p0, p1 geom.Vec2, box geom.Box2) bool {
	d := p1.Sub(p0)
	tmin, tmax := 0.0, 1.0

	clip := func(p, q float64) bool {
		if p == 0 {
			// parallel to this boundary: outside iff already beyond it.
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > tmax {
				return false
			}
			if t > tmin {
				tmin = t
			}
		} else {
			if t < tmin {
				return false
			}
			if t < tmax {
				tmax = t
			}
		}
		return true
	}

	if !clip(-d.X, p0.X-box.Min.X) {
		return false
	}
	if !clip(d.X, box.Max.X-p0.X) {
		return false
	}
	if !clip(-d.Y, p0.Y-box.Min.Y) {
		return false
	}
	if !clip(d.Y, box.Max.Y-p0.Y) {
		return false
	}
	return tmin <= tmax
}

// arcOverlapsBox tests an arc against a box: true when any arc endpoint
// lies in box, or when any of the box's four edges crosses the arc's
// circle at an angle within the swept interval. Bounding boxes are
// assumed to already have been checked to overlap by the caller
// (Primitive.Overlaps).
func arcOverlapsBox(a Primitive, box geom.Box2) bool {
	if box.Contains(a.P0) || box.Contains(a.P1) {
		return true
	}

	edges := [4][2]geom.Vec2{
		{{X: box.Min.X, Y: box.Min.Y}, {X: box.Max.X, Y: box.Min.Y}},
		{{X: box.Max.X, Y: box.Min.Y}, {X: box.Max.X, Y: box.Max.Y}},
		{{X: box.Max.X, Y: box.Max.Y}, {X: box.Min.X, Y: box.Max.Y}},
		{{X: box.Min.X, Y: box.Max.Y}, {X: box.Min.X, Y: box.Min.Y}},
	}
	for _, e := range edges {
		if segmentCrossesArcCircle(a, e[0], e[1]) {
			return true
		}
	}
	return false
}

// segmentCrossesArcCircle reports whether segment p0p1 intersects a's
// circle at a point whose polar angle (relative to a.Center) lies within
// a's swept interval.
func segmentCrossesArcCircle(a Primitive, p0, p1 geom.Vec2) bool {
	d := p1.Sub(p0)
	f := p0.Sub(a.Center)

	aCoef := d.Dot(d)
	bCoef := 2 * f.Dot(d)
	cCoef := f.Dot(f) - a.Radius*a.Radius

	disc := bCoef*bCoef - 4*aCoef*cCoef
	if disc < 0 || aCoef == 0 {
		return false
	}
	sq := math.Sqrt(disc)
	for _, t := range [2]float64{(-bCoef - sq) / (2 * aCoef), (-bCoef + sq) / (2 * aCoef)} {
		if t < 0 || t > 1 {
			continue
		}
		hit := p0.Add(d.Scale(t))
		if a.inSweep(hit.Sub(a.Center).Angle()) {
			return true
		}
	}
	return false
}
