// Package primitive implements the two PCB geometric primitives indexed by
// the BVH: straight segments and circular arcs.
//
// Both variants are represented as a single tagged struct rather than an
// interface: the BVH only ever needs a bounding box, a center and two
// numeric predicates per primitive, and storing primitives by value in a
// flat slice keeps the leaf-iteration hot path free of interface
// indirection and per-primitive heap allocation.
package primitive

import (
	"math"

	assert "github.com/arl/assertgo"
	"github.com/arl/go-pcbvh/geom"
)

// Kind discriminates the two primitive variants.
type Kind uint8

const (
	// Segment is a straight line between two distinct endpoints.
	Segment Kind = iota
	// Arc is a circular arc swept counter-clockwise from P0 to P1.
	Arc
)

func (k Kind) String() string {
	if k == Arc {
		return "arc"
	}
	return "segment"
}

// Primitive is a segment or an arc, tagged by Kind. Fields not used by the
// active variant are zero.
//
// Segment uses P0, P1.
// Arc uses Center, P0, P1 (Radius, Theta0, Theta1 are derived at
// construction from Center/P0/P1).
type Primitive struct {
	Kind Kind

	P0, P1 geom.Vec2
	Center geom.Vec2 // arc only

	Radius         float64 // arc only, |P0-Center| == |P1-Center|
	Theta0, Theta1 float64 // arc only, polar angles of P0, P1 in [0, 2π)

	bbox geom.Box2 // precomputed once at construction
}

// radiusTolerance bounds how far |P1-Center| may differ from |P0-Center|
// for an arc to be considered consistent; NewArc scales it by the radius
// when the radius exceeds 1.
const radiusTolerance = 1e-6

// NewSegment returns a segment primitive between two distinct endpoints.
// p0 and p1 must differ; when built with -tags debug NewSegment panics
// otherwise, and in other builds the check is compiled out. Callers are
// expected to filter degenerate input before construction; ClosestSquared
// still behaves sensibly on an already-built degenerate segment.
func NewSegment(p0, p1 geom.Vec2) Primitive {
	assert.True(p0 != p1, "segment endpoints must differ: %v == %v", p0, p1)
	return Primitive{
		Kind: Segment,
		P0:   p0,
		P1:   p1,
		bbox: geom.BoxFromPoints(p0, p1),
	}
}

// NewArc returns an arc primitive of the given center and endpoints, swept
// counter-clockwise from p0 to p1. |p1-center| must equal |p0-center|
// within radiusTolerance*max(1, |p0-center|); like NewSegment, the check
// only panics when built with -tags debug.
func NewArc(center, p0, p1 geom.Vec2) Primitive {
	r0 := p0.Sub(center).Len()
	r1 := p1.Sub(center).Len()
	assert.True(math.Abs(r0-r1) <= radiusTolerance*math.Max(1, r0),
		"arc radius mismatch: |p0-c|=%v |p1-c|=%v", r0, r1)

	a := Primitive{
		Kind:   Arc,
		Center: center,
		P0:     p0,
		P1:     p1,
		Radius: r0,
		Theta0: p0.Sub(center).Angle(),
		Theta1: p1.Sub(center).Angle(),
	}
	a.bbox = arcBBox(a)
	return a
}

// BBox returns the precomputed axis-aligned bounding box of p.
func (p Primitive) BBox() geom.Box2 { return p.bbox }

// BBoxCenter returns the center of p's bounding box, used by the BVH
// builder for centroid-based partitioning.
func (p Primitive) BBoxCenter() geom.Vec2 { return p.bbox.Center() }

// inSweep reports whether angle theta (in [0, 2π)) lies within the
// counter-clockwise interval [p.Theta0, p.Theta1], wrapping through 2π if
// Theta1 < Theta0: (θ − θ0) mod 2π ≤ (θ1 − θ0) mod 2π.
func (p Primitive) inSweep(theta float64) bool {
	const twoPi = 2 * math.Pi
	sweep := math.Mod(p.Theta1-p.Theta0+twoPi, twoPi)
	d := math.Mod(theta-p.Theta0+twoPi, twoPi)
	return d <= sweep
}

// ClosestSquared returns the squared distance from q to the closest point
// on p, and that point.
func (p Primitive) ClosestSquared(q geom.Vec2) (distSqr float64, closest geom.Vec2) {
	if p.Kind == Segment {
		return closestOnSegment(p.P0, p.P1, q)
	}
	return closestOnArc(p, q)
}

// closestOnSegment projects q onto line p0p1, clamps the parameter to
// [0,1] and returns the squared distance to, and position of, the
// resulting point. Degenerate segments (p0 == p1) return p0.
func closestOnSegment(p0, p1, q geom.Vec2) (float64, geom.Vec2) {
	d := p1.Sub(p0)
	lenSqr := d.LenSqr()
	if lenSqr == 0 {
		return q.DistSqr(p0), p0
	}
	t := q.Sub(p0).Dot(d) / lenSqr
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := p0.Add(d.Scale(t))
	return q.DistSqr(closest), closest
}

func closestOnArc(a Primitive, q geom.Vec2) (float64, geom.Vec2) {
	v := q.Sub(a.Center)
	vlen := v.Len()
	if vlen == 0 {
		// q is the center: every point of the arc is equidistant, return p0.
		return q.DistSqr(a.P0), a.P0
	}

	candidate := a.Center.Add(v.Scale(a.Radius / vlen))
	if a.inSweep(candidate.Sub(a.Center).Angle()) {
		return q.DistSqr(candidate), candidate
	}

	d0, d1 := q.DistSqr(a.P0), q.DistSqr(a.P1)
	if d0 <= d1 {
		return d0, a.P0
	}
	return d1, a.P1
}

// Overlaps reports whether p overlaps box, conservatively.
func (p Primitive) Overlaps(box geom.Box2) bool {
	if !p.bbox.Overlaps(box) {
		return false
	}
	if p.Kind == Segment {
		return segmentOverlapsBox(p.P0, p.P1, box)
	}
	return arcOverlapsBox(p, box)
}
