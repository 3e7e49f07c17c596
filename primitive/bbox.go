package primitive

import (
	"math"

	"github.com/arl/go-pcbvh/geom"
)

// axisExtrema are the four points of a unit circle lying on the
// coordinate axes, at angles 0, π/2, π, 3π/2: the candidate circle
// extrema that may widen an arc's bounding box beyond its two endpoints.
var axisExtrema = [4]struct {
	angle float64
	dir   geom.Vec2
}{
	{0, geom.Pt(1, 0)},
	{math.Pi / 2, geom.Pt(0, 1)},
	{math.Pi, geom.Pt(-1, 0)},
	{3 * math.Pi / 2, geom.Pt(0, -1)},
}

// arcBBox returns the tight (to floating-point rounding) bounding box of
// an arc: the union of its two endpoints with every axis extremum of the
// full circle that lies inside the swept angular interval.
func arcBBox(a Primitive) geom.Box2 {
	box := geom.BoxFromPoints(a.P0, a.P1)
	for _, e := range axisExtrema {
		if a.inSweep(e.angle) {
			box = box.Extend(a.Center.Add(e.dir.Scale(a.Radius)))
		}
	}
	return box
}
