package scene

import (
	"math"
	"math/rand"
	"testing"

	"github.com/arl/go-pcbvh/bvh"
	"github.com/arl/go-pcbvh/geom"
	"github.com/arl/go-pcbvh/primitive"
	"github.com/arl/go-pcbvh/status"
)

func approxEqual(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func TestClosestPointOnSegmentInterior(t *testing.T) {
	s := Build([]primitive.Primitive{primitive.NewSegment(geom.Pt(0, 0), geom.Pt(10, 0))}, bvh.DefaultSettings(), nil)
	dist, closest, st := s.ClosestPoint(geom.Pt(5, 3))
	if !status.Succeeded(st) {
		t.Fatalf("status = %v, want success", st)
	}
	if !approxEqual(dist, 3, 1e-9) || closest != geom.Pt(5, 0) {
		t.Errorf("ClosestPoint((5,3)) = (%v, %v), want (3, (5,0))", dist, closest)
	}
}

func TestClosestPointBeyondSegmentEnd(t *testing.T) {
	s := Build([]primitive.Primitive{primitive.NewSegment(geom.Pt(0, 0), geom.Pt(10, 0))}, bvh.DefaultSettings(), nil)
	dist, closest, _ := s.ClosestPoint(geom.Pt(-4, 0))
	if !approxEqual(dist, 4, 1e-9) || closest != geom.Pt(0, 0) {
		t.Errorf("ClosestPoint((-4,0)) = (%v, %v), want (4, (0,0))", dist, closest)
	}
}

func TestOverlapDisjointThenSpanning(t *testing.T) {
	prims := []primitive.Primitive{
		primitive.NewSegment(geom.Pt(0, 0), geom.Pt(1, 0)),
		primitive.NewSegment(geom.Pt(10, 0), geom.Pt(11, 0)),
	}
	s := Build(prims, bvh.DefaultSettings(), nil)

	hits, st := s.Overlap(geom.BoxFromPoints(geom.Pt(2, -1), geom.Pt(9, 1)), nil)
	if len(hits) != 0 || !status.IsWarning(st) || !status.HasDetail(st, status.NoHits) {
		t.Errorf("Overlap(empty region) = %v, %v, want 0 hits and a no-hits warning", hits, st)
	}

	hits2, st2 := s.Overlap(geom.BoxFromPoints(geom.Pt(0.5, -1), geom.Pt(10.5, 1)), nil)
	if len(hits2) != 2 || !status.Succeeded(st2) {
		t.Errorf("Overlap(both) = %v, %v, want 2 hits and success", hits2, st2)
	}
}

func TestEmptySceneClosestPoint(t *testing.T) {
	s := Build(nil, bvh.DefaultSettings(), nil)
	_, _, st := s.ClosestPoint(geom.Pt(0, 0))
	if !status.Failed(st) || !status.HasDetail(st, status.EmptyScene) {
		t.Errorf("status = %v, want Failure|EmptyScene", st)
	}
}

func TestEmptySceneOverlap(t *testing.T) {
	s := Build(nil, bvh.DefaultSettings(), nil)
	hits, st := s.Overlap(geom.BoxFromPoints(geom.Pt(0, 0), geom.Pt(1, 1)), nil)
	if hits != nil || !status.Failed(st) {
		t.Errorf("Overlap on empty scene = %v, %v, want nil, Failure", hits, st)
	}
}

func TestOverlapSelfIntersection(t *testing.T) {
	seg := primitive.NewSegment(geom.Pt(0, 0), geom.Pt(5, 5))
	s := Build([]primitive.Primitive{seg}, bvh.DefaultSettings(), nil)
	hits, _ := s.OverlapPrimitive(seg, nil)
	if len(hits) != 1 || hits[0] != 0 {
		t.Errorf("OverlapPrimitive(own segment) = %v, want [0]", hits)
	}
}

// TestRandomSceneMatchesBruteForce checks both queries agree with a
// brute-force scan over a mixed segment/arc scene.
func TestRandomSceneMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n := 3000
	prims := make([]primitive.Primitive, n)
	for i := range prims {
		if i%3 == 0 {
			cx, cy := rng.Float64()*500, rng.Float64()*500
			r := 1 + rng.Float64()*10
			a0 := rng.Float64() * 2 * math.Pi
			a1 := a0 + 0.1 + rng.Float64()*math.Pi
			center := geom.Pt(cx, cy)
			p0 := geom.Pt(cx+r*math.Cos(a0), cy+r*math.Sin(a0))
			p1 := geom.Pt(cx+r*math.Cos(a1), cy+r*math.Sin(a1))
			prims[i] = primitive.NewArc(center, p0, p1)
		} else {
			x0, y0 := rng.Float64()*500, rng.Float64()*500
			x1, y1 := x0+rng.Float64()*20+0.1, y0+rng.Float64()*20+0.1
			prims[i] = primitive.NewSegment(geom.Pt(x0, y0), geom.Pt(x1, y1))
		}
	}

	s := Build(prims, bvh.DefaultSettings(), nil)

	for i := 0; i < 50; i++ {
		q := geom.Pt(rng.Float64()*600-50, rng.Float64()*600-50)
		gotDist, _, st := s.ClosestPoint(q)
		if !status.Succeeded(st) {
			t.Fatalf("ClosestPoint(%v) failed: %v", q, st)
		}
		wantDist, _, ok := BruteForceClosest(prims, q)
		if !ok {
			t.Fatal("brute force found nothing over a non-empty scene")
		}
		if !approxEqual(gotDist, wantDist, 1e-6) {
			t.Errorf("ClosestPoint(%v) = %v, want %v", q, gotDist, wantDist)
		}
	}

	for i := 0; i < 20; i++ {
		x0, y0 := rng.Float64()*500, rng.Float64()*500
		box := geom.BoxFromPoints(geom.Pt(x0, y0), geom.Pt(x0+rng.Float64()*40, y0+rng.Float64()*40))

		got, _ := s.Overlap(box, nil)
		want := BruteForceOverlap(prims, box)

		if len(got) != len(want) {
			t.Errorf("Overlap(%v) = %d hits, want %d", box, len(got), len(want))
			continue
		}
		set := make(map[int]bool, len(want))
		for _, w := range want {
			set[w] = true
		}
		for _, h := range got {
			if !set[int(h)] {
				t.Errorf("Overlap(%v) returned unexpected handle %d", box, h)
			}
		}
	}
}
