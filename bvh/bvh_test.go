package bvh

import (
	"math"
	"math/rand"
	"testing"

	"github.com/arl/go-pcbvh/geom"
)

func gridBoxes(n int) ([]geom.Box2, []geom.Vec2) {
	boxes := make([]geom.Box2, n)
	centers := make([]geom.Vec2, n)
	for i := 0; i < n; i++ {
		x := float64(i % 100)
		y := float64(i / 100)
		b := geom.Box2{Min: geom.Pt(x, y), Max: geom.Pt(x+0.5, y+0.5)}
		boxes[i] = b
		centers[i] = b.Center()
	}
	return boxes, centers
}

func TestBuildEmpty(t *testing.T) {
	tree := Build(nil, nil, DefaultSettings(), nil)
	if !tree.Empty() {
		t.Fatal("expected empty tree for zero primitives")
	}
}

func TestBuildSingle(t *testing.T) {
	boxes := []geom.Box2{{Min: geom.Pt(0, 0), Max: geom.Pt(1, 1)}}
	centers := []geom.Vec2{geom.Pt(0.5, 0.5)}
	tree := Build(boxes, centers, DefaultSettings(), nil)
	if len(tree.Nodes) != 1 {
		t.Fatalf("want 1 node for 1 primitive, got %d", len(tree.Nodes))
	}
	if !tree.Nodes[0].IsLeaf() || tree.Nodes[0].PrimCount != 1 {
		t.Fatalf("root must be a leaf holding the single primitive: %+v", tree.Nodes[0])
	}
	if tree.PrimIDs[0] != 0 {
		t.Fatalf("PrimIDs = %v, want [0]", tree.PrimIDs)
	}
}

// TestBuildInvariants checks, over a moderately sized random set, the
// structural invariants a built tree must hold: every node's box contains
// its primitives'/children's boxes, PrimIDs is a permutation of 0..N, and
// node 0 is the root.
func TestBuildInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	n := 2000
	boxes := make([]geom.Box2, n)
	centers := make([]geom.Vec2, n)
	for i := range boxes {
		x, y := rng.Float64()*1000, rng.Float64()*1000
		b := geom.Box2{Min: geom.Pt(x, y), Max: geom.Pt(x+1, y+1)}
		boxes[i] = b
		centers[i] = b.Center()
	}

	settings := DefaultSettings()
	settings.ParallelThreshold = 50 // force parallel recursion at this size
	tree := Build(boxes, centers, settings, nil)

	if len(tree.PrimIDs) != n {
		t.Fatalf("PrimIDs len = %d, want %d", len(tree.PrimIDs), n)
	}
	seen := make([]bool, n)
	for _, id := range tree.PrimIDs {
		if id >= uint32(n) || seen[id] {
			t.Fatalf("PrimIDs is not a permutation of 0..%d: repeated or out-of-range id %d", n, id)
		}
		seen[id] = true
	}

	var checkContainment func(idx uint32) geom.Box2
	checkContainment = func(idx uint32) geom.Box2 {
		node := tree.Nodes[idx]
		if node.IsLeaf() {
			union := geom.EmptyBox()
			for _, id := range tree.PrimIDs[node.FirstIndex : node.FirstIndex+node.PrimCount] {
				union = union.ExtendBox(boxes[id])
			}
			if !boxContains(node.BBox, union) {
				t.Fatalf("leaf %d box %v does not contain its primitives' union %v", idx, node.BBox, union)
			}
			return node.BBox
		}
		lb := checkContainment(node.FirstIndex)
		rb := checkContainment(node.FirstIndex + 1)
		union := lb.ExtendBox(rb)
		if !boxContains(node.BBox, union) {
			t.Fatalf("node %d box %v does not contain children union %v", idx, node.BBox, union)
		}
		return node.BBox
	}
	rootBox := checkContainment(0)

	wholeUnion := geom.EmptyBox()
	for _, b := range boxes {
		wholeUnion = wholeUnion.ExtendBox(b)
	}
	if !boxesEqual(rootBox, wholeUnion) {
		t.Fatalf("root box %v != union of all primitive boxes %v", rootBox, wholeUnion)
	}
}

func boxContains(outer, inner geom.Box2) bool {
	const eps = 1e-9
	return outer.Min.X <= inner.Min.X+eps && outer.Min.Y <= inner.Min.Y+eps &&
		outer.Max.X >= inner.Max.X-eps && outer.Max.Y >= inner.Max.Y-eps
}

func boxesEqual(a, b geom.Box2) bool {
	const eps = 1e-9
	return math.Abs(a.Min.X-b.Min.X) < eps && math.Abs(a.Min.Y-b.Min.Y) < eps &&
		math.Abs(a.Max.X-b.Max.X) < eps && math.Abs(a.Max.Y-b.Max.Y) < eps
}

// bruteForceClosest scans every box directly, returning the id and squared
// distance of the closest one, used as an oracle to check ClosestPoint.
func bruteForceClosest(boxes []geom.Box2, q geom.Vec2) (id int, distSqr float64) {
	best := math.Inf(1)
	bestID := -1
	for i, b := range boxes {
		d := b.DistSqr(q)
		if d < best {
			best = d
			bestID = i
		}
	}
	return bestID, best
}

func TestClosestPointMatchesBruteForce(t *testing.T) {
	boxes, centers := gridBoxes(500)
	tree := Build(boxes, centers, DefaultSettings(), nil)

	queries := []geom.Vec2{
		geom.Pt(0, 0), geom.Pt(49.2, 3.7), geom.Pt(-10, -10), geom.Pt(1000, 1000),
	}
	for _, q := range queries {
		wantID, wantDist := bruteForceClosest(boxes, q)

		gotID, gotDist, ok, err := ClosestPoint(tree, q, func(begin, end uint32, q geom.Vec2) (float64, int, bool) {
			best := math.Inf(1)
			bestID := -1
			for _, id := range tree.PrimIDs[begin:end] {
				d := boxes[id].DistSqr(q)
				if d < best {
					best = d
					bestID = int(id)
				}
			}
			return best, bestID, bestID >= 0
		})
		if err != nil {
			t.Fatalf("ClosestPoint(%v): %v", q, err)
		}
		if !ok {
			t.Fatalf("ClosestPoint(%v): no result", q)
		}
		if !approxEq(gotDist, wantDist) {
			t.Errorf("ClosestPoint(%v) dist = %v, want %v (brute force id %d, got id %d)", q, gotDist, wantDist, wantID, gotID)
		}
	}
}

func approxEq(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestOverlapMatchesBruteForce(t *testing.T) {
	boxes, centers := gridBoxes(500)
	tree := Build(boxes, centers, DefaultSettings(), nil)

	query := geom.Box2{Min: geom.Pt(10, 10), Max: geom.Pt(15, 15)}

	want := map[uint32]bool{}
	for i, b := range boxes {
		if b.Overlaps(query) {
			want[uint32(i)] = true
		}
	}

	got := map[uint32]bool{}
	err := Overlap(tree, query, func(begin, end uint32) bool {
		for _, id := range tree.PrimIDs[begin:end] {
			got[id] = true
		}
		return true
	})
	if err != nil {
		t.Fatalf("Overlap: %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("Overlap found %d hits, want %d", len(got), len(want))
	}
	for id := range want {
		if !got[id] {
			t.Errorf("Overlap missed primitive %d", id)
		}
	}
}

func TestOverlapEarlyStop(t *testing.T) {
	boxes, centers := gridBoxes(500)
	tree := Build(boxes, centers, DefaultSettings(), nil)

	query := geom.Box2{Min: geom.Pt(0, 0), Max: geom.Pt(99, 9)}
	count := 0
	Overlap(tree, query, func(begin, end uint32) bool {
		count++
		return false
	})
	if count != 1 {
		t.Fatalf("visit called %d times after returning false, want 1", count)
	}
}

func TestClosestPointEmptyScene(t *testing.T) {
	tree := Build(nil, nil, DefaultSettings(), nil)
	_, _, _, err := ClosestPoint(tree, geom.Pt(0, 0), func(begin, end uint32, q geom.Vec2) (float64, int, bool) {
		return 0, 0, false
	})
	if err != ErrEmptyScene {
		t.Fatalf("err = %v, want ErrEmptyScene", err)
	}
}

func TestOverlapEmptyScene(t *testing.T) {
	tree := Build(nil, nil, DefaultSettings(), nil)
	err := Overlap(tree, geom.Box2{Min: geom.Pt(0, 0), Max: geom.Pt(1, 1)}, func(begin, end uint32) bool { return true })
	if err != ErrEmptyScene {
		t.Fatalf("err = %v, want ErrEmptyScene", err)
	}
}

// TestBuildLarge is a 100,000-primitive-scale stress case: it just needs
// to complete, produce a PrimIDs slice of length N, and answer a closest query
// consistent with brute force.
func TestBuildLarge(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large build in -short mode")
	}
	boxes, centers := gridBoxes(100000)
	settings := DefaultSettings()
	tree := Build(boxes, centers, settings, nil)

	if len(tree.PrimIDs) != len(boxes) {
		t.Fatalf("PrimIDs len = %d, want %d", len(tree.PrimIDs), len(boxes))
	}

	q := geom.Pt(37.3, 42.1)
	_, wantDist := bruteForceClosest(boxes, q)
	_, gotDist, ok, err := ClosestPoint(tree, q, func(begin, end uint32, q geom.Vec2) (float64, int, bool) {
		best := math.Inf(1)
		found := false
		for _, id := range tree.PrimIDs[begin:end] {
			d := boxes[id].DistSqr(q)
			if d < best {
				best = d
				found = true
			}
		}
		return best, 0, found
	})
	if err != nil || !ok {
		t.Fatalf("ClosestPoint on 100k tree: ok=%v err=%v", ok, err)
	}
	if !approxEq(gotDist, wantDist) {
		t.Errorf("ClosestPoint dist = %v, want %v", gotDist, wantDist)
	}
}
