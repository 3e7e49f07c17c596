// Package scene is the top-level façade: it owns a primitive collection
// and the Bvh built over it, and answers closest-point and box-overlap
// queries against the pair.
package scene

import (
	"math"
	"runtime"
	"sync"

	"github.com/arl/go-pcbvh/bvh"
	"github.com/arl/go-pcbvh/geom"
	"github.com/arl/go-pcbvh/primitive"
	"github.com/arl/go-pcbvh/status"
)

// Handle identifies a primitive by its position in the scene's original
// insertion order. Handles are stable for the scene's lifetime.
type Handle uint32

// Scene owns an immutable primitive collection and the Bvh built over it.
// Once Build returns, a Scene is safe for concurrent queries from any
// number of goroutines: both ClosestPoint and Overlap only read the
// primitive slices and the tree.
type Scene struct {
	// primitives is the original, caller-order collection. Overlap
	// indirects through bvh.PrimIDs into this slice so returned Handles
	// stay stable regardless of how the builder reordered anything
	// internally.
	primitives []primitive.Primitive

	// ordered is a physically-permuted copy of primitives, gathered via
	// bvh.PrimIDs once after the build: tree.PrimIDs[i] == i in this
	// slice's index space. ClosestPoint's leaf accessor reads contiguous
	// ranges of ordered directly, with no indirection; Overlap instead
	// reads primitives through PrimIDs so returned Handles stay stable.
	// The two traversals want opposite tradeoffs (raw speed vs. stable
	// identity) from the same tree, so the scene keeps both views rather
	// than picking one.
	ordered []primitive.Primitive

	tree      bvh.Bvh
	squareBBox geom.Box2
}

// Build precomputes each primitive's bounding box and centroid in
// parallel, builds the Bvh, and derives the scene's square bounding box.
// prims is copied; the returned Scene owns its own storage.
func Build(prims []primitive.Primitive, settings bvh.Settings, ctx *bvh.BuildContext) *Scene {
	owned := make([]primitive.Primitive, len(prims))
	copy(owned, prims)

	boxes := make([]geom.Box2, len(owned))
	centers := make([]geom.Vec2, len(owned))
	workers := settings.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	parallelRange(len(owned), workers, func(i int) {
		boxes[i] = owned[i].BBox()
		centers[i] = owned[i].BBoxCenter()
	})

	tree := bvh.Build(boxes, centers, settings, ctx)

	ordered := make([]primitive.Primitive, len(owned))
	for i, id := range tree.PrimIDs {
		ordered[i] = owned[id]
	}

	root := geom.EmptyBox()
	for _, b := range boxes {
		root = root.ExtendBox(b)
	}

	return &Scene{
		primitives: owned,
		ordered:    ordered,
		tree:       tree,
		squareBBox: root.Square(),
	}
}

// parallelRange mirrors bvh's internal helper; kept local because the
// scene's precompute loop runs over primitive.Primitive rather than
// caller-supplied boxes, and the bvh package's version is unexported.
func parallelRange(n, workers int, fn func(i int)) {
	const threshold = 10000
	if n < threshold {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// Len returns the number of primitives in the scene.
func (s *Scene) Len() int { return len(s.primitives) }

// Primitive returns the primitive identified by h.
func (s *Scene) Primitive(h Handle) primitive.Primitive { return s.primitives[h] }

// SquareBBox returns the scene's root bounding box expanded to a square,
// for collaborators (e.g. a quadtree-style overlay) that require one.
func (s *Scene) SquareBBox() geom.Box2 { return s.squareBBox }

// ClosestPoint returns the distance (not squared) from q to the nearest
// primitive in the scene, and the closest point on it. It fails with a
// status.EmptyScene status.Status when the scene holds no primitives.
func (s *Scene) ClosestPoint(q geom.Vec2) (dist float64, closest geom.Vec2, st status.Status) {
	if s.tree.Empty() {
		return 0, geom.Vec2{}, status.Fail(status.EmptyScene)
	}

	point, distSqr, ok, err := bvh.ClosestPoint(s.tree, q, func(begin, end uint32, q geom.Vec2) (float64, geom.Vec2, bool) {
		best := math.Inf(1)
		var bestPt geom.Vec2
		found := false
		for _, p := range s.ordered[begin:end] {
			d, pt := p.ClosestSquared(q)
			if d < best {
				best, bestPt, found = d, pt, true
			}
		}
		return best, bestPt, found
	})
	if err != nil {
		return 0, geom.Vec2{}, status.Fail(status.StackOverflow)
	}
	if !ok {
		// Build guarantees a non-empty tree always yields a candidate;
		// this branch exists only to satisfy the type, not a reachable
		// production path.
		return 0, geom.Vec2{}, status.Fail(status.EmptyScene)
	}
	return math.Sqrt(distSqr), point, status.OK
}

// Overlap appends the handle of every primitive whose geometry overlaps
// box to out (existing contents of out are preserved) and returns the
// extended slice along with a status that distinguishes "hits found"
// from "no hits" (hits give status.OK; no hits give a Warning carrying
// status.NoHits, which is neither Success nor Failure).
func (s *Scene) Overlap(box geom.Box2, out []Handle) ([]Handle, status.Status) {
	if s.tree.Empty() {
		return out, status.Fail(status.EmptyScene)
	}

	start := len(out)
	err := bvh.Overlap(s.tree, box, func(begin, end uint32) bool {
		for _, id := range s.tree.PrimIDs[begin:end] {
			if s.primitives[id].Overlaps(box) {
				out = append(out, Handle(id))
			}
		}
		return true
	})
	if err != nil {
		return out, status.Fail(status.StackOverflow)
	}
	if len(out) == start {
		return out, status.Warn(status.NoHits)
	}
	return out, status.OK
}

// OverlapPrimitive is equivalent to Overlap(p.BBox(), out): a primitive's
// own leaf is not excluded, so a primitive already in the scene appears
// in the result of a query against its own bounding box.
func (s *Scene) OverlapPrimitive(p primitive.Primitive, out []Handle) ([]Handle, status.Status) {
	return s.Overlap(p.BBox(), out)
}

// BruteForceClosest scans every primitive directly, bypassing the Bvh
// entirely. It exists as an equivalence oracle for tests and as a
// correctness fallback for tiny scenes; production code should prefer
// ClosestPoint.
func BruteForceClosest(prims []primitive.Primitive, q geom.Vec2) (dist float64, closest geom.Vec2, ok bool) {
	best := math.Inf(1)
	var bestPt geom.Vec2
	for _, p := range prims {
		d, pt := p.ClosestSquared(q)
		if d < best {
			best, bestPt, ok = d, pt, true
		}
	}
	if !ok {
		return 0, geom.Vec2{}, false
	}
	return math.Sqrt(best), bestPt, true
}

// BruteForceOverlap scans every primitive directly and returns the
// indices of those overlapping box. It is the oracle equivalent of
// Scene.Overlap, used by tests to check agreement against the Bvh.
func BruteForceOverlap(prims []primitive.Primitive, box geom.Box2) []int {
	var hits []int
	for i, p := range prims {
		if p.Overlaps(box) {
			hits = append(hits, i)
		}
	}
	return hits
}
