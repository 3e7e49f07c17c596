package bvh

import (
	"errors"
	"math"

	"github.com/arl/go-pcbvh/geom"
)

// ErrEmptyScene is returned by ClosestPoint and Overlap when the tree holds
// no primitives.
var ErrEmptyScene = errors.New("bvh: empty tree")

// ErrStackOverflow is returned when a traversal's explicit stack would need
// to grow past StackDepth entries. Balanced trees built by Build never
// approach this; it exists as a hard backstop rather than an unbounded
// growable stack.
var ErrStackOverflow = errors.New("bvh: traversal stack overflow")

// ClosestPoint runs a best-first nearest-primitive search over t, querying
// q. leafBest is called once per visited leaf with the half-open primitive
// range [begin,end) of that leaf (indices into whatever array the caller
// chose to index, PrimIDs or a pre-gathered permutation of it); it
// returns the squared distance to, and value of, the closest candidate in
// that range, and false if the range yielded no candidate.
//
// Traversal keeps a running best distance and discards any node whose box
// is already farther than it; of the two children of a visited internal
// node, the nearer one is pushed last so it's explored first,
// approximating true best-first order with a plain LIFO stack instead of
// a priority queue. That's cheaper, and sufficient because the pruning
// bound does the real work.
func ClosestPoint[T any](t Bvh, q geom.Vec2, leafBest func(begin, end uint32, q geom.Vec2) (distSqr float64, val T, ok bool)) (val T, distSqr float64, ok bool, err error) {
	if t.Empty() {
		return val, 0, false, ErrEmptyScene
	}

	var stack [StackDepth]uint32
	sp := 0
	push := func(idx uint32) error {
		if sp >= StackDepth {
			return ErrStackOverflow
		}
		stack[sp] = idx
		sp++
		return nil
	}

	best := math.Inf(1)
	if err := push(0); err != nil {
		return val, 0, false, err
	}

	for sp > 0 {
		sp--
		idx := stack[sp]
		n := t.Nodes[idx]

		if n.BBox.DistSqr(q) >= best {
			continue
		}

		if n.IsLeaf() {
			if d, v, leafOK := leafBest(n.FirstIndex, n.FirstIndex+n.PrimCount, q); leafOK && d < best {
				best = d
				val = v
				ok = true
			}
			continue
		}

		leftIdx, rightIdx := n.FirstIndex, n.FirstIndex+1
		left, right := t.Nodes[leftIdx], t.Nodes[rightIdx]
		dl, dr := left.BBox.DistSqr(q), right.BBox.DistSqr(q)

		// Push the farther child first so the nearer one is popped, and
		// therefore explored, first.
		first, second := leftIdx, rightIdx
		if dl > dr {
			first, second = rightIdx, leftIdx
		}
		if err := push(second); err != nil {
			return val, 0, false, err
		}
		if err := push(first); err != nil {
			return val, 0, false, err
		}
	}

	if !ok {
		return val, 0, false, nil
	}
	return val, best, true, nil
}
