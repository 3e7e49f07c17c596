package bvh

import "github.com/arl/go-pcbvh/geom"

// Overlap runs a depth-first search over t for every leaf whose box
// overlaps box, calling visit once per such leaf with its primitive range
// [begin,end). Unlike ClosestPoint there is no running bound to prune
// with: a node is visited iff its own box overlaps the query box, so
// plain LIFO order is already exhaustive and no priority is needed.
//
// visit's return value lets the caller stop early (e.g. a "does anything
// overlap" probe that only needs one hit); Overlap stops as soon as visit
// returns false.
func Overlap(t Bvh, box geom.Box2, visit func(begin, end uint32) bool) error {
	if t.Empty() {
		return ErrEmptyScene
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

	if err := push(0); err != nil {
		return err
	}

	for sp > 0 {
		sp--
		idx := stack[sp]
		n := t.Nodes[idx]

		if !n.BBox.Overlaps(box) {
			continue
		}

		if n.IsLeaf() {
			if !visit(n.FirstIndex, n.FirstIndex+n.PrimCount) {
				return nil
			}
			continue
		}

		if err := push(n.FirstIndex); err != nil {
			return err
		}
		if err := push(n.FirstIndex + 1); err != nil {
			return err
		}
	}
	return nil
}
