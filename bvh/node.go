// Package bvh implements the 2D bounding-volume hierarchy: parallel
// construction with a perimeter-area heuristic partitioner, and the two
// stack-based traversals (closest-point, box-overlap) that query it.
package bvh

import "github.com/arl/go-pcbvh/geom"

// Node is one node of a built Bvh. It is a leaf iff PrimCount > 0; for an
// internal node, FirstIndex is the index of its first child and
// FirstIndex+1 its second (children are always stored as an adjacent
// pair). The root is always node 0.
type Node struct {
	BBox       geom.Box2
	FirstIndex uint32
	PrimCount  uint32
}

// IsLeaf reports whether n is a leaf node.
func (n Node) IsLeaf() bool { return n.PrimCount > 0 }

// Bvh is a built bounding-volume hierarchy over N primitive boxes.
//
// PrimIDs is a permutation of 0..N. A leaf's primitives are the contiguous
// range PrimIDs[FirstIndex : FirstIndex+PrimCount]; whether those values
// index into the original primitive array or have already been used to
// physically reorder a parallel copy of it is a choice the caller (the
// scene façade) makes per query kind, see scene.Scene.
type Bvh struct {
	Nodes   []Node
	PrimIDs []uint32
}

// Empty reports whether the tree has no nodes (built from zero
// primitives).
func (b Bvh) Empty() bool { return len(b.Nodes) == 0 }

// Settings controls the shape and parallelism of a Build.
type Settings struct {
	// MinLeaf is the primitive count at or below which a node is always
	// a leaf, regardless of split cost. [Limit: >= 1]
	MinLeaf int
	// MaxLeaf is the primitive count at or above which a node is forced
	// to split if any legal split exists. [Limit: >= MinLeaf]
	MaxLeaf int
	// Buckets is the number of centroid bins evaluated per axis when
	// scoring candidate splits. [Limit: >= 2]
	Buckets int
	// ParallelThreshold is the minimum primitive count of a subtree for
	// its two children to be built concurrently rather than inline.
	ParallelThreshold int
	// Workers bounds how many subtree builds may run concurrently. <= 0
	// means runtime.NumCPU().
	Workers int
}

// DefaultSettings returns the Settings used when none are supplied:
// MinLeaf 1, MaxLeaf 8, 16 buckets, a parallel threshold of 1024
// primitives and one worker per CPU.
func DefaultSettings() Settings {
	return Settings{
		MinLeaf:           1,
		MaxLeaf:           8,
		Buckets:           16,
		ParallelThreshold: 1024,
		Workers:           0,
	}
}

// StackDepth is the fixed depth of the traversal stacks used by
// ClosestPoint and Overlap. Trees built from realistic primitive counts
// never come close to exhausting it; Overlap and ClosestPoint report
// ErrStackOverflow rather than grow it unbounded.
const StackDepth = 64
