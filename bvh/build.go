package bvh

import (
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/arl/go-pcbvh/geom"
)

// buildPrim caches a primitive's bounding box and centroid for the
// duration of the build, precomputed once, up front, in parallel.
type buildPrim struct {
	id     uint32
	box    geom.Box2
	center geom.Vec2
}

// Build constructs a Bvh over the given per-primitive boxes and
// centroids. boxes and centers must have the same length, indexed by
// original primitive id.
//
// Construction runs top-down: each node bins its range's centroids into
// settings.Buckets buckets per axis, scores all candidate splits with the
// perimeter-area heuristic, and either emits a leaf or partitions and
// recurses. Subtrees at or above settings.ParallelThreshold primitives
// build their two children concurrently, bounded by a semaphore sized to
// settings.Workers (runtime.NumCPU() if <= 0). Each recursive call
// acquires both of its child slots or none at all and falls back to
// building sequentially, which avoids the fork-join deadlock a naive
// fixed-size task queue would risk here.
func Build(boxes []geom.Box2, centers []geom.Vec2, settings Settings, ctx *BuildContext) Bvh {
	n := len(boxes)
	if n == 0 {
		return Bvh{}
	}
	if ctx == nil {
		ctx = NewBuildContext(false)
	}

	ctx.startTimer(TimerPrecompute)
	prims := make([]buildPrim, n)
	parallelRange(n, settings.Workers, func(i int) {
		prims[i] = buildPrim{id: uint32(i), box: boxes[i], center: centers[i]}
	})
	ctx.stopTimer(TimerPrecompute)

	workers := settings.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	b := &builder{
		settings: settings,
		ctx:      ctx,
		prims:    prims,
		nodes:    make([]Node, 2*n-1),
		sem:      make(chan struct{}, workers),
	}

	ctx.startTimer(TimerPartition)
	rootIdx := atomic.AddInt64(&b.nodeCount, 1) - 1
	b.build(uint32(rootIdx), 0, n, 0)
	ctx.stopTimer(TimerPartition)

	ctx.startTimer(TimerPermute)
	primIDs := make([]uint32, n)
	for i, p := range b.prims {
		primIDs[i] = p.id
	}
	ctx.stopTimer(TimerPermute)

	return Bvh{Nodes: b.nodes[:b.nodeCount], PrimIDs: primIDs}
}

type builder struct {
	settings  Settings
	ctx       *BuildContext
	prims     []buildPrim
	nodes     []Node
	nodeCount int64
	sem       chan struct{}
}

// build computes and stores the node at nodeIdx for prims[lo:hi], then
// recurses. Disjoint [lo,hi) ranges touch disjoint slices of b.prims and
// disjoint, atomically-reserved entries of b.nodes, so concurrent calls
// never alias a write.
func (b *builder) build(nodeIdx uint32, lo, hi int, depth int) {
	rng := b.prims[lo:hi]
	n := len(rng)

	box, centroidBox := boundsOf(rng)

	if n <= b.settings.MinLeaf {
		b.nodes[nodeIdx] = Node{BBox: box, FirstIndex: uint32(lo), PrimCount: uint32(n)}
		return
	}

	numBuckets := b.settings.Buckets
	axis, splitPos, cost, ok := bestSplit(rng, centroidBox, numBuckets)
	forced := n >= b.settings.MaxLeaf
	if !ok || (!forced && cost >= float64(n)) {
		b.nodes[nodeIdx] = Node{BBox: box, FirstIndex: uint32(lo), PrimCount: uint32(n)}
		return
	}

	mid := partitionPrims(rng, axis, splitPos, numBuckets) + lo
	if mid == lo || mid == hi {
		// Degenerate bucket boundary (e.g. all centroids identical):
		// fall back to a median split so progress is always made and
		// leaves never end up with an empty sibling.
		mid = lo + n/2
		medianSplit(rng, axis)
		b.ctx.Warningf("forced median split at depth %d (n=%d)", depth, n)
	}

	childBase := atomic.AddInt64(&b.nodeCount, 2) - 2
	leftIdx, rightIdx := uint32(childBase), uint32(childBase+1)
	b.nodes[nodeIdx] = Node{BBox: box, FirstIndex: uint32(childBase), PrimCount: 0}

	if n >= b.settings.ParallelThreshold && b.tryAcquirePair() {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			defer b.release()
			b.build(leftIdx, lo, mid, depth+1)
		}()
		go func() {
			defer wg.Done()
			defer b.release()
			b.build(rightIdx, mid, hi, depth+1)
		}()
		wg.Wait()
		return
	}

	b.build(leftIdx, lo, mid, depth+1)
	b.build(rightIdx, mid, hi, depth+1)
}

// tryAcquirePair acquires two semaphore slots, one per child goroutine
// about to be spawned, or none at all (never just one), so callers always
// know exactly how many times to call release.
func (b *builder) tryAcquirePair() bool {
	select {
	case b.sem <- struct{}{}:
	default:
		return false
	}
	select {
	case b.sem <- struct{}{}:
		return true
	default:
		<-b.sem
		return false
	}
}

func (b *builder) release() { <-b.sem }

// boundsOf returns the union box and the centroid bounding box of rng.
func boundsOf(rng []buildPrim) (box, centroidBox geom.Box2) {
	box, centroidBox = geom.EmptyBox(), geom.EmptyBox()
	for _, p := range rng {
		box = box.ExtendBox(p.box)
		centroidBox = centroidBox.Extend(p.center)
	}
	return box, centroidBox
}

type bucket struct {
	box   geom.Box2
	count int
}

// bestSplit scores every candidate split (buckets-1 per axis, 2 axes)
// with the perimeter-area heuristic and returns the cheapest one found.
// ok is false when the centroid range is degenerate on both axes (every
// primitive has the same centroid), in which case no split can separate
// them.
func bestSplit(rng []buildPrim, centroidBox geom.Box2, numBuckets int) (axis int, splitBucket int, cost float64, ok bool) {
	if numBuckets < 2 {
		numBuckets = 2
	}
	cost = float64(len(rng)) // sentinel: caller compares against leaf cost anyway
	ok = false

	extents := [2]float64{centroidBox.Dx(), centroidBox.Dy()}
	mins := [2]float64{centroidBox.Min.X, centroidBox.Min.Y}

	for a := 0; a < 2; a++ {
		if extents[a] <= 0 {
			continue
		}
		buckets := make([]bucket, numBuckets)
		for i := range buckets {
			buckets[i].box = geom.EmptyBox()
		}
		bucketOf := func(p buildPrim) int {
			c := coord(p.center, a)
			idx := int((c - mins[a]) / extents[a] * float64(numBuckets))
			if idx < 0 {
				idx = 0
			}
			if idx >= numBuckets {
				idx = numBuckets - 1
			}
			return idx
		}
		for _, p := range rng {
			bi := bucketOf(p)
			buckets[bi].box = buckets[bi].box.ExtendBox(p.box)
			buckets[bi].count++
		}

		// Left-to-right and right-to-left prefix sweeps.
		leftBox := make([]geom.Box2, numBuckets)
		leftCount := make([]int, numBuckets)
		acc, accCount := geom.EmptyBox(), 0
		for i := 0; i < numBuckets; i++ {
			acc = acc.ExtendBox(buckets[i].box)
			accCount += buckets[i].count
			leftBox[i] = acc
			leftCount[i] = accCount
		}
		rightBox := make([]geom.Box2, numBuckets)
		rightCount := make([]int, numBuckets)
		acc, accCount = geom.EmptyBox(), 0
		for i := numBuckets - 1; i >= 0; i-- {
			acc = acc.ExtendBox(buckets[i].box)
			accCount += buckets[i].count
			rightBox[i] = acc
			rightCount[i] = accCount
		}

		for split := 1; split < numBuckets; split++ {
			nl, nr := leftCount[split-1], rightCount[split]
			if nl == 0 || nr == 0 {
				continue
			}
			c := leftBox[split-1].Perimeter()*float64(nl) + rightBox[split].Perimeter()*float64(nr)
			if !ok || c < cost {
				ok = true
				cost = c
				axis = a
				splitBucket = split
			}
		}
	}
	return axis, splitBucket, cost, ok
}

func coord(v geom.Vec2, axis int) float64 {
	if axis == 0 {
		return v.X
	}
	return v.Y
}

// partitionPrims reorders rng in place so every primitive whose centroid
// falls in a bucket < splitBucket comes before every primitive whose
// centroid falls in a bucket >= splitBucket (on the given axis), and
// returns the split point. This mirrors std::partition: a Hoare-style
// in-place reorder over a bounded range, with the predicate being bucket
// membership computed by bestSplit rather than a full sort, since only
// one boundary is needed. numBuckets must be the same bucket count
// bestSplit used to choose splitBucket.
func partitionPrims(rng []buildPrim, axis, splitBucket, numBuckets int) int {
	min, max := coord(rng[0].center, axis), coord(rng[0].center, axis)
	for _, p := range rng[1:] {
		c := coord(p.center, axis)
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
	}
	extent := max - min
	if extent <= 0 {
		return 0
	}

	bucketIdx := func(p buildPrim) int {
		c := coord(p.center, axis)
		idx := int((c - min) / extent * float64(numBuckets))
		if idx < 0 {
			idx = 0
		}
		if idx >= numBuckets {
			idx = numBuckets - 1
		}
		return idx
	}

	i, j := 0, len(rng)-1
	for i <= j {
		for i <= j && bucketIdx(rng[i]) < splitBucket {
			i++
		}
		for i <= j && bucketIdx(rng[j]) >= splitBucket {
			j--
		}
		if i < j {
			rng[i], rng[j] = rng[j], rng[i]
			i++
			j--
		}
	}
	return i
}

// medianSplit sorts rng in place by the given axis's centroid coordinate,
// used as a fallback when bucket partitioning degenerates.
func medianSplit(rng []buildPrim, axis int) {
	sort.Slice(rng, func(i, j int) bool {
		return coord(rng[i].center, axis) < coord(rng[j].center, axis)
	})
}
