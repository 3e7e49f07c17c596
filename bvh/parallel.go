package bvh

import (
	"runtime"
	"sync"
)

// parallelThreshold is the minimum item count below which parallelRange
// just runs fn inline, since spinning up goroutines for a handful of
// items costs more than it saves.
const parallelThreshold = 10000

// parallelRange calls fn(i) for every i in [0,n), splitting the range into
// contiguous chunks run on separate goroutines when n is large enough to
// be worth it. workers <= 0 means runtime.NumCPU(). Each goroutine only
// ever touches its own chunk, so fn needs no synchronization of its own.
func parallelRange(n, workers int, fn func(i int)) {
	if n < parallelThreshold {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
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
