// Package parallel splits row-wise reductions across CPU workers.
package parallel

import (
	"runtime"
	"sync"
)

// DefaultThreshold is the row count above which reductions run in parallel.
const DefaultThreshold = 1000

// Parallelize splits [0, items) into one contiguous range per CPU core and
// runs fn on each range concurrently.
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	size := chunkSize(items)
	var wg sync.WaitGroup
	for start := 0; start < items; start += size {
		end := start + size
		if end > items {
			end = items
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// chunkSize is the range length Parallelize hands to each worker.
func chunkSize(items int) int {
	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}
	// ceiling division
	return (items + numWorkers - 1) / numWorkers
}

// ParallelizeWithThreshold runs fn(0, items) on the calling goroutine when
// items <= threshold, and Parallelize otherwise.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}

// SumRows reduces [0, items) into a vector of the given width. fn adds the
// contribution of rows [start, end) into acc, which is private to the call.
// Partial sums are added in row order once every worker is done, so the
// result does not depend on scheduling.
func SumRows(items, width, threshold int, fn func(start, end int, acc []float64)) []float64 {
	total := make([]float64, width)
	if items <= 0 {
		return total
	}

	size := items
	if items > threshold {
		size = chunkSize(items)
	}
	// each chunk writes only its own slot
	partials := make([][]float64, (items+size-1)/size)
	ParallelizeWithThreshold(items, threshold, func(start, end int) {
		acc := make([]float64, width)
		fn(start, end, acc)
		partials[start/size] = acc
	})

	for _, acc := range partials {
		for k, v := range acc {
			total[k] += v
		}
	}
	return total
}
