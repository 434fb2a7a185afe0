// Package parallel splits row-major work across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Workers returns n, or GOMAXPROCS when n is 0 or negative.
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// Rows calls fn for consecutive bands of rows [start, end) covering
// [0, rows). Bands run concurrently on up to workers goroutines and Rows
// returns once every band is done. fn must only write state owned by its
// band.
func Rows(rows, workers int, fn func(start, end int)) {
	if rows <= 0 {
		return
	}
	workers = min(Workers(workers), rows)
	if workers == 1 {
		fn(0, rows)
		return
	}

	rowsPerWorker := (rows + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * rowsPerWorker
		end := min(start+rowsPerWorker, rows)
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}
