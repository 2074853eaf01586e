package fractal

import (
	"runtime"
	"sync"
)

// minRowsPerWorker keeps tiny surfaces on the calling goroutine.
const minRowsPerWorker = 8

// parallelRows calls fn over [0, n) split into contiguous row ranges, one
// per worker, and waits for all of them.
func parallelRows(n int, fn func(start, end int)) {
	workers := runtime.NumCPU()
	if n <= minRowsPerWorker || workers <= 1 {
		fn(0, n)
		return
	}
	if n/minRowsPerWorker < workers {
		workers = n / minRowsPerWorker
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
