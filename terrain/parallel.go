package terrain

import (
	"runtime"
	"sync"
)

// parallelRows calls fn once for every row in [0, rows) using one worker per
// CPU. fn must only write to its own row.
func parallelRows(rows int, fn func(row int)) {
	workers := runtime.NumCPU()
	if workers > rows {
		workers = rows
	}
	if workers <= 1 {
		for r := 0; r < rows; r++ {
			fn(r)
		}
		return
	}

	work := make(chan int, rows)
	for r := 0; r < rows; r++ {
		work <- r
	}
	close(work)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for r := range work {
				fn(r)
			}
		}()
	}
	wg.Wait()
}
