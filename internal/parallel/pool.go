// Package parallel provides a small worker pool for splitting per-pixel work
// into independent chunks.
package parallel

import (
	"runtime"
	"sync"
)

type (
	// WorkerFunc submits fn to the pool.
	WorkerFunc func(fn func())
	// WaitFunc blocks until the workers exit. With done set it first closes
	// the queue, so workers drain queued work and return.
	WaitFunc func(done bool)
	// CancelFunc closes the queue without waiting. It is safe to call more
	// than once.
	CancelFunc func()
)

// Pool runs submitted functions on a fixed set of workers. With a single
// worker Do runs the function inline.
type Pool struct {
	wg     sync.WaitGroup
	Do     WorkerFunc
	Wait   WaitFunc
	Cancel CancelFunc
}

// Start launches a pool. numWorkers below 1 means GOMAXPROCS workers.
// Wait(true) closes the queue and blocks until every submitted function
// has returned; the pool cannot be reused afterwards.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		Do: func(f func()) {
			f()
		},
		Wait:   func(bool) {},
		Cancel: func() {},
	}

	if numWorkers > 1 {
		workChan := make(chan func(), numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for {
					f, ok := <-workChan
					if !ok {
						return
					}
					f()
				}
			})
		}

		pool.Do = func(f func()) {
			workChan <- f
		}

		pool.Wait = func(done bool) {
			if done {
				pool.Cancel()
			}
			pool.wg.Wait()
		}
		pool.Cancel = sync.OnceFunc(func() { close(workChan) })
	}

	return pool
}

// DefaultChunkSize is the number of items handed to a worker at once.
const DefaultChunkSize = 4096

// Chunks splits [0, n) into ranges of at most size items and calls fn for
// each on a fresh pool, returning once all calls have finished. fn receives
// the chunk index so callers can keep per-chunk results without locking.
// Inputs smaller than one chunk run inline.
func Chunks(n, size int, fn func(chunk, start, end int)) {
	if n <= 0 {
		return
	}
	if size < 1 {
		size = DefaultChunkSize
	}
	if n <= size {
		fn(0, 0, n)
		return
	}

	pool := Start(0)
	for chunk, start := 0, 0; start < n; chunk, start = chunk+1, start+size {
		end := min(start+size, n)
		pool.Do(func() {
			fn(chunk, start, end)
		})
	}
	pool.Wait(true)
}

// NumChunks returns how many chunks Chunks will use for n items.
func NumChunks(n, size int) int {
	if n <= 0 {
		return 0
	}
	if size < 1 {
		size = DefaultChunkSize
	}
	return (n + size - 1) / size
}
