// Package parallel provides the chunked parallel-for used by the dense-array
// backend's element-wise kernels.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64,
	}
}

// For executes f(i) for i in [0, n), splitting the range across workers when
// that pays off and falling back to a sequential loop otherwise. f must not
// touch state shared between indexes.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// For2 executes f(i, j) over the rows×cols grid. Used by the 2-D convolution
// kernels where the natural iteration is per output cell.
func For2(rows, cols int, f func(i, j int), cfg Config) {
	For(rows*cols, func(k int) {
		f(k/cols, k%cols)
	}, cfg)
}
