// Package dispatch fans embarrassingly-parallel image work out to worker
// goroutines. Every kernel in the pipeline writes only the output locations
// of its own block, so blocks need no locks — the WaitGroup join is the only
// synchronization.
package dispatch

import (
	"runtime"
	"sync"
)

// DefaultBlockSize is the edge length of one dispatch block, in texels.
const DefaultBlockSize = 16

// Block is a half-open region [X0,X1)×[Y0,Y1) of one layer.
type Block struct {
	Layer          int
	X0, Y0, X1, Y1 int
}

// Run2D splits a w×h domain into blocks and calls fn for each from a pool of
// workers. Layer is always 0.
func Run2D(w, h, blockSize, workers int, fn func(Block)) {
	Run3D(w, h, 1, blockSize, workers, fn)
}

// Run3D splits a w×h×layers domain into per-layer blocks and calls fn for
// each from a pool of workers. Used with layers=6 for cube-map passes.
func Run3D(w, h, layers, blockSize, workers int, fn func(Block)) {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	blocks := make(chan Block, workers*2)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b := range blocks {
				fn(b)
			}
		}()
	}

	for layer := 0; layer < layers; layer++ {
		for y0 := 0; y0 < h; y0 += blockSize {
			y1 := y0 + blockSize
			if y1 > h {
				y1 = h
			}
			for x0 := 0; x0 < w; x0 += blockSize {
				x1 := x0 + blockSize
				if x1 > w {
					x1 = w
				}
				blocks <- Block{Layer: layer, X0: x0, Y0: y0, X1: x1, Y1: y1}
			}
		}
	}
	close(blocks)

	wg.Wait()
}
