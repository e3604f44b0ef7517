package parvec

import (
	"fmt"
	"runtime"
	"sync"
)

// launchInternal implements the core kernel execution logic
func (ctx *Context) launchInternal(
	kernelFunc func(ThreadID, ...interface{}),
	grid, block Dim3,
	stream *Stream,
	args ...interface{},
) error {
	grid = grid.normalized()
	block = block.normalized()

	if block.Size() > MaxThreadsPerBlock {
		return NewInvalidArgError("Launch",
			fmt.Sprintf("block size %d exceeds maximum %d", block.Size(), MaxThreadsPerBlock))
	}

	gridSize := grid.Size()
	blockSize := block.Size()

	// An empty grid still submits a task to preserve stream ordering
	if gridSize == 0 {
		stream.Submit(func() {})
		return nil
	}

	// Determine parallelism strategy
	numWorkers := runtime.NumCPU()
	if gridSize < numWorkers {
		numWorkers = gridSize
	}

	// Each worker processes a contiguous run of blocks to maximize
	// cache reuse
	blocksPerWorker := (gridSize + numWorkers - 1) / numWorkers

	stream.Submit(func() {
		var wg sync.WaitGroup
		wg.Add(numWorkers)

		for workerID := 0; workerID < numWorkers; workerID++ {
			startBlock := workerID * blocksPerWorker
			endBlock := startBlock + blocksPerWorker
			if endBlock > gridSize {
				endBlock = gridSize
			}

			go func() {
				defer wg.Done()

				// A panicking kernel thread poisons the launch: the
				// failure is recorded as the device error status and
				// surfaced by the next Synchronize.
				defer func() {
					if r := recover(); r != nil {
						ctx.recordError(NewDeviceError("Launch",
							fmt.Sprintf("kernel thread fault: %v", r), nil))
					}
				}()

				// Process assigned blocks; threads within a block run
				// sequentially on the same worker
				for blockID := startBlock; blockID < endBlock; blockID++ {
					blockIdx := linearTo3D(blockID, grid)

					for threadID := 0; threadID < blockSize; threadID++ {
						threadIdx := linearTo3D(threadID, block)

						tid := ThreadID{
							BlockIdx:  blockIdx,
							ThreadIdx: threadIdx,
							BlockDim:  block,
							GridDim:   grid,
						}

						kernelFunc(tid, args...)
					}
				}
			}()
		}

		wg.Wait()
	})

	return nil
}

// normalized treats unset higher dimensions as 1, so Dim3{X: n} is an
// n-wide one-dimensional shape. X is left alone: a zero-width grid is a
// legitimate empty launch.
func (d Dim3) normalized() Dim3 {
	if d.Y == 0 {
		d.Y = 1
	}
	if d.Z == 0 {
		d.Z = 1
	}
	return d
}

// linearTo3D converts a linear index to 3D coordinates
func linearTo3D(linear int, dim Dim3) Dim3 {
	z := linear / (dim.X * dim.Y)
	y := (linear % (dim.X * dim.Y)) / dim.X
	x := linear % dim.X
	return Dim3{X: x, Y: y, Z: z}
}
