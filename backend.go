package parvec

import "time"

// Backend is a vector-addition implementation. Setup acquires whatever
// execution context the backend needs, Add computes dst = a + b and
// reports the elapsed time of the computation phase, and Release gives
// the context back. Implementations decide for themselves whether data
// transfer counts toward the elapsed time and must document the choice.
type Backend interface {
	Setup() error
	Add(dst, a, b []float32) (time.Duration, error)
	Release() error
}

// SequentialBackend runs the addition as a single-threaded host loop.
// The measurement brackets the whole loop.
type SequentialBackend struct{}

// Setup implements Backend.
func (*SequentialBackend) Setup() error { return nil }

// Add implements Backend.
func (*SequentialBackend) Add(dst, a, b []float32) (time.Duration, error) {
	return SequentialAdd(dst, a, b)
}

// Release implements Backend.
func (*SequentialBackend) Release() error { return nil }

// DeviceBackend runs the addition on the parvec device runtime.
// The measurement brackets the kernel launch and synchronization only;
// transfers are excluded.
type DeviceBackend struct {
	// BlockSize is the threads-per-block for the kernel launch.
	// Zero means DefaultBlockSize.
	BlockSize int
}

// Setup implements Backend.
func (*DeviceBackend) Setup() error { return nil }

// Add implements Backend.
func (d *DeviceBackend) Add(dst, a, b []float32) (time.Duration, error) {
	return ParallelAdd(dst, a, b, d.BlockSize)
}

// Release implements Backend.
func (*DeviceBackend) Release() error { return nil }

var (
	_ Backend = (*SequentialBackend)(nil)
	_ Backend = (*DeviceBackend)(nil)
)
