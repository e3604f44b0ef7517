package parvec

import (
	"time"
)

// AddSequential computes dst[i] = a[i] + b[i] over a single thread of
// control, in ascending index order. Lengths must already match; exported
// entry points validate before calling.
func AddSequential(dst, a, b []float32) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

// Add launches the element-wise addition kernel over device buffers:
// dC[i] = dA[i] + dB[i] for i in [0, n). One thread is launched per index
// in blocks of blockSize; threads past n are masked by the bounds guard,
// which is what keeps a non-multiple n from writing out of range.
// The launch is asynchronous; call Synchronize to observe completion and
// the device error status.
func Add(dA, dB, dC DevicePtr, n, blockSize int) error {
	if n == 0 {
		return nil
	}
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}

	aSlice := dA.Float32()
	bSlice := dB.Float32()
	cSlice := dC.Float32()

	kernel := KernelFunc(func(tid ThreadID, args ...interface{}) {
		idx := tid.Global()
		if idx < n {
			cSlice[idx] = aSlice[idx] + bSlice[idx]
		}
	})

	grid := Dim3{X: (n + blockSize - 1) / blockSize}
	block := Dim3{X: blockSize}
	return Launch(kernel, grid, block)
}

// SequentialAdd computes dst = a + b on the host and returns the elapsed
// wall-clock time of the loop.
func SequentialAdd(dst, a, b []float32) (time.Duration, error) {
	if len(a) != len(b) || len(dst) != len(a) {
		return 0, ErrLengthMismatch
	}

	return Timed(func() error {
		AddSequential(dst, a, b)
		return nil
	})
}

// ParallelAdd computes dst = a + b via the device runtime and returns the
// elapsed wall-clock time of the kernel launch and synchronization.
// Host-to-device and device-to-host transfers are excluded from the
// measurement.
//
// The device protocol: allocate three device regions, transfer a and b in,
// launch one thread per index in blocks of blockSize, block on the host
// barrier, check the device error status, transfer the result out. All
// three regions are released on every exit path. A device error aborts the
// run before the result transfer; dst is left untouched in that case.
func ParallelAdd(dst, a, b []float32, blockSize int) (time.Duration, error) {
	if len(a) != len(b) || len(dst) != len(a) {
		return 0, ErrLengthMismatch
	}

	n := len(a)
	bytes := n * 4

	dA, err := Malloc(bytes)
	if err != nil {
		return 0, err
	}
	defer Free(dA)

	dB, err := Malloc(bytes)
	if err != nil {
		return 0, err
	}
	defer Free(dB)

	dC, err := Malloc(bytes)
	if err != nil {
		return 0, err
	}
	defer Free(dC)

	if err := Memcpy(dA, a, bytes, MemcpyHostToDevice); err != nil {
		return 0, err
	}
	if err := Memcpy(dB, b, bytes, MemcpyHostToDevice); err != nil {
		return 0, err
	}

	elapsed, err := Timed(func() error {
		if err := Add(dA, dB, dC, n, blockSize); err != nil {
			return err
		}
		return Synchronize()
	})
	if err != nil {
		return elapsed, err
	}

	if err := Memcpy(dst, dC, bytes, MemcpyDeviceToHost); err != nil {
		return elapsed, err
	}

	return elapsed, nil
}

// NewFilled returns a length-n sequence with every element set to v.
func NewFilled(n int, v float32) []float32 {
	s := make([]float32, n)
	for i := range s {
		s[i] = v
	}
	return s
}
