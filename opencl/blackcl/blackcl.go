// Package blackcl runs the vector-addition kernel on a real OpenCL
// accelerator (device 0) through gitlab.com/microo8/blackcl. It satisfies
// the same Backend contract as the CPU runtime, so the benchmark tools can
// drive either interchangeably.
package blackcl

import (
	_ "embed"
	"fmt"
	"time"

	"gitlab.com/microo8/blackcl"

	"github.com/veclab/parvec"
)

//go:embed vecadd.cl
var vecaddSrc string

const localGroupSize = 256

// OpenCL is a parvec.Backend backed by the default OpenCL device.
// Device vectors are cached per buffer tag and size so repeated runs of
// the same shape reuse allocations.
type OpenCL struct {
	device *blackcl.Device
	kernel *blackcl.Kernel

	bufferCache map[string]map[int]*blackcl.Vector
}

// New returns an unconfigured backend; call Setup before Add.
func New() *OpenCL {
	return &OpenCL{
		bufferCache: make(map[string]map[int]*blackcl.Vector),
	}
}

// Setup implements parvec.Backend.
func (o *OpenCL) Setup() error {
	var err error

	o.device, err = blackcl.GetDefaultDevice()
	if err != nil {
		return fmt.Errorf("opencl/blackcl: failed to get default device: %w", err)
	}

	o.device.AddProgram(vecaddSrc)
	o.kernel = o.device.Kernel("vecadd")

	return nil
}

// Release implements parvec.Backend.
func (o *OpenCL) Release() error {
	if o.device == nil {
		return nil
	}

	if err := o.device.Release(); err != nil {
		return fmt.Errorf("opencl/blackcl: failed to release device: %w", err)
	}

	for _, bufferMap := range o.bufferCache {
		for _, buffer := range bufferMap {
			buffer.Release()
		}
	}

	return nil
}

func (o *OpenCL) buffer(bufferTag string, size int) (*blackcl.Vector, error) {
	if _, ok := o.bufferCache[bufferTag]; !ok {
		o.bufferCache[bufferTag] = make(map[int]*blackcl.Vector)
	}

	buffer, ok := o.bufferCache[bufferTag][size]
	if !ok {
		buffer, err := o.device.NewVector(size)
		if err != nil {
			return nil, fmt.Errorf("opencl/blackcl: failed to create buffer: %w", err)
		}

		o.bufferCache[bufferTag][size] = buffer

		return buffer, nil
	}

	return buffer, nil
}

// Add implements parvec.Backend. The elapsed time brackets the kernel run
// only; transfers to and from the device are excluded, matching the CPU
// device backend's measurement.
func (o *OpenCL) Add(dst, a, b []float32) (time.Duration, error) {
	if len(a) != len(b) || len(dst) != len(a) {
		return 0, parvec.ErrLengthMismatch
	}

	n := len(a)
	if n == 0 {
		return 0, nil
	}

	cDev, err := o.buffer("c", n)
	if err != nil {
		return 0, err
	}

	aDev, err := o.buffer("a", n)
	if err != nil {
		return 0, err
	}

	aDevCopyComplete := aDev.Copy(a)

	bDev, err := o.buffer("b", n)
	if err != nil {
		return 0, err
	}

	bDevCopyComplete := bDev.Copy(b)

	if err := <-aDevCopyComplete; err != nil {
		return 0, fmt.Errorf("opencl/blackcl: failed to copy a to device: %w", err)
	}

	if err := <-bDevCopyComplete; err != nil {
		return 0, fmt.Errorf("opencl/blackcl: failed to copy b to device: %w", err)
	}

	// One work item per index; the global size is rounded up to a whole
	// number of groups and the kernel masks work items past n
	globalSize := (n + localGroupSize - 1) / localGroupSize * localGroupSize

	elapsed, err := parvec.Timed(func() error {
		if err := <-o.kernel.Global(globalSize).Local(localGroupSize).Run(cDev, aDev, bDev, uint32(n)); err != nil {
			return fmt.Errorf("opencl/blackcl: failed to run kernel: %w", err)
		}
		return nil
	})
	if err != nil {
		return elapsed, err
	}

	cHost, err := cDev.Data()
	if err != nil {
		return elapsed, fmt.Errorf("opencl/blackcl: failed to get c data: %w", err)
	}

	copy(dst, cHost[:n])

	return elapsed, nil
}

var _ parvec.Backend = (*OpenCL)(nil)
