package parvec

import (
	"testing"
)

// Test basic kernel launch and global index derivation
func TestKernelLaunch(t *testing.T) {
	const n = 10000

	d_data := MallocOrFail(t, n*4)
	defer Free(d_data)

	slice := d_data.Float32()
	for i := 0; i < n; i++ {
		slice[i] = 0
	}

	// Each thread writes its own global index
	kernel := KernelFunc(func(tid ThreadID, args ...interface{}) {
		idx := tid.Global()
		if idx < n {
			slice[idx] = float32(idx)
		}
	})

	LaunchOrFail(t, kernel, Dim3{X: (n + 255) / 256}, Dim3{X: 256})
	SynchronizeOrFail(t)

	for i := 0; i < n; i++ {
		if slice[i] != float32(i) {
			t.Errorf("incorrect value at index %d: expected %f, got %f", i, float32(i), slice[i])
		}
	}
}

// A zero-width grid is an empty launch: no threads run, no error
func TestKernelLaunchEmptyGrid(t *testing.T) {
	ran := false
	kernel := KernelFunc(func(tid ThreadID, args ...interface{}) {
		ran = true
	})

	LaunchOrFail(t, kernel, Dim3{X: 0}, Dim3{X: 256})
	SynchronizeOrFail(t)

	if ran {
		t.Error("kernel executed threads for an empty grid")
	}
}

func TestKernelLaunchBlockTooLarge(t *testing.T) {
	kernel := KernelFunc(func(tid ThreadID, args ...interface{}) {})

	err := Launch(kernel, Dim3{X: 1}, Dim3{X: MaxThreadsPerBlock + 1})
	if !IsInvalidArgError(err) {
		t.Errorf("expected invalid argument error, got %v", err)
	}
}

// A panicking kernel thread becomes the sticky device error, surfaced by
// Synchronize and cleared once read.
func TestKernelFaultBecomesDeviceError(t *testing.T) {
	kernel := KernelFunc(func(tid ThreadID, args ...interface{}) {
		panic("bad kernel")
	})

	LaunchOrFail(t, kernel, Dim3{X: 4}, Dim3{X: 32})

	err := Synchronize()
	if !IsDeviceError(err) {
		t.Fatalf("expected device error from Synchronize, got %v", err)
	}

	// Status is cleared on read
	if err := Synchronize(); err != nil {
		t.Fatalf("device error status should be cleared, got %v", err)
	}
}

func TestThreadIDGlobal(t *testing.T) {
	tid := ThreadID{
		BlockIdx:  Dim3{X: 3},
		ThreadIdx: Dim3{X: 17},
		BlockDim:  Dim3{X: 256},
		GridDim:   Dim3{X: 8},
	}

	if got := tid.Global(); got != 3*256+17 {
		t.Errorf("Global() = %d, want %d", got, 3*256+17)
	}
}

func TestDim3Size(t *testing.T) {
	cases := []struct {
		dim  Dim3
		want int
	}{
		{Dim3{X: 4, Y: 1, Z: 1}, 4},
		{Dim3{X: 2, Y: 3, Z: 4}, 24},
		{Dim3{X: 5}.normalized(), 5},
		{Dim3{X: 0}.normalized(), 0},
	}

	for _, tc := range cases {
		if got := tc.dim.Size(); got != tc.want {
			t.Errorf("Size(%+v) = %d, want %d", tc.dim, got, tc.want)
		}
	}
}

// Test device identity surface
func TestDeviceQueries(t *testing.T) {
	if count := GetDeviceCount(); count != 1 {
		t.Errorf("expected 1 device, got %d", count)
	}

	dev := GetDevice()
	if dev.ID != 0 {
		t.Errorf("expected device ID 0, got %d", dev.ID)
	}
	if dev.NumCores <= 0 {
		t.Errorf("expected positive core count, got %d", dev.NumCores)
	}
	if dev.Name == "" {
		t.Error("device name should not be empty")
	}

	if err := SetDevice(0); err != nil {
		t.Errorf("SetDevice(0) failed: %v", err)
	}
	if err := SetDevice(1); err == nil {
		t.Error("SetDevice(1) should have failed")
	}
}
