package parvec

import (
	"testing"
)

func TestBackends(t *testing.T) {
	backends := map[string]Backend{
		"sequential": &SequentialBackend{},
		"device":     &DeviceBackend{},
		"device_small_blocks": &DeviceBackend{
			BlockSize: 64,
		},
	}

	const n = 5000

	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			if err := backend.Setup(); err != nil {
				t.Fatalf("Setup failed: %v", err)
			}
			defer backend.Release()

			a := NewFilled(n, FillA)
			b := NewFilled(n, FillB)
			c := make([]float32, n)

			elapsed, err := backend.Add(c, a, b)
			if err != nil {
				t.Fatalf("Add failed: %v", err)
			}
			if elapsed < 0 {
				t.Errorf("negative elapsed time: %v", elapsed)
			}

			want := FillA + FillB
			for i := 0; i < n; i++ {
				if c[i] != want {
					t.Fatalf("mismatch at index %d: got %v, want %v", i, c[i], want)
				}
			}
		})
	}
}

func TestGetCPUInfo(t *testing.T) {
	if info := GetCPUInfo(); info == "" {
		t.Error("GetCPUInfo should never return an empty string")
	}
}
