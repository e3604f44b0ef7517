package parvec

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/cpu"
)

// CPUFeatures tracks available CPU instruction set extensions
type CPUFeatures struct {
	HasSSE4   bool
	HasAVX    bool
	HasAVX2   bool
	HasAVX512 bool
	HasFMA    bool
	HasNEON   bool
}

// Global CPU feature detection
var cpuFeatures CPUFeatures

func init() {
	detectCPUFeatures()
}

// detectCPUFeatures populates the global cpuFeatures struct
func detectCPUFeatures() {
	cpuFeatures = CPUFeatures{
		HasSSE4:   cpu.X86.HasSSE41 || cpu.X86.HasSSE42,
		HasAVX:    cpu.X86.HasAVX,
		HasAVX2:   cpu.X86.HasAVX2,
		HasAVX512: cpu.X86.HasAVX512F,
		HasFMA:    cpu.X86.HasFMA,
		HasNEON:   cpu.ARM64.HasASIMD,
	}
}

// GetCPUInfo returns a string describing available CPU features
func GetCPUInfo() string {
	features := []string{}

	if cpuFeatures.HasSSE4 {
		features = append(features, "SSE4")
	}
	if cpuFeatures.HasAVX {
		features = append(features, "AVX")
	}
	if cpuFeatures.HasAVX2 {
		features = append(features, "AVX2")
	}
	if cpuFeatures.HasFMA {
		features = append(features, "FMA")
	}
	if cpuFeatures.HasAVX512 {
		features = append(features, "AVX512F")
	}
	if cpuFeatures.HasNEON {
		features = append(features, "NEON")
	}

	if len(features) == 0 {
		return "No SIMD extensions detected"
	}

	result := "CPU features: "
	for i, f := range features {
		if i > 0 {
			result += ", "
		}
		result += f
	}
	return result
}

// deviceName builds the human-readable name reported for device 0
func deviceName() string {
	return fmt.Sprintf("CPU (%s/%s, %d cores)", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
}
