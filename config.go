// Package parvec configuration constants
package parvec

// Benchmark workload parameters
const (
	// DefaultVectorLen is the number of elements added per run
	DefaultVectorLen = 1_000_000

	// FillA is the constant value input sequence A is populated with
	FillA float32 = 1.0

	// FillB is the constant value input sequence B is populated with
	FillB float32 = 2.0
)

// Thread and block dimensions
const (
	// DefaultBlockSize is the number of threads per block for kernels
	DefaultBlockSize = 256

	// MaxThreadsPerBlock is the largest block size a launch accepts
	MaxThreadsPerBlock = 1024
)

// Memory pool parameters
const (
	// MemoryAlignment for allocations, one cache line
	MemoryAlignment = 64
)
