// Copyright ©2025 The Parvec Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parvec benchmarks element-wise vector addition two ways: a
// sequential host loop and a data-parallel kernel launch on a CUDA-style
// device runtime executed across CPU worker goroutines.
//
// The runtime mirrors the CUDA host API surface: device memory is acquired
// with Malloc, populated with Memcpy, and a Kernel is launched over a grid
// of thread blocks, with each thread deriving its global index from its
// block and thread position. The host blocks on Synchronize and inspects
// the device error status afterwards.
//
// Example usage:
//
//	d_a, _ := parvec.Malloc(n * 4)
//	d_b, _ := parvec.Malloc(n * 4)
//	d_c, _ := parvec.Malloc(n * 4)
//	defer parvec.Free(d_a)
//	defer parvec.Free(d_b)
//	defer parvec.Free(d_c)
//
//	parvec.Memcpy(d_a, h_a, n*4, parvec.MemcpyHostToDevice)
//	parvec.Memcpy(d_b, h_b, n*4, parvec.MemcpyHostToDevice)
//
//	grid := parvec.Dim3{X: (n + 255) / 256}
//	block := parvec.Dim3{X: 256}
//	parvec.Launch(addKernel, grid, block)
//	if err := parvec.Synchronize(); err != nil {
//		// device execution failure
//	}
package parvec
