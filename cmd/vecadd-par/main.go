// Copyright ©2025 The Parvec Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command vecadd-par adds two constant-filled vectors with a data-parallel
// kernel launch on the parvec device runtime and reports the elapsed time.
// A device execution failure is printed to stderr and the process exits
// with a non-zero status.
package main

import (
	"fmt"
	"log"

	"github.com/veclab/parvec"
)

func main() {
	// run owns the device buffers; log.Fatalf fires only after its
	// deferred releases have executed
	if err := run(); err != nil {
		log.Fatalf("vecadd-par: %v", err)
	}
}

func run() error {
	a := parvec.NewFilled(parvec.DefaultVectorLen, parvec.FillA)
	b := parvec.NewFilled(parvec.DefaultVectorLen, parvec.FillB)
	c := make([]float32, parvec.DefaultVectorLen)

	elapsed, err := parvec.ParallelAdd(c, a, b, parvec.DefaultBlockSize)
	if err != nil {
		return err
	}

	fmt.Println(parvec.ReportLine(parvec.ModeParallel, elapsed))
	return nil
}
