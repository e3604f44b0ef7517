// Copyright ©2025 The Parvec Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command vecadd-cl adds two constant-filled vectors on the default OpenCL
// accelerator and reports the elapsed time. Building and running this
// binary requires an OpenCL runtime and a device at index 0.
package main

import (
	"fmt"
	"log"

	"github.com/veclab/parvec"
	"github.com/veclab/parvec/opencl/blackcl"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("vecadd-cl: %v", err)
	}
}

func run() error {
	backend := blackcl.New()
	if err := backend.Setup(); err != nil {
		return err
	}
	defer backend.Release()

	a := parvec.NewFilled(parvec.DefaultVectorLen, parvec.FillA)
	b := parvec.NewFilled(parvec.DefaultVectorLen, parvec.FillB)
	c := make([]float32, parvec.DefaultVectorLen)

	elapsed, err := backend.Add(c, a, b)
	if err != nil {
		return err
	}

	fmt.Println(parvec.ReportLine(parvec.ModeParallel, elapsed))
	return nil
}
