// Copyright ©2025 The Parvec Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command vecadd-seq adds two constant-filled vectors with a sequential
// host loop and reports the elapsed time.
package main

import (
	"fmt"
	"log"

	"github.com/veclab/parvec"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("vecadd-seq: %v", err)
	}
}

func run() error {
	a := parvec.NewFilled(parvec.DefaultVectorLen, parvec.FillA)
	b := parvec.NewFilled(parvec.DefaultVectorLen, parvec.FillB)
	c := make([]float32, parvec.DefaultVectorLen)

	elapsed, err := parvec.SequentialAdd(c, a, b)
	if err != nil {
		return err
	}

	fmt.Println(parvec.ReportLine(parvec.ModeSequential, elapsed))
	return nil
}
