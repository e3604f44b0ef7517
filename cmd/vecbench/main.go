// Copyright ©2025 The Parvec Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command vecbench drives the sequential and parallel adders over the same
// inputs, verifies that they agree, and reports elapsed times. Results can
// additionally be appended to a JSON session log.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veclab/parvec"
)

var (
	flagN         int
	flagBlockSize int
	flagLog       bool
)

var rootCmd = &cobra.Command{
	Use:   "vecbench",
	Short: "Benchmark sequential vs parallel vector addition",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagN < 0 {
			return fmt.Errorf("vector length must be non-negative, got %d", flagN)
		}
		if flagBlockSize <= 0 {
			return fmt.Errorf("block size must be positive, got %d", flagBlockSize)
		}
		if flagLog {
			return parvec.InitRunLogger("vecbench")
		}
		return nil
	},
}

var seqCmd = &cobra.Command{
	Use:   "seq",
	Short: "Run the sequential adder once and report elapsed time",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMode(parvec.ModeSequential, &parvec.SequentialBackend{})
	},
}

var parCmd = &cobra.Command{
	Use:   "par",
	Short: "Run the parallel adder once and report elapsed time",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMode(parvec.ModeParallel, &parvec.DeviceBackend{BlockSize: flagBlockSize})
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run both adders over the same inputs and verify they agree",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompare()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the vecbench version",
	Run: func(cmd *cobra.Command, args []string) {
		v, sum := parvec.Version()
		if v == "" {
			fmt.Println("vecbench (devel)")
			return
		}
		fmt.Printf("vecbench %s %s\n", v, sum)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&flagN, "length", "n", parvec.DefaultVectorLen, "number of vector elements")
	rootCmd.PersistentFlags().IntVar(&flagBlockSize, "block-size", parvec.DefaultBlockSize, "threads per block for the parallel adder")
	rootCmd.PersistentFlags().BoolVar(&flagLog, "log", false, "append results to a JSON session log")

	rootCmd.AddCommand(seqCmd, parCmd, compareCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runMode(mode parvec.Mode, backend parvec.Backend) error {
	if err := backend.Setup(); err != nil {
		return err
	}
	defer backend.Release()

	a := parvec.NewFilled(flagN, parvec.FillA)
	b := parvec.NewFilled(flagN, parvec.FillB)
	c := make([]float32, flagN)

	elapsed, err := backend.Add(c, a, b)
	if err != nil {
		if flagLog {
			parvec.LogRunFail(string(mode), mode, flagN, err)
		}
		return err
	}

	fmt.Println(parvec.ReportLine(mode, elapsed))
	if flagLog {
		parvec.LogRunPass(string(mode), mode, flagN, elapsed)
	}
	return nil
}

func runCompare() error {
	a := parvec.NewFilled(flagN, parvec.FillA)
	b := parvec.NewFilled(flagN, parvec.FillB)
	cSeq := make([]float32, flagN)
	cPar := make([]float32, flagN)

	seqElapsed, err := parvec.SequentialAdd(cSeq, a, b)
	if err != nil {
		return err
	}

	parElapsed, err := parvec.ParallelAdd(cPar, a, b, flagBlockSize)
	if err != nil {
		return err
	}

	fmt.Println(parvec.ReportLine(parvec.ModeSequential, seqElapsed))
	fmt.Println(parvec.ReportLine(parvec.ModeParallel, parElapsed))

	if mismatch := firstMismatch(cSeq, cPar); mismatch >= 0 {
		return fmt.Errorf("outputs differ at index %d: sequential=%v parallel=%v",
			mismatch, cSeq[mismatch], cPar[mismatch])
	}
	fmt.Printf("Outputs identical across %d elements.\n", flagN)

	if parElapsed > 0 {
		fmt.Printf("Speedup: %.2fx\n", float64(seqElapsed)/float64(parElapsed))
	}

	if flagLog {
		parvec.LogRunPass("compare/seq", parvec.ModeSequential, flagN, seqElapsed)
		parvec.LogRunPass("compare/par", parvec.ModeParallel, flagN, parElapsed)
	}
	return nil
}

// firstMismatch returns the lowest index where the two outputs are not
// bit-identical, or -1 when they agree everywhere.
func firstMismatch(x, y []float32) int {
	for i := range x {
		if x[i] != y[i] {
			return i
		}
	}
	return -1
}
