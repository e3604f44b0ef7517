package parvec

import (
	"fmt"
	"time"
)

// Mode names one of the two adder implementations in report output.
type Mode string

const (
	ModeSequential Mode = "Sequential"
	ModeParallel   Mode = "Parallel"
)

// Timed runs fn and returns its wall-clock duration alongside fn's error.
// time.Now/time.Since read the monotonic clock, so the measurement is
// immune to wall-clock adjustments. Timed is purely observational and
// never alters fn's result.
func Timed(fn func() error) (time.Duration, error) {
	start := time.Now()
	err := fn()
	return time.Since(start), err
}

// ReportLine formats the one-line elapsed-time report for a mode:
//
//	Parallel Vector Addition took 12 milliseconds.
//
// The duration is reported in whole milliseconds.
func ReportLine(mode Mode, elapsed time.Duration) string {
	return fmt.Sprintf("%s Vector Addition took %d milliseconds.", mode, elapsed.Milliseconds())
}
