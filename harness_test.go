package parvec

import (
	"errors"
	"testing"
	"time"
)

func TestTimed(t *testing.T) {
	ran := false
	elapsed, err := Timed(func() error {
		ran = true
		time.Sleep(time.Millisecond)
		return nil
	})
	if err != nil {
		t.Fatalf("Timed returned error: %v", err)
	}
	if !ran {
		t.Fatal("Timed did not run the function")
	}
	if elapsed < time.Millisecond {
		t.Errorf("elapsed %v, want at least 1ms", elapsed)
	}
}

func TestTimedPropagatesError(t *testing.T) {
	want := errors.New("computation failed")
	elapsed, err := Timed(func() error { return want })
	if !errors.Is(err, want) {
		t.Errorf("Timed error = %v, want %v", err, want)
	}
	if elapsed < 0 {
		t.Errorf("negative elapsed time: %v", elapsed)
	}
}

func TestReportLine(t *testing.T) {
	cases := []struct {
		mode    Mode
		elapsed time.Duration
		want    string
	}{
		{ModeSequential, 5 * time.Millisecond, "Sequential Vector Addition took 5 milliseconds."},
		{ModeParallel, 12 * time.Millisecond, "Parallel Vector Addition took 12 milliseconds."},
		{ModeParallel, 0, "Parallel Vector Addition took 0 milliseconds."},
		// Sub-millisecond durations round down to whole milliseconds
		{ModeSequential, 1500 * time.Microsecond, "Sequential Vector Addition took 1 milliseconds."},
	}

	for _, tc := range cases {
		if got := ReportLine(tc.mode, tc.elapsed); got != tc.want {
			t.Errorf("ReportLine(%s, %v) = %q, want %q", tc.mode, tc.elapsed, got, tc.want)
		}
	}
}
