package parvec

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// RunResult captures the result of a single adder run
type RunResult struct {
	Name      string        `json:"name"`
	Mode      Mode          `json:"mode"`
	N         int           `json:"n"`
	Status    string        `json:"status"` // "pass" or "fail"
	Elapsed   time.Duration `json:"elapsed,omitempty"`
	MBPerSec  float64       `json:"mb_per_sec,omitempty"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// RunLogger manages logging of run results to file
type RunLogger struct {
	mu          sync.Mutex
	results     []RunResult
	logDir      string
	sessionFile string
}

var globalLogger = &RunLogger{
	logDir: "bench_logs",
}

// InitRunLogger initializes the logger for a new session
func InitRunLogger(sessionName string) error {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()

	if err := os.MkdirAll(globalLogger.logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	globalLogger.sessionFile = filepath.Join(globalLogger.logDir,
		fmt.Sprintf("%s_%s.json", sessionName, timestamp))

	// Reset results for new session
	globalLogger.results = nil

	return globalLogger.flush()
}

// LogRunResult logs a single run result
func LogRunResult(result RunResult) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()

	result.Timestamp = time.Now()
	globalLogger.results = append(globalLogger.results, result)

	// Flush to disk immediately to avoid losing data on crash
	globalLogger.flush()
}

// LogRunPass logs a successful run
func LogRunPass(name string, mode Mode, n int, elapsed time.Duration) {
	result := RunResult{
		Name:    name,
		Mode:    mode,
		N:       n,
		Status:  "pass",
		Elapsed: elapsed,
	}
	if elapsed > 0 {
		// Read A, read B, write C
		result.MBPerSec = float64(3*n*4) / elapsed.Seconds() / 1e6
	}
	LogRunResult(result)
}

// LogRunFail logs a failed run
func LogRunFail(name string, mode Mode, n int, err error) {
	LogRunResult(RunResult{
		Name:   name,
		Mode:   mode,
		N:      n,
		Status: "fail",
		Error:  err.Error(),
	})
}

// flush writes results to disk
func (rl *RunLogger) flush() error {
	if rl.sessionFile == "" {
		return nil // Not initialized
	}

	data, err := json.MarshalIndent(rl.results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	return os.WriteFile(rl.sessionFile, data, 0644)
}

// SessionFile returns the path of the current session log, or "" when the
// logger has not been initialized.
func SessionFile() string {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	return globalLogger.sessionFile
}
