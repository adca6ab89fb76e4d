package loadtest

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"driftwatch/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "loadtest_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the load test tool.
func ShowHelp() {
	os.Stdout.WriteString(`Driftwatch Evaluation Load Test
===============================

A concurrent tool for exercising the drift evaluation endpoint with
synthetic labeled student profiles.

Usage:
  go run cmd/loadtest/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -profiles int
        Number of synthetic profiles to generate and submit (default 1000)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -bias float
        On-track bias for the generator (default 0.7)
  -seed int
        Generator seed; 0 uses a time-based seed
  -timeout duration
        HTTP request timeout (default 30s)
  -log string
        Log file for test output (default: loadtest_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Test with default settings
  go run cmd/loadtest/main.go

  # Heavier run against a remote instance
  go run cmd/loadtest/main.go -profiles 50000 -workers 16 -url http://drift.internal:8000

  # Reproducible run
  go run cmd/loadtest/main.go -profiles 1000 -seed 42
`)
}
