package loadtest

import (
	"time"

	"driftwatch/internal/domain/model"
)

// Config holds configuration for the evaluation load test.
type Config struct {
	BaseURL     string        // Base URL of the service
	NumProfiles int           // Number of synthetic profiles to generate
	Workers     int           // Number of concurrent workers
	Bias        float64       // On-track bias passed to the generator
	Seed        int64         // Generator seed, 0 means time-based
	Timeout     time.Duration // HTTP request timeout
	LogFile     string        // Log file for test output
	Verbose     bool          // Enable verbose logging
}

// profile pairs a generated student profile with its generator-assigned label
// so submission results can be checked against intent.
type profile struct {
	ID       string
	Drifting bool
	Payload  model.StudentProfile
}

// Stats holds load test statistics.
type Stats struct {
	ProfilesGenerated int
	Submitted         int
	Successful        int
	Failed            int
	Unavailable       int
	DriftDetected     int
	LabelMatches      int
	AvgLatency        time.Duration
	MaxLatency        time.Duration
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
