// Package loadtest drives synthetic evaluation traffic against a running
// service: it generates labeled student profiles with the dataset
// generator, submits them concurrently to the evaluate endpoint, and
// reports drift-rate, label agreement, and latency statistics.
package loadtest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"driftwatch/pkg/logger"
)

// percentage display scale.
const percentageMultiplier = 100

// Run executes the complete evaluation load test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting evaluation load test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("profiles", config.NumProfiles),
		logger.Int("workers", config.Workers),
		logger.Float64("bias", config.Bias),
		logger.String("timeout", config.Timeout.String()),
	)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate labeled profiles
	profiles, err := generateProfiles(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("profile generation failed: %w", err)
	}

	// Step 3: Submit profiles concurrently
	if err := submitProfiles(ctx, config, profiles, stats); err != nil {
		return fmt.Errorf("profile submission failed: %w", err)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(ctx, stats)

	logger.Get().Info(ctx, "load test completed")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(cerr))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// displayFinalStats logs the aggregated test outcome.
func displayFinalStats(ctx context.Context, stats *Stats) {
	driftRate := 0.0
	matchRate := 0.0
	if stats.Successful > 0 {
		driftRate = float64(stats.DriftDetected) / float64(stats.Successful) * percentageMultiplier
		matchRate = float64(stats.LabelMatches) / float64(stats.Successful) * percentageMultiplier
	}

	logger.Get().Info(ctx, "load test results",
		logger.Int("profilesGenerated", stats.ProfilesGenerated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("successful", stats.Successful),
		logger.Int("unavailable", stats.Unavailable),
		logger.Int("failed", stats.Failed),
		logger.Float64("driftRatePct", driftRate),
		logger.Float64("labelMatchPct", matchRate),
		logger.String("avgLatency", stats.AvgLatency.String()),
		logger.String("maxLatency", stats.MaxLatency.String()),
		logger.String("duration", stats.Duration.String()),
	)
}
