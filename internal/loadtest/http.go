package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"driftwatch/internal/domain/model"
	"driftwatch/pkg/logger"
)

// HTTPClient wraps http.Client with a timeout.
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// submission outcomes.
const (
	outcomeSuccess     = "success"
	outcomeUnavailable = "unavailable"
	outcomeFailed      = "failed"
)

// submitProfiles submits profiles concurrently using a worker pool.
func submitProfiles(ctx context.Context, config *Config, profiles []profile, stats *Stats) error {
	logger.Get().Info(ctx, "submitting profiles",
		logger.Int("profiles", len(profiles)),
		logger.Int("workers", config.Workers),
	)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/evaluate"

	// Counters for statistics
	var (
		submitted    int64
		successful   int64
		unavailable  int64
		failed       int64
		driftFlagged int64
		labelMatches int64
		totalLatency int64
		maxLatency   int64
	)

	profileChan := make(chan profile, config.Workers*2)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for p := range profileChan {
				select {
				case <-ctx.Done():
					return
				default:
					start := time.Now()
					outcome, result := submitSingleProfile(ctx, client, url, p)
					latency := time.Since(start).Nanoseconds()

					atomic.AddInt64(&submitted, 1)
					atomic.AddInt64(&totalLatency, latency)
					for {
						prev := atomic.LoadInt64(&maxLatency)
						if latency <= prev || atomic.CompareAndSwapInt64(&maxLatency, prev, latency) {
							break
						}
					}

					switch outcome {
					case outcomeSuccess:
						atomic.AddInt64(&successful, 1)
						if result.IsDrifting {
							atomic.AddInt64(&driftFlagged, 1)
						}
						if result.IsDrifting == p.Drifting {
							atomic.AddInt64(&labelMatches, 1)
						}
					case outcomeUnavailable:
						atomic.AddInt64(&unavailable, 1)
					case outcomeFailed:
						atomic.AddInt64(&failed, 1)
					}

					if config.Verbose {
						logger.Get().Debug(ctx, "profile submitted",
							logger.String("id", p.ID),
							logger.String("outcome", outcome),
						)
					}
				}
			}
		}()
	}

	// Send profiles to workers
	go func() {
		defer close(profileChan)
		for _, p := range profiles {
			select {
			case <-ctx.Done():
				return
			case profileChan <- p:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Update stats
	stats.Submitted = int(atomic.LoadInt64(&submitted))
	stats.Successful = int(atomic.LoadInt64(&successful))
	stats.Unavailable = int(atomic.LoadInt64(&unavailable))
	stats.Failed = int(atomic.LoadInt64(&failed))
	stats.DriftDetected = int(atomic.LoadInt64(&driftFlagged))
	stats.LabelMatches = int(atomic.LoadInt64(&labelMatches))
	stats.MaxLatency = time.Duration(atomic.LoadInt64(&maxLatency))
	if stats.Submitted > 0 {
		stats.AvgLatency = time.Duration(atomic.LoadInt64(&totalLatency) / int64(stats.Submitted))
	}

	logger.Get().Info(ctx, "profile submission completed",
		logger.Int("successful", stats.Successful),
		logger.Int("unavailable", stats.Unavailable),
		logger.Int("failed", stats.Failed),
	)
	return nil
}

// submitSingleProfile submits one profile and returns the outcome plus the
// decoded score result for successful evaluations.
func submitSingleProfile(ctx context.Context, client *HTTPClient, url string, p profile) (string, model.ScoreResult) {
	resp, err := client.Post(ctx, url, p.Payload)
	if err != nil {
		return outcomeFailed, model.ScoreResult{}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return outcomeFailed, model.ScoreResult{}
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var result model.ScoreResult
		if err := json.Unmarshal(body, &result); err != nil {
			return outcomeFailed, model.ScoreResult{}
		}
		return outcomeSuccess, result
	case http.StatusServiceUnavailable:
		return outcomeUnavailable, model.ScoreResult{}
	default:
		return outcomeFailed, model.ScoreResult{}
	}
}
