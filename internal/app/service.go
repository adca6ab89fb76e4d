// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	repository "driftwatch/internal/adapters/repository"
	"driftwatch/internal/domain/model"
	"driftwatch/internal/domain/scoring"
	"driftwatch/internal/domain/taxonomy"
	"driftwatch/internal/ml/predict"
	"driftwatch/pkg/logger"
	"driftwatch/pkg/metrics"
)

// Service implements the API dependencies for the drift scoring system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     repository.Store
	scorer    scoring.Scorer
	predictor *predict.Predictor
	tax       *taxonomy.Taxonomy

	// Configuration
	careers    []taxonomy.Career
	modelPath  string
	shardCount int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCareers sets the career taxonomy. Order is significant: it pins
// the conflict-detection scan order.
func WithCareers(careers []taxonomy.Career) Option {
	return func(s *Service) {
		if len(careers) > 0 {
			s.careers = careers
		}
	}
}

// WithModelPath sets the path of the persisted drift model artifact.
func WithModelPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.modelPath = path
		}
	}
}

// WithShardCount sets the number of shards in the student store.
func WithShardCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.shardCount = count
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		careers:    taxonomy.DefaultCareers(),
		modelPath:  "ml/models/drift_model.gob",
		shardCount: 8,
		logger:     nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting drift scoring service...")

	tax, err := taxonomy.New(s.careers)
	if err != nil {
		return err
	}
	s.tax = tax
	s.scorer = scoring.NewProfileScorer(tax)
	s.store = repository.NewMemStore(ctx,
		repository.WithShardCount(s.shardCount),
	)

	s.predictor = predict.Load(s.modelPath)
	metrics.UpdateModelLoaded(s.predictor.Ready())
	if !s.predictor.Ready() {
		s.logger.Warn(ctx, "drift model unavailable, evaluations will be rejected",
			logger.String("modelPath", s.modelPath),
			logger.Error(s.predictor.Reason()),
		)
	}

	s.started = true
	s.logger.Info(ctx, "drift scoring service started",
		logger.Int("careers", s.tax.Len()),
		logger.Int("shards", s.shardCount),
		logger.String("model", s.predictor.State().String()),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping drift scoring service...")
	s.started = false
	s.logger.Info(context.Background(), "drift scoring service stopped")
}

// ModelReady reports whether the drift model is loaded.
func (s *Service) ModelReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.predictor == nil {
		return false
	}
	return s.predictor.Ready()
}

// Evaluate scores one student profile: the heuristic relevant ratio plus
// the model's drift probability. An unknown target career surfaces as
// scoring.ErrUnknownCareer; a missing model as predict.ErrModelUnavailable.
func (s *Service) Evaluate(ctx context.Context, profile model.StudentProfile) (model.ScoreResult, error) {
	start := time.Now()

	outcome, err := s.scorer.Score(ctx, profile)
	if err != nil {
		if errors.Is(err, scoring.ErrUnknownCareer) {
			metrics.RecordUnknownCareer()
			s.logger.Debug(ctx, "unknown career target",
				logger.String("target", profile.TargetCareer),
			)
		}
		return model.ScoreResult{}, err
	}

	if outcome.NoData {
		metrics.RecordNoData()
		return model.ScoreResult{
			DriftScore:   0,
			OnTrackScore: 1,
			Status:       model.StatusNoData,
			Message:      model.MessageNoData,
			Suggestions:  []string{},
		}, nil
	}

	pred, err := s.predictor.Predict(outcome.RelevantRatio)
	if err != nil {
		metrics.RecordModelUnavailable()
		return model.ScoreResult{}, err
	}

	message := model.MessageOnTrack
	if pred.IsDrifting {
		message = model.MessageNeedsAttention
		metrics.RecordDriftDetected()
	}

	metrics.RecordEvaluation(float64(time.Since(start).Milliseconds()))
	metrics.RecordSuggestions(len(outcome.Suggestions))

	return model.ScoreResult{
		DriftScore:    pred.DriftProbability,
		OnTrackScore:  pred.OnTrackProbability,
		IsDrifting:    pred.IsDrifting,
		RelevantRatio: outcome.RelevantRatio,
		Message:       message,
		Suggestions:   outcome.Suggestions,
	}, nil
}

// EvaluateStudent evaluates a stored student from their recorded activities
// and persists the resulting drift score on the student record.
func (s *Service) EvaluateStudent(ctx context.Context, studentID string) (model.ScoreResult, error) {
	student, err := s.store.Student(ctx, studentID)
	if err != nil {
		return model.ScoreResult{}, err
	}

	acts, err := s.store.Activities(ctx, studentID)
	if err != nil {
		return model.ScoreResult{}, err
	}

	profile := model.StudentProfile{
		TargetCareer:     student.TargetCareer,
		RecentActivities: make([]model.Activity, 0, len(acts)),
	}
	for _, a := range acts {
		profile.RecentActivities = append(profile.RecentActivities, model.Activity{
			Name:      a.Name,
			Category:  a.Category,
			Type:      a.Type,
			Timestamp: a.Timestamp,
		})
	}

	result, err := s.Evaluate(ctx, profile)
	if err != nil {
		return model.ScoreResult{}, err
	}

	if setErr := s.store.SetDriftScore(ctx, studentID, result.DriftScore); setErr != nil {
		s.logger.Warn(ctx, "failed to record drift score",
			logger.String("studentID", studentID),
			logger.Error(setErr),
		)
	}

	return result, nil
}

// UpsertStudent creates or updates a student keyed by name.
func (s *Service) UpsertStudent(ctx context.Context, name, email, targetCareer string) (repository.Student, error) {
	return s.store.UpsertStudent(ctx, name, email, targetCareer)
}

// Student returns a stored student by id.
func (s *Service) Student(ctx context.Context, id string) (repository.Student, error) {
	return s.store.Student(ctx, id)
}

// AddActivity appends an activity to a student's history.
func (s *Service) AddActivity(ctx context.Context, studentID string, act model.Activity) (repository.Activity, error) {
	return s.store.AddActivity(ctx, studentID, act)
}

// Activities lists a student's recorded activities in insertion order.
func (s *Service) Activities(ctx context.Context, studentID string) ([]repository.Activity, error) {
	return s.store.Activities(ctx, studentID)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":    s.started,
		"shardCount": s.shardCount,
	}

	if s.started {
		students := s.store.Count(context.Background())
		stats["totalStudents"] = students
		stats["careers"] = s.tax.Careers()
		stats["modelState"] = s.predictor.State().String()

		// Update metrics
		metrics.UpdateStoreStudents(students)
	}

	return stats
}
