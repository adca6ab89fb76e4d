// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	repository "driftwatch/internal/adapters/repository"
	"driftwatch/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Evaluate scores a request-scoped student profile.
	Evaluate(ctx context.Context, profile model.StudentProfile) (model.ScoreResult, error)

	// EvaluateStudent scores a stored student and records the drift score.
	EvaluateStudent(ctx context.Context, studentID string) (model.ScoreResult, error)

	// Student storage operations.
	UpsertStudent(ctx context.Context, name, email, targetCareer string) (repository.Student, error)
	Student(ctx context.Context, id string) (repository.Student, error)
	AddActivity(ctx context.Context, studentID string, act model.Activity) (repository.Activity, error)
	Activities(ctx context.Context, studentID string) ([]repository.Activity, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	evaluateHandler *EvaluateHandler
	studentsHandler *StudentsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		evaluateHandler: NewEvaluateHandler(deps),
		studentsHandler: NewStudentsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/evaluate", MetricsMiddleware(s.evaluateHandler.HandleEvaluate, "evaluate"))
	mux.HandleFunc("/activities", MetricsMiddleware(s.studentsHandler.HandlePostActivity, "activities"))
	mux.HandleFunc("/students", MetricsMiddleware(s.studentsHandler.HandlePostStudent, "students"))
	mux.HandleFunc("/students/", MetricsMiddleware(s.studentsHandler.HandleStudentPath, "students"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
