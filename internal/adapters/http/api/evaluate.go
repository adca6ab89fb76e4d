// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	repository "driftwatch/internal/adapters/repository"
	"driftwatch/internal/domain/model"
	"driftwatch/internal/domain/scoring"
	"driftwatch/internal/ml/predict"
)

// evaluateRequest is the body of POST /evaluate. Either a stored student id
// or an inline profile, not both.
type evaluateRequest struct {
	StudentID        string           `json:"student_id,omitempty"`
	TargetCareer     string           `json:"target_career,omitempty"`
	RecentActivities []model.Activity `json:"recent_activities,omitempty"`
}

func (e evaluateRequest) validate() error {
	if strings.TrimSpace(e.StudentID) != "" {
		return nil
	}
	if strings.TrimSpace(e.TargetCareer) == "" {
		return errors.New("missing target_career or student_id")
	}
	return nil
}

// EvaluateHandler handles drift evaluation requests.
type EvaluateHandler struct {
	deps Dependencies
}

// NewEvaluateHandler creates a new evaluate handler.
func NewEvaluateHandler(deps Dependencies) *EvaluateHandler {
	return &EvaluateHandler{deps: deps}
}

// HandleEvaluate handles POST /evaluate requests.
//
// Unknown-career and No-Data outcomes are results, not failures: they are
// returned with 200 so clients can render them. Only a missing model (503)
// and malformed input (400) are transport-level errors.
func (h *EvaluateHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "api.evaluate"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	var (
		result model.ScoreResult
		err    error
	)
	if req.StudentID != "" {
		result, err = h.deps.EvaluateStudent(r.Context(), req.StudentID)
	} else {
		result, err = h.deps.Evaluate(r.Context(), model.StudentProfile{
			TargetCareer:     req.TargetCareer,
			RecentActivities: req.RecentActivities,
		})
	}

	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, result)
	case errors.Is(err, scoring.ErrUnknownCareer):
		writeJSON(w, http.StatusOK, map[string]string{"error": model.ErrorUnknownCareer})
	case errors.Is(err, predict.ErrModelUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": model.MessageModelUnloaded})
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
