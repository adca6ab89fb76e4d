// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	repository "driftwatch/internal/adapters/repository"
	"driftwatch/internal/domain/model"
)

// studentRequest mirrors the body of POST /students.
type studentRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	TargetCareer string `json:"target_career"`
}

func (s studentRequest) validate() error {
	switch {
	case strings.TrimSpace(s.Name) == "":
		return errors.New("missing name")
	case strings.TrimSpace(s.TargetCareer) == "":
		return errors.New("missing target_career")
	}
	return nil
}

// activityRequest mirrors the body of POST /activities.
type activityRequest struct {
	StudentID string `json:"student_id"`
	model.Activity
}

func (a activityRequest) validate() error {
	switch {
	case strings.TrimSpace(a.StudentID) == "":
		return errors.New("missing student_id")
	case strings.TrimSpace(a.Name) == "":
		return errors.New("missing name")
	}
	return nil
}

// StudentsHandler handles student and activity storage requests.
type StudentsHandler struct {
	deps Dependencies
}

// NewStudentsHandler creates a new students handler.
func NewStudentsHandler(deps Dependencies) *StudentsHandler {
	return &StudentsHandler{deps: deps}
}

// HandlePostStudent handles POST /students requests.
func (h *StudentsHandler) HandlePostStudent(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_student"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req studentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	student, err := h.deps.UpsertStudent(r.Context(), req.Name, req.Email, req.TargetCareer)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, student)
}

// HandlePostActivity handles POST /activities requests.
func (h *StudentsHandler) HandlePostActivity(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_activity"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req activityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	act, err := h.deps.AddActivity(r.Context(), req.StudentID, req.Activity)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, act)
}

// HandleStudentPath handles GET /students/{id} and GET /students/{id}/activities.
func (h *StudentsHandler) HandleStudentPath(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_student"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameters after /students/
	path := strings.TrimPrefix(r.URL.Path, "/students/")
	id, rest, _ := strings.Cut(path, "/")
	if id == "" || (rest != "" && rest != "activities") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	if rest == "activities" {
		acts, err := h.deps.Activities(r.Context(), id)
		if err != nil {
			h.writeStudentError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, acts)
		return
	}

	student, err := h.deps.Student(r.Context(), id)
	if err != nil {
		h.writeStudentError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

func (h *StudentsHandler) writeStudentError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
}
