// Package model contains domain models passed between layers.
package model

import "time"

// Activity represents a single learning activity reported for a student.
// Category is one of the configured career names, "Unknown", or "Other".
type Activity struct {
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Type      string    `json:"type,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// StudentProfile is the request-scoped input to a scoring run. It is never
// persisted; the store keeps its own student records.
type StudentProfile struct {
	TargetCareer     string     `json:"target_career"`
	RecentActivities []Activity `json:"recent_activities"`
}

// Result statuses and messages returned by scoring.
const (
	StatusNoData          = "No Data"
	MessageNoData         = "Add activities to analyze."
	MessageOnTrack        = "On Track"
	MessageNeedsAttention = "Needs Attention"
	ErrorUnknownCareer    = "Unknown career target"
	MessageModelUnloaded  = "Model not loaded"
)

// ScoreResult is the full outcome of evaluating one student profile.
// OnTrackScore is always 1 - DriftScore.
type ScoreResult struct {
	DriftScore    float64  `json:"drift_score"`
	OnTrackScore  float64  `json:"on_track_score"`
	IsDrifting    bool     `json:"is_drifting"`
	RelevantRatio float64  `json:"relevant_ratio"`
	Status        string   `json:"status,omitempty"`
	Message       string   `json:"message"`
	Suggestions   []string `json:"suggestions"`
}

// TrainingRecord is one aggregated student row consumed by the trainer.
type TrainingRecord struct {
	TargetCareer  string
	RelevantRatio float64
	IsDrifting    bool
}
