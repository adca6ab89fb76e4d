// Package repository defines the student store interface and errors.
package repository

import (
	"context"
	"time"

	"driftwatch/internal/domain/model"
)

// Student is a stored student record. CurrentDriftScore keeps the result of
// the most recent evaluation.
type Student struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	TargetCareer      string    `json:"target_career"`
	CurrentDriftScore float64   `json:"current_drift_score"`
	CreatedAt         time.Time `json:"created_at"`
}

// Activity is a stored activity row tied to a student.
type Activity struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Type      string    `json:"type,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Store provides read/write access to students and their activities.
type Store interface {
	// UpsertStudent creates a student keyed by name, or updates the target
	// career of an existing one when it changed.
	UpsertStudent(ctx context.Context, name, email, targetCareer string) (Student, error)

	// Student returns a student by id. Returns ErrNotFound when unknown.
	Student(ctx context.Context, id string) (Student, error)

	// AddActivity appends an activity to a student's history.
	AddActivity(ctx context.Context, studentID string, act model.Activity) (Activity, error)

	// Activities lists a student's activities in insertion order.
	Activities(ctx context.Context, studentID string) ([]Activity, error)

	// SetDriftScore records the latest drift score for a student.
	SetDriftScore(ctx context.Context, id string, score float64) error

	// Count returns the number of stored students.
	Count(ctx context.Context) int
}
