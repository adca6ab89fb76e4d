package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound     = errors.New("student not found")
	ErrNameRequired = errors.New("student name must not be empty")
)
