package dataset

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrDatasetMissing = errors.New("dataset file not found")
	ErrDatasetEmpty   = errors.New("dataset has no rows")
)
