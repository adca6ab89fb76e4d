package train

import "errors"

// Sentinel kinds for training errors.
var (
	ErrNoTrainingData = errors.New("no training records")
	ErrSingleClass    = errors.New("training records contain a single class")
)
