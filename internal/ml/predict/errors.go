package predict

import "errors"

// Sentinel kinds for prediction errors.
var (
	ErrModelUnavailable = errors.New("model not loaded")
)
