package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrUnknownCareer = errors.New("unknown career target")
)
