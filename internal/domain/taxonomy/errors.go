package taxonomy

import "errors"

// Sentinel kinds for taxonomy construction errors.
var (
	ErrEmptyTaxonomy   = errors.New("taxonomy has no careers")
	ErrEmptyCareerName = errors.New("career name must not be empty")
	ErrDuplicateCareer = errors.New("duplicate career name")
)
