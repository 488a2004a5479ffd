package content

import "errors"

var (
	// ErrContentNotFound is returned when a content lookup yields no row
	ErrContentNotFound = errors.New("generated content not found")

	// ErrImageNotFound is returned when a record stores no image blob
	ErrImageNotFound = errors.New("generated content has no image")
)
