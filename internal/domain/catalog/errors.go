package catalog

import "errors"

var (
	// ErrCategoryNotFound is returned when a category lookup yields no row
	ErrCategoryNotFound = errors.New("category not found")

	// ErrParameterNotFound is returned when a parameter lookup yields no row
	ErrParameterNotFound = errors.New("parameter not found")

	// ErrDuplicateCategory is returned when a category id or name already exists
	ErrDuplicateCategory = errors.New("category already exists")

	// ErrDuplicateParameter is returned when a parameter id already exists
	ErrDuplicateParameter = errors.New("parameter already exists")
)
