package setting

import "errors"

var (
	// ErrSettingNotFound is returned when a setting is not found
	ErrSettingNotFound = errors.New("setting not found")

	// ErrInvalidValueType is returned when the value type is invalid or mismatched
	ErrInvalidValueType = errors.New("invalid value type")
)
