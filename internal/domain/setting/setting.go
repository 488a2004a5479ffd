// Package setting holds typed key/value configuration persisted in the store.
// Values are stored as strings together with a data-type tag; the codec in
// this package converts between stored strings and typed values.
package setting

import (
	"fmt"
	"time"

	"loreforge/internal/shared/biztime"
)

// ValueType defines the declared type of a setting value
type ValueType string

const (
	ValueTypeString  ValueType = "string"
	ValueTypeNumber  ValueType = "number"
	ValueTypeBoolean ValueType = "boolean"
	ValueTypeJSON    ValueType = "json"
)

// Setting represents one persisted configuration entry
type Setting struct {
	key         string
	value       string // stored encoding, parsed per valueType
	valueType   ValueType
	description string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewSetting creates a setting from an already-typed value, encoding it for
// storage.
func NewSetting(key string, value any, valueType ValueType, description string) (*Setting, error) {
	if key == "" {
		return nil, fmt.Errorf("setting key is required")
	}
	if !isValidValueType(valueType) {
		return nil, fmt.Errorf("invalid value type: %s", valueType)
	}

	encoded, err := Encode(value, valueType)
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &Setting{
		key:         key,
		value:       encoded,
		valueType:   valueType,
		description: description,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructSetting rebuilds a Setting from the persistence layer. A missing
// or unknown data-type tag is treated as string.
func ReconstructSetting(key, value string, valueType ValueType, description string, createdAt, updatedAt time.Time) *Setting {
	if !isValidValueType(valueType) {
		valueType = ValueTypeString
	}
	return &Setting{
		key:         key,
		value:       value,
		valueType:   valueType,
		description: description,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Getters
func (s *Setting) Key() string          { return s.key }
func (s *Setting) Value() string        { return s.value }
func (s *Setting) ValueType() ValueType { return s.valueType }
func (s *Setting) Description() string  { return s.description }
func (s *Setting) CreatedAt() time.Time { return s.createdAt }
func (s *Setting) UpdatedAt() time.Time { return s.updatedAt }

// SetValue re-encodes and stores a new typed value, keeping the declared type.
func (s *Setting) SetValue(value any) error {
	encoded, err := Encode(value, s.valueType)
	if err != nil {
		return err
	}
	s.value = encoded
	s.updatedAt = biztime.NowUTC()
	return nil
}

// TypedValue decodes the stored string per the setting's own data-type tag.
func (s *Setting) TypedValue() (any, error) {
	return Decode(s)
}

func isValidValueType(vt ValueType) bool {
	switch vt {
	case ValueTypeString, ValueTypeNumber, ValueTypeBoolean, ValueTypeJSON:
		return true
	default:
		return false
	}
}
