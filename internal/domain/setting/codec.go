package setting

import (
	"encoding/json"
	"fmt"
	"strconv"

	"loreforge/internal/shared/errors"
)

// Encode converts a typed value into its stored string form for the declared
// data type.
func Encode(value any, valueType ValueType) (string, error) {
	switch valueType {
	case ValueTypeNumber:
		switch n := value.(type) {
		case float64:
			return strconv.FormatFloat(n, 'f', -1, 64), nil
		case float32:
			return strconv.FormatFloat(float64(n), 'f', -1, 32), nil
		case int:
			return strconv.Itoa(n), nil
		case int64:
			return strconv.FormatInt(n, 10), nil
		case string:
			// Accept pre-formatted numbers, but verify they parse.
			if _, err := strconv.ParseFloat(n, 64); err != nil {
				return "", fmt.Errorf("value %q is not a number", n)
			}
			return n, nil
		default:
			return "", fmt.Errorf("cannot encode %T as number", value)
		}
	case ValueTypeBoolean:
		switch b := value.(type) {
		case bool:
			return strconv.FormatBool(b), nil
		case string:
			if b != "true" && b != "false" {
				return "", fmt.Errorf("value %q is not a boolean", b)
			}
			return b, nil
		default:
			return "", fmt.Errorf("cannot encode %T as boolean", value)
		}
	case ValueTypeJSON:
		data, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON value: %w", err)
		}
		return string(data), nil
	default:
		// ValueTypeString and anything unrecognized: pass-through.
		if s, ok := value.(string); ok {
			return s, nil
		}
		return fmt.Sprintf("%v", value), nil
	}
}

// Decode converts a stored setting into a typed value, dispatching on the
// row's own data-type tag. Malformed stored data for a declared type is a
// persistence-integrity error, never silently coerced.
func Decode(s *Setting) (any, error) {
	switch s.ValueType() {
	case ValueTypeNumber:
		n, err := strconv.ParseFloat(s.Value(), 64)
		if err != nil {
			return nil, errors.NewPersistenceIntegrityError(
				fmt.Sprintf("setting %q declares type number but stores %q", s.Key(), s.Value())).WithCause(err)
		}
		return n, nil
	case ValueTypeBoolean:
		return s.Value() == "true", nil
	case ValueTypeJSON:
		var out any
		if err := json.Unmarshal([]byte(s.Value()), &out); err != nil {
			return nil, errors.NewPersistenceIntegrityError(
				fmt.Sprintf("setting %q declares type json but stores malformed data", s.Key())).WithCause(err)
		}
		return out, nil
	default:
		return s.Value(), nil
	}
}
