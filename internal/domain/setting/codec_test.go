package setting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loreforge/internal/shared/errors"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		value     any
		valueType ValueType
		expected  any
	}{
		{
			name:      "number float",
			value:     3.25,
			valueType: ValueTypeNumber,
			expected:  3.25,
		},
		{
			name:      "number int",
			value:     42,
			valueType: ValueTypeNumber,
			expected:  float64(42),
		},
		{
			name:      "number negative",
			value:     -17.5,
			valueType: ValueTypeNumber,
			expected:  -17.5,
		},
		{
			name:      "boolean true",
			value:     true,
			valueType: ValueTypeBoolean,
			expected:  true,
		},
		{
			name:      "boolean false",
			value:     false,
			valueType: ValueTypeBoolean,
			expected:  false,
		},
		{
			name:      "json object",
			value:     map[string]any{"size": "1024x1024", "count": float64(2)},
			valueType: ValueTypeJSON,
			expected:  map[string]any{"size": "1024x1024", "count": float64(2)},
		},
		{
			name:      "json array",
			value:     []any{"a", "b", float64(3)},
			valueType: ValueTypeJSON,
			expected:  []any{"a", "b", float64(3)},
		},
		{
			name:      "json null",
			value:     nil,
			valueType: ValueTypeJSON,
			expected:  nil,
		},
		{
			name:      "plain string",
			value:     "dall-e-3",
			valueType: ValueTypeString,
			expected:  "dall-e-3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := Encode(tt.value, tt.valueType)
			require.NoError(t, err)

			s := ReconstructSetting("test.key", encoded, tt.valueType, "", time.Now(), time.Now())
			decoded, err := Decode(s)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, decoded)
		})
	}
}

func TestEncodeRejectsMismatchedValues(t *testing.T) {
	tests := []struct {
		name      string
		value     any
		valueType ValueType
	}{
		{"string as number", "not a number", ValueTypeNumber},
		{"slice as number", []int{1}, ValueTypeNumber},
		{"string as boolean", "yes", ValueTypeBoolean},
		{"int as boolean", 1, ValueTypeBoolean},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.value, tt.valueType)
			assert.Error(t, err)
		})
	}
}

func TestDecodeMalformedStoredData(t *testing.T) {
	tests := []struct {
		name      string
		stored    string
		valueType ValueType
	}{
		{"garbage number", "12abc", ValueTypeNumber},
		{"empty number", "", ValueTypeNumber},
		{"truncated json", `{"a":`, ValueTypeJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ReconstructSetting("corrupt.key", tt.stored, tt.valueType, "", time.Now(), time.Now())
			_, err := Decode(s)
			require.Error(t, err)
			assert.True(t, errors.IsPersistenceIntegrityError(err),
				"expected persistence integrity error, got %v", err)
		})
	}
}

func TestDecodeBooleanIsStrictEquality(t *testing.T) {
	// Anything other than the literal "true" decodes to false.
	for _, stored := range []string{"false", "TRUE", "1", "yes", ""} {
		s := ReconstructSetting("flag", stored, ValueTypeBoolean, "", time.Now(), time.Now())
		decoded, err := Decode(s)
		require.NoError(t, err)
		assert.Equal(t, false, decoded, "stored %q", stored)
	}

	s := ReconstructSetting("flag", "true", ValueTypeBoolean, "", time.Now(), time.Now())
	decoded, err := Decode(s)
	require.NoError(t, err)
	assert.Equal(t, true, decoded)
}

func TestReconstructSettingUnknownTagFallsBackToString(t *testing.T) {
	s := ReconstructSetting("legacy", "raw value", ValueType("datetime"), "", time.Now(), time.Now())
	assert.Equal(t, ValueTypeString, s.ValueType())

	decoded, err := Decode(s)
	require.NoError(t, err)
	assert.Equal(t, "raw value", decoded)
}

func TestNewSettingEncodesValue(t *testing.T) {
	s, err := NewSetting("generation.max_tokens", 1200, ValueTypeNumber, "token budget")
	require.NoError(t, err)
	assert.Equal(t, "1200", s.Value())

	typed, err := s.TypedValue()
	require.NoError(t, err)
	assert.Equal(t, float64(1200), typed)
}

func TestSetValueKeepsDeclaredType(t *testing.T) {
	s, err := NewSetting("flag", true, ValueTypeBoolean, "")
	require.NoError(t, err)

	require.NoError(t, s.SetValue(false))
	assert.Equal(t, "false", s.Value())

	assert.Error(t, s.SetValue("not a bool"))
}
