package catalog

import (
	"encoding/json"
	"fmt"
)

// ValuesKind discriminates the two shapes a parameter's value set can take.
type ValuesKind string

const (
	ValuesKindList   ValuesKind = "list"
	ValuesKindToggle ValuesKind = "toggle"
)

// ValueOption is one selectable option of a list-valued parameter.
type ValueOption struct {
	Label string `json:"label"`
	ID    string `json:"id,omitempty"`
}

// ToggleValues is the on/off label pair of a boolean parameter.
type ToggleValues struct {
	On  string `json:"on"`
	Off string `json:"off"`
}

// ParameterValues is a tagged variant: either an ordered option list or an
// on/off toggle pair. The shape is resolved once when loading from storage;
// downstream code switches on Kind instead of re-inspecting raw JSON.
type ParameterValues struct {
	Kind   ValuesKind
	List   []ValueOption
	Toggle *ToggleValues
}

// NewListValues builds a list-shaped value set.
func NewListValues(options []ValueOption) *ParameterValues {
	return &ParameterValues{Kind: ValuesKindList, List: options}
}

// NewToggleValues builds a toggle-shaped value set.
func NewToggleValues(on, off string) *ParameterValues {
	return &ParameterValues{Kind: ValuesKindToggle, Toggle: &ToggleValues{On: on, Off: off}}
}

// MarshalJSON writes the stored wire shape: a JSON array for lists, an
// {"on":…,"off":…} object for toggles.
func (v *ParameterValues) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValuesKindList:
		return json.Marshal(v.List)
	case ValuesKindToggle:
		return json.Marshal(v.Toggle)
	default:
		return nil, fmt.Errorf("unknown parameter values kind: %s", v.Kind)
	}
}

// UnmarshalJSON resolves the duck-typed stored shape into the tagged variant.
func (v *ParameterValues) UnmarshalJSON(data []byte) error {
	trimmed := firstNonSpace(data)
	switch trimmed {
	case '[':
		var list []ValueOption
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("parameter values list: %w", err)
		}
		v.Kind = ValuesKindList
		v.List = list
		v.Toggle = nil
		return nil
	case '{':
		var toggle ToggleValues
		if err := json.Unmarshal(data, &toggle); err != nil {
			return fmt.Errorf("parameter values toggle: %w", err)
		}
		v.Kind = ValuesKindToggle
		v.Toggle = &toggle
		v.List = nil
		return nil
	default:
		return fmt.Errorf("parameter values must be a JSON array or object")
	}
}

func firstNonSpace(data []byte) byte {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b
		}
	}
	return 0
}

// ParameterConfig carries numeric bounds for number and range parameters.
type ParameterConfig struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step,omitempty"`
}

// Validate checks internal consistency of the bounds.
func (c *ParameterConfig) Validate() error {
	if c.Min > c.Max {
		return fmt.Errorf("parameter config: min %v exceeds max %v", c.Min, c.Max)
	}
	if c.Step < 0 {
		return fmt.Errorf("parameter config: step must not be negative")
	}
	return nil
}
