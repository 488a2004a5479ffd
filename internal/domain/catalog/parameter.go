package catalog

import (
	"fmt"
	"time"

	"loreforge/internal/shared/biztime"
	"loreforge/internal/shared/utils"
)

// ParameterType enumerates the supported input types.
type ParameterType string

const (
	TypeSelect  ParameterType = "select"
	TypeText    ParameterType = "text"
	TypeNumber  ParameterType = "number"
	TypeBoolean ParameterType = "boolean"
	TypeRange   ParameterType = "range"
)

// ParameterVisibility controls where a parameter is surfaced.
type ParameterVisibility string

const (
	ParameterBasic    ParameterVisibility = "Basic"
	ParameterAdvanced ParameterVisibility = "Advanced"
	ParameterHidden   ParameterVisibility = "Hide"
)

// Parameter is one configurable input of a generation request, owned by a
// category.
type Parameter struct {
	id          string
	categoryID  string
	name        string
	description string
	paramType   ParameterType
	visibility  ParameterVisibility
	required    bool
	sortOrder   int
	values      *ParameterValues
	config      *ParameterConfig
	createdAt   time.Time
	updatedAt   time.Time
}

// NewParameter creates a parameter and enforces the shape invariants: select
// parameters need a non-empty option list, range parameters need numeric
// bounds, toggle values are only meaningful on booleans.
func NewParameter(
	id, categoryID, name, description string,
	paramType ParameterType,
	visibility ParameterVisibility,
	required bool,
	sortOrder int,
	values *ParameterValues,
	config *ParameterConfig,
) (*Parameter, error) {
	if categoryID == "" {
		return nil, fmt.Errorf("parameter category id is required")
	}
	if name == "" {
		return nil, fmt.Errorf("parameter name is required")
	}
	if id == "" {
		id = utils.Slugify(name)
	}
	if id == "" {
		return nil, fmt.Errorf("parameter id could not be derived from name %q", name)
	}
	if !isValidParameterType(paramType) {
		return nil, fmt.Errorf("invalid parameter type: %s", paramType)
	}
	if !isValidParameterVisibility(visibility) {
		return nil, fmt.Errorf("invalid parameter visibility: %s", visibility)
	}
	if err := validateShape(paramType, values, config); err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &Parameter{
		id:          id,
		categoryID:  categoryID,
		name:        name,
		description: description,
		paramType:   paramType,
		visibility:  visibility,
		required:    required,
		sortOrder:   sortOrder,
		values:      values,
		config:      config,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructParameter rebuilds a Parameter from the persistence layer.
func ReconstructParameter(
	id, categoryID, name, description string,
	paramType ParameterType,
	visibility ParameterVisibility,
	required bool,
	sortOrder int,
	values *ParameterValues,
	config *ParameterConfig,
	createdAt, updatedAt time.Time,
) *Parameter {
	return &Parameter{
		id:          id,
		categoryID:  categoryID,
		name:        name,
		description: description,
		paramType:   paramType,
		visibility:  visibility,
		required:    required,
		sortOrder:   sortOrder,
		values:      values,
		config:      config,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Getters
func (p *Parameter) ID() string                      { return p.id }
func (p *Parameter) CategoryID() string              { return p.categoryID }
func (p *Parameter) Name() string                    { return p.name }
func (p *Parameter) Description() string             { return p.description }
func (p *Parameter) Type() ParameterType             { return p.paramType }
func (p *Parameter) Visibility() ParameterVisibility { return p.visibility }
func (p *Parameter) Required() bool                  { return p.required }
func (p *Parameter) SortOrder() int                  { return p.sortOrder }
func (p *Parameter) Values() *ParameterValues        { return p.values }
func (p *Parameter) Config() *ParameterConfig        { return p.config }
func (p *Parameter) CreatedAt() time.Time            { return p.createdAt }
func (p *Parameter) UpdatedAt() time.Time            { return p.updatedAt }

// Update mutates the editable fields, re-checking shape invariants.
func (p *Parameter) Update(
	name, description string,
	paramType ParameterType,
	visibility ParameterVisibility,
	required bool,
	sortOrder int,
	values *ParameterValues,
	config *ParameterConfig,
) error {
	if name == "" {
		return fmt.Errorf("parameter name is required")
	}
	if !isValidParameterType(paramType) {
		return fmt.Errorf("invalid parameter type: %s", paramType)
	}
	if !isValidParameterVisibility(visibility) {
		return fmt.Errorf("invalid parameter visibility: %s", visibility)
	}
	if err := validateShape(paramType, values, config); err != nil {
		return err
	}
	p.name = name
	p.description = description
	p.paramType = paramType
	p.visibility = visibility
	p.required = required
	p.sortOrder = sortOrder
	p.values = values
	p.config = config
	p.updatedAt = biztime.NowUTC()
	return nil
}

func validateShape(t ParameterType, values *ParameterValues, config *ParameterConfig) error {
	switch t {
	case TypeSelect:
		if values == nil || values.Kind != ValuesKindList || len(values.List) == 0 {
			return fmt.Errorf("select parameter requires a non-empty value list")
		}
	case TypeRange:
		if config == nil {
			return fmt.Errorf("range parameter requires min/max config")
		}
	case TypeBoolean:
		if values != nil && values.Kind != ValuesKindToggle {
			return fmt.Errorf("boolean parameter values must be an on/off pair")
		}
	}
	if values != nil && values.Kind == ValuesKindToggle && t != TypeBoolean {
		return fmt.Errorf("on/off values are only valid for boolean parameters")
	}
	if config != nil {
		if err := config.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func isValidParameterType(t ParameterType) bool {
	switch t {
	case TypeSelect, TypeText, TypeNumber, TypeBoolean, TypeRange:
		return true
	default:
		return false
	}
}

func isValidParameterVisibility(v ParameterVisibility) bool {
	switch v {
	case ParameterBasic, ParameterAdvanced, ParameterHidden:
		return true
	default:
		return false
	}
}
