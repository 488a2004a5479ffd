package mappers

import (
	"encoding/json"
	"fmt"

	"loreforge/internal/domain/catalog"
	"loreforge/internal/infrastructure/persistence/models"
	"loreforge/internal/shared/errors"
)

// ParameterMapper converts between the Parameter domain entity and its model.
// The duck-typed parameter_values column is resolved into the tagged variant
// exactly once, here at the store boundary.
type ParameterMapper interface {
	ToDomain(model *models.ParameterModel) (*catalog.Parameter, error)
	ToModel(domain *catalog.Parameter) (*models.ParameterModel, error)
	ToDomainList(modelList []*models.ParameterModel) ([]*catalog.Parameter, error)
}

type ParameterMapperImpl struct{}

func NewParameterMapper() ParameterMapper {
	return &ParameterMapperImpl{}
}

func (m *ParameterMapperImpl) ToDomain(model *models.ParameterModel) (*catalog.Parameter, error) {
	if model == nil {
		return nil, nil
	}

	var values *catalog.ParameterValues
	if len(model.ParameterValues) > 0 {
		values = &catalog.ParameterValues{}
		if err := json.Unmarshal(model.ParameterValues, values); err != nil {
			return nil, errors.NewPersistenceIntegrityError(
				fmt.Sprintf("parameter %q stores malformed parameter_values", model.ID)).WithCause(err)
		}
	}

	var config *catalog.ParameterConfig
	if len(model.ParameterConfig) > 0 {
		config = &catalog.ParameterConfig{}
		if err := json.Unmarshal(model.ParameterConfig, config); err != nil {
			return nil, errors.NewPersistenceIntegrityError(
				fmt.Sprintf("parameter %q stores malformed parameter_config", model.ID)).WithCause(err)
		}
	}

	return catalog.ReconstructParameter(
		model.ID,
		model.CategoryID,
		model.Name,
		model.Description,
		catalog.ParameterType(model.Type),
		catalog.ParameterVisibility(model.Visibility),
		model.Required,
		model.SortOrder,
		values,
		config,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}

func (m *ParameterMapperImpl) ToModel(domain *catalog.Parameter) (*models.ParameterModel, error) {
	if domain == nil {
		return nil, nil
	}

	model := &models.ParameterModel{
		ID:          domain.ID(),
		CategoryID:  domain.CategoryID(),
		Name:        domain.Name(),
		Description: domain.Description(),
		Type:        string(domain.Type()),
		Visibility:  string(domain.Visibility()),
		Required:    domain.Required(),
		SortOrder:   domain.SortOrder(),
		CreatedAt:   domain.CreatedAt(),
		UpdatedAt:   domain.UpdatedAt(),
	}

	if v := domain.Values(); v != nil {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal parameter values: %w", err)
		}
		model.ParameterValues = data
	}

	if c := domain.Config(); c != nil {
		data, err := json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal parameter config: %w", err)
		}
		model.ParameterConfig = data
	}

	return model, nil
}

func (m *ParameterMapperImpl) ToDomainList(modelList []*models.ParameterModel) ([]*catalog.Parameter, error) {
	if modelList == nil {
		return nil, nil
	}

	domains := make([]*catalog.Parameter, 0, len(modelList))
	for _, model := range modelList {
		domain, err := m.ToDomain(model)
		if err != nil {
			return nil, err
		}
		if domain != nil {
			domains = append(domains, domain)
		}
	}
	return domains, nil
}
