package mappers

import (
	"loreforge/internal/domain/setting"
	"loreforge/internal/infrastructure/persistence/models"
)

// SettingMapper provides methods for converting between domain and model
type SettingMapper interface {
	ToDomain(model *models.SettingModel) *setting.Setting
	ToModel(domain *setting.Setting) *models.SettingModel
	ToDomainList(modelList []*models.SettingModel) []*setting.Setting
}

type SettingMapperImpl struct{}

func NewSettingMapper() SettingMapper {
	return &SettingMapperImpl{}
}

func (m *SettingMapperImpl) ToDomain(model *models.SettingModel) *setting.Setting {
	if model == nil {
		return nil
	}

	// ReconstructSetting falls back to string for unknown data-type tags.
	return setting.ReconstructSetting(
		model.SettingKey,
		model.Value,
		setting.ValueType(model.DataType),
		model.Description,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *SettingMapperImpl) ToModel(domain *setting.Setting) *models.SettingModel {
	if domain == nil {
		return nil
	}

	return &models.SettingModel{
		SettingKey:  domain.Key(),
		Value:       domain.Value(),
		DataType:    string(domain.ValueType()),
		Description: domain.Description(),
		CreatedAt:   domain.CreatedAt(),
		UpdatedAt:   domain.UpdatedAt(),
	}
}

func (m *SettingMapperImpl) ToDomainList(modelList []*models.SettingModel) []*setting.Setting {
	if modelList == nil {
		return nil
	}

	domains := make([]*setting.Setting, 0, len(modelList))
	for _, model := range modelList {
		if domain := m.ToDomain(model); domain != nil {
			domains = append(domains, domain)
		}
	}
	return domains
}
