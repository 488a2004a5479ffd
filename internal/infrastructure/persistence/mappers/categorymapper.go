package mappers

import (
	"loreforge/internal/domain/catalog"
	"loreforge/internal/infrastructure/persistence/models"
)

// CategoryMapper provides methods for converting between domain and model
type CategoryMapper interface {
	ToDomain(model *models.CategoryModel) *catalog.Category
	ToModel(domain *catalog.Category) *models.CategoryModel
	ToDomainList(modelList []*models.CategoryModel) []*catalog.Category
}

type CategoryMapperImpl struct{}

func NewCategoryMapper() CategoryMapper {
	return &CategoryMapperImpl{}
}

func (m *CategoryMapperImpl) ToDomain(model *models.CategoryModel) *catalog.Category {
	if model == nil {
		return nil
	}

	return catalog.ReconstructCategory(
		model.ID,
		model.Name,
		model.Description,
		catalog.Visibility(model.Visibility),
		model.Year,
		model.SortOrder,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *CategoryMapperImpl) ToModel(domain *catalog.Category) *models.CategoryModel {
	if domain == nil {
		return nil
	}

	return &models.CategoryModel{
		ID:          domain.ID(),
		Name:        domain.Name(),
		Description: domain.Description(),
		Visibility:  string(domain.Visibility()),
		Year:        domain.Year(),
		SortOrder:   domain.SortOrder(),
		CreatedAt:   domain.CreatedAt(),
		UpdatedAt:   domain.UpdatedAt(),
	}
}

func (m *CategoryMapperImpl) ToDomainList(modelList []*models.CategoryModel) []*catalog.Category {
	if modelList == nil {
		return nil
	}

	domains := make([]*catalog.Category, 0, len(modelList))
	for _, model := range modelList {
		if domain := m.ToDomain(model); domain != nil {
			domains = append(domains, domain)
		}
	}
	return domains
}
