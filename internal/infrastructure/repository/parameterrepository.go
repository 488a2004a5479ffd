package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"loreforge/internal/domain/catalog"
	"loreforge/internal/infrastructure/persistence/mappers"
	"loreforge/internal/infrastructure/persistence/models"
	"loreforge/internal/shared/errors"
)

type ParameterRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ParameterMapper
}

func NewParameterRepository(db *gorm.DB) catalog.ParameterRepository {
	return &ParameterRepositoryImpl{
		db:     db,
		mapper: mappers.NewParameterMapper(),
	}
}

// categoryExists is the application-level referential check; it runs before
// any write so a missing parent is reported against the category, not as an
// opaque constraint violation.
func (r *ParameterRepositoryImpl) categoryExists(ctx context.Context, categoryID string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CategoryModel{}).
		Where("id = ?", categoryID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check category existence: %w", err)
	}
	if count == 0 {
		return errors.NewReferentialIntegrityError(
			fmt.Sprintf("category %q does not exist", categoryID)).WithCause(catalog.ErrCategoryNotFound)
	}
	return nil
}

func (r *ParameterRepositoryImpl) Create(ctx context.Context, parameter *catalog.Parameter) error {
	if err := r.categoryExists(ctx, parameter.CategoryID()); err != nil {
		return err
	}

	model, err := r.mapper.ToModel(parameter)
	if err != nil {
		return fmt.Errorf("failed to map parameter to model: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError(fmt.Sprintf("parameter %q already exists", parameter.ID())).WithCause(catalog.ErrDuplicateParameter)
		}
		return fmt.Errorf("failed to create parameter: %w", err)
	}

	return nil
}

func (r *ParameterRepositoryImpl) GetByID(ctx context.Context, id string) (*catalog.Parameter, error) {
	var model models.ParameterModel

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError(fmt.Sprintf("parameter %q not found", id)).WithCause(catalog.ErrParameterNotFound)
		}
		return nil, fmt.Errorf("failed to get parameter by id: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *ParameterRepositoryImpl) ListByCategory(ctx context.Context, categoryID string) ([]*catalog.Parameter, error) {
	var modelList []*models.ParameterModel

	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("sort_order ASC, name ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list parameters: %w", err)
	}

	return r.mapper.ToDomainList(modelList)
}

func (r *ParameterRepositoryImpl) Update(ctx context.Context, parameter *catalog.Parameter) error {
	if err := r.categoryExists(ctx, parameter.CategoryID()); err != nil {
		return err
	}

	model, err := r.mapper.ToModel(parameter)
	if err != nil {
		return fmt.Errorf("failed to map parameter to model: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&models.ParameterModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":             model.Name,
			"description":      model.Description,
			"type":             model.Type,
			"visibility":       model.Visibility,
			"required":         model.Required,
			"sort_order":       model.SortOrder,
			"parameter_values": model.ParameterValues,
			"parameter_config": model.ParameterConfig,
			"updated_at":       model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update parameter: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("parameter %q not found", parameter.ID())).WithCause(catalog.ErrParameterNotFound)
	}

	return nil
}

func (r *ParameterRepositoryImpl) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ParameterModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete parameter: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("parameter %q not found", id)).WithCause(catalog.ErrParameterNotFound)
	}
	return nil
}
