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

type CategoryRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.CategoryMapper
}

func NewCategoryRepository(db *gorm.DB) catalog.CategoryRepository {
	return &CategoryRepositoryImpl{
		db:     db,
		mapper: mappers.NewCategoryMapper(),
	}
}

func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *catalog.Category) error {
	model := r.mapper.ToModel(category)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError(fmt.Sprintf("category %q already exists", category.ID())).WithCause(catalog.ErrDuplicateCategory)
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

func (r *CategoryRepositoryImpl) GetByID(ctx context.Context, id string) (*catalog.Category, error) {
	var model models.CategoryModel

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError(fmt.Sprintf("category %q not found", id)).WithCause(catalog.ErrCategoryNotFound)
		}
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

func (r *CategoryRepositoryImpl) List(ctx context.Context, visibleOnly bool) ([]*catalog.Category, error) {
	var modelList []*models.CategoryModel

	query := r.db.WithContext(ctx).Order("sort_order ASC, name ASC")
	if visibleOnly {
		query = query.Where("visibility = ?", string(catalog.VisibilityShow))
	}

	if err := query.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return r.mapper.ToDomainList(modelList), nil
}

func (r *CategoryRepositoryImpl) Update(ctx context.Context, category *catalog.Category) error {
	model := r.mapper.ToModel(category)

	result := r.db.WithContext(ctx).Model(&models.CategoryModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"description": model.Description,
			"visibility":  model.Visibility,
			"year":        model.Year,
			"sort_order":  model.SortOrder,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		if errors.IsDuplicateError(result.Error) {
			return errors.NewConflictError(fmt.Sprintf("category name %q already in use", category.Name()))
		}
		return fmt.Errorf("failed to update category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("category %q not found", category.ID())).WithCause(catalog.ErrCategoryNotFound)
	}

	return nil
}

// Delete removes a category and its parameters in one transaction. The
// cascade is explicit so the write stays attributable even on stores without
// enforced foreign keys.
func (r *CategoryRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.ParameterModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete category parameters: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&models.CategoryModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete category: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.NewNotFoundError(fmt.Sprintf("category %q not found", id)).WithCause(catalog.ErrCategoryNotFound)
		}
		return nil
	})
}

func (r *CategoryRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.CategoryModel{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return total, nil
}
