package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"loreforge/internal/domain/setting"
	"loreforge/internal/infrastructure/persistence/mappers"
	"loreforge/internal/infrastructure/persistence/models"
	"loreforge/internal/shared/errors"
)

type SettingRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SettingMapper
}

func NewSettingRepository(db *gorm.DB) setting.Repository {
	return &SettingRepositoryImpl{
		db:     db,
		mapper: mappers.NewSettingMapper(),
	}
}

func (r *SettingRepositoryImpl) GetByKey(ctx context.Context, key string) (*setting.Setting, error) {
	var model models.SettingModel

	if err := r.db.WithContext(ctx).Where("setting_key = ?", key).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError(fmt.Sprintf("setting %q not found", key)).WithCause(setting.ErrSettingNotFound)
		}
		return nil, fmt.Errorf("failed to get setting by key: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

func (r *SettingRepositoryImpl) GetAll(ctx context.Context) ([]*setting.Setting, error) {
	var modelList []*models.SettingModel

	if err := r.db.WithContext(ctx).Order("setting_key ASC").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}

	return r.mapper.ToDomainList(modelList), nil
}

func (r *SettingRepositoryImpl) Upsert(ctx context.Context, s *setting.Setting) error {
	model := r.mapper.ToModel(s)

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"value", "data_type", "description", "updated_at",
		}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}

	return nil
}

func (r *SettingRepositoryImpl) Delete(ctx context.Context, key string) error {
	result := r.db.WithContext(ctx).Where("setting_key = ?", key).Delete(&models.SettingModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete setting: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("setting %q not found", key)).WithCause(setting.ErrSettingNotFound)
	}
	return nil
}
