package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"loreforge/internal/domain/content"
	"loreforge/internal/infrastructure/persistence/mappers"
	"loreforge/internal/infrastructure/persistence/models"
	"loreforge/internal/shared/errors"
)

// listColumns excludes the blob columns; listings and single-record reads
// never drag image bytes through memory.
var listColumns = []string{
	"id", "title", "fiction_content", "image_format", "image_size_bytes",
	"thumbnail_size_bytes", "image_prompt", "prompt_data", "metadata",
	"generation_time_ms", "word_count", "status", "error_message",
	"created_at", "updated_at",
}

type GeneratedContentRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.GeneratedContentMapper
}

func NewGeneratedContentRepository(db *gorm.DB) content.Repository {
	return &GeneratedContentRepositoryImpl{
		db:     db,
		mapper: mappers.NewGeneratedContentMapper(),
	}
}

func (r *GeneratedContentRepositoryImpl) Create(ctx context.Context, record *content.GeneratedContent) error {
	model, err := r.mapper.ToModel(record)
	if err != nil {
		return fmt.Errorf("failed to map content to model: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create generated content: %w", err)
	}

	return nil
}

func (r *GeneratedContentRepositoryImpl) GetByID(ctx context.Context, id string) (*content.GeneratedContent, error) {
	var model models.GeneratedContentModel

	err := r.db.WithContext(ctx).Select(listColumns).Where("id = ?", id).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError(fmt.Sprintf("content %q not found", id)).WithCause(content.ErrContentNotFound)
		}
		return nil, fmt.Errorf("failed to get content by id: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *GeneratedContentRepositoryImpl) GetImage(ctx context.Context, id string) (*content.ImageArtifact, error) {
	var model models.GeneratedContentModel

	err := r.db.WithContext(ctx).
		Select("id", "image_data", "thumbnail_data", "image_format", "image_size_bytes", "thumbnail_size_bytes").
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError(fmt.Sprintf("content %q not found", id)).WithCause(content.ErrContentNotFound)
		}
		return nil, fmt.Errorf("failed to get content image: %w", err)
	}

	if model.ImageSizeBytes == 0 {
		return nil, errors.NewNotFoundError(fmt.Sprintf("content %q has no stored image", id)).WithCause(content.ErrImageNotFound)
	}

	return &content.ImageArtifact{
		Data:           model.ImageData,
		Thumbnail:      model.ThumbnailData,
		Format:         model.ImageFormat,
		SizeBytes:      model.ImageSizeBytes,
		ThumbSizeBytes: model.ThumbnailSizeBytes,
	}, nil
}

func (r *GeneratedContentRepositoryImpl) List(ctx context.Context, filter content.ListFilter) ([]*content.GeneratedContent, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.GeneratedContentModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count generated content: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var modelList []*models.GeneratedContentModel
	err := query.
		Select(listColumns).
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list generated content: %w", err)
	}

	records, err := r.mapper.ToDomainList(modelList)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
