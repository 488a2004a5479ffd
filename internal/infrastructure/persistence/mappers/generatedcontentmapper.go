package mappers

import (
	"encoding/json"
	"fmt"

	"loreforge/internal/domain/content"
	"loreforge/internal/infrastructure/persistence/models"
	"loreforge/internal/shared/errors"
)

// GeneratedContentMapper converts between the GeneratedContent entity and its
// model. Blob columns travel only when the caller loaded them.
type GeneratedContentMapper interface {
	ToDomain(model *models.GeneratedContentModel) (*content.GeneratedContent, error)
	ToModel(domain *content.GeneratedContent) (*models.GeneratedContentModel, error)
	ToDomainList(modelList []*models.GeneratedContentModel) ([]*content.GeneratedContent, error)
}

type GeneratedContentMapperImpl struct{}

func NewGeneratedContentMapper() GeneratedContentMapper {
	return &GeneratedContentMapperImpl{}
}

func (m *GeneratedContentMapperImpl) ToDomain(model *models.GeneratedContentModel) (*content.GeneratedContent, error) {
	if model == nil {
		return nil, nil
	}

	var promptData map[string]map[string]string
	if len(model.PromptData) > 0 {
		if err := json.Unmarshal(model.PromptData, &promptData); err != nil {
			return nil, errors.NewPersistenceIntegrityError(
				fmt.Sprintf("content %q stores malformed prompt_data", model.ID)).WithCause(err)
		}
	}

	var metadata map[string]any
	if len(model.Metadata) > 0 {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, errors.NewPersistenceIntegrityError(
				fmt.Sprintf("content %q stores malformed metadata", model.ID)).WithCause(err)
		}
	}

	var image *content.ImageArtifact
	if model.ImageSizeBytes > 0 {
		image = &content.ImageArtifact{
			Data:           model.ImageData,
			Thumbnail:      model.ThumbnailData,
			Format:         model.ImageFormat,
			SizeBytes:      model.ImageSizeBytes,
			ThumbSizeBytes: model.ThumbnailSizeBytes,
		}
	}

	return content.ReconstructGeneratedContent(
		model.ID,
		model.Title,
		model.FictionContent,
		image,
		model.ImagePrompt,
		promptData,
		metadata,
		model.GenerationTimeMS,
		model.WordCount,
		content.Status(model.Status),
		model.ErrorMessage,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}

func (m *GeneratedContentMapperImpl) ToModel(domain *content.GeneratedContent) (*models.GeneratedContentModel, error) {
	if domain == nil {
		return nil, nil
	}

	model := &models.GeneratedContentModel{
		ID:               domain.ID(),
		Title:            domain.Title(),
		FictionContent:   domain.FictionContent(),
		ImagePrompt:      domain.ImagePrompt(),
		GenerationTimeMS: domain.GenerationTimeMS(),
		WordCount:        domain.WordCount(),
		Status:           string(domain.Status()),
		ErrorMessage:     domain.ErrorMessage(),
		CreatedAt:        domain.CreatedAt(),
		UpdatedAt:        domain.UpdatedAt(),
	}

	if img := domain.Image(); img != nil {
		model.ImageData = img.Data
		model.ThumbnailData = img.Thumbnail
		model.ImageFormat = img.Format
		model.ImageSizeBytes = img.SizeBytes
		model.ThumbnailSizeBytes = img.ThumbSizeBytes
	}

	if pd := domain.PromptData(); pd != nil {
		data, err := json.Marshal(pd)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal prompt data: %w", err)
		}
		model.PromptData = data
	}

	if md := domain.Metadata(); md != nil {
		data, err := json.Marshal(md)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		model.Metadata = data
	}

	return model, nil
}

func (m *GeneratedContentMapperImpl) ToDomainList(modelList []*models.GeneratedContentModel) ([]*content.GeneratedContent, error) {
	if modelList == nil {
		return nil, nil
	}

	domains := make([]*content.GeneratedContent, 0, len(modelList))
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
