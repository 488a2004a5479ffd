// Package content serves stored generation records to the interface layer:
// listing, detail, image blobs and the HTML preview.
package content

import (
	"context"

	"loreforge/internal/domain/content"
	"loreforge/internal/shared/logger"
	"loreforge/internal/shared/services/markdown"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ImagePayload is a servable image blob with its media type.
type ImagePayload struct {
	Data        []byte
	ContentType string
}

type Service struct {
	repo     content.Repository
	markdown markdown.Service
	logger   logger.Interface
}

func NewService(repo content.Repository, md markdown.Service, log logger.Interface) *Service {
	return &Service{
		repo:     repo,
		markdown: md,
		logger:   log,
	}
}

// Get returns one record without its image blobs.
func (s *Service) Get(ctx context.Context, id string) (*ContentResponse, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toContentResponse(record)
	return &resp, nil
}

// List returns summaries ordered newest first.
func (s *Service) List(ctx context.Context, status string, page, pageSize int) ([]ContentSummary, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	records, total, err := s.repo.List(ctx, content.ListFilter{
		Status:   content.Status(status),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]ContentSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, toContentSummary(record))
	}
	return summaries, total, nil
}

// GetImage returns the full-size stored image.
func (s *Service) GetImage(ctx context.Context, id string) (*ImagePayload, error) {
	artifact, err := s.repo.GetImage(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ImagePayload{
		Data:        artifact.Data,
		ContentType: contentTypeFor(artifact.Format),
	}, nil
}

// GetThumbnail returns the stored 150x150 thumbnail.
func (s *Service) GetThumbnail(ctx context.Context, id string) (*ImagePayload, error) {
	artifact, err := s.repo.GetImage(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ImagePayload{
		Data:        artifact.Thumbnail,
		ContentType: contentTypeFor(artifact.Format),
	}, nil
}

// RenderHTML renders the record's prose as sanitized HTML.
func (s *Service) RenderHTML(ctx context.Context, id string) (string, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.markdown.ToHTMLSanitized(record.FictionContent())
}

func contentTypeFor(format string) string {
	switch format {
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
