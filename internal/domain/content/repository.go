package content

import "context"

// ListFilter narrows a content listing.
type ListFilter struct {
	Status   Status // empty = all
	Page     int
	PageSize int
}

// Repository defines the persistence interface for generated content. There
// is deliberately no update or delete: records are immutable once written.
type Repository interface {
	// Create inserts a new record including any image blobs
	Create(ctx context.Context, record *GeneratedContent) error

	// GetByID retrieves a record without its image blobs
	GetByID(ctx context.Context, id string) (*GeneratedContent, error)

	// GetImage retrieves the image artifact of a record
	GetImage(ctx context.Context, id string) (*ImageArtifact, error)

	// List retrieves records ordered by created_at descending, blobs excluded
	List(ctx context.Context, filter ListFilter) ([]*GeneratedContent, int64, error)
}
