package setting

import "context"

// Repository defines the interface for setting persistence
type Repository interface {
	// GetByKey retrieves a setting by key
	GetByKey(ctx context.Context, key string) (*Setting, error)

	// GetAll retrieves all settings ordered by key
	GetAll(ctx context.Context) ([]*Setting, error)

	// Upsert creates or updates a setting by key
	Upsert(ctx context.Context, setting *Setting) error

	// Delete removes a setting by key
	Delete(ctx context.Context, key string) error
}
