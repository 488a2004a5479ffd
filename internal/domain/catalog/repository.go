package catalog

import "context"

// CategoryRepository defines the persistence interface for categories.
type CategoryRepository interface {
	// Create inserts a new category
	Create(ctx context.Context, category *Category) error

	// GetByID retrieves a category by its slug id
	GetByID(ctx context.Context, id string) (*Category, error)

	// List retrieves categories ordered by sort order; visibleOnly limits the
	// result to categories with Show visibility
	List(ctx context.Context, visibleOnly bool) ([]*Category, error)

	// Update persists changes to an existing category
	Update(ctx context.Context, category *Category) error

	// Delete removes a category and cascades to its parameters
	Delete(ctx context.Context, id string) error

	// Count returns the number of categories
	Count(ctx context.Context) (int64, error)
}

// ParameterRepository defines the persistence interface for parameters.
type ParameterRepository interface {
	// Create inserts a new parameter; the owning category must exist
	Create(ctx context.Context, parameter *Parameter) error

	// GetByID retrieves a parameter by its slug id
	GetByID(ctx context.Context, id string) (*Parameter, error)

	// ListByCategory retrieves a category's parameters ordered by sort order
	ListByCategory(ctx context.Context, categoryID string) ([]*Parameter, error)

	// Update persists changes to an existing parameter
	Update(ctx context.Context, parameter *Parameter) error

	// Delete removes a parameter
	Delete(ctx context.Context, id string) error
}
