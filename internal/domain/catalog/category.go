// Package catalog holds the generation catalog: categories of story
// parameters and the parameters themselves. Categories own parameters;
// deleting a category cascades to its parameters.
package catalog

import (
	"fmt"
	"time"

	"loreforge/internal/shared/biztime"
	"loreforge/internal/shared/utils"
)

// Visibility controls whether a category is offered to clients.
type Visibility string

const (
	VisibilityShow Visibility = "Show"
	VisibilityHide Visibility = "Hide"
)

// Category groups story parameters. The id is a stable slug and is immutable
// once assigned.
type Category struct {
	id          string
	name        string
	description string
	visibility  Visibility
	year        *int
	sortOrder   int
	createdAt   time.Time
	updatedAt   time.Time
}

// NewCategory creates a new category. When id is empty it is derived from the
// name.
func NewCategory(id, name, description string, visibility Visibility, year *int, sortOrder int) (*Category, error) {
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}
	if id == "" {
		id = utils.Slugify(name)
	}
	if id == "" {
		return nil, fmt.Errorf("category id could not be derived from name %q", name)
	}
	if !isValidVisibility(visibility) {
		return nil, fmt.Errorf("invalid category visibility: %s", visibility)
	}

	now := biztime.NowUTC()
	return &Category{
		id:          id,
		name:        name,
		description: description,
		visibility:  visibility,
		year:        year,
		sortOrder:   sortOrder,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructCategory rebuilds a Category from the persistence layer.
func ReconstructCategory(
	id string,
	name string,
	description string,
	visibility Visibility,
	year *int,
	sortOrder int,
	createdAt, updatedAt time.Time,
) *Category {
	return &Category{
		id:          id,
		name:        name,
		description: description,
		visibility:  visibility,
		year:        year,
		sortOrder:   sortOrder,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Getters
func (c *Category) ID() string             { return c.id }
func (c *Category) Name() string           { return c.name }
func (c *Category) Description() string    { return c.description }
func (c *Category) Visibility() Visibility { return c.visibility }
func (c *Category) Year() *int             { return c.year }
func (c *Category) SortOrder() int         { return c.sortOrder }
func (c *Category) CreatedAt() time.Time   { return c.createdAt }
func (c *Category) UpdatedAt() time.Time   { return c.updatedAt }

// IsVisible reports whether the category is offered to clients.
func (c *Category) IsVisible() bool {
	return c.visibility == VisibilityShow
}

// Update mutates the editable fields. The id never changes.
func (c *Category) Update(name, description string, visibility Visibility, year *int, sortOrder int) error {
	if name == "" {
		return fmt.Errorf("category name is required")
	}
	if !isValidVisibility(visibility) {
		return fmt.Errorf("invalid category visibility: %s", visibility)
	}
	c.name = name
	c.description = description
	c.visibility = visibility
	c.year = year
	c.sortOrder = sortOrder
	c.updatedAt = biztime.NowUTC()
	return nil
}

func isValidVisibility(v Visibility) bool {
	switch v {
	case VisibilityShow, VisibilityHide:
		return true
	default:
		return false
	}
}
