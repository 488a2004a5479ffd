package catalog

import (
	"time"

	"loreforge/internal/domain/catalog"
)

// CategoryResponse is the outward shape of a category.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Visibility  string    `json:"visibility"`
	Year        *int      `json:"year,omitempty"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ParameterResponse is the outward shape of a parameter. Values is either an
// option array or an on/off object, mirroring the stored shape.
type ParameterResponse struct {
	ID          string                   `json:"id"`
	CategoryID  string                   `json:"category_id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	Type        string                   `json:"type"`
	Visibility  string                   `json:"visibility"`
	Required    bool                     `json:"required"`
	SortOrder   int                      `json:"sort_order"`
	Values      *catalog.ParameterValues `json:"values,omitempty"`
	Config      *catalog.ParameterConfig `json:"config,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// CategoryWithParameters bundles a category with its parameters for the
// public catalog endpoint.
type CategoryWithParameters struct {
	CategoryResponse
	Parameters []ParameterResponse `json:"parameters"`
}

// CreateCategoryRequest creates a category; a blank ID is derived from Name.
type CreateCategoryRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Visibility  string `json:"visibility" binding:"omitempty,oneof=Show Hide"`
	Year        *int   `json:"year"`
	SortOrder   int    `json:"sort_order"`
}

// UpdateCategoryRequest mutates the editable fields of a category.
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Visibility  string `json:"visibility" binding:"omitempty,oneof=Show Hide"`
	Year        *int   `json:"year"`
	SortOrder   int    `json:"sort_order"`
}

// CreateParameterRequest creates a parameter under a category.
type CreateParameterRequest struct {
	ID          string                   `json:"id"`
	CategoryID  string                   `json:"category_id" binding:"required"`
	Name        string                   `json:"name" binding:"required"`
	Description string                   `json:"description"`
	Type        string                   `json:"type" binding:"required,oneof=select text number boolean range"`
	Visibility  string                   `json:"visibility" binding:"omitempty,oneof=Basic Advanced Hide"`
	Required    bool                     `json:"required"`
	SortOrder   int                      `json:"sort_order"`
	Values      *catalog.ParameterValues `json:"values"`
	Config      *catalog.ParameterConfig `json:"config"`
}

// UpdateParameterRequest mutates the editable fields of a parameter.
type UpdateParameterRequest struct {
	Name        string                   `json:"name" binding:"required"`
	Description string                   `json:"description"`
	Type        string                   `json:"type" binding:"required,oneof=select text number boolean range"`
	Visibility  string                   `json:"visibility" binding:"omitempty,oneof=Basic Advanced Hide"`
	Required    bool                     `json:"required"`
	SortOrder   int                      `json:"sort_order"`
	Values      *catalog.ParameterValues `json:"values"`
	Config      *catalog.ParameterConfig `json:"config"`
}

func toCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID(),
		Name:        c.Name(),
		Description: c.Description(),
		Visibility:  string(c.Visibility()),
		Year:        c.Year(),
		SortOrder:   c.SortOrder(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}

func toParameterResponse(p *catalog.Parameter) ParameterResponse {
	return ParameterResponse{
		ID:          p.ID(),
		CategoryID:  p.CategoryID(),
		Name:        p.Name(),
		Description: p.Description(),
		Type:        string(p.Type()),
		Visibility:  string(p.Visibility()),
		Required:    p.Required(),
		SortOrder:   p.SortOrder(),
		Values:      p.Values(),
		Config:      p.Config(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}
