// Package catalog manages the generation catalog: administrative CRUD over
// categories and parameters, the public catalog listing, and the one-time
// seed import.
package catalog

import (
	"context"

	"loreforge/internal/domain/catalog"
	"loreforge/internal/shared/errors"
	"loreforge/internal/shared/logger"
)

type Service struct {
	categories catalog.CategoryRepository
	parameters catalog.ParameterRepository
	logger     logger.Interface
}

func NewService(categories catalog.CategoryRepository, parameters catalog.ParameterRepository, log logger.Interface) *Service {
	return &Service{
		categories: categories,
		parameters: parameters,
		logger:     log,
	}
}

// GetCatalog returns the visible categories with their parameters, ordered
// for presentation.
func (s *Service) GetCatalog(ctx context.Context) ([]CategoryWithParameters, error) {
	cats, err := s.categories.List(ctx, true)
	if err != nil {
		return nil, err
	}

	result := make([]CategoryWithParameters, 0, len(cats))
	for _, c := range cats {
		params, err := s.parameters.ListByCategory(ctx, c.ID())
		if err != nil {
			return nil, err
		}

		entry := CategoryWithParameters{
			CategoryResponse: toCategoryResponse(c),
			Parameters:       make([]ParameterResponse, 0, len(params)),
		}
		for _, p := range params {
			if p.Visibility() == catalog.ParameterHidden {
				continue
			}
			entry.Parameters = append(entry.Parameters, toParameterResponse(p))
		}
		result = append(result, entry)
	}
	return result, nil
}

// ListCategories returns every category, including hidden ones.
func (s *Service) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	cats, err := s.categories.List(ctx, false)
	if err != nil {
		return nil, err
	}
	result := make([]CategoryResponse, 0, len(cats))
	for _, c := range cats {
		result = append(result, toCategoryResponse(c))
	}
	return result, nil
}

func (s *Service) GetCategory(ctx context.Context, id string) (*CategoryResponse, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toCategoryResponse(c)
	return &resp, nil
}

func (s *Service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	visibility := catalog.Visibility(req.Visibility)
	if visibility == "" {
		visibility = catalog.VisibilityShow
	}

	c, err := catalog.NewCategory(req.ID, req.Name, req.Description, visibility, req.Year, req.SortOrder)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Infow("category created", "category_id", c.ID(), "name", c.Name())
	resp := toCategoryResponse(c)
	return &resp, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id string, req UpdateCategoryRequest) (*CategoryResponse, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	visibility := catalog.Visibility(req.Visibility)
	if visibility == "" {
		visibility = c.Visibility()
	}
	if err := c.Update(req.Name, req.Description, visibility, req.Year, req.SortOrder); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}

	resp := toCategoryResponse(c)
	return &resp, nil
}

// DeleteCategory removes a category and all its parameters.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("category deleted", "category_id", id)
	return nil
}

func (s *Service) ListParameters(ctx context.Context, categoryID string) ([]ParameterResponse, error) {
	params, err := s.parameters.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	result := make([]ParameterResponse, 0, len(params))
	for _, p := range params {
		result = append(result, toParameterResponse(p))
	}
	return result, nil
}

func (s *Service) GetParameter(ctx context.Context, id string) (*ParameterResponse, error) {
	p, err := s.parameters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toParameterResponse(p)
	return &resp, nil
}

func (s *Service) CreateParameter(ctx context.Context, req CreateParameterRequest) (*ParameterResponse, error) {
	visibility := catalog.ParameterVisibility(req.Visibility)
	if visibility == "" {
		visibility = catalog.ParameterBasic
	}

	p, err := catalog.NewParameter(
		req.ID, req.CategoryID, req.Name, req.Description,
		catalog.ParameterType(req.Type), visibility,
		req.Required, req.SortOrder, req.Values, req.Config,
	)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.parameters.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Infow("parameter created",
		"parameter_id", p.ID(), "category_id", p.CategoryID(), "name", p.Name())
	resp := toParameterResponse(p)
	return &resp, nil
}

func (s *Service) UpdateParameter(ctx context.Context, id string, req UpdateParameterRequest) (*ParameterResponse, error) {
	p, err := s.parameters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	visibility := catalog.ParameterVisibility(req.Visibility)
	if visibility == "" {
		visibility = p.Visibility()
	}
	if err := p.Update(
		req.Name, req.Description,
		catalog.ParameterType(req.Type), visibility,
		req.Required, req.SortOrder, req.Values, req.Config,
	); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.parameters.Update(ctx, p); err != nil {
		return nil, err
	}

	resp := toParameterResponse(p)
	return &resp, nil
}

func (s *Service) DeleteParameter(ctx context.Context, id string) error {
	if err := s.parameters.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("parameter deleted", "parameter_id", id)
	return nil
}
