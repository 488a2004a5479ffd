package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"loreforge/internal/domain/catalog"
	"loreforge/internal/shared/logger"
)

// seedFile is the on-disk shape of the seed dataset.
type seedFile struct {
	Categories []seedCategory `json:"categories"`
}

type seedCategory struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Visibility  string          `json:"visibility"`
	Year        *int            `json:"year"`
	SortOrder   int             `json:"sort_order"`
	Parameters  []seedParameter `json:"parameters"`
}

type seedParameter struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Type        string                   `json:"type"`
	Visibility  string                   `json:"visibility"`
	Required    bool                     `json:"required"`
	SortOrder   int                      `json:"sort_order"`
	Values      *catalog.ParameterValues `json:"values"`
	Config      *catalog.ParameterConfig `json:"config"`
}

// Seeder imports an external catalog dataset the first time the service
// starts against an empty store.
type Seeder struct {
	categories catalog.CategoryRepository
	parameters catalog.ParameterRepository
	logger     logger.Interface
}

func NewSeeder(categories catalog.CategoryRepository, parameters catalog.ParameterRepository, log logger.Interface) *Seeder {
	return &Seeder{
		categories: categories,
		parameters: parameters,
		logger:     log,
	}
}

// ImportIfEmpty loads the dataset at path when no categories exist yet. It
// returns the number of imported categories; an already-populated store is a
// zero-count success.
func (s *Seeder) ImportIfEmpty(ctx context.Context, path string) (int, error) {
	count, err := s.categories.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		s.logger.Debugw("seed import skipped, catalog already populated", "categories", count)
		return 0, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Infow("no seed dataset found", "path", path)
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read seed dataset: %w", err)
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return 0, fmt.Errorf("failed to parse seed dataset: %w", err)
	}

	imported := 0
	for _, sc := range seed.Categories {
		if err := s.importCategory(ctx, sc); err != nil {
			return imported, err
		}
		imported++
	}

	s.logger.Infow("seed dataset imported", "categories", imported, "path", path)
	return imported, nil
}

func (s *Seeder) importCategory(ctx context.Context, sc seedCategory) error {
	visibility := catalog.Visibility(sc.Visibility)
	if visibility == "" {
		visibility = catalog.VisibilityShow
	}

	c, err := catalog.NewCategory(sc.ID, sc.Name, sc.Description, visibility, sc.Year, sc.SortOrder)
	if err != nil {
		return fmt.Errorf("seed category %q: %w", sc.Name, err)
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return fmt.Errorf("seed category %q: %w", sc.Name, err)
	}

	for _, sp := range sc.Parameters {
		pVisibility := catalog.ParameterVisibility(sp.Visibility)
		if pVisibility == "" {
			pVisibility = catalog.ParameterBasic
		}

		p, err := catalog.NewParameter(
			sp.ID, c.ID(), sp.Name, sp.Description,
			catalog.ParameterType(sp.Type), pVisibility,
			sp.Required, sp.SortOrder, sp.Values, sp.Config,
		)
		if err != nil {
			return fmt.Errorf("seed parameter %q: %w", sp.Name, err)
		}
		if err := s.parameters.Create(ctx, p); err != nil {
			return fmt.Errorf("seed parameter %q: %w", sp.Name, err)
		}
	}
	return nil
}
