package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"loreforge/internal/domain/catalog"
	"loreforge/internal/shared/logger"
)

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id string) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *mockCategoryRepo) List(ctx context.Context, visibleOnly bool) ([]*catalog.Category, error) {
	args := m.Called(ctx, visibleOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Category), args.Error(1)
}

func (m *mockCategoryRepo) Update(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCategoryRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockParameterRepo struct {
	mock.Mock
}

func (m *mockParameterRepo) Create(ctx context.Context, parameter *catalog.Parameter) error {
	args := m.Called(ctx, parameter)
	return args.Error(0)
}

func (m *mockParameterRepo) GetByID(ctx context.Context, id string) (*catalog.Parameter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Parameter), args.Error(1)
}

func (m *mockParameterRepo) ListByCategory(ctx context.Context, categoryID string) ([]*catalog.Parameter, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Parameter), args.Error(1)
}

func (m *mockParameterRepo) Update(ctx context.Context, parameter *catalog.Parameter) error {
	args := m.Called(ctx, parameter)
	return args.Error(0)
}

func (m *mockParameterRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

const seedDataset = `{
  "categories": [
    {
      "id": "genre",
      "name": "Genre",
      "sort_order": 0,
      "parameters": [
        {
          "id": "primary-genre",
          "name": "Primary Genre",
          "type": "select",
          "values": [{"label": "Science fiction"}, {"label": "Fantasy"}]
        },
        {
          "name": "Tone",
          "type": "text"
        }
      ]
    },
    {
      "name": "Setting",
      "sort_order": 1,
      "parameters": []
    }
  ]
}`

func writeSeedFile(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestSeederImportsDataset(t *testing.T) {
	catRepo := new(mockCategoryRepo)
	paramRepo := new(mockParameterRepo)

	catRepo.On("Count", mock.Anything).Return(int64(0), nil)
	catRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	paramRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	seeder := NewSeeder(catRepo, paramRepo, logger.NewLogger())
	imported, err := seeder.ImportIfEmpty(context.Background(), writeSeedFile(t, seedDataset))

	require.NoError(t, err)
	assert.Equal(t, 2, imported)
	catRepo.AssertNumberOfCalls(t, "Create", 2)
	paramRepo.AssertNumberOfCalls(t, "Create", 2)
}

func TestSeederSkipsPopulatedCatalog(t *testing.T) {
	catRepo := new(mockCategoryRepo)
	paramRepo := new(mockParameterRepo)

	catRepo.On("Count", mock.Anything).Return(int64(3), nil)

	seeder := NewSeeder(catRepo, paramRepo, logger.NewLogger())
	imported, err := seeder.ImportIfEmpty(context.Background(), writeSeedFile(t, seedDataset))

	require.NoError(t, err)
	assert.Zero(t, imported)
	catRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSeederMissingFileIsNotAnError(t *testing.T) {
	catRepo := new(mockCategoryRepo)
	catRepo.On("Count", mock.Anything).Return(int64(0), nil)

	seeder := NewSeeder(catRepo, new(mockParameterRepo), logger.NewLogger())
	imported, err := seeder.ImportIfEmpty(context.Background(), filepath.Join(t.TempDir(), "absent.json"))

	require.NoError(t, err)
	assert.Zero(t, imported)
}

func TestSeederRejectsMalformedDataset(t *testing.T) {
	catRepo := new(mockCategoryRepo)
	catRepo.On("Count", mock.Anything).Return(int64(0), nil)

	seeder := NewSeeder(catRepo, new(mockParameterRepo), logger.NewLogger())
	_, err := seeder.ImportIfEmpty(context.Background(), writeSeedFile(t, "{not json"))

	assert.Error(t, err)
}

func TestSeederRejectsInvalidParameterShape(t *testing.T) {
	catRepo := new(mockCategoryRepo)
	paramRepo := new(mockParameterRepo)

	catRepo.On("Count", mock.Anything).Return(int64(0), nil)
	catRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	// A select parameter without options violates the shape invariant.
	broken := `{"categories": [{"name": "Genre", "parameters": [{"name": "Primary", "type": "select"}]}]}`
	seeder := NewSeeder(catRepo, paramRepo, logger.NewLogger())
	_, err := seeder.ImportIfEmpty(context.Background(), writeSeedFile(t, broken))

	assert.Error(t, err)
	paramRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
