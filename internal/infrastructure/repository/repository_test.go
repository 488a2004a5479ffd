package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"loreforge/internal/domain/catalog"
	"loreforge/internal/domain/content"
	"loreforge/internal/domain/setting"
	"loreforge/internal/infrastructure/migration"
	"loreforge/internal/shared/errors"
	"loreforge/internal/shared/logger"
)

// newMigratedDB opens an in-memory store and brings it to the current schema
// version, the same way the server does at startup.
func newMigratedDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	engine := migration.NewEngine(db, migration.EmbeddedSource(), logger.NewLogger())
	require.NoError(t, engine.Migrate(context.Background()))

	return db
}

func mustCategory(t *testing.T, id, name string) *catalog.Category {
	t.Helper()
	c, err := catalog.NewCategory(id, name, "", catalog.VisibilityShow, nil, 0)
	require.NoError(t, err)
	return c
}

func mustParameter(t *testing.T, id, categoryID, name string) *catalog.Parameter {
	t.Helper()
	p, err := catalog.NewParameter(id, categoryID, name, "", catalog.TypeText, catalog.ParameterBasic, false, 0, nil, nil)
	require.NoError(t, err)
	return p
}

func TestCategoryRepositoryRoundTrip(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	created := mustCategory(t, "", "Genre")
	require.NoError(t, repo.Create(ctx, created))

	got, err := repo.GetByID(ctx, "genre")
	require.NoError(t, err)
	assert.Equal(t, "Genre", got.Name())
	assert.Equal(t, catalog.VisibilityShow, got.Visibility())

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCategoryRepositoryDuplicateID(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, mustCategory(t, "genre", "Genre")))
	err := repo.Create(ctx, mustCategory(t, "genre", "Another Genre"))

	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestCategoryRepositoryListVisibleOnly(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, mustCategory(t, "genre", "Genre")))
	hidden, err := catalog.NewCategory("internal-knobs", "Internal Knobs", "", catalog.VisibilityHide, nil, 1)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, hidden))

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	visible, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "genre", visible[0].ID())
}

func TestCategoryRepositoryUpdateMissing(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewCategoryRepository(db)

	err := repo.Update(context.Background(), mustCategory(t, "absent", "Absent"))
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestParameterRejectedWhenCategoryMissing(t *testing.T) {
	db := newMigratedDB(t)
	paramRepo := NewParameterRepository(db)
	ctx := context.Background()

	err := paramRepo.Create(ctx, mustParameter(t, "mood", "no-such-category", "Mood"))
	require.Error(t, err)
	assert.True(t, errors.IsReferentialIntegrityError(err))

	// The rejected write must leave nothing behind.
	_, err = paramRepo.GetByID(ctx, "mood")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestParameterRepositoryRoundTrip(t *testing.T) {
	db := newMigratedDB(t)
	catRepo := NewCategoryRepository(db)
	paramRepo := NewParameterRepository(db)
	ctx := context.Background()

	require.NoError(t, catRepo.Create(ctx, mustCategory(t, "genre", "Genre")))

	values := catalog.NewListValues([]catalog.ValueOption{
		{ID: "sf", Label: "Science fiction"},
		{ID: "fantasy", Label: "Fantasy"},
	})
	created, err := catalog.NewParameter("primary-genre", "genre", "Primary Genre", "", catalog.TypeSelect, catalog.ParameterBasic, true, 0, values, nil)
	require.NoError(t, err)
	require.NoError(t, paramRepo.Create(ctx, created))

	got, err := paramRepo.GetByID(ctx, "primary-genre")
	require.NoError(t, err)
	assert.Equal(t, "genre", got.CategoryID())
	assert.Equal(t, catalog.TypeSelect, got.Type())
	assert.True(t, got.Required())
	require.NotNil(t, got.Values())
	assert.Len(t, got.Values().List, 2)
}

func TestParameterRepositoryListOrdering(t *testing.T) {
	db := newMigratedDB(t)
	catRepo := NewCategoryRepository(db)
	paramRepo := NewParameterRepository(db)
	ctx := context.Background()

	require.NoError(t, catRepo.Create(ctx, mustCategory(t, "genre", "Genre")))

	second, err := catalog.NewParameter("tone", "genre", "Tone", "", catalog.TypeText, catalog.ParameterBasic, false, 2, nil, nil)
	require.NoError(t, err)
	first, err := catalog.NewParameter("mood", "genre", "Mood", "", catalog.TypeText, catalog.ParameterBasic, false, 1, nil, nil)
	require.NoError(t, err)
	require.NoError(t, paramRepo.Create(ctx, second))
	require.NoError(t, paramRepo.Create(ctx, first))

	list, err := paramRepo.ListByCategory(ctx, "genre")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "mood", list[0].ID())
	assert.Equal(t, "tone", list[1].ID())
}

func TestCategoryDeleteCascadesToParameters(t *testing.T) {
	db := newMigratedDB(t)
	catRepo := NewCategoryRepository(db)
	paramRepo := NewParameterRepository(db)
	ctx := context.Background()

	require.NoError(t, catRepo.Create(ctx, mustCategory(t, "genre", "Genre")))
	require.NoError(t, paramRepo.Create(ctx, mustParameter(t, "mood", "genre", "Mood")))

	require.NoError(t, catRepo.Delete(ctx, "genre"))

	_, err := catRepo.GetByID(ctx, "genre")
	assert.True(t, errors.IsNotFoundError(err))
	_, err = paramRepo.GetByID(ctx, "mood")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestSettingRepositoryUpsert(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewSettingRepository(db)
	ctx := context.Background()

	s, err := setting.NewSetting("image_style", "digital painting", setting.ValueTypeString, "image prompt style suffix")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, s))

	require.NoError(t, s.SetValue("oil painting"))
	require.NoError(t, repo.Upsert(ctx, s))

	got, err := repo.GetByKey(ctx, "image_style")
	require.NoError(t, err)
	assert.Equal(t, "oil painting", got.Value())

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "upsert must not duplicate the key")
}

func TestSettingRepositoryMissingKey(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewSettingRepository(db)

	_, err := repo.GetByKey(context.Background(), "absent")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func newFailedRecord(t *testing.T) *content.GeneratedContent {
	t.Helper()
	record, err := content.NewGeneratedContent(
		"Story 2026-08-31", "", "", nil,
		map[string]any{"type": "fiction"},
		1200, 0, content.StatusFailed, "model unavailable",
	)
	require.NoError(t, err)
	return record
}

func newCompletedRecord(t *testing.T, withImage bool) *content.GeneratedContent {
	t.Helper()
	record, err := content.NewGeneratedContent(
		"The Salt Archive",
		"She catalogued the flooded shelves.",
		"An evocative illustration of a speculative fiction scene.",
		map[string]map[string]string{"genre": {"primary-genre": "Science fiction"}},
		map[string]any{"type": "combined"},
		3400, 5, content.StatusCompleted, "",
	)
	require.NoError(t, err)
	if withImage {
		record.AttachImage(&content.ImageArtifact{
			Data:           []byte("jpeg bytes"),
			Thumbnail:      []byte("thumb bytes"),
			Format:         "jpeg",
			SizeBytes:      10,
			ThumbSizeBytes: 11,
		})
	}
	return record
}

func TestGeneratedContentRoundTrip(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewGeneratedContentRepository(db)
	ctx := context.Background()

	created := newCompletedRecord(t, true)
	require.NoError(t, repo.Create(ctx, created))

	got, err := repo.GetByID(ctx, created.ID())
	require.NoError(t, err)
	assert.Equal(t, "The Salt Archive", got.Title())
	assert.Equal(t, 5, got.WordCount())
	assert.Equal(t, content.StatusCompleted, got.Status())
	assert.Equal(t, "Science fiction", got.PromptData()["genre"]["primary-genre"])

	// Reads return size metadata without the blob columns.
	assert.True(t, got.HasImage())
	require.NotNil(t, got.Image())
	assert.Equal(t, 10, got.Image().SizeBytes)
	assert.Empty(t, got.Image().Data)
}

func TestGeneratedContentGetImage(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewGeneratedContentRepository(db)
	ctx := context.Background()

	record := newCompletedRecord(t, true)
	require.NoError(t, repo.Create(ctx, record))

	artifact, err := repo.GetImage(ctx, record.ID())
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), artifact.Data)
	assert.Equal(t, []byte("thumb bytes"), artifact.Thumbnail)
	assert.Equal(t, "jpeg", artifact.Format)
}

func TestGeneratedContentGetImageWhenAbsent(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewGeneratedContentRepository(db)
	ctx := context.Background()

	record := newCompletedRecord(t, false)
	require.NoError(t, repo.Create(ctx, record))

	_, err := repo.GetImage(ctx, record.ID())
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestGeneratedContentFailedRecordPersists(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewGeneratedContentRepository(db)
	ctx := context.Background()

	record := newFailedRecord(t)
	require.NoError(t, repo.Create(ctx, record))

	got, err := repo.GetByID(ctx, record.ID())
	require.NoError(t, err)
	assert.Equal(t, content.StatusFailed, got.Status())
	assert.Equal(t, "model unavailable", got.ErrorMessage())
}

func TestGeneratedContentListFiltersByStatus(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewGeneratedContentRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newCompletedRecord(t, false)))
	require.NoError(t, repo.Create(ctx, newFailedRecord(t)))

	all, total, err := repo.List(ctx, content.ListFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	failed, total, err := repo.List(ctx, content.ListFilter{Page: 1, PageSize: 10, Status: content.StatusFailed})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, failed, 1)
	assert.Equal(t, content.StatusFailed, failed[0].Status())
}

func TestGeneratedContentListPaginates(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewGeneratedContentRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, newCompletedRecord(t, false)))
	}

	page, total, err := repo.List(ctx, content.ListFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, page, 2)
}

func TestGeneratedContentGetByIDMissing(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewGeneratedContentRepository(db)

	_, err := repo.GetByID(context.Background(), "does-not-exist")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}
