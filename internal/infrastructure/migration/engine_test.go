package migration

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"loreforge/internal/shared/constants"
	"loreforge/internal/shared/logger"
)

type stubSource struct {
	units []Unit
	err   error
}

func (s *stubSource) ListUnits() ([]Unit, error) {
	return s.units, s.err
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)
	return db
}

func tableExists(t *testing.T, db *gorm.DB, name string) bool {
	t.Helper()
	var count int64
	err := db.Raw("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&count).Error
	require.NoError(t, err)
	return count > 0
}

func TestMigrateAppliesPendingInOrder(t *testing.T) {
	db := newTestDB(t)
	source := &stubSource{units: []Unit{
		{Version: "0001", Filename: "0001_first.sql", SQL: "CREATE TABLE first (id TEXT PRIMARY KEY);"},
		{Version: "0002", Filename: "0002_second.sql", SQL: "CREATE TABLE second (id TEXT PRIMARY KEY);\nINSERT INTO second (id) VALUES ('seed');"},
	}}
	engine := NewEngine(db, source, logger.NewLogger())

	require.NoError(t, engine.Migrate(context.Background()))

	assert.True(t, tableExists(t, db, "first"))
	assert.True(t, tableExists(t, db, "second"))

	applied, err := engine.AppliedVersions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"0001", "0002"}, applied)

	var seeded int64
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM second").Scan(&seeded).Error)
	assert.Equal(t, int64(1), seeded)
}

func TestMigrateSecondRunIsNoOp(t *testing.T) {
	db := newTestDB(t)
	source := &stubSource{units: []Unit{
		{Version: "0001", Filename: "0001_first.sql", SQL: "CREATE TABLE first (id TEXT PRIMARY KEY);"},
	}}
	engine := NewEngine(db, source, logger.NewLogger())

	require.NoError(t, engine.Migrate(context.Background()))
	require.NoError(t, engine.Migrate(context.Background()))

	var rows int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", constants.TableMigrations)
	require.NoError(t, db.Raw(query).Scan(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestMigrateAppliesOnlyNewUnits(t *testing.T) {
	db := newTestDB(t)
	source := &stubSource{units: []Unit{
		{Version: "0001", Filename: "0001_first.sql", SQL: "CREATE TABLE first (id TEXT PRIMARY KEY);"},
	}}
	engine := NewEngine(db, source, logger.NewLogger())
	require.NoError(t, engine.Migrate(context.Background()))

	source.units = append(source.units, Unit{
		Version: "0002", Filename: "0002_second.sql", SQL: "CREATE TABLE second (id TEXT PRIMARY KEY);",
	})
	require.NoError(t, engine.Migrate(context.Background()))

	applied, err := engine.AppliedVersions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"0001", "0002"}, applied)
}

func TestApplyRollsBackWholeUnitOnFailure(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db, &stubSource{}, logger.NewLogger())

	unit := Unit{
		Version:  "0001",
		Filename: "0001_broken.sql",
		SQL:      "CREATE TABLE survivor (id TEXT PRIMARY KEY);\nINSERT INTO missing_table (id) VALUES ('x');",
	}
	err := engine.Apply(context.Background(), unit)
	require.Error(t, err)

	// The failing statement must take the earlier ones down with it,
	// bookkeeping row included.
	assert.False(t, tableExists(t, db, "survivor"))

	applied, err := engine.AppliedVersions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestMigrateStopsAtFirstFailure(t *testing.T) {
	db := newTestDB(t)
	source := &stubSource{units: []Unit{
		{Version: "0001", Filename: "0001_first.sql", SQL: "CREATE TABLE first (id TEXT PRIMARY KEY);"},
		{Version: "0002", Filename: "0002_broken.sql", SQL: "INSERT INTO missing_table (id) VALUES ('x');"},
		{Version: "0003", Filename: "0003_third.sql", SQL: "CREATE TABLE third (id TEXT PRIMARY KEY);"},
	}}
	engine := NewEngine(db, source, logger.NewLogger())

	require.Error(t, engine.Migrate(context.Background()))

	applied, err := engine.AppliedVersions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"0001"}, applied)
	assert.False(t, tableExists(t, db, "third"))
}

func TestApplyRejectsEmptyUnit(t *testing.T) {
	engine := NewEngine(newTestDB(t), &stubSource{}, logger.NewLogger())

	err := engine.Apply(context.Background(), Unit{
		Version: "0001", Filename: "0001_empty.sql", SQL: "-- placeholder only\n",
	})
	assert.Error(t, err)
}

func TestStatusSplitsAppliedAndPending(t *testing.T) {
	db := newTestDB(t)
	source := &stubSource{units: []Unit{
		{Version: "0001", Filename: "0001_first.sql", SQL: "CREATE TABLE first (id TEXT PRIMARY KEY);"},
		{Version: "0002", Filename: "0002_second.sql", SQL: "CREATE TABLE second (id TEXT PRIMARY KEY);"},
	}}
	engine := NewEngine(db, source, logger.NewLogger())

	require.NoError(t, engine.Apply(context.Background(), source.units[0]))

	status, err := engine.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"0001"}, status.Applied)
	assert.Equal(t, []string{"0002"}, status.Pending)
}

func TestEmbeddedScriptsApplyCleanly(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	engine := NewEngine(db, EmbeddedSource(), logger.NewLogger())

	require.NoError(t, engine.Migrate(context.Background()))

	for _, table := range []string{"categories", "parameters", "generated_content", "settings"} {
		assert.True(t, tableExists(t, db, table), table)
	}
}
