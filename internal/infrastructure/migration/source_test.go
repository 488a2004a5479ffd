package migration

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionFromName(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"standard name", "0001_initial_schema.sql", "0001"},
		{"multiple underscores", "0002_generated_content_table.sql", "0002"},
		{"no underscore uses basename", "0003.sql", "0003"},
		{"non numeric version token", "baseline_schema.sql", "baseline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, versionFromName(tt.filename))
		})
	}
}

func TestFSSourceListsUnitsInVersionOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"scripts/0003_settings.sql":   {Data: []byte("CREATE TABLE settings (k TEXT);")},
		"scripts/0001_categories.sql": {Data: []byte("CREATE TABLE categories (id TEXT);")},
		"scripts/0002_parameters.sql": {Data: []byte("CREATE TABLE parameters (id TEXT);")},
		"scripts/README.md":           {Data: []byte("ignored")},
	}

	units, err := NewFSSource(fsys, "scripts").ListUnits()
	require.NoError(t, err)

	require.Len(t, units, 3)
	assert.Equal(t, "0001", units[0].Version)
	assert.Equal(t, "0002", units[1].Version)
	assert.Equal(t, "0003", units[2].Version)
	assert.Equal(t, "0001_categories.sql", units[0].Filename)
	assert.Contains(t, units[0].SQL, "CREATE TABLE categories")
}

func TestDirSourceReadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0002_content.sql"), []byte("CREATE TABLE content (id TEXT);"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0001_base.sql"), []byte("CREATE TABLE base (id TEXT);"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a migration"), 0o644))

	units, err := NewDirSource(dir).ListUnits()
	require.NoError(t, err)

	require.Len(t, units, 2)
	assert.Equal(t, "0001", units[0].Version)
	assert.Equal(t, "0002", units[1].Version)
}

func TestDirSourceMissingDirectory(t *testing.T) {
	_, err := NewDirSource(filepath.Join(t.TempDir(), "absent")).ListUnits()
	assert.Error(t, err)
}

func TestEmbeddedSourceShipsUnits(t *testing.T) {
	units, err := EmbeddedSource().ListUnits()
	require.NoError(t, err)
	require.NotEmpty(t, units)

	seen := make(map[string]bool, len(units))
	for i, unit := range units {
		assert.NotEmpty(t, unit.SQL, unit.Filename)
		assert.False(t, seen[unit.Version], "duplicate version %s", unit.Version)
		seen[unit.Version] = true
		if i > 0 {
			assert.Less(t, units[i-1].Version, unit.Version)
		}
	}
}
