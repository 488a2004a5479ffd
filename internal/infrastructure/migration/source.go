// Package migration applies ordered, versioned schema changes to the store
// exactly once. Each migration unit runs inside a single transaction together
// with its bookkeeping row; a failing statement rolls everything back and
// leaves the store at the previous known-good version.
package migration

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Unit is one versioned bundle of schema-change statements. The version is
// the token before the first underscore in the unit's filename.
type Unit struct {
	Version  string
	Filename string
	SQL      string
}

// Source enumerates discoverable migration units in ascending version order.
type Source interface {
	ListUnits() ([]Unit, error)
}

// FSSource reads .sql units from a file system, typically an embed.FS.
type FSSource struct {
	fsys fs.FS
	dir  string
}

// NewFSSource creates a source over fsys rooted at dir.
func NewFSSource(fsys fs.FS, dir string) *FSSource {
	return &FSSource{fsys: fsys, dir: dir}
}

func (s *FSSource) ListUnits() ([]Unit, error) {
	entries, err := fs.ReadDir(s.fsys, s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration dir %q: %w", s.dir, err)
	}

	units := make([]Unit, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		// fs.FS paths are slash-separated regardless of platform.
		data, err := fs.ReadFile(s.fsys, path.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %q: %w", entry.Name(), err)
		}
		units = append(units, Unit{
			Version:  versionFromName(entry.Name()),
			Filename: entry.Name(),
			SQL:      string(data),
		})
	}

	sortUnits(units)
	return units, nil
}

// DirSource reads .sql units from a directory on disk. Used by the migrate
// CLI when pointing at out-of-tree scripts.
type DirSource struct {
	path string
}

// NewDirSource creates a source over a directory path.
func NewDirSource(path string) *DirSource {
	return &DirSource{path: path}
}

func (s *DirSource) ListUnits() ([]Unit, error) {
	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration dir %q: %w", s.path, err)
	}

	units := make([]Unit, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.path, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %q: %w", entry.Name(), err)
		}
		units = append(units, Unit{
			Version:  versionFromName(entry.Name()),
			Filename: entry.Name(),
			SQL:      string(data),
		})
	}

	sortUnits(units)
	return units, nil
}

// versionFromName extracts the version token before the first underscore;
// "0002_generated_content.sql" → "0002". A name without an underscore uses
// the whole basename as version.
func versionFromName(name string) string {
	base := strings.TrimSuffix(name, ".sql")
	if idx := strings.Index(base, "_"); idx > 0 {
		return base[:idx]
	}
	return base
}

func sortUnits(units []Unit) {
	sort.Slice(units, func(i, j int) bool {
		if units[i].Version != units[j].Version {
			return units[i].Version < units[j].Version
		}
		return units[i].Filename < units[j].Filename
	})
}
