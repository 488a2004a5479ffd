package migration

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"loreforge/internal/shared/biztime"
	"loreforge/internal/shared/constants"
	"loreforge/internal/shared/errors"
	"loreforge/internal/shared/logger"
)

// Engine applies migration units from a Source against the store. A version
// is recorded at most once; units are applied only in ascending version order.
type Engine struct {
	db     *gorm.DB
	source Source
	logger logger.Interface
}

// NewEngine creates a migration engine over db reading units from source.
func NewEngine(db *gorm.DB, source Source, log logger.Interface) *Engine {
	return &Engine{
		db:     db,
		source: source,
		logger: log.Named("migration"),
	}
}

// Status describes the applied/pending split at a point in time.
type Status struct {
	Applied []string
	Pending []string
}

// ensureTable creates the bookkeeping table on first use.
func (e *Engine) ensureTable(ctx context.Context) error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		version VARCHAR(64) PRIMARY KEY,
		filename VARCHAR(255) NOT NULL,
		applied_at DATETIME NOT NULL
	)`, constants.TableMigrations)

	if err := e.db.WithContext(ctx).Exec(stmt).Error; err != nil {
		return errors.NewMigrationError("failed to create migrations table").WithCause(err)
	}
	return nil
}

// AppliedVersions returns the versions recorded as applied, ascending.
func (e *Engine) AppliedVersions(ctx context.Context) ([]string, error) {
	if err := e.ensureTable(ctx); err != nil {
		return nil, err
	}

	var versions []string
	query := fmt.Sprintf("SELECT version FROM %s ORDER BY version ASC", constants.TableMigrations)
	if err := e.db.WithContext(ctx).Raw(query).Scan(&versions).Error; err != nil {
		return nil, errors.NewMigrationError("failed to read applied migrations").WithCause(err)
	}
	return versions, nil
}

// Apply executes all statements of one unit inside a single transaction and
// records the version in the same transaction. On any statement failure the
// whole transaction, including the bookkeeping row, is rolled back.
func (e *Engine) Apply(ctx context.Context, unit Unit) error {
	statements := SplitStatements(unit.SQL)
	if len(statements) == 0 {
		return errors.NewMigrationError(fmt.Sprintf("migration %s contains no statements", unit.Filename))
	}

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range statements {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("statement failed in %s: %w", unit.Filename, err)
			}
		}

		insert := fmt.Sprintf("INSERT INTO %s (version, filename, applied_at) VALUES (?, ?, ?)", constants.TableMigrations)
		if err := tx.Exec(insert, unit.Version, unit.Filename, biztime.NowUTC()).Error; err != nil {
			return fmt.Errorf("failed to record migration %s: %w", unit.Version, err)
		}
		return nil
	})
	if err != nil {
		return errors.NewMigrationError(fmt.Sprintf("migration %s failed", unit.Filename)).WithCause(err)
	}

	e.logger.Infow("migration applied", "version", unit.Version, "filename", unit.Filename)
	return nil
}

// Migrate applies every pending unit (available minus applied) in ascending
// version order. Running it again with no new units is a no-op success.
func (e *Engine) Migrate(ctx context.Context) error {
	applied, err := e.AppliedVersions(ctx)
	if err != nil {
		return err
	}
	appliedSet := make(map[string]bool, len(applied))
	for _, v := range applied {
		appliedSet[v] = true
	}

	units, err := e.source.ListUnits()
	if err != nil {
		return errors.NewMigrationError("failed to list available migrations").WithCause(err)
	}

	pending := 0
	for _, unit := range units {
		if appliedSet[unit.Version] {
			continue
		}
		if err := e.Apply(ctx, unit); err != nil {
			return err
		}
		pending++
	}

	if pending == 0 {
		e.logger.Infow("schema up to date", "applied", len(applied))
	} else {
		e.logger.Infow("schema migrated", "units_applied", pending)
	}
	return nil
}

// Status reports applied and pending versions without changing anything.
func (e *Engine) Status(ctx context.Context) (*Status, error) {
	applied, err := e.AppliedVersions(ctx)
	if err != nil {
		return nil, err
	}
	appliedSet := make(map[string]bool, len(applied))
	for _, v := range applied {
		appliedSet[v] = true
	}

	units, err := e.source.ListUnits()
	if err != nil {
		return nil, errors.NewMigrationError("failed to list available migrations").WithCause(err)
	}

	status := &Status{Applied: applied}
	for _, unit := range units {
		if !appliedSet[unit.Version] {
			status.Pending = append(status.Pending, unit.Version)
		}
	}
	return status, nil
}
