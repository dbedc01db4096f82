// Package migrations holds the embedded schema history of the correction
// stats database.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed *.sql
var files embed.FS

// ErrDirtySchema means an earlier migration stopped half way and the
// database needs manual repair.
var ErrDirtySchema = errors.New("stats schema is dirty")

// Migrate brings the stats schema to the newest embedded version and returns
// that version.
func Migrate(db *sql.DB, log *zap.SugaredLogger) (uint, error) {
	m, err := newMigrator(db)
	if err != nil {
		return 0, err
	}

	from, dirty, err := schemaVersion(m)
	if err != nil {
		return 0, err
	}
	if dirty {
		return from, fmt.Errorf("%w at version %d", ErrDirtySchema, from)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return from, fmt.Errorf("upgrade stats schema from version %d: %w", from, err)
	}

	to, _, err := schemaVersion(m)
	if err != nil {
		return from, err
	}
	if to != from {
		log.Infow("stats schema upgraded", "from", from, "to", to)
	} else {
		log.Debugw("stats schema current", "version", to)
	}

	return to, nil
}

func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return nil, fmt.Errorf("stats migration driver: %w", err)
	}

	source, err := iofs.New(files, ".")
	if err != nil {
		return nil, fmt.Errorf("embedded stats migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return nil, fmt.Errorf("stats migrator: %w", err)
	}
	return m, nil
}

// schemaVersion reports 0 for a database that was never migrated.
func schemaVersion(m *migrate.Migrate) (uint, bool, error) {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read stats schema version: %w", err)
	}
	return v, dirty, nil
}
