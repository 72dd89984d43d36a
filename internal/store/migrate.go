package store

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/matheus3301/hirechat/internal/store/migrations"
)

var (
	// ErrSchemaTooNew means the cache was written by a newer hirechat.
	ErrSchemaTooNew = errors.New("cache schema is newer than this build")
	// ErrSchemaDirty means a migration stopped halfway. Deleting cache.db
	// is safe; it is rebuilt from the dashboard.
	ErrSchemaDirty = errors.New("cache schema is dirty")
)

// Schema is the migration state of a cache.
type Schema struct {
	Version uint // version in the file after Open
	Latest  uint // newest version this build embeds
	Applied bool // Open ran at least one migration
}

func migrateUp(conn *sql.DB) (Schema, error) {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return Schema{}, fmt.Errorf("migration source: %w", err)
	}
	latest, err := latestVersion(src)
	if err != nil {
		return Schema{}, err
	}

	driver, err := sqlite3.WithInstance(conn, &sqlite3.Config{})
	if err != nil {
		return Schema{}, fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return Schema{}, fmt.Errorf("migration instance: %w", err)
	}

	current, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		current = 0
	case err != nil:
		return Schema{}, fmt.Errorf("schema version: %w", err)
	}
	if dirty {
		return Schema{}, fmt.Errorf("%w at version %d", ErrSchemaDirty, current)
	}
	if current > latest {
		return Schema{}, fmt.Errorf("%w: version %d, build knows %d", ErrSchemaTooNew, current, latest)
	}
	if current == latest {
		return Schema{Version: current, Latest: latest}, nil
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return Schema{}, fmt.Errorf("migrate %d -> %d: %w", current, latest, err)
	}
	return Schema{Version: latest, Latest: latest, Applied: true}, nil
}

// latestVersion walks the embedded migrations to the last one.
func latestVersion(src source.Driver) (uint, error) {
	v, err := src.First()
	if err != nil {
		return 0, fmt.Errorf("first migration: %w", err)
	}
	for {
		next, err := src.Next(v)
		if errors.Is(err, fs.ErrNotExist) {
			return v, nil
		}
		if err != nil {
			return 0, fmt.Errorf("migration after %d: %w", v, err)
		}
		v = next
	}
}
