// Package migration wraps golang-migrate with an embedded-FS source.
//
// The package is driver-agnostic: callers provide a DriverFunc that
// creates the migrate driver for their database. The migrate binary
// passes the PostgreSQL driver; tests pass SQLite.
//
//	//go:embed *.sql
//	var fs embed.FS
//
//	driverFunc := func(db *sql.DB) (database.Driver, error) {
//	    return migratepg.WithInstance(db, &migratepg.Config{})
//	}
//	err := migration.Up(gormDB, fs, ".", driverFunc)
package migration

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

// DriverFunc creates a migrate database driver from sql.DB.
type DriverFunc func(*sql.DB) (database.Driver, error)

// Up runs all pending versioned migrations from the embedded FS.
// Migration files follow the pattern VERSION_name.up.sql / VERSION_name.down.sql.
// Returns nil if there are no new migrations to apply.
func Up(gormDB *gorm.DB, migrationsFS embed.FS, path string, driverFunc DriverFunc) error {
	m, err := newMigrator(gormDB, migrationsFS, path, driverFunc)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Down rolls back all versioned migrations. Use Steps for partial rollback.
// Returns nil if there are no migrations to roll back.
func Down(gormDB *gorm.DB, migrationsFS embed.FS, path string, driverFunc DriverFunc) error {
	m, err := newMigrator(gormDB, migrationsFS, path, driverFunc)
	if err != nil {
		return err
	}
	if err := m.Down(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// Steps runs n migrations (positive = up, negative = down).
// Returns nil if the requested number of migrations cannot be applied.
func Steps(gormDB *gorm.DB, migrationsFS embed.FS, path string, n int, driverFunc DriverFunc) error {
	m, err := newMigrator(gormDB, migrationsFS, path, driverFunc)
	if err != nil {
		return err
	}
	if err := m.Steps(n); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migrate steps: %w", err)
	}
	return nil
}

// Version returns the current migration version and dirty flag.
// A database with no applied migrations reports migrate.ErrNilVersion.
func Version(gormDB *gorm.DB, migrationsFS embed.FS, path string, driverFunc DriverFunc) (version uint, dirty bool, err error) {
	m, err := newMigrator(gormDB, migrationsFS, path, driverFunc)
	if err != nil {
		return 0, false, err
	}
	return m.Version()
}

// Reset drops everything and re-applies all migrations.
// This destroys all data; development and test databases only.
func Reset(gormDB *gorm.DB, migrationsFS embed.FS, path string, driverFunc DriverFunc) error {
	m, err := newMigrator(gormDB, migrationsFS, path, driverFunc)
	if err != nil {
		return err
	}
	if err := m.Drop(); err != nil {
		return fmt.Errorf("migrate drop: %w", err)
	}

	// Re-create the migrator after drop (schema_migrations was dropped)
	m, err = newMigrator(gormDB, migrationsFS, path, driverFunc)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migrate up after reset: %w", err)
	}
	return nil
}

// newMigrator creates a golang-migrate instance backed by the embedded FS.
// Callers must NOT call m.Close(): it would close the shared sql.DB.
func newMigrator(gormDB *gorm.DB, migrationsFS embed.FS, path string, driverFunc DriverFunc) (*migrate.Migrate, error) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	driver, err := driverFunc(sqlDB)
	if err != nil {
		return nil, fmt.Errorf("create database driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, path)
	if err != nil {
		return nil, fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "database", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}
