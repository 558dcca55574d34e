package testutil

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"

	"github.com/kbukum/alexops/internal/database"
	"github.com/kbukum/alexops/internal/logger"
)

// Open creates an in-memory SQLite database for a test and closes it on
// cleanup. The pool is pinned to a single connection: every new
// connection to :memory: would otherwise see its own empty database.
func Open(t *testing.T) *database.DB {
	t.Helper()

	cfg := database.Config{
		URL:          "sqlite::memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		MaxRetries:   1,
		LogLevel:     "silent",
	}

	db, err := database.Open(context.Background(), sqlite.Open(":memory:"), cfg, logger.NewDefault("testdb"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// OpenWithModels creates a test database and auto-creates tables for the
// given models via the GORM migrator.
func OpenWithModels(t *testing.T, models ...interface{}) *database.DB {
	t.Helper()

	db := Open(t)
	for _, model := range models {
		if err := db.GormDB.AutoMigrate(model); err != nil {
			t.Fatalf("failed to migrate %T: %v", model, err)
		}
	}
	return db
}
