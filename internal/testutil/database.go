// Package testutil provides testing utilities for database backed tests.
//
// Database Setup:
//
//	db := testutil.SetupSQLiteDB(t)
//
// The database lives in memory, is migrated with the sqlite3 migrations and
// is closed automatically when the test finishes.
//
// Migration Path:
//
// Migrations are automatically discovered by walking up from the current
// working directory until a "migrations/{dbType}" directory is found.
package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// SetupSQLiteDB opens a fresh in-memory SQLite database and runs migrations.
func SetupSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err, "failed to open sqlite database")

	// every connection to :memory: is a new database
	db.SetMaxOpenConns(1)

	require.NoError(t, db.Ping(), "failed to ping sqlite database")

	MigrateSQLiteDB(t, db)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// MigrateSQLiteDB applies the sqlite3 migrations to an already open database.
func MigrateSQLiteDB(t *testing.T, db *sql.DB) {
	t.Helper()

	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	require.NoError(t, err, "failed to create sqlite3 driver")

	migrationsPath, err := MigrationsPath("sqlite3")
	require.NoError(t, err, "failed to find sqlite3 migrations path")

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite3",
		driver,
	)
	require.NoError(t, err, "failed to create migrate instance for sqlite3")

	// m is not closed: closing it would close db, which the caller owns.
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, fmt.Sprintf("failed to run sqlite3 migrations from %s", migrationsPath))
	}
}

// MigrationsPath walks up from the working directory looking for migrations/{dbType}.
func MigrationsPath(dbType string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, "migrations", dbType)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("migrations directory for %s not found", dbType)
		}
		dir = parent
	}
}
