package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/gatekeeper/internal/database"
)

// RunMigrations applies every pending migration found under
// migrationsRoot/<driver dir>. No pending migration is not an error.
func RunMigrations(logger *slog.Logger, driver, connectionString, migrationsRoot string) error {
	logger.Info("running database migrations", slog.String("driver", driver))

	dir, err := database.MigrationsDir(driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	sourceURL := "file://" + filepath.ToSlash(filepath.Join(migrationsRoot, dir))
	m, err := migrate.New(sourceURL, databaseURL(driver, connectionString))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}

// databaseURL turns a database/sql DSN into the URL form golang-migrate
// expects. mysql and sqlite3 DSNs carry no scheme of their own.
func databaseURL(driver, connectionString string) string {
	scheme := ""
	switch driver {
	case database.DriverMySQL:
		scheme = "mysql://"
	case database.DriverSQLite:
		scheme = "sqlite3://"
	}

	if scheme == "" || strings.HasPrefix(connectionString, scheme) {
		return connectionString
	}
	return scheme + connectionString
}
