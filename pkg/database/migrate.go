package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// MigrationsSourceURL turns a directory into a golang-migrate file source URL.
func MigrationsSourceURL(path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	return "file://" + path
}

// RunMigrations applies every pending "up" migration found at path.
// It reports whether anything was applied.
func RunMigrations(databaseURL, path string, logger *slog.Logger) (bool, error) {
	// Open a temporary standard sql.DB connection for migrations
	// using the pgx stdlib driver so it matches the main pool.
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return false, fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return false, fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return false, fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(MigrationsSourceURL(path), "postgres", driver)
	if err != nil {
		return false, fmt.Errorf("could not create migrate instance: %w", err)
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return false, fmt.Errorf("failed to apply migrations: %w", upErr)
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return false, fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return false, fmt.Errorf("migration database error: %w", dbErr)
	}

	applied := !errors.Is(upErr, migrate.ErrNoChange)
	if applied {
		logger.Info("Database migrations applied successfully")
	} else {
		logger.Info("No new migrations to apply")
	}
	return applied, nil
}
