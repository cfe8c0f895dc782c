package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
)

// migrateURL points a postgres:// URL at the pgx/v5 migrate driver.
func migrateURL(databaseURL string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(databaseURL, scheme); ok {
			return "pgx5://" + rest
		}
	}
	return databaseURL
}

func withMigrator(databaseURL, migrationsPath string, fn func(*migrate.Migrate) error) error {
	m, err := migrate.New("file://"+migrationsPath, migrateURL(databaseURL))
	if err != nil {
		return fmt.Errorf("open migrations at %s: %w", migrationsPath, err)
	}
	defer m.Close()
	return fn(m)
}

// RunMigrations applies every pending migration. An up-to-date schema is
// not an error.
func RunMigrations(databaseURL, migrationsPath string, log zerolog.Logger) error {
	return withMigrator(databaseURL, migrationsPath, func(m *migrate.Migrate) error {
		err := m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("schema is up to date")
			return nil
		}
		if err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		logVersion(m, log, "migrations applied")
		return nil
	})
}

// RunMigrationsDown rolls back the most recent migration.
func RunMigrationsDown(databaseURL, migrationsPath string, log zerolog.Logger) error {
	return withMigrator(databaseURL, migrationsPath, func(m *migrate.Migrate) error {
		if err := m.Steps(-1); err != nil {
			return fmt.Errorf("roll back migration: %w", err)
		}
		logVersion(m, log, "migration rolled back")
		return nil
	})
}

// MigrationVersion logs the current schema version.
func MigrationVersion(databaseURL, migrationsPath string, log zerolog.Logger) error {
	return withMigrator(databaseURL, migrationsPath, func(m *migrate.Migrate) error {
		logVersion(m, log, "schema version")
		return nil
	})
}

func logVersion(m *migrate.Migrate, log zerolog.Logger, msg string) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info().Str("version", "none").Msg(msg)
		return
	}
	if err != nil {
		log.Warn().Err(err).Msg("read schema version")
		return
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg(msg)
}
