package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/finlab/internal/infrastructure/logger"
	"github.com/iho/finlab/internal/infrastructure/postgres"
)

type migrateFunc func(databaseURL, migrationsPath string, log zerolog.Logger) error

var (
	migrateUp      migrateFunc = postgres.RunMigrations
	migrateDown    migrateFunc = postgres.RunMigrationsDown
	migrateVersion migrateFunc = postgres.MigrationVersion
)

func migrateCmd() *cobra.Command {
	var (
		databaseURL string
		path        string
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, roll back or inspect database migrations",
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL (defaults to $DATABASE_URL)")
	cmd.PersistentFlags().StringVar(&path, "path", "migrations", "Directory holding the migration files")

	run := func(fn migrateFunc) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			if databaseURL == "" {
				return fmt.Errorf("--database-url or DATABASE_URL is required")
			}
			log := logger.NewWithWriter(logger.Config{Level: "info", Format: "console", Service: "finlab-cli"}, cmd.ErrOrStderr())
			return fn(databaseURL, path, log)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE:  run(migrateUp),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE:  run(migrateDown),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE:  run(migrateVersion),
		},
	)

	return cmd
}
