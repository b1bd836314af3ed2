package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"merchant-admin-layer/internal/infrastructure/repository"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	databaseURL string
	timeout     time.Duration
	logger      = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
)

// rootCmd applies the embedded PostgreSQL migrations
var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the PostgreSQL schema",
	Long: `Apply or roll back the schema used by the badge and task stores.

Available subcommands:
  up     - Apply every pending migration
  down   - Roll back the most recent migration
  status - Print the current schema version`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if databaseURL == "" {
			return errors.New("database url is required (--database-url or DATABASE_URL)")
		}
		return nil
	},
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply every pending migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(ctx context.Context, store *repository.PostgresStore) error {
			return store.MigrateUp(ctx)
		})
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(ctx context.Context, store *repository.PostgresStore) error {
			return store.MigrateDown(ctx)
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(ctx context.Context, store *repository.PostgresStore) error {
			version, err := store.MigrationVersion(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version: %d\n", version)
			return nil
		})
	},
}

func init() {
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}

	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute, "Maximum time for the whole operation")
	rootCmd.AddCommand(upCmd, downCmd, statusCmd)
}

func withStore(parent context.Context, run func(ctx context.Context, store *repository.PostgresStore) error) error {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	store, err := repository.OpenPostgres(ctx, databaseURL, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	return run(ctx, store)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
