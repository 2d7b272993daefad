package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"movie-platform-backend/internal/config"
	"movie-platform-backend/internal/infrastructure/database"
)

var databaseURL string

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manages the movies database schema",
		Long: `migrate applies the SQL migrations embedded in the binary with goose.

Connection settings come from DATABASE_URL or the DB_* variables
(DB_HOST, DB_PORT, POSTGRES_USER, POSTGRES_PASSWORD, POSTGRES_DB).
The --database-url flag overrides both.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "",
		"PostgreSQL connection URL (overrides DATABASE_URL)")

	rootCmd.AddCommand(getUpCmd())
	rootCmd.AddCommand(getDownCmd())
	rootCmd.AddCommand(getStatusCmd())
	rootCmd.AddCommand(getVersionCmd())

	return rootCmd
}

// withMigrator connects, runs fn and releases every connection
func withMigrator(ctx context.Context, fn func(ctx context.Context, m *database.Migrator) error) error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}
	if databaseURL != "" {
		dbConfig.URL = databaseURL
	}

	db := database.NewPostgresDB(dbConfig)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.Connect(connectCtx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	migrator, err := database.NewMigrator(db)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return fn(ctx, migrator)
}
