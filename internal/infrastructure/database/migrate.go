package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"movie-platform-backend/migrations"
)

// Migrator applies the embedded goose migrations
type Migrator struct {
	db *sql.DB
}

// NewMigrator opens a database/sql handle on top of the pgx pool (goose needs *sql.DB)
func NewMigrator(db *PostgresDB) (*Migrator, error) {
	if db.Pool == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("failed to set dialect: %w", err)
	}

	return &Migrator{db: stdlib.OpenDBFromPool(db.Pool)}, nil
}

// Up runs all pending migrations
func (m *Migrator) Up(ctx context.Context) error {
	log.Println("[MIGRATE] Running database migrations...")

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("[MIGRATE] Migrations completed successfully")
	return nil
}

// Down rolls back the latest migration
func (m *Migrator) Down(ctx context.Context) error {
	log.Println("[MIGRATE] Rolling back latest migration...")

	if err := goose.DownContext(ctx, m.db, "."); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}

	return nil
}

// Status prints the applied/pending state of every migration
func (m *Migrator) Status(ctx context.Context) error {
	if err := goose.StatusContext(ctx, m.db, "."); err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}
	return nil
}

// Version returns the current schema version
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return 0, fmt.Errorf("failed to get database version: %w", err)
	}
	return version, nil
}

// Close releases the database/sql handle; the pgx pool stays open
func (m *Migrator) Close() error {
	return m.db.Close()
}
