package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"movie-platform-backend/internal/infrastructure/database"
)

// TestDatabaseURLEnv points integration tests at a disposable PostgreSQL database
const TestDatabaseURLEnv = "TEST_DATABASE_URL"

// NewTestDB connects to TEST_DATABASE_URL, applies migrations and empties the movies table.
// The test is skipped in -short mode or when the variable is unset.
func NewTestDB(t *testing.T) *database.PostgresDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	url := os.Getenv(TestDatabaseURLEnv)
	if url == "" {
		t.Skipf("%s is not set", TestDatabaseURLEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.NewPostgresDB(&database.DBConfig{
		URL:            url,
		MaxConns:       10,
		MaxRetries:     1,
		ConnectTimeout: 5 * time.Second,
	})
	require.NoError(t, db.Connect(ctx), "should connect to test database")
	t.Cleanup(func() { _ = db.Close() })

	migrator, err := database.NewMigrator(db)
	require.NoError(t, err)
	defer migrator.Close()
	require.NoError(t, migrator.Up(ctx), "should apply migrations")

	TruncateMovies(t, db)

	return db
}

// TruncateMovies removes every movie and dependent row
func TruncateMovies(t *testing.T, db *database.PostgresDB) {
	t.Helper()

	_, err := db.Pool.Exec(context.Background(), `TRUNCATE movies RESTART IDENTITY CASCADE`)
	require.NoError(t, err, "should truncate movies")
}
