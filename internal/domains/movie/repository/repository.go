package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"movie-platform-backend/internal/domains/movie/model"
)

// RepositoryInterface is the movie store.
// Write methods run inside the caller's transaction (WithTx suffix).
type RepositoryInterface interface {
	// FindByTMDBIDWithTx returns nil, nil when no row has the id
	FindByTMDBIDWithTx(ctx context.Context, tx pgx.Tx, tmdbID int64) (*model.Movie, error)
	InsertWithTx(ctx context.Context, tx pgx.Tx, record *model.MovieRecord) (int64, error)
	UpdateWithTx(ctx context.Context, tx pgx.Tx, id int64, record *model.MovieRecord) error

	// List orders by popularity (absent = 0) descending, then id ascending
	List(ctx context.Context, limit, offset int) ([]*model.Movie, error)
	Count(ctx context.Context) (int, error)
	// GetByID returns nil, nil when absent
	GetByID(ctx context.Context, id int64) (*model.Movie, error)
}
