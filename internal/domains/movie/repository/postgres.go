package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"movie-platform-backend/internal/domains/movie/model"
)

// SQLSTATE unique_violation
const uniqueViolationCode = "23505"

const movieColumns = `
	id, tmdb_id, slug, title, original_title, language, overview, release_date,
	runtime, budget, revenue, poster_path, backdrop_path, imdb_id, is_series,
	popularity, vote_average, vote_count`

// postgresRepository implements RepositoryInterface on pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) FindByTMDBIDWithTx(ctx context.Context, tx pgx.Tx, tmdbID int64) (*model.Movie, error) {
	query := `SELECT` + movieColumns + ` FROM movies WHERE tmdb_id = $1`

	movie, err := scanMovie(tx.QueryRow(ctx, query, tmdbID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find movie by tmdb_id %d: %w", tmdbID, err)
	}

	return movie, nil
}

func (r *postgresRepository) InsertWithTx(ctx context.Context, tx pgx.Tx, record *model.MovieRecord) (int64, error) {
	var id int64
	if err := tx.QueryRow(ctx, insertMovieQuery, recordArgs(record)...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, model.NewReconcileConflictError(err)
		}
		return 0, fmt.Errorf("failed to insert movie: %w", err)
	}

	return id, nil
}

func (r *postgresRepository) UpdateWithTx(ctx context.Context, tx pgx.Tx, id int64, record *model.MovieRecord) error {
	args := append([]any{id}, recordArgs(record)...)

	tag, err := tx.Exec(ctx, updateMovieQuery, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return model.NewReconcileConflictError(err)
		}
		return fmt.Errorf("failed to update movie %d: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update movie %d: row disappeared", id)
	}

	return nil
}

func (r *postgresRepository) List(ctx context.Context, limit, offset int) ([]*model.Movie, error) {
	query := `SELECT` + movieColumns + `
		FROM movies
		ORDER BY COALESCE(popularity, 0) DESC, id ASC
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	defer rows.Close()

	movies := make([]*model.Movie, 0, limit)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movies: %w", err)
	}

	return movies, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM movies`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Movie, error) {
	query := `SELECT` + movieColumns + ` FROM movies WHERE id = $1`

	movie, err := scanMovie(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get movie by id: %w", err)
	}

	return movie, nil
}

// scanMovie scans a row selected with movieColumns
func scanMovie(row pgx.Row) (*model.Movie, error) {
	var m model.Movie
	err := row.Scan(
		&m.ID,
		&m.TMDBID,
		&m.Slug,
		&m.Title,
		&m.OriginalTitle,
		&m.Language,
		&m.Overview,
		&m.ReleaseDate,
		&m.Runtime,
		&m.Budget,
		&m.Revenue,
		&m.PosterPath,
		&m.BackdropPath,
		&m.IMDbID,
		&m.IsSeries,
		&m.Popularity,
		&m.VoteAverage,
		&m.VoteCount,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
