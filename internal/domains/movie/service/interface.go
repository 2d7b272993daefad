package service

import (
	"context"

	"github.com/hibiken/asynq"

	"movie-platform-backend/internal/domains/movie/model"
)

// IngestService pulls the remote catalog into the movies table
type IngestService interface {
	// IngestTrending fetches, normalizes and reconciles one trending window
	IngestTrending(ctx context.Context, window model.TrendingWindow) (*model.IngestResult, error)
	// Reconcile upserts records by tmdb_id inside a single transaction
	Reconcile(ctx context.Context, records []model.MovieRecord) (*model.IngestResult, error)
	// EnqueueIngestTrending hands the ingest to the worker
	EnqueueIngestTrending(ctx context.Context, window model.TrendingWindow) (*model.EnqueueResult, error)
}

// MovieService is the read side
type MovieService interface {
	ListMovies(ctx context.Context, req model.ListMoviesRequest) (*model.MovieList, error)
	GetMovie(ctx context.Context, id int64) (*model.MovieView, error)
}

type PlaceholderService interface {
	Render(ctx context.Context, movieID int64, width, height int) (*model.Placeholder, error)
}

// TrendingFetcher is implemented by tmdb.Client
type TrendingFetcher interface {
	FetchTrending(ctx context.Context, window model.TrendingWindow) ([]model.RawRecord, error)
}

// TaskEnqueuer is implemented by *asynq.Client
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
