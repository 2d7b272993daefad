package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"movie-platform-backend/internal/domains/movie/model"
	"movie-platform-backend/internal/domains/movie/repository"
	"movie-platform-backend/internal/infrastructure/queue"
	"movie-platform-backend/pkg/cache"
	"movie-platform-backend/pkg/database"
	"movie-platform-backend/pkg/logger"
)

type ingestService struct {
	fetcher       TrendingFetcher
	repo          repository.RepositoryInterface
	txRunner      database.TxRunner
	cache         cache.Cache
	enqueuer      TaskEnqueuer
	defaultWindow model.TrendingWindow
	maxRetry      int
}

// IngestOptions carries the defaults applied by IngestService
type IngestOptions struct {
	DefaultWindow model.TrendingWindow
	MaxRetry      int // retries of an enqueued ingest task
}

// NewIngestService wires the pipeline. cache and enqueuer may be nil.
func NewIngestService(
	fetcher TrendingFetcher,
	repo repository.RepositoryInterface,
	txRunner database.TxRunner,
	cache cache.Cache,
	enqueuer TaskEnqueuer,
	opts IngestOptions,
) IngestService {
	if opts.DefaultWindow == "" {
		opts.DefaultWindow = model.WindowWeek
	}

	return &ingestService{
		fetcher:       fetcher,
		repo:          repo,
		txRunner:      txRunner,
		cache:         cache,
		enqueuer:      enqueuer,
		defaultWindow: opts.DefaultWindow,
		maxRetry:      opts.MaxRetry,
	}
}

func (s *ingestService) IngestTrending(ctx context.Context, window model.TrendingWindow) (*model.IngestResult, error) {
	if window == "" {
		window = s.defaultWindow
	}

	start := time.Now()

	raws, err := s.fetcher.FetchTrending(ctx, window)
	if err != nil {
		logger.Error("Trending fetch failed", err)
		return nil, err
	}

	result, err := s.Reconcile(ctx, model.NormalizeAll(raws))
	if err != nil {
		return nil, err
	}

	logger.Info("Trending ingest completed", map[string]interface{}{
		"window":   string(window),
		"inserted": result.Inserted,
		"updated":  result.Updated,
		"skipped":  result.Skipped,
		"total":    result.Total,
		"duration": time.Since(start).String(),
	})

	return result, nil
}

// Reconcile applies the whole batch or nothing.
// A unique violation means a concurrent run won the race; it is returned, never retried here.
func (s *ingestService) Reconcile(ctx context.Context, records []model.MovieRecord) (*model.IngestResult, error) {
	result, err := database.WithTransactionResult(ctx, s.txRunner, func(tx pgx.Tx) (*model.IngestResult, error) {
		result := &model.IngestResult{Total: len(records)}

		for i := range records {
			record := &records[i]

			if !record.HasExternalID() {
				result.Skipped++
				continue
			}

			existing, err := s.repo.FindByTMDBIDWithTx(ctx, tx, *record.TMDBID)
			if err != nil {
				return nil, err
			}

			if existing != nil {
				if err := s.repo.UpdateWithTx(ctx, tx, existing.ID, record); err != nil {
					return nil, err
				}
				result.Updated++
				continue
			}

			if _, err := s.repo.InsertWithTx(ctx, tx, record); err != nil {
				return nil, err
			}
			result.Inserted++
		}

		return result, nil
	})
	if err != nil {
		if model.IsReconcileConflict(err) {
			logger.Warn("Reconcile conflict, batch rolled back", map[string]interface{}{
				"records": len(records),
				"error":   err.Error(),
			})
			return nil, err
		}
		logger.Error("Reconcile failed", err)
		return nil, model.NewReconcileError(err)
	}

	if result.Skipped > 0 {
		logger.Warn("Records without tmdb id skipped", map[string]interface{}{
			"skipped": result.Skipped,
		})
	}

	s.invalidateListCache(ctx)

	return result, nil
}

func (s *ingestService) EnqueueIngestTrending(ctx context.Context, window model.TrendingWindow) (*model.EnqueueResult, error) {
	if s.enqueuer == nil {
		return nil, model.NewConfigurationError("task queue is not configured")
	}
	if window == "" {
		window = s.defaultWindow
	}

	task, err := queue.NewIngestTrendingTask(window, s.maxRetry)
	if err != nil {
		return nil, model.NewEnqueueIngestError(err)
	}

	info, err := s.enqueuer.EnqueueContext(ctx, task)
	if err != nil {
		logger.Error("Failed to enqueue ingest task", err)
		return nil, model.NewEnqueueIngestError(err)
	}

	logger.Info("Ingest task enqueued", map[string]interface{}{
		"task_id": info.ID,
		"queue":   info.Queue,
		"window":  string(window),
	})

	return &model.EnqueueResult{TaskID: info.ID, Queue: info.Queue}, nil
}

// invalidateListCache never fails the ingest; stale pages expire with the TTL
func (s *ingestService) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Incr(ctx, movieListGenerationKey); err != nil {
		logger.Warn("Failed to bump movie list cache generation", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if err := s.cache.DeletePattern(ctx, movieListCachePattern); err != nil {
		logger.Warn("Failed to invalidate movie list cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
