package service

import (
	"context"
	"time"

	"movie-platform-backend/internal/domains/movie/model"
	"movie-platform-backend/internal/domains/movie/repository"
	"movie-platform-backend/pkg/cache"
	"movie-platform-backend/pkg/logger"
)

type movieService struct {
	repo     repository.RepositoryInterface
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewMovieService: cache may be nil, a zero TTL disables caching
func NewMovieService(repo repository.RepositoryInterface, cache cache.Cache, cacheTTL time.Duration) MovieService {
	return &movieService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// cachedPage is the cached form of a list page
type cachedPage struct {
	Movies []*model.MovieView `json:"movies"`
	Total  int                `json:"total"`
}

func (s *movieService) ListMovies(ctx context.Context, req model.ListMoviesRequest) (*model.MovieList, error) {
	req.Clamp()
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidPageParams(err)
	}

	// read before querying the store: a reconcile committing meanwhile retires this key
	cacheKey, cacheable := s.listCacheKey(ctx, req)
	if cacheable {
		if page, ok := s.cachedList(ctx, cacheKey); ok {
			return &model.MovieList{Movies: page.Movies, Total: page.Total, Limit: req.Limit, Offset: req.Offset}, nil
		}
	}

	movies, err := s.repo.List(ctx, req.Limit, req.Offset)
	if err != nil {
		return nil, model.NewListMoviesError(err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, model.NewListMoviesError(err)
	}

	page := cachedPage{Movies: model.ToViews(movies), Total: total}
	if cacheable {
		s.storeList(ctx, cacheKey, page)
	}

	return &model.MovieList{Movies: page.Movies, Total: total, Limit: req.Limit, Offset: req.Offset}, nil
}

func (s *movieService) GetMovie(ctx context.Context, id int64) (*model.MovieView, error) {
	movie, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, model.NewListMoviesError(err)
	}
	if movie == nil {
		return nil, model.NewMovieNotFound(id)
	}
	return movie.ToView(), nil
}

// listCacheKey returns false when caching is disabled or the generation is unreadable
func (s *movieService) listCacheKey(ctx context.Context, req model.ListMoviesRequest) (string, bool) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return "", false
	}

	var generation int64
	if _, err := s.cache.Get(ctx, movieListGenerationKey, &generation); err != nil {
		logger.Warn("Movie list cache generation read failed", map[string]interface{}{"error": err.Error()})
		return "", false
	}
	return movieListCacheKey(generation, req.Limit, req.Offset), true
}

// cachedList treats any cache error as a miss
func (s *movieService) cachedList(ctx context.Context, key string) (*cachedPage, bool) {
	var page cachedPage
	found, err := s.cache.Get(ctx, key, &page)
	if err != nil {
		logger.Warn("Movie list cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		return nil, false
	}
	if !found {
		logger.Debug("Cache MISS for key: " + key)
		return nil, false
	}
	return &page, true
}

func (s *movieService) storeList(ctx context.Context, key string, page cachedPage) {
	if err := s.cache.Set(ctx, key, page, s.cacheTTL); err != nil {
		logger.Warn("Movie list cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
