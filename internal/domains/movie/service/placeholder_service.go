package service

import (
	"context"
	"fmt"

	"movie-platform-backend/internal/domains/movie/model"
	"movie-platform-backend/internal/domains/movie/repository"
	"movie-platform-backend/internal/infrastructure/storage"
	"movie-platform-backend/pkg/logger"
)

const placeholderContentType = "image/png"

type placeholderService struct {
	repo      repository.RepositoryInterface
	processor *storage.ImageProcessor
	uploader  storage.Uploader
}

// NewPlaceholderService: uploader is nil when object storage is disabled
func NewPlaceholderService(
	repo repository.RepositoryInterface,
	processor *storage.ImageProcessor,
	uploader storage.Uploader,
) PlaceholderService {
	return &placeholderService{
		repo:      repo,
		processor: processor,
		uploader:  uploader,
	}
}

func (s *placeholderService) Render(ctx context.Context, movieID int64, width, height int) (*model.Placeholder, error) {
	movie, err := s.repo.GetByID(ctx, movieID)
	if err != nil {
		return nil, model.NewPlaceholderError(err)
	}
	if movie == nil {
		return nil, model.NewMovieNotFound(movieID)
	}

	data, err := s.processor.RenderPlaceholder(movie.TMDBID, width, height)
	if err != nil {
		return nil, model.NewPlaceholderError(err)
	}

	placeholder := &model.Placeholder{Data: data, ContentType: placeholderContentType}

	if s.uploader != nil {
		key := fmt.Sprintf("placeholders/%d.png", movie.TMDBID)
		url, err := s.uploader.Upload(ctx, key, data, placeholderContentType)
		if err != nil {
			// the rendered image is still served
			logger.Warn("Placeholder upload failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		} else {
			placeholder.URL = url
		}
	}

	return placeholder, nil
}
