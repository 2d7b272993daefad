package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"movie-platform-backend/internal/domains/movie/model"
	"movie-platform-backend/internal/domains/movie/service"
	"movie-platform-backend/internal/shared/utils"
)

// IngestTrendingHandler runs the trending ingest inside the worker
type IngestTrendingHandler struct {
	ingestService service.IngestService
}

func NewIngestTrendingHandler(ingestService service.IngestService) *IngestTrendingHandler {
	return &IngestTrendingHandler{
		ingestService: ingestService,
	}
}

// ProcessTask: a reconcile conflict is returned so asynq retries the batch;
// configuration and payload errors are not retried.
func (h *IngestTrendingHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload model.IngestTrendingPayload
	if err := utils.UnmarshalTask(task, &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal IngestTrending payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	window, err := model.ParseWindow(string(payload.Window), "")
	if err != nil {
		return fmt.Errorf("invalid payload: %w: %w", err, asynq.SkipRetry)
	}

	log.Info().
		Str("window", string(window)).
		Msg("Starting trending ingest")

	result, err := h.ingestService.IngestTrending(ctx, window)
	if err != nil {
		log.Error().
			Err(err).
			Str("code", model.GetErrorCode(err)).
			Msg("Trending ingest failed")

		if model.IsConfigurationError(err) {
			return fmt.Errorf("ingest trending: %w: %w", err, asynq.SkipRetry)
		}
		return fmt.Errorf("ingest trending: %w", err)
	}

	log.Info().
		Int("inserted", result.Inserted).
		Int("updated", result.Updated).
		Int("skipped", result.Skipped).
		Int("total", result.Total).
		Msg("Trending ingest finished")

	return nil
}
