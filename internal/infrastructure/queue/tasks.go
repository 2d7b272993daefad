package queue

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"movie-platform-backend/internal/domains/movie/model"
	"movie-platform-backend/internal/shared"
)

// NewIngestTrendingTask builds the on-demand ingest task enqueued by the API
func NewIngestTrendingTask(window model.TrendingWindow, maxRetry int) (*asynq.Task, error) {
	payload, err := json.Marshal(model.IngestTrendingPayload{Window: window})
	if err != nil {
		return nil, fmt.Errorf("marshal ingest payload: %w", err)
	}

	return asynq.NewTask(
		shared.TypeIngestTrending,
		payload,
		asynq.Queue(shared.QueueIngest),
		asynq.MaxRetry(maxRetry),
	), nil
}
