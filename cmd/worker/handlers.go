package main

import (
	"github.com/hibiken/asynq"

	movieJob "movie-platform-backend/internal/domains/movie/job"
	"movie-platform-backend/internal/shared"
	"movie-platform-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	ingestTrending *movieJob.IngestTrendingHandler
	heartbeat      *movieJob.HeartbeatHandler
}

// initializeHandlers creates the job handlers on top of the shared services
func initializeHandlers(c *container.Container) *HandlerRegistry {
	checks := map[string]movieJob.HealthChecker{"database": c.DB}
	if c.Redis != nil {
		checks["redis"] = c.Redis
	}

	return &HandlerRegistry{
		ingestTrending: movieJob.NewIngestTrendingHandler(c.IngestService),
		heartbeat:      movieJob.NewHeartbeatHandler(checks),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeIngestTrending, h.ingestTrending.ProcessTask)
	mux.HandleFunc(shared.TypeWorkerHeartbeat, h.heartbeat.ProcessTask)
}
