package job

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"movie-platform-backend/internal/shared"
	"movie-platform-backend/internal/shared/utils"
)

// HealthChecker is satisfied by the database and redis wrappers
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HeartbeatHandler logs liveness of the worker and its dependencies
type HeartbeatHandler struct {
	checks map[string]HealthChecker
}

func NewHeartbeatHandler(checks map[string]HealthChecker) *HeartbeatHandler {
	return &HeartbeatHandler{checks: checks}
}

// ProcessTask never fails: an unhealthy dependency is reported, not retried
func (h *HeartbeatHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.HeartbeatPayload
	_ = utils.UnmarshalTask(task, &payload)

	event := log.Info().
		Str("source", payload.Source).
		Time("at", time.Now().UTC())

	healthy := true
	for name, check := range h.checks {
		if err := check.HealthCheck(ctx); err != nil {
			healthy = false
			event = event.Str(name, err.Error())
			continue
		}
		event = event.Str(name, "ok")
	}

	event.Bool("healthy", healthy).Msg("Worker heartbeat")
	return nil
}
