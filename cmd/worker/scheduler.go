package main

import (
	"log"

	"movie-platform-backend/internal/infrastructure/queue"
	"movie-platform-backend/pkg/container"
)

// asynqScheduler wraps queue.Scheduler with logging around shutdown
type asynqScheduler struct {
	*queue.Scheduler
}

// setupScheduler registers the periodic tasks and starts the scheduler
func setupScheduler(c *container.Container) *asynqScheduler {
	scheduler := queue.NewScheduler(c.RedisClientOpt(), c.Config.Job, c.Config.TMDB.Window)

	if err := scheduler.RegisterJobs(); err != nil {
		log.Fatalf("[Scheduler] Failed to register: %v", err)
	}

	log.Println("[Scheduler] Starting...")
	if err := scheduler.Start(); err != nil {
		log.Fatalf("[Scheduler] Failed: %v", err)
	}

	return &asynqScheduler{Scheduler: scheduler}
}

func (s *asynqScheduler) Shutdown() {
	log.Println("[Scheduler] Shutting down...")
	s.Scheduler.Shutdown()
	log.Println("[Scheduler] ✓ Stopped")
}
