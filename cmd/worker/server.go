package main

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"movie-platform-backend/internal/shared"
	"movie-platform-backend/pkg/container"
)

// asynqServer wraps asynq.Server with logging around shutdown
type asynqServer struct {
	*asynq.Server
}

// setupAsynqServer creates the server and starts processing; Start does not block
func setupAsynqServer(c *container.Container, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		c.RedisClientOpt(),
		asynq.Config{
			Queues:          shared.QueuePriorities,
			Concurrency:     c.Config.Job.WorkerConcurrency,
			ShutdownTimeout: 30 * time.Second,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retried, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				log.Printf("[Asynq] ❌ Task failed - Type: %s, Attempt: %d/%d, Error: %v",
					task.Type(), retried+1, maxRetry+1, err)
			}),
		},
	)

	log.Println("[Worker] Starting...")
	if err := srv.Start(mux); err != nil {
		log.Fatalf("[Worker] Failed: %v", err)
	}

	return &asynqServer{Server: srv}
}

// Shutdown waits for in-flight tasks up to ShutdownTimeout
func (s *asynqServer) Shutdown() {
	log.Println("[Worker] Shutting down (waiting max 30s)...")
	s.Server.Shutdown()
	log.Println("[Worker] ✓ Gracefully stopped")
}
