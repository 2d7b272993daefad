package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"movie-platform-backend/internal/config"
	"movie-platform-backend/internal/domains/movie/model"
	"movie-platform-backend/internal/shared"
	"movie-platform-backend/pkg/logger"
)

// Scheduler enqueues the periodic tasks; the worker server processes them
type Scheduler struct {
	scheduler  *asynq.Scheduler
	jobConfig  config.JobConfig
	tmdbWindow string
}

func NewScheduler(redisOpt asynq.RedisClientOpt, jobConfig config.JobConfig, tmdbWindow string) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler:  scheduler,
		jobConfig:  jobConfig,
		tmdbWindow: tmdbWindow,
	}
}

// RegisterJobs registers every periodic task
func (s *Scheduler) RegisterJobs() error {
	if err := s.registerIngestTrendingJob(); err != nil {
		return err
	}

	if err := s.registerHeartbeatJob(); err != nil {
		return err
	}

	return nil
}

// ================================================
// JOB 1: Ingest TMDb trending
// ================================================
// MaxRetry is the caller-side retry of a batch that lost a reconcile race
func (s *Scheduler) registerIngestTrendingJob() error {
	payload, err := json.Marshal(model.IngestTrendingPayload{
		Window: model.TrendingWindow(s.tmdbWindow),
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeIngestTrending, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.IngestSchedule,
		task,
		asynq.Queue(shared.QueueIngest),
		asynq.MaxRetry(s.jobConfig.IngestMaxRetry),
		asynq.Timeout(s.jobConfig.IngestTimeout),
		// a slow run must not overlap the next tick
		asynq.Unique(s.jobConfig.IngestTimeout),
	)
	if err != nil {
		logger.Error("Failed to register IngestTrending job", err)
		return err
	}

	logger.Info("✓ Registered IngestTrending", map[string]interface{}{
		"schedule": s.jobConfig.IngestSchedule,
		"window":   s.tmdbWindow,
	})
	return nil
}

// ================================================
// JOB 2: Worker heartbeat
// ================================================
func (s *Scheduler) registerHeartbeatJob() error {
	payload, err := json.Marshal(shared.HeartbeatPayload{Source: "scheduler"})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeWorkerHeartbeat, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.HeartbeatSchedule,
		task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(0),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		logger.Error("Failed to register Heartbeat job", err)
		return err
	}

	logger.Info("✓ Registered Heartbeat", map[string]interface{}{
		"schedule": s.jobConfig.HeartbeatSchedule,
	})
	return nil
}

// Start is non-blocking; the caller owns signal handling and calls Shutdown
func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
