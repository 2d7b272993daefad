package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"movie-platform-backend/internal/config"
)

const healthCheckTimeout = 2 * time.Second

// RedisClient holds the connection used by the list cache and the health checks.
// The asynq client and server open their own pools from AsynqOpt.
type RedisClient struct {
	Client *redis.Client
	cfg    config.RedisConfig
}

func NewRedisClient(cfg config.RedisConfig) *RedisClient {
	return &RedisClient{
		cfg: cfg,
		Client: redis.NewClient(&redis.Options{
			Addr:         cfg.Host,
			Password:     cfg.Password,
			DB:           cfg.DB,
			PoolSize:     10,
			MinIdleConns: 2,
			MaxRetries:   3,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		}),
	}
}

// Connect verifies the server answers; the pool itself dials lazily
func (r *RedisClient) Connect(ctx context.Context) error {
	log.Printf("[REDIS] Connecting to %s (db %d)...", r.cfg.Host, r.cfg.DB)

	if err := r.ping(ctx); err != nil {
		return err
	}

	log.Println("[REDIS] Connected successfully")
	return nil
}

// NewCache returns the prefixed list cache on top of this connection
func (r *RedisClient) NewCache(prefix string) *RedisCache {
	return NewRedisCache(r.Client, prefix)
}

// AsynqOpt is the task queue connection for the same Redis instance
func (r *RedisClient) AsynqOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     r.cfg.Host,
		Password: r.cfg.Password,
		DB:       r.cfg.DB,
	}
}

func (r *RedisClient) HealthCheck(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	return r.ping(ctx)
}

func (r *RedisClient) ping(ctx context.Context) error {
	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping %s failed: %w", r.cfg.Host, err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Close()
}
