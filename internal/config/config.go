package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"movie-platform-backend/internal/infrastructure/database"
)

// apiPrefixPattern requires API_PREFIX to be an absolute path
var apiPrefixPattern = regexp.MustCompile(`^/`)

// Config holds the whole application configuration.
// Built once at process start from environment variables and passed down explicitly.
type Config struct {
	App      AppConfig
	Database *database.DBConfig
	Redis    RedisConfig
	TMDB     TMDBConfig
	Job      JobConfig
	MinIO    MinIOConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production, test
	Port        string
	Version     string
	APIPrefix   string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
	CacheTTL time.Duration // TTL of cached movie list pages
}

// TMDBConfig configures the remote catalog client
type TMDBConfig struct {
	APIKey   string // bearer token (v4 read access token)
	BaseURL  string
	Language string
	Window   string // day | week
	Timeout  time.Duration
}

// placeholderTokenPrefix marks the unedited value shipped in .env.example
const placeholderTokenPrefix = "PUT_YOUR_"

// HasCredential reports whether a usable token is configured
func (c TMDBConfig) HasCredential() bool {
	token := strings.TrimSpace(c.APIKey)
	return token != "" && !strings.HasPrefix(token, placeholderTokenPrefix)
}

// JobConfig configures the periodic worker tasks
type JobConfig struct {
	IngestSchedule    string // asynq cron spec, e.g. "@every 6h"
	IngestTimeout     time.Duration
	IngestMaxRetry    int
	HeartbeatSchedule string

	// cmd/worker
	WorkerConcurrency int
	WorkerHealthPort  string
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000, empty disables placeholder uploads
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether placeholder uploads should go to MinIO
func (c MinIOConfig) Enabled() bool {
	return c.Endpoint != ""
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	dbConfig, err := LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "AI Movie Platform"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			APIPrefix:   getEnv("API_PREFIX", "/api"),
		},
		Database: dbConfig,
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			CacheTTL: getEnvDuration("MOVIE_CACHE_TTL", 60*time.Second),
		},
		TMDB: TMDBConfig{
			APIKey:   getEnv("TMDB_API_KEY", ""),
			BaseURL:  getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
			Language: getEnv("TMDB_LANGUAGE", "en-US"),
			Window:   getEnv("TMDB_TRENDING_WINDOW", "week"),
			Timeout:  getEnvDuration("TMDB_TIMEOUT", 30*time.Second),
		},
		Job: JobConfig{
			IngestSchedule:    getEnv("INGEST_SCHEDULE", "@every 6h"),
			IngestTimeout:     getEnvDuration("INGEST_TIMEOUT", 2*time.Minute),
			IngestMaxRetry:    getEnvInt("INGEST_MAX_RETRY", 1),
			HeartbeatSchedule: getEnv("HEARTBEAT_SCHEDULE", "@every 6h"),
			WorkerConcurrency: getEnvInt("WORKER_CONCURRENCY", 5),
			WorkerHealthPort:  getEnv("WORKER_HEALTH_PORT", "9999"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "movies"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the values that would otherwise fail late at the point of use.
// A missing TMDB_API_KEY is not rejected here: ingest reports it as a ConfigurationError.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(&c.App,
		validation.Field(&c.App.Port, validation.Required, is.Digit),
		validation.Field(&c.App.Environment,
			validation.Required,
			validation.In("development", "staging", "production", "test"),
		),
		validation.Field(&c.App.APIPrefix, validation.Match(apiPrefixPattern).Error("must start with '/'")),
	); err != nil {
		return fmt.Errorf("app: %w", err)
	}

	if err := validation.ValidateStruct(&c.TMDB,
		validation.Field(&c.TMDB.BaseURL, validation.Required, is.URL),
		validation.Field(&c.TMDB.Window, validation.Required, validation.In("day", "week")),
		validation.Field(&c.TMDB.Language, validation.Required),
		validation.Field(&c.TMDB.Timeout, validation.Required, validation.Min(time.Second)),
	); err != nil {
		return fmt.Errorf("tmdb: %w", err)
	}

	if err := validation.ValidateStruct(&c.Job,
		validation.Field(&c.Job.IngestSchedule, validation.Required),
		validation.Field(&c.Job.HeartbeatSchedule, validation.Required),
		validation.Field(&c.Job.IngestMaxRetry, validation.Min(0)),
		validation.Field(&c.Job.IngestTimeout, validation.Required),
		validation.Field(&c.Job.WorkerConcurrency, validation.Required, validation.Min(1)),
		validation.Field(&c.Job.WorkerHealthPort, validation.Required, is.Digit),
	); err != nil {
		return fmt.Errorf("job: %w", err)
	}

	if c.Database == nil {
		return fmt.Errorf("database: configuration is missing")
	}
	if c.Database.URL == "" {
		if err := validation.ValidateStruct(c.Database,
			validation.Field(&c.Database.Host, validation.Required),
			validation.Field(&c.Database.DBName, validation.Required),
			validation.Field(&c.Database.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}

	if c.App.Environment == "production" && c.Database.URL == "" && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD must be set in production")
	}

	if c.MinIO.Enabled() {
		if err := validation.ValidateStruct(&c.MinIO,
			validation.Field(&c.MinIO.Bucket, validation.Required),
			validation.Field(&c.MinIO.AccessKey, validation.Required),
			validation.Field(&c.MinIO.SecretKey, validation.Required),
		); err != nil {
			return fmt.Errorf("minio: %w", err)
		}
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
