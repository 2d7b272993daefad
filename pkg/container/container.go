package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"movie-platform-backend/internal/config"
	movieHandler "movie-platform-backend/internal/domains/movie/handler"
	movieModel "movie-platform-backend/internal/domains/movie/model"
	movieRepo "movie-platform-backend/internal/domains/movie/repository"
	movieService "movie-platform-backend/internal/domains/movie/service"
	infraCache "movie-platform-backend/internal/infrastructure/cache"
	"movie-platform-backend/internal/infrastructure/database"
	"movie-platform-backend/internal/infrastructure/storage"
	"movie-platform-backend/internal/infrastructure/tmdb"
	"movie-platform-backend/pkg/cache"
	pkgDatabase "movie-platform-backend/pkg/database"
)

// cacheKeyPrefix namespaces the list cache inside a shared Redis
const cacheKeyPrefix = "movieapi:"

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph shared by cmd/api and cmd/worker
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB
	Redis       *infraCache.RedisClient
	Cache       cache.Cache // nil when Redis is unreachable at startup
	AsynqClient *asynq.Client
	MinIO       *storage.MinIOStorage // nil when MINIO_ENDPOINT is empty
	TMDBClient  *tmdb.Client

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	MovieRepo movieRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER
	// ========================================
	IngestService      movieService.IngestService
	MovieService       movieService.MovieService
	PlaceholderService movieService.PlaceholderService

	// ========================================
	// HANDLER LAYER
	// ========================================
	MovieHandler *movieHandler.MovieHandler
}

// NewContainer builds the graph in dependency order:
// config → infrastructure → repositories → services → handlers
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	if !cfg.TMDB.HasCredential() {
		log.Println("⚠️  TMDB_API_KEY is not set, ingest requests will fail with CONFIGURATION_ERROR")
	}

	// ========================================
	// STEP 2: INFRASTRUCTURE
	// ========================================
	if err := c.initInfrastructure(); err != nil {
		c.Cleanup()
		return nil, err
	}

	// ========================================
	// STEP 3: REPOSITORIES
	// ========================================
	c.initRepositories()
	log.Println("✅ Repositories initialized")

	// ========================================
	// STEP 4: SERVICES
	// ========================================
	c.initServices()
	log.Println("✅ Services initialized")

	// ========================================
	// STEP 5: HANDLERS
	// ========================================
	c.initHandlers()
	log.Println("✅ Handlers initialized")

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

func (c *Container) initInfrastructure() error {
	cfg := c.Config

	// PostgreSQL is required
	log.Println("🗄️  Connecting to PostgreSQL...")
	db := database.NewPostgresDB(cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("✅ Database connected")

	// Redis backs the list cache and the task queue
	log.Println("🔴 Connecting to Redis...")
	c.Redis = infraCache.NewRedisClient(cfg.Redis)
	if err := c.Redis.Connect(ctx); err != nil {
		// reads and synchronous ingest still work without Redis
		log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
	} else {
		c.Cache = c.Redis.NewCache(cacheKeyPrefix)
		log.Println("✅ Redis connected")
	}

	c.AsynqClient = asynq.NewClient(c.RedisClientOpt())

	// MinIO is optional
	if cfg.MinIO.Enabled() {
		log.Println("🪣 Connecting to MinIO...")
		minioStorage, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			log.Printf("⚠️  MinIO unavailable, placeholders will not be stored: %v", err)
		} else {
			c.MinIO = minioStorage
			log.Println("✅ MinIO connected")
		}
	}

	c.TMDBClient = tmdb.NewClient(cfg.TMDB)

	return nil
}

func (c *Container) initRepositories() {
	c.MovieRepo = movieRepo.NewPostgresRepository(c.DB.Pool)
}

func (c *Container) initServices() {
	cfg := c.Config

	c.IngestService = movieService.NewIngestService(
		c.TMDBClient,
		c.MovieRepo,
		pkgDatabase.NewPoolTxRunner(c.DB.Pool),
		c.Cache,
		c.AsynqClient,
		movieService.IngestOptions{
			DefaultWindow: movieModel.TrendingWindow(cfg.TMDB.Window),
			MaxRetry:      cfg.Job.IngestMaxRetry,
		},
	)

	c.MovieService = movieService.NewMovieService(c.MovieRepo, c.Cache, cfg.Redis.CacheTTL)

	// a nil *MinIOStorage must not become a non-nil interface
	var uploader storage.Uploader
	if c.MinIO != nil {
		uploader = c.MinIO
	}
	c.PlaceholderService = movieService.NewPlaceholderService(c.MovieRepo, storage.NewImageProcessor(), uploader)
}

func (c *Container) initHandlers() {
	c.MovieHandler = movieHandler.NewMovieHandler(c.MovieService, c.IngestService, c.PlaceholderService)
}

// RedisClientOpt is the asynq connection derived from the Redis config
func (c *Container) RedisClientOpt() asynq.RedisClientOpt {
	return c.Redis.AsynqOpt()
}

// Cleanup releases every connection; safe on a partially built container
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("⚠️  Failed to close asynq client: %v", err)
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis: %v", err)
		}
	}

	if c.DB != nil {
		_ = c.DB.Close()
	}

	log.Println("✅ Container cleanup completed")
}
