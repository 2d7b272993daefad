package main

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	movieHandler "movie-platform-backend/internal/domains/movie/handler"
	"movie-platform-backend/internal/infrastructure/database"
	"movie-platform-backend/internal/shared/middleware"
	"movie-platform-backend/pkg/container"
)

// healthChecker is satisfied by the database and redis wrappers
type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

// poolStatter is satisfied by *database.PostgresDB
type poolStatter interface {
	Stats() (*database.PoolStats, error)
}

func SetupRouter(c *container.Container) *gin.Engine {
	checks := map[string]healthChecker{"database": c.DB}
	if c.Redis != nil {
		checks["redis"] = c.Redis
	}

	return newRouter(c.Config.App.APIPrefix, c.MovieHandler, checks, c.DB)
}

// pool may be nil; readiness then omits the connection pool snapshot
func newRouter(prefix string, movies *movieHandler.MovieHandler, checks map[string]healthChecker, pool poolStatter) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.CORS(),
	)

	api := router.Group(prefix)
	{
		api.GET("/health", healthHandler)
		api.GET("/health/ready", readinessHandler(checks, pool))

		movies.RegisterRoutes(api)
	}

	return router
}

// healthHandler handles GET /health
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// readinessHandler probes every dependency in parallel; 503 when one is down
func readinessHandler(checks map[string]healthChecker, pool poolStatter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		var (
			mu      sync.Mutex
			details = gin.H{}
			g       errgroup.Group
		)
		for name, check := range checks {
			name, check := name, check
			g.Go(func() error {
				err := check.HealthCheck(ctx)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					details[name] = err.Error()
					return err
				}
				details[name] = "ok"
				return nil
			})
		}

		status := http.StatusOK
		if err := g.Wait(); err != nil {
			status = http.StatusServiceUnavailable
		}

		body := gin.H{"ok": status == http.StatusOK, "checks": details}
		if pool != nil {
			if stats, err := pool.Stats(); err == nil {
				body["pool"] = stats
			}
		}

		c.JSON(status, body)
	}
}
