package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"movie-platform-backend/pkg/container"
)

type startupCheck struct {
	name string
	fn   func(ctx context.Context) error
}

// startServices verifies dependencies, then exposes the health endpoints
func startServices(c *container.Container) error {
	log.Println("============================================")
	log.Println("🚀 Movie Ingest Worker Starting...")
	log.Println("============================================")

	checks := []startupCheck{
		{"Redis Connection", c.Redis.HealthCheck},
		{"PostgreSQL Connection", c.DB.HealthCheck},
	}

	if err := runChecks(checks); err != nil {
		return err
	}

	if !c.Config.TMDB.HasCredential() {
		log.Println("⚠️  TMDB_API_KEY is not set, scheduled ingests will fail without retry")
	}

	go startHealthCheckServer(c.Config.Job.WorkerHealthPort, checks)

	return nil
}

func runChecks(checks []startupCheck) error {
	for _, check := range checks {
		log.Printf("⏳ Checking %s...\n", check.name)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := check.fn(ctx)
		cancel()

		if err != nil {
			log.Printf("❌ %s: %v\n", check.name, err)
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Printf("✓ %s: OK\n", check.name)
	}
	return nil
}

// startHealthCheckServer serves /health (liveness) and /ready (dependencies)
func startHealthCheckServer(port string, checks []startupCheck) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "UP", "service": "movie-worker"})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := runChecks(checks); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "NOT_READY", "error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "READY"})
	})

	log.Printf("[Health] Starting health check server on :%s", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Printf("[Health] Failed to start: %v\n", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
