package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pavilion-status-backend/config"
	"pavilion-status-backend/internal/api"
	"pavilion-status-backend/internal/booking"
	"pavilion-status-backend/internal/catalog"
	"pavilion-status-backend/internal/db"
	"pavilion-status-backend/internal/feed"
	"pavilion-status-backend/internal/metrics"
	"pavilion-status-backend/internal/notification"
	"pavilion-status-backend/internal/poller"
	"pavilion-status-backend/internal/watch"
)

func main() {
	logger := log.New(os.Stdout, "paviliond ", log.LstdFlags)

	// Optional .env for local development.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	if cfg.Feed.SnapshotURL == "" || cfg.Feed.DeltaURL == "" {
		logger.Fatalf("feed.snapshot_url and feed.delta_url must be configured")
	}
	if cfg.Notify.WebhookURL == "" {
		logger.Printf("Warning: notify.webhook_url is not configured; change notifications will fail to deliver")
	}

	// A broken registry database degrades to a memory-only watch list
	// instead of refusing to start.
	registryDB, err := db.Init(&cfg.Registry)
	if err != nil {
		logger.Printf("Warning: registry database unavailable, watch list will not survive restarts: %v", err)
		registryDB = nil
	}
	registry := watch.NewRegistry(registryDB)

	store := catalog.NewStore()
	reconciler := catalog.NewReconciler(store)
	links := booking.NewLinkBuilder(&cfg.Booking)
	met := metrics.New()

	feedClient := feed.NewClient(&cfg.Feed)
	pool := notification.NewWorkerPool(cfg.WorkerPool.Size, &notification.SlackWebhookSender{
		WebhookURL: cfg.Notify.WebhookURL,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	syncSvc := poller.NewService(cfg, feedClient, store, reconciler, registry, links, pool, met)
	go syncSvc.Run(ctx)

	router := api.NewRouter(&cfg.Server, store, registry, links, met)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
