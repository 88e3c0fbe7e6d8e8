package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"vaultly/internal/config"
	vhttp "vaultly/internal/http"
	"vaultly/internal/pkg/logger"
	"vaultly/internal/repository/postgres"
	redisrepo "vaultly/internal/repository/redis"
	"vaultly/internal/service/advisor"
	"vaultly/internal/service/api"
	"vaultly/internal/service/metadata"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Validate API-specific configuration
	if err := cfg.ValidateForAPI(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Setup logging
	log := logger.New(cfg.LogLevel)
	log.Info("Starting API service...")

	// Connect to PostgreSQL
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Error("Failed to ping database", "error", err)
		os.Exit(1)
	}

	// Run database migrations
	if err := postgres.RunMigrations(db, log); err != nil {
		log.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	// Connect to Redis
	redisClient, err := redisrepo.NewClient(cfg.RedisURL, log)
	if err != nil {
		log.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// Create repositories
	videoRepo := postgres.NewVideoRepository(db, log)
	folderRepo := postgres.NewFolderRepository(db, log)
	eventRepo := postgres.NewEventRepository(db, log)
	queueRepo := redisrepo.NewQueueRepository(redisClient, log)

	// Create extraction pipeline
	fetcher := metadata.NewFetcher(log)
	if cfg.BrowserFetch {
		browser, err := metadata.NewBrowserFetcher(log, metadata.DefaultBrowserPlatforms)
		if err != nil {
			log.Warn("Browser fetching unavailable", "error", err)
		} else {
			defer browser.Close()
			fetcher = fetcher.WithBrowser(browser)
		}
	}
	extractor := metadata.New(log, fetcher)

	// Create AI advisor
	chat := advisor.NewChatClient(cfg.AIGatewayURL, cfg.AIAPIKey, cfg.AIModel, log)
	adv := advisor.New(chat, log)

	// Create API service
	apiService, err := api.New(cfg, log, vhttp.RouterDeps{
		VideoRepo:  videoRepo,
		FolderRepo: folderRepo,
		QueueRepo:  queueRepo,
		QueueStats: queueRepo,
		Events:     eventRepo,
		Extractor:  extractor,
		Advisor:    adv,
	})
	if err != nil {
		log.Error("Failed to create API service", "error", err)
		os.Exit(1)
	}

	// Create a channel to track shutdown completion
	done := make(chan struct{})

	// Start API service in a goroutine
	go func() {
		defer close(done)
		if err := apiService.Start(); err != nil {
			log.Error("API service failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Wait for either shutdown signal or service completion
	select {
	case <-quit:
		log.Info("Shutdown signal received, stopping API service...")
	case <-done:
		log.Info("API service completed")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiService.Stop(ctx); err != nil {
		log.Error("Error stopping API service", "error", err)
	}

	log.Info("API service shutdown complete")
}
