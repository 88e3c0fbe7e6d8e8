package main

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"vaultly/internal/config"
	"vaultly/internal/pkg/logger"
	"vaultly/internal/repository/postgres"
	redisrepo "vaultly/internal/repository/redis"
	"vaultly/internal/service/bot"
	"vaultly/internal/service/metadata"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Validate bot-specific configuration
	if err := cfg.ValidateForBot(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Setup logging
	log := logger.New(cfg.LogLevel)
	log.Info("Starting bot service...")

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

	// Create bot service
	botService, err := bot.New(cfg, log, videoRepo, queueRepo, extractor)
	if err != nil {
		log.Error("Failed to create bot service", "error", err)
		os.Exit(1)
	}

	// Start blocks until interrupted and shuts down internally
	if err := botService.Start(); err != nil {
		log.Error("Bot service failed", "error", err)
		os.Exit(1)
	}
}
