package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"vaultly/internal/config"
	vhttp "vaultly/internal/http"
)

// APIService owns the HTTP server lifecycle
type APIService struct {
	config *config.Config
	logger *slog.Logger
	server *http.Server
}

// New creates a new API service around the router
func New(cfg *config.Config, logger *slog.Logger, deps vhttp.RouterDeps) (*APIService, error) {
	router := vhttp.NewRouter(logger, deps)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &APIService{
		config: cfg,
		logger: logger,
		server: server,
	}, nil
}

// Start begins serving the API
func (s *APIService) Start() error {
	s.logger.Info("Starting API server", "port", s.config.Port)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully shuts down the API server
func (s *APIService) Stop(ctx context.Context) error {
	s.logger.Info("Stopping API server...")
	return s.server.Shutdown(ctx)
}
