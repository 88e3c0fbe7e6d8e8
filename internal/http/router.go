package http

import (
	"log/slog"
	"net/http"

	"vaultly/internal/domain"
	"vaultly/internal/http/handlers"
	"vaultly/internal/http/middleware"
	"vaultly/internal/service/advisor"
	"vaultly/internal/service/metadata"
)

type Router struct {
	mux                *http.ServeMux
	userAuth           *middleware.UserAuth
	healthHandler      *handlers.HealthHandler
	statsHandler       *handlers.StatsHandler
	metadataHandler    *handlers.MetadataHandler
	videosHandler      *handlers.VideosHandler
	foldersHandler     *handlers.FoldersHandler
	suggestionsHandler *handlers.SuggestionsHandler
}

// RouterDeps carries everything the HTTP surface needs
type RouterDeps struct {
	VideoRepo  domain.VideoRepository
	FolderRepo domain.FolderRepository
	QueueRepo  domain.QueueRepository
	QueueStats handlers.QueueStats
	Events     handlers.EventStats
	Extractor  *metadata.Service
	Advisor    *advisor.Service
}

func NewRouter(logger *slog.Logger, deps RouterDeps) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		userAuth:        middleware.NewUserAuth(logger),
		healthHandler:   handlers.NewHealthHandler(logger),
		statsHandler:    handlers.NewStatsHandler(logger, deps.QueueStats, deps.Events),
		metadataHandler: handlers.NewMetadataHandler(logger, deps.Extractor),
		videosHandler: handlers.NewVideosHandler(logger,
			deps.VideoRepo, deps.FolderRepo, deps.QueueRepo, deps.Extractor, deps.Advisor),
		foldersHandler: handlers.NewFoldersHandler(logger,
			deps.FolderRepo, deps.QueueRepo, deps.Advisor),
		suggestionsHandler: handlers.NewSuggestionsHandler(logger,
			deps.VideoRepo, deps.FolderRepo, deps.QueueRepo, deps.Advisor),
	}
}

func (r *Router) SetupRoutes() http.Handler {
	auth := r.userAuth.Middleware

	// Health check
	r.mux.HandleFunc("GET /health", r.healthHandler.HandleHealth)

	// Extraction and suggestion endpoints carry no per-user state
	r.mux.HandleFunc("POST /api/v1/metadata", r.metadataHandler.ExtractMetadata)
	r.mux.HandleFunc("POST /api/v1/folders/suggest", r.foldersHandler.SuggestFolders)

	// API v1 routes - Vault
	r.mux.Handle("POST /api/v1/videos", auth(http.HandlerFunc(r.videosHandler.SaveVideo)))
	r.mux.Handle("GET /api/v1/videos", auth(http.HandlerFunc(r.videosHandler.GetVideos)))
	r.mux.Handle("GET /api/v1/videos/search", auth(http.HandlerFunc(r.videosHandler.SearchVideos)))
	r.mux.Handle("DELETE /api/v1/videos/{id}", auth(http.HandlerFunc(r.videosHandler.DeleteVideo)))

	// API v1 routes - Folders
	r.mux.Handle("GET /api/v1/folders", auth(http.HandlerFunc(r.foldersHandler.GetFolders)))
	r.mux.Handle("POST /api/v1/folders", auth(http.HandlerFunc(r.foldersHandler.CreateFolder)))
	r.mux.Handle("DELETE /api/v1/folders/{id}", auth(http.HandlerFunc(r.foldersHandler.DeleteFolder)))
	r.mux.Handle("GET /api/v1/folders/{id}/videos", auth(http.HandlerFunc(r.videosHandler.GetVideosByFolder)))

	// API v1 routes - AI organization advice
	r.mux.Handle("POST /api/v1/suggestions", auth(http.HandlerFunc(r.suggestionsHandler.GetSuggestions)))

	// API v1 routes - Stats
	r.mux.HandleFunc("GET /api/v1/stats", r.statsHandler.HandleStats)

	// Add CORS middleware
	return middleware.CORS(r.mux)
}
