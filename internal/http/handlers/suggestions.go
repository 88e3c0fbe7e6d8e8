package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"vaultly/internal/domain"
	"vaultly/internal/http/middleware"
	"vaultly/internal/service/advisor"
)

type SuggestionsHandler struct {
	logger     *slog.Logger
	videoRepo  domain.VideoRepository
	folderRepo domain.FolderRepository
	queueRepo  domain.QueueRepository
	advisor    *advisor.Service
}

func NewSuggestionsHandler(
	logger *slog.Logger,
	videoRepo domain.VideoRepository,
	folderRepo domain.FolderRepository,
	queueRepo domain.QueueRepository,
	adv *advisor.Service,
) *SuggestionsHandler {
	return &SuggestionsHandler{
		logger:     logger,
		videoRepo:  videoRepo,
		folderRepo: folderRepo,
		queueRepo:  queueRepo,
		advisor:    adv,
	}
}

// GetSuggestions asks the collaborator for organization advice based on
// the caller's recent saves and folders. Rate-limit and quota failures
// from the collaborator map to their own status codes so the client can
// tell them apart.
func (h *SuggestionsHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.UserID(ctx)

	videos, err := h.videoRepo.GetRecentByUser(ctx, userID, nil, 10)
	if err != nil {
		h.logger.Error("Failed to load recent videos", "error", err, "user_id", userID)
		writeError(w, h.logger, http.StatusInternalServerError, "Internal server error")
		return
	}

	folders, err := h.folderRepo.GetByUser(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to load folders", "error", err, "user_id", userID)
		writeError(w, h.logger, http.StatusInternalServerError, "Internal server error")
		return
	}

	advice, err := h.advisor.Advise(ctx, videos, folders)
	if err != nil {
		switch {
		case errors.Is(err, advisor.ErrRateLimited):
			writeError(w, h.logger, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
		case errors.Is(err, advisor.ErrCreditsExhausted):
			writeError(w, h.logger, http.StatusPaymentRequired, "AI credits exhausted.")
		default:
			h.logger.Error("Advisor request failed", "error", err, "user_id", userID)
			writeError(w, h.logger, http.StatusInternalServerError, "Failed to generate suggestions")
		}
		return
	}

	if err := h.queueRepo.Enqueue(ctx, domain.JobTypeLogEvent, map[string]interface{}{
		"user_id":    userID,
		"event_type": domain.EventAISuggestion,
		"payload": map[string]interface{}{
			"video_count":  len(videos),
			"folder_count": len(folders),
		},
	}); err != nil {
		h.logger.Warn("Failed to enqueue suggestion event", "error", err)
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"success":     true,
		"suggestions": advice,
	})
}
