package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"vaultly/internal/domain"
	"vaultly/internal/http/middleware"
	"vaultly/internal/pkg/urldetector"
	"vaultly/internal/service/advisor"
	"vaultly/internal/service/metadata"
)

const (
	DefaultPaginationLimit = 25
)

type VideosHandler struct {
	logger     *slog.Logger
	videoRepo  domain.VideoRepository
	folderRepo domain.FolderRepository
	queueRepo  domain.QueueRepository
	extractor  *metadata.Service
	advisor    *advisor.Service
}

func NewVideosHandler(
	logger *slog.Logger,
	videoRepo domain.VideoRepository,
	folderRepo domain.FolderRepository,
	queueRepo domain.QueueRepository,
	extractor *metadata.Service,
	adv *advisor.Service,
) *VideosHandler {
	return &VideosHandler{
		logger:     logger,
		videoRepo:  videoRepo,
		folderRepo: folderRepo,
		queueRepo:  queueRepo,
		extractor:  extractor,
		advisor:    adv,
	}
}

// VideosResponse represents the paginated response for videos
type VideosResponse struct {
	Videos  []*domain.Video `json:"videos"`
	HasMore bool            `json:"has_more"`
	Cursor  *string         `json:"cursor,omitempty"`
}

type saveVideoRequest struct {
	URL      string  `json:"url"`
	FolderID *string `json:"folder_id"`
	Note     *string `json:"note"`
	Mood     *string `json:"mood"`
}

// parseCursor parses a cursor string into a time.Time pointer
func parseCursor(cursorStr string) (*time.Time, error) {
	if cursorStr == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, cursorStr)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parseLimit reads the limit query parameter, capped at 100
func parseLimit(r *http.Request) int {
	limit := DefaultPaginationLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	return limit
}

// buildVideosResponse creates a paginated response from domain videos
func buildVideosResponse(videos []*domain.Video, requestedLimit int) *VideosResponse {
	hasMore := len(videos) > requestedLimit
	if hasMore {
		// Remove the extra video fetched to probe for more results
		videos = videos[:requestedLimit]
	}

	response := &VideosResponse{
		Videos:  videos,
		HasMore: hasMore,
	}

	if hasMore && len(videos) > 0 {
		last := videos[len(videos)-1]
		cursorStr := last.CreatedAt.Format(time.RFC3339)
		response.Cursor = &cursorStr
	}

	return response
}

// SaveVideo extracts metadata for a URL and persists it to the caller's vault.
// Duplicate URLs return the existing record instead of a second row. When no
// folder is supplied the advisor picks one from the user's existing folders;
// advisor failures never block the save.
func (h *VideosHandler) SaveVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.UserID(ctx)

	var req saveVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	normalized, err := urldetector.NormalizeURL(req.URL)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid URL: "+err.Error())
		return
	}

	// Duplicate detection
	if existing, err := h.videoRepo.GetByURL(ctx, userID, normalized); err == nil {
		h.logger.Info("Duplicate video save",
			"user_id", userID,
			"url", normalized,
			"video_id", existing.ID,
		)
		writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{
			"success":   true,
			"duplicate": true,
			"video":     existing,
		})
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		writeError(w, h.logger, http.StatusInternalServerError, "Internal server error")
		return
	}

	meta, err := h.extractor.Extract(ctx, normalized)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Failed to extract metadata: "+err.Error())
		return
	}

	now := time.Now()
	video := &domain.Video{
		ID:           uuid.New(),
		UserID:       userID,
		URL:          normalized,
		Platform:     meta.Platform,
		Title:        meta.Title,
		ThumbnailURL: meta.ThumbnailURL,
		Uploader:     meta.Uploader,
		Description:  meta.Description,
		Tags:         meta.Tags,
		Note:         req.Note,
		Mood:         req.Mood,
		SourceRaw: map[string]interface{}{
			"url":   meta.Raw.URL,
			"extra": meta.Raw.Extra,
		},
		CreatedAt: now,
	}

	if req.FolderID != nil {
		folderID, err := uuid.Parse(*req.FolderID)
		if err != nil {
			writeError(w, h.logger, http.StatusBadRequest, "Invalid folder_id")
			return
		}
		video.FolderID = &folderID
	} else if folders, err := h.folderRepo.GetByUser(ctx, userID); err == nil && len(folders) > 0 {
		if placed := h.advisor.AutoPlace(ctx, video.Title, folders); placed != nil {
			video.FolderID = &placed.ID
		}
	}

	video.ExtractionStatus = domain.ExtractionStatusComplete
	if video.IsPartial() {
		video.ExtractionStatus = domain.ExtractionStatusPartial
	}

	if err := h.videoRepo.Create(ctx, video); err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save video")
		return
	}

	// Analytics and refresh ride the queue so the save path never blocks
	if err := h.queueRepo.Enqueue(ctx, domain.JobTypeLogEvent, map[string]interface{}{
		"user_id":    userID,
		"event_type": domain.EventSaveVideo,
		"payload": map[string]interface{}{
			"video_id": video.ID.String(),
			"platform": video.Platform,
		},
	}); err != nil {
		h.logger.Warn("Failed to enqueue save event", "error", err)
	}

	if video.ExtractionStatus == domain.ExtractionStatusPartial {
		if err := h.queueRepo.Enqueue(ctx, domain.JobTypeRefreshMetadata, map[string]interface{}{
			"video_id": video.ID.String(),
		}); err != nil {
			h.logger.Warn("Failed to enqueue refresh job", "error", err)
		}
	}

	writeJSON(w, h.logger, http.StatusCreated, map[string]interface{}{
		"success": true,
		"video":   video,
	})
}

// GetVideos lists the caller's videos newest first with cursor pagination
func (h *VideosHandler) GetVideos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.UserID(ctx)

	cursor, err := parseCursor(r.URL.Query().Get("cursor"))
	if err != nil {
		h.logger.Warn("Invalid cursor format", "cursor", r.URL.Query().Get("cursor"), "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid cursor format")
		return
	}
	limit := parseLimit(r)

	// Request one more item than the limit to probe for more results
	videos, err := h.videoRepo.GetRecentByUser(ctx, userID, cursor, limit+1)
	if err != nil {
		h.logger.Error("Failed to retrieve videos", "error", err, "user_id", userID)
		writeError(w, h.logger, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := buildVideosResponse(videos, limit)
	writeJSON(w, h.logger, http.StatusOK, response)
}

// GetVideosByFolder lists videos filed in a folder the caller owns
func (h *VideosHandler) GetVideosByFolder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.UserID(ctx)

	folderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid folder ID")
		return
	}

	folder, err := h.folderRepo.GetByID(ctx, folderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, h.logger, http.StatusNotFound, "Folder not found")
			return
		}
		writeError(w, h.logger, http.StatusInternalServerError, "Internal server error")
		return
	}
	if folder.UserID != userID && !folder.IsPublic {
		writeError(w, h.logger, http.StatusNotFound, "Folder not found")
		return
	}

	cursor, err := parseCursor(r.URL.Query().Get("cursor"))
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid cursor format")
		return
	}
	limit := parseLimit(r)

	videos, err := h.videoRepo.GetByFolder(ctx, folderID, cursor, limit+1)
	if err != nil {
		h.logger.Error("Failed to retrieve folder videos", "error", err, "folder_id", folderID)
		writeError(w, h.logger, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, buildVideosResponse(videos, limit))
}

// SearchVideos runs full-text search over the caller's vault
func (h *VideosHandler) SearchVideos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.UserID(ctx)

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, h.logger, http.StatusBadRequest, "Search query is required")
		return
	}
	if len(query) > 500 {
		writeError(w, h.logger, http.StatusBadRequest, "Search query too long (max 500 characters)")
		return
	}

	cursor, err := parseCursor(r.URL.Query().Get("cursor"))
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid cursor format")
		return
	}
	limit := parseLimit(r)

	videos, err := h.videoRepo.Search(ctx, userID, query, cursor, limit+1)
	if err != nil {
		h.logger.Error("Failed to search videos", "error", err, "user_id", userID)
		writeError(w, h.logger, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := buildVideosResponse(videos, limit)
	h.logger.Info("Search completed", "query", query, "count", len(response.Videos), "has_more", response.HasMore)
	writeJSON(w, h.logger, http.StatusOK, response)
}

// DeleteVideo removes a video from the caller's vault
func (h *VideosHandler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.UserID(ctx)

	videoID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid video ID")
		return
	}

	video, err := h.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, h.logger, http.StatusNotFound, "Video not found")
			return
		}
		writeError(w, h.logger, http.StatusInternalServerError, "Internal server error")
		return
	}
	if video.UserID != userID {
		writeError(w, h.logger, http.StatusNotFound, "Video not found")
		return
	}

	if err := h.videoRepo.Delete(ctx, videoID); err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete video")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{"success": true})
}
