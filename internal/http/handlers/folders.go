package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"vaultly/internal/domain"
	"vaultly/internal/http/middleware"
	"vaultly/internal/service/advisor"
)

type FoldersHandler struct {
	logger     *slog.Logger
	folderRepo domain.FolderRepository
	queueRepo  domain.QueueRepository
	advisor    *advisor.Service
}

func NewFoldersHandler(
	logger *slog.Logger,
	folderRepo domain.FolderRepository,
	queueRepo domain.QueueRepository,
	adv *advisor.Service,
) *FoldersHandler {
	return &FoldersHandler{
		logger:     logger,
		folderRepo: folderRepo,
		queueRepo:  queueRepo,
		advisor:    adv,
	}
}

type createFolderRequest struct {
	Name     string `json:"name"`
	IsPublic bool   `json:"is_public"`
}

type suggestFoldersRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// GetFolders lists the caller's folders
func (h *FoldersHandler) GetFolders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.UserID(ctx)

	folders, err := h.folderRepo.GetByUser(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to retrieve folders", "error", err, "user_id", userID)
		writeError(w, h.logger, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"folders": folders,
	})
}

// CreateFolder creates a folder for the caller. Creating a folder whose
// name already exists returns the existing folder instead of erroring,
// so repeated taps in the client stay idempotent.
func (h *FoldersHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.UserID(ctx)

	var req createFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, h.logger, http.StatusBadRequest, "Folder name is required")
		return
	}
	if len(req.Name) > 255 {
		writeError(w, h.logger, http.StatusBadRequest, "Folder name too long (max 255 characters)")
		return
	}

	if existing, err := h.folderRepo.GetByName(ctx, userID, req.Name); err == nil {
		writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{
			"success":   true,
			"duplicate": true,
			"folder":    existing,
		})
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		writeError(w, h.logger, http.StatusInternalServerError, "Internal server error")
		return
	}

	folder := &domain.Folder{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      req.Name,
		IsPublic:  req.IsPublic,
		CreatedAt: time.Now(),
	}

	if err := h.folderRepo.Create(ctx, folder); err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to create folder")
		return
	}

	if err := h.queueRepo.Enqueue(ctx, domain.JobTypeLogEvent, map[string]interface{}{
		"user_id":    userID,
		"event_type": domain.EventFolderCreate,
		"payload": map[string]interface{}{
			"folder_id": folder.ID.String(),
			"name":      folder.Name,
		},
	}); err != nil {
		h.logger.Warn("Failed to enqueue folder event", "error", err)
	}

	writeJSON(w, h.logger, http.StatusCreated, map[string]interface{}{
		"success": true,
		"folder":  folder,
	})
}

// DeleteFolder removes a folder the caller owns; its videos are unfiled,
// not deleted
func (h *FoldersHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
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
	if folder.UserID != userID {
		writeError(w, h.logger, http.StatusNotFound, "Folder not found")
		return
	}

	if err := h.folderRepo.Delete(ctx, folderID); err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete folder")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{"success": true})
}

// SuggestFolders returns folder name ideas for a video. This endpoint
// always answers 200: collaborator failures degrade to a fixed fallback
// list rather than surfacing an error to the client.
func (h *FoldersHandler) SuggestFolders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req suggestFoldersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{
			"suggestions": advisor.FallbackSuggestions,
		})
		return
	}

	suggestions := h.advisor.SuggestFolders(ctx, req.Title, req.Description, req.Tags)

	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"suggestions": suggestions,
	})
}
