package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"vaultly/internal/service/metadata"
)

type MetadataHandler struct {
	logger    *slog.Logger
	extractor *metadata.Service
}

func NewMetadataHandler(logger *slog.Logger, extractor *metadata.Service) *MetadataHandler {
	return &MetadataHandler{
		logger:    logger,
		extractor: extractor,
	}
}

type metadataRequest struct {
	URL string `json:"url"`
}

// ExtractMetadata runs the extraction pipeline for a single URL.
// The response shape is {success, metadata} on success and
// {success:false, error} with a 400 on any failure.
func (h *MetadataHandler) ExtractMetadata(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req metadataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		writeError(w, h.logger, http.StatusBadRequest, "URL is required")
		return
	}

	meta, err := h.extractor.Extract(ctx, req.URL)
	if err != nil {
		h.logger.Warn("Metadata extraction failed",
			"url", req.URL,
			"error", err,
		)
		writeError(w, h.logger, http.StatusBadRequest, "Failed to extract metadata: "+err.Error())
		return
	}

	h.logger.Info("Metadata extracted",
		"url", req.URL,
		"platform", meta.Platform,
		"title", meta.Title,
	)

	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"success":  true,
		"metadata": meta,
	})
}
