package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"vaultly/internal/domain"
	"vaultly/internal/service/metadata"
)

// JobProcessor handles the different background job types
type JobProcessor struct {
	logger    *slog.Logger
	videoRepo domain.VideoRepository
	eventRepo domain.EventRepository
	extractor *metadata.Service
}

// NewJobProcessor creates a new job processor
func NewJobProcessor(
	logger *slog.Logger,
	videoRepo domain.VideoRepository,
	eventRepo domain.EventRepository,
	extractor *metadata.Service,
) *JobProcessor {
	return &JobProcessor{
		logger:    logger,
		videoRepo: videoRepo,
		eventRepo: eventRepo,
		extractor: extractor,
	}
}

// ProcessMetadataExtraction runs a first extraction for a video saved
// before its metadata was available
func (p *JobProcessor) ProcessMetadataExtraction(ctx context.Context, payload map[string]interface{}, logger *slog.Logger) error {
	return p.refreshVideo(ctx, payload, logger, false)
}

// ProcessMetadataRefresh re-runs extraction for a video whose earlier
// extraction came back partial
func (p *JobProcessor) ProcessMetadataRefresh(ctx context.Context, payload map[string]interface{}, logger *slog.Logger) error {
	return p.refreshVideo(ctx, payload, logger, true)
}

func (p *JobProcessor) refreshVideo(ctx context.Context, payload map[string]interface{}, logger *slog.Logger, refresh bool) error {
	videoIDStr, ok := payload["video_id"].(string)
	if !ok {
		return fmt.Errorf("missing or invalid video_id in payload")
	}

	videoID, err := uuid.Parse(videoIDStr)
	if err != nil {
		return fmt.Errorf("invalid video_id format: %w", err)
	}

	video, err := p.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return fmt.Errorf("failed to get video for extraction: %w", err)
	}

	if refresh && !video.IsPartial() {
		logger.Debug("Video already complete, skipping refresh", "video_id", videoID)
		return nil
	}

	logger.Info("Extracting metadata",
		"video_id", videoID,
		"url", video.URL,
		"platform", video.Platform,
	)

	meta, err := p.extractor.Extract(ctx, video.URL)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	// Fill fields the earlier pass missed; never blank out a populated one
	if meta.Title != domain.DefaultTitle || video.Title == "" {
		video.Title = meta.Title
	}
	if video.ThumbnailURL == nil {
		video.ThumbnailURL = meta.ThumbnailURL
	}
	if video.Uploader == nil {
		video.Uploader = meta.Uploader
	}
	if video.Description == nil {
		video.Description = meta.Description
	}
	if len(video.Tags) == 0 {
		video.Tags = meta.Tags
	}
	video.SourceRaw = map[string]interface{}{
		"url":          meta.Raw.URL,
		"extra":        meta.Raw.Extra,
		"refreshed_at": time.Now().Unix(),
	}

	video.ExtractionStatus = domain.ExtractionStatusComplete
	if video.IsPartial() {
		video.ExtractionStatus = domain.ExtractionStatusPartial
	}

	if err := p.videoRepo.Update(ctx, video); err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}

	logger.Info("Metadata extraction completed",
		"video_id", videoID,
		"title", video.Title,
		"status", video.ExtractionStatus,
	)

	return nil
}

// ProcessEventLog writes an analytics event queued by a request path
func (p *JobProcessor) ProcessEventLog(ctx context.Context, payload map[string]interface{}, logger *slog.Logger) error {
	userID, ok := payload["user_id"].(string)
	if !ok {
		return fmt.Errorf("missing or invalid user_id in payload")
	}

	eventType, ok := payload["event_type"].(string)
	if !ok {
		return fmt.Errorf("missing or invalid event_type in payload")
	}

	eventPayload, _ := payload["payload"].(map[string]interface{})

	event := &domain.Event{
		ID:        uuid.New(),
		UserID:    userID,
		EventType: eventType,
		Payload:   eventPayload,
		CreatedAt: time.Now(),
	}

	if err := p.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("failed to record event: %w", err)
	}

	logger.Debug("Event logged", "event_type", eventType, "user_id", userID)
	return nil
}
