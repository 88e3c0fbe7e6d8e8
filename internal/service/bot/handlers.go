package bot

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"vaultly/internal/domain"
	"vaultly/internal/pkg/urldetector"
)

// onMessageCreate saves any supported video link in a message to the
// author's vault
func (s *BotService) onMessageCreate(session *discordgo.Session, message *discordgo.MessageCreate) {
	// Ignore bot messages
	if message.Author.Bot {
		return
	}

	urls := s.urlDetector.DetectURLs(message.Content)
	if len(urls) == 0 {
		return
	}

	s.logger.Info("Detected video URLs in message",
		"message_id", message.ID,
		"channel_id", message.ChannelID,
		"user_id", message.Author.ID,
		"url_count", len(urls),
	)

	saved := 0
	for _, urlInfo := range urls {
		if err := s.saveDetectedURL(message, urlInfo); err != nil {
			s.logger.Error("Failed to save URL",
				"error", err,
				"url", urlInfo.URL,
				"message_id", message.ID,
			)
		} else {
			saved++
		}
	}

	if saved > 0 {
		// Emoji reaction is the save confirmation
		if err := session.MessageReactionAdd(message.ChannelID, message.ID, "📌"); err != nil {
			s.logger.Warn("Failed to add emoji reaction",
				"error", err,
				"message_id", message.ID,
			)
		}
	}
}

// saveDetectedURL extracts metadata and persists the video, keyed by the
// Discord user who posted it
func (s *BotService) saveDetectedURL(message *discordgo.MessageCreate, urlInfo urldetector.URLInfo) error {
	ctx, cancel := context.WithTimeout(s.ctx, 30*time.Second)
	defer cancel()

	userID := message.Author.ID

	normalized, err := urldetector.NormalizeURL(urlInfo.URL)
	if err != nil {
		return err
	}

	// Skip URLs already in this user's vault
	if existing, err := s.videoRepo.GetByURL(ctx, userID, normalized); err == nil {
		s.logger.Debug("Video already saved",
			"video_id", existing.ID,
			"user_id", userID,
		)
		return nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	meta, err := s.extractor.Extract(ctx, normalized)
	if err != nil {
		return err
	}

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
		SourceRaw: map[string]interface{}{
			"url":                meta.Raw.URL,
			"extra":              meta.Raw.Extra,
			"discord_message_id": message.ID,
			"discord_channel_id": message.ChannelID,
		},
		CreatedAt: time.Now(),
	}

	video.ExtractionStatus = domain.ExtractionStatusComplete
	if video.IsPartial() {
		video.ExtractionStatus = domain.ExtractionStatusPartial
	}

	if err := s.videoRepo.Create(ctx, video); err != nil {
		return err
	}

	if err := s.queueRepo.Enqueue(ctx, domain.JobTypeLogEvent, map[string]interface{}{
		"user_id":    userID,
		"event_type": domain.EventSaveVideo,
		"payload": map[string]interface{}{
			"video_id": video.ID.String(),
			"platform": video.Platform,
			"source":   "discord",
		},
	}); err != nil {
		s.logger.Warn("Failed to enqueue save event", "error", err)
	}

	if video.ExtractionStatus == domain.ExtractionStatusPartial {
		if err := s.queueRepo.Enqueue(ctx, domain.JobTypeRefreshMetadata, map[string]interface{}{
			"video_id": video.ID.String(),
		}); err != nil {
			s.logger.Warn("Failed to enqueue refresh job", "error", err)
		}
	}

	s.logger.Info("Video saved from Discord",
		"video_id", video.ID,
		"user_id", userID,
		"platform", video.Platform,
		"title", video.Title,
	)

	return nil
}
