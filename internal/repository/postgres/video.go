package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"vaultly/internal/domain"
)

// VideoRepository implements the domain.VideoRepository interface using PostgreSQL
type VideoRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewVideoRepository creates a new PostgreSQL video repository
func NewVideoRepository(db *sql.DB, logger *slog.Logger) *VideoRepository {
	return &VideoRepository{
		db:     db,
		logger: logger,
	}
}

const videoColumns = `
	id, user_id, url, platform, title, folder_id,
	thumbnail_url, uploader, description, tags, note, mood,
	source_raw, extraction_status,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanVideo reads one row into a domain.Video, handling nullable columns
// and the JSONB provenance payload
func (r *VideoRepository) scanVideo(row rowScanner) (*domain.Video, error) {
	video := &domain.Video{}
	var folderID uuid.NullUUID
	var thumbnailURL, uploader, description, note, mood sql.NullString
	var updatedAt sql.NullTime
	var sourceRawBytes []byte

	err := row.Scan(
		&video.ID,
		&video.UserID,
		&video.URL,
		&video.Platform,
		&video.Title,
		&folderID,
		&thumbnailURL,
		&uploader,
		&description,
		pq.Array(&video.Tags),
		&note,
		&mood,
		&sourceRawBytes,
		&video.ExtractionStatus,
		&video.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Handle nullable fields
	if folderID.Valid {
		video.FolderID = &folderID.UUID
	}
	if thumbnailURL.Valid {
		video.ThumbnailURL = &thumbnailURL.String
	}
	if uploader.Valid {
		video.Uploader = &uploader.String
	}
	if description.Valid {
		video.Description = &description.String
	}
	if note.Valid {
		video.Note = &note.String
	}
	if mood.Valid {
		video.Mood = &mood.String
	}
	if updatedAt.Valid {
		video.UpdatedAt = &updatedAt.Time
	}
	if video.Tags == nil {
		video.Tags = []string{}
	}

	// Convert JSONB bytes to map[string]interface{}
	if len(sourceRawBytes) > 0 {
		var sourceRaw map[string]interface{}
		if err := json.Unmarshal(sourceRawBytes, &sourceRaw); err != nil {
			r.logger.Warn("Failed to unmarshal video source payload",
				"error", err,
				"video_id", video.ID,
			)
			video.SourceRaw = make(map[string]interface{})
		} else {
			video.SourceRaw = sourceRaw
		}
	} else {
		video.SourceRaw = make(map[string]interface{})
	}

	return video, nil
}

// GetByID retrieves a video by its UUID
func (r *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	query := `SELECT` + videoColumns + `
		FROM videos
		WHERE id = $1`

	video, err := r.scanVideo(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			r.logger.Debug("Video not found", "video_id", id)
			return nil, sql.ErrNoRows
		}
		r.logger.Error("Failed to query video",
			"error", err,
			"video_id", id,
		)
		return nil, fmt.Errorf("failed to query video: %w", err)
	}

	return video, nil
}

// GetByURL finds a video by URL within a user's vault (for duplicate detection)
func (r *VideoRepository) GetByURL(ctx context.Context, userID, url string) (*domain.Video, error) {
	query := `SELECT` + videoColumns + `
		FROM videos
		WHERE user_id = $1 AND url = $2
		ORDER BY created_at DESC
		LIMIT 1`

	video, err := r.scanVideo(r.db.QueryRowContext(ctx, query, userID, url))
	if err != nil {
		if err == sql.ErrNoRows {
			r.logger.Debug("No duplicate video found",
				"user_id", userID,
				"url", url,
			)
			return nil, sql.ErrNoRows
		}
		r.logger.Error("Failed to query video by URL",
			"error", err,
			"user_id", userID,
			"url", url,
		)
		return nil, fmt.Errorf("failed to query video by URL: %w", err)
	}

	return video, nil
}

// GetRecentByUser gets the most recent videos for a user, newest first.
// When a cursor timestamp is given, only videos created before it are
// returned, so pages chain without offset drift.
func (r *VideoRepository) GetRecentByUser(ctx context.Context, userID string, cursor *time.Time, limit int) ([]*domain.Video, error) {
	query := `SELECT` + videoColumns + `
		FROM videos
		WHERE user_id = $1 AND ($2::timestamptz IS NULL OR created_at < $2)
		ORDER BY created_at DESC
		LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, userID, cursor, limit)
	if err != nil {
		r.logger.Error("Failed to query recent videos",
			"error", err,
			"user_id", userID,
		)
		return nil, fmt.Errorf("failed to query recent videos: %w", err)
	}
	defer rows.Close()

	return r.collectVideos(rows)
}

// GetByFolder gets videos filed in a folder, newest first
func (r *VideoRepository) GetByFolder(ctx context.Context, folderID uuid.UUID, cursor *time.Time, limit int) ([]*domain.Video, error) {
	query := `SELECT` + videoColumns + `
		FROM videos
		WHERE folder_id = $1 AND ($2::timestamptz IS NULL OR created_at < $2)
		ORDER BY created_at DESC
		LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, folderID, cursor, limit)
	if err != nil {
		r.logger.Error("Failed to query videos by folder",
			"error", err,
			"folder_id", folderID,
		)
		return nil, fmt.Errorf("failed to query videos by folder: %w", err)
	}
	defer rows.Close()

	return r.collectVideos(rows)
}

// Search performs full-text search on a user's videos using the search vector
func (r *VideoRepository) Search(ctx context.Context, userID, searchQuery string, cursor *time.Time, limit int) ([]*domain.Video, error) {
	query := `SELECT` + videoColumns + `
		FROM videos
		WHERE user_id = $1
		  AND search_vector @@ plainto_tsquery('english', $2)
		  AND ($3::timestamptz IS NULL OR created_at < $3)
		ORDER BY created_at DESC
		LIMIT $4`

	rows, err := r.db.QueryContext(ctx, query, userID, searchQuery, cursor, limit)
	if err != nil {
		r.logger.Error("Failed to search videos",
			"error", err,
			"user_id", userID,
			"query", searchQuery,
		)
		return nil, fmt.Errorf("failed to search videos: %w", err)
	}
	defer rows.Close()

	return r.collectVideos(rows)
}

// GetPartial returns videos whose extraction left fields unpopulated
func (r *VideoRepository) GetPartial(ctx context.Context, limit int) ([]*domain.Video, error) {
	query := `SELECT` + videoColumns + `
		FROM videos
		WHERE extraction_status IN ($1, $2)
		ORDER BY created_at ASC
		LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query,
		domain.ExtractionStatusPartial, domain.ExtractionStatusPending, limit)
	if err != nil {
		r.logger.Error("Failed to query partial videos", "error", err)
		return nil, fmt.Errorf("failed to query partial videos: %w", err)
	}
	defer rows.Close()

	return r.collectVideos(rows)
}

func (r *VideoRepository) collectVideos(rows *sql.Rows) ([]*domain.Video, error) {
	videos := make([]*domain.Video, 0)
	for rows.Next() {
		video, err := r.scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video row: %w", err)
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate video rows: %w", err)
	}
	return videos, nil
}

// Create inserts a new video
func (r *VideoRepository) Create(ctx context.Context, video *domain.Video) error {
	query := `
		INSERT INTO videos (
			id, user_id, url, platform, title, folder_id,
			thumbnail_url, uploader, description, tags, note, mood,
			source_raw, extraction_status,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		)`

	sourceRaw := video.SourceRaw
	if sourceRaw == nil {
		sourceRaw = make(map[string]interface{})
	}

	sourceRawJSON, err := json.Marshal(sourceRaw)
	if err != nil {
		r.logger.Error("Failed to marshal video source payload",
			"error", err,
			"video_id", video.ID,
		)
		return fmt.Errorf("failed to marshal video source payload: %w", err)
	}

	tags := video.Tags
	if tags == nil {
		tags = []string{}
	}

	// Set updated_at to same as created_at for new records
	updatedAt := video.CreatedAt
	if video.UpdatedAt != nil {
		updatedAt = *video.UpdatedAt
	}

	_, err = r.db.ExecContext(ctx, query,
		video.ID,
		video.UserID,
		video.URL,
		video.Platform,
		video.Title,
		video.FolderID,
		video.ThumbnailURL,
		video.Uploader,
		video.Description,
		pq.Array(tags),
		video.Note,
		video.Mood,
		sourceRawJSON,
		video.ExtractionStatus,
		video.CreatedAt,
		updatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create video",
			"error", err,
			"video_id", video.ID,
			"url", video.URL,
		)
		return fmt.Errorf("failed to create video: %w", err)
	}

	r.logger.Info("Video created successfully",
		"video_id", video.ID,
		"url", video.URL,
		"platform", video.Platform,
		"user_id", video.UserID,
	)

	return nil
}

// Update modifies an existing video
func (r *VideoRepository) Update(ctx context.Context, video *domain.Video) error {
	query := `
		UPDATE videos SET
			url = $2,
			platform = $3,
			title = $4,
			folder_id = $5,
			thumbnail_url = $6,
			uploader = $7,
			description = $8,
			tags = $9,
			note = $10,
			mood = $11,
			source_raw = $12,
			extraction_status = $13,
			updated_at = $14
		WHERE id = $1`

	sourceRaw := video.SourceRaw
	if sourceRaw == nil {
		sourceRaw = make(map[string]interface{})
	}

	sourceRawJSON, err := json.Marshal(sourceRaw)
	if err != nil {
		r.logger.Error("Failed to marshal video source payload",
			"error", err,
			"video_id", video.ID,
		)
		return fmt.Errorf("failed to marshal video source payload: %w", err)
	}

	tags := video.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now()
	video.UpdatedAt = &now

	_, err = r.db.ExecContext(ctx, query,
		video.ID,
		video.URL,
		video.Platform,
		video.Title,
		video.FolderID,
		video.ThumbnailURL,
		video.Uploader,
		video.Description,
		pq.Array(tags),
		video.Note,
		video.Mood,
		sourceRawJSON,
		video.ExtractionStatus,
		video.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update video",
			"error", err,
			"video_id", video.ID,
		)
		return fmt.Errorf("failed to update video: %w", err)
	}

	r.logger.Info("Video updated successfully",
		"video_id", video.ID,
		"url", video.URL,
		"status", video.ExtractionStatus,
	)

	return nil
}

// Delete removes a video by ID
func (r *VideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM videos WHERE id = $1", id)
	if err != nil {
		r.logger.Error("Failed to delete video",
			"error", err,
			"video_id", id,
		)
		return fmt.Errorf("failed to delete video: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("video not found: %s", id)
	}

	r.logger.Info("Video deleted", "video_id", id)
	return nil
}

// UpdateExtractionStatus updates the metadata extraction status
func (r *VideoRepository) UpdateExtractionStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `
		UPDATE videos
		SET extraction_status = $1, updated_at = NOW()
		WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		r.logger.Error("Failed to update extraction status",
			"error", err,
			"video_id", id,
			"status", status,
		)
		return fmt.Errorf("failed to update extraction status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Failed to get rows affected", "error", err)
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		r.logger.Warn("No video found for status update", "video_id", id)
		return fmt.Errorf("video not found: %s", id)
	}

	r.logger.Info("Extraction status updated successfully",
		"video_id", id,
		"status", status,
	)

	return nil
}
