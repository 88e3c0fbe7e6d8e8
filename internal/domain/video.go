package domain

import (
	"time"

	"github.com/google/uuid"
)

// VideoMetadata is the output record of the extraction pipeline. It is
// produced fresh per request and persisted verbatim by the caller.
type VideoMetadata struct {
	Title        string   `json:"title"`
	Platform     string   `json:"platform"`
	ThumbnailURL *string  `json:"thumbnail_url"`
	Uploader     *string  `json:"uploader"`
	Description  *string  `json:"description"`
	Tags         []string `json:"tags"`
	Raw          RawMeta  `json:"raw"`
}

// RawMeta carries extraction provenance: the original input URL plus any
// auxiliary structured payload (e.g. an oEmbed response) consulted along
// the way, retained for debugging and audit.
type RawMeta struct {
	URL   string                 `json:"url"`
	Extra map[string]interface{} `json:"extra,omitempty"`
}

// DefaultTitle substitutes for a title no strategy could populate
const DefaultTitle = "Untitled"

// Video represents a bookmarked video saved to a user's vault
type Video struct {
	ID       uuid.UUID  `json:"id" db:"id"`
	UserID   string     `json:"user_id" db:"user_id"`
	URL      string     `json:"url" db:"url"`
	Platform string     `json:"platform" db:"platform"`
	Title    string     `json:"title" db:"title"`
	FolderID *uuid.UUID `json:"folder_id" db:"folder_id"`

	ThumbnailURL *string  `json:"thumbnail_url" db:"thumbnail_url"`
	Uploader     *string  `json:"uploader" db:"uploader"`
	Description  *string  `json:"description" db:"description"`
	Tags         []string `json:"tags" db:"tags"`
	Note         *string  `json:"note" db:"note"`
	Mood         *string  `json:"mood" db:"mood"`

	// SourceRaw is the provenance payload from extraction, stored as JSONB
	SourceRaw        map[string]interface{} `json:"source_raw" db:"source_raw"`
	ExtractionStatus string                 `json:"extraction_status" db:"extraction_status"`

	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
}

// Extraction status constants
const (
	ExtractionStatusPending  = "pending"
	ExtractionStatusPartial  = "partial"
	ExtractionStatusComplete = "complete"
	ExtractionStatusFailed   = "failed"
)

// IsPartial reports whether the extraction left display fields unpopulated,
// making the video a candidate for a background refresh pass.
func (v *Video) IsPartial() bool {
	return v.ThumbnailURL == nil || v.Uploader == nil || v.Description == nil
}
