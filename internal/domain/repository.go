package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// VideoRepository defines the interface for video data operations
type VideoRepository interface {
	// GetByID retrieves a video by its UUID
	GetByID(ctx context.Context, id uuid.UUID) (*Video, error)

	// GetByURL finds a video by URL within a user's vault (for duplicate detection)
	GetByURL(ctx context.Context, userID, url string) (*Video, error)

	// GetRecentByUser gets the most recent videos for a user, newest first,
	// starting after the cursor timestamp when one is given
	GetRecentByUser(ctx context.Context, userID string, cursor *time.Time, limit int) ([]*Video, error)

	// GetByFolder gets videos filed in a folder
	GetByFolder(ctx context.Context, folderID uuid.UUID, cursor *time.Time, limit int) ([]*Video, error)

	// Search performs full-text search on a user's videos
	Search(ctx context.Context, userID, query string, cursor *time.Time, limit int) ([]*Video, error)

	// GetPartial returns videos whose extraction left fields unpopulated
	GetPartial(ctx context.Context, limit int) ([]*Video, error)

	// Create inserts a new video
	Create(ctx context.Context, video *Video) error

	// Update modifies an existing video
	Update(ctx context.Context, video *Video) error

	// Delete removes a video by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdateExtractionStatus updates the metadata extraction status
	UpdateExtractionStatus(ctx context.Context, id uuid.UUID, status string) error
}

// FolderRepository defines the interface for folder data operations
type FolderRepository interface {
	// GetByID retrieves a folder by its UUID
	GetByID(ctx context.Context, id uuid.UUID) (*Folder, error)

	// GetByUser retrieves all folders belonging to a user
	GetByUser(ctx context.Context, userID string) ([]*Folder, error)

	// GetByName finds a user's folder by exact name
	GetByName(ctx context.Context, userID, name string) (*Folder, error)

	// Create inserts a new folder
	Create(ctx context.Context, folder *Folder) error

	// Update modifies an existing folder
	Update(ctx context.Context, folder *Folder) error

	// Delete removes a folder by ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// EventRepository defines the interface for analytics event writes
type EventRepository interface {
	// Create inserts an analytics event
	Create(ctx context.Context, event *Event) error
}

// QueueRepository defines the interface for job queue operations
type QueueRepository interface {
	// Enqueue adds a new job to the queue
	Enqueue(ctx context.Context, jobType string, payload interface{}) error

	// Dequeue retrieves the next job from the queue
	Dequeue(ctx context.Context, jobType string) (*QueueJob, error)

	// Complete marks a job as completed
	Complete(ctx context.Context, jobID string) error

	// Fail marks a job as failed with error details
	Fail(ctx context.Context, jobID string, errorMsg string) error

	// GetPendingCount returns the number of pending jobs
	GetPendingCount(ctx context.Context, jobType string) (int, error)
}

// QueueJob represents a job in the processing queue
type QueueJob struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Payload   map[string]interface{} `json:"payload"`
	Status    string                 `json:"status"`
	CreatedAt string                 `json:"created_at"`
	UpdatedAt *string                `json:"updated_at"`
}

// Job types
const (
	JobTypeExtractMetadata = "extract_metadata"
	JobTypeRefreshMetadata = "refresh_metadata"
	JobTypeLogEvent        = "log_event"
)

// Job statuses
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)
