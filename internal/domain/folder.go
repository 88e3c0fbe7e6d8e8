package domain

import (
	"time"

	"github.com/google/uuid"
)

// Folder groups a user's saved videos
type Folder struct {
	ID       uuid.UUID `json:"id" db:"id"`
	UserID   string    `json:"user_id" db:"user_id"`
	Name     string    `json:"name" db:"name"`
	IsPublic bool      `json:"is_public" db:"is_public"`

	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
}

// Event is an analytics record written alongside user actions
type Event struct {
	ID        uuid.UUID              `json:"id" db:"id"`
	UserID    string                 `json:"user_id" db:"user_id"`
	EventType string                 `json:"event_type" db:"event_type"`
	Payload   map[string]interface{} `json:"payload" db:"payload"`
	CreatedAt time.Time              `json:"created_at" db:"created_at"`
}

// Event type constants
const (
	EventSaveVideo    = "save_video"
	EventFolderCreate = "folder_create"
	EventAISuggestion = "ai_suggestion_generated"
)
