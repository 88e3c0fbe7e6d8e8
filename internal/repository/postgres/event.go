package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"vaultly/internal/domain"
)

// EventRepository implements the domain.EventRepository interface using PostgreSQL
type EventRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewEventRepository creates a new PostgreSQL event repository
func NewEventRepository(db *sql.DB, logger *slog.Logger) *EventRepository {
	return &EventRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts an analytics event
func (r *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (id, user_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	payload := event.Payload
	if payload == nil {
		payload = make(map[string]interface{})
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		r.logger.Error("Failed to marshal event payload",
			"error", err,
			"event_id", event.ID,
		)
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		event.ID,
		event.UserID,
		event.EventType,
		payloadJSON,
		event.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create event",
			"error", err,
			"event_type", event.EventType,
		)
		return fmt.Errorf("failed to create event: %w", err)
	}

	r.logger.Debug("Event recorded",
		"event_id", event.ID,
		"event_type", event.EventType,
		"user_id", event.UserID,
	)

	return nil
}

// CountByType returns event counts grouped by type (for the stats endpoint)
func (r *EventRepository) CountByType(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT event_type, COUNT(*) FROM events GROUP BY event_type")
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var eventType string
		var count int
		if err := rows.Scan(&eventType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan event count: %w", err)
		}
		counts[eventType] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate event counts: %w", err)
	}

	return counts, nil
}
