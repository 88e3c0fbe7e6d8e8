package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"vaultly/internal/domain"
)

// QueueStats reports queue depth and throughput per job type
type QueueStats interface {
	GetQueueStats(ctx context.Context, jobType string) (map[string]int64, error)
}

// EventStats reports analytics event totals grouped by type
type EventStats interface {
	CountByType(ctx context.Context) (map[string]int, error)
}

type StatsHandler struct {
	logger     *slog.Logger
	queueStats QueueStats
	events     EventStats
}

func NewStatsHandler(logger *slog.Logger, queueStats QueueStats, events EventStats) *StatsHandler {
	return &StatsHandler{
		logger:     logger,
		queueStats: queueStats,
		events:     events,
	}
}

func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	queues := make(map[string]map[string]int64)
	for _, jobType := range []string{
		domain.JobTypeExtractMetadata,
		domain.JobTypeRefreshMetadata,
		domain.JobTypeLogEvent,
	} {
		stats, err := h.queueStats.GetQueueStats(ctx, jobType)
		if err != nil {
			h.logger.Warn("Failed to read queue stats", "job_type", jobType, "error", err)
			continue
		}
		queues[jobType] = stats
	}

	events, err := h.events.CountByType(ctx)
	if err != nil {
		h.logger.Warn("Failed to read event counts", "error", err)
		events = map[string]int{}
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"queues":    queues,
		"events":    events,
	})
}
