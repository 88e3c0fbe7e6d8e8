package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vaultly/internal/config"
	"vaultly/internal/domain"
)

// Queue is the worker's view of the job queue: the shared repository
// operations plus retry promotion
type Queue interface {
	domain.QueueRepository
	ProcessRetryJobs(ctx context.Context, jobType string) error
}

// WorkerService processes background jobs
type WorkerService struct {
	config *config.Config
	logger *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc

	videoRepo domain.VideoRepository
	queueRepo Queue

	processor *JobProcessor

	stats *WorkerStats
}

// WorkerStats tracks worker performance metrics
type WorkerStats struct {
	JobsProcessed  int64
	JobsSucceeded  int64
	JobsFailed     int64
	LastJobTime    time.Time
	AverageJobTime time.Duration
}

// New creates a new worker service
func New(
	cfg *config.Config,
	logger *slog.Logger,
	videoRepo domain.VideoRepository,
	queueRepo Queue,
	processor *JobProcessor,
) (*WorkerService, error) {
	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerService{
		config:    cfg,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
		videoRepo: videoRepo,
		queueRepo: queueRepo,
		processor: processor,
		stats:     &WorkerStats{},
	}, nil
}

// Start begins processing jobs and blocks until interrupted
func (w *WorkerService) Start() error {
	w.logger.Info("Starting worker service...")

	go w.processJobs()
	go w.promoteRetries()
	go w.sweepPartials()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	w.logger.Info("Worker service is running. Press Ctrl+C to stop.")
	<-stop

	w.logger.Info("Shutting down worker service...")
	return w.Stop()
}

// Stop gracefully shuts down the worker service
func (w *WorkerService) Stop() error {
	w.logger.Info("Stopping worker service...")
	w.cancel()
	w.logger.Info("Worker service stopped")
	return nil
}

var workerJobTypes = []string{
	domain.JobTypeExtractMetadata,
	domain.JobTypeRefreshMetadata,
	domain.JobTypeLogEvent,
}

// processJobs continuously processes jobs from the queue
func (w *WorkerService) processJobs() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info("Job processing stopped")
			return
		case <-ticker.C:
			for _, jobType := range workerJobTypes {
				w.processJobType(jobType)
			}
		}
	}
}

// promoteRetries moves backed-off jobs back into their queues once due
func (w *WorkerService) promoteRetries() {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			for _, jobType := range workerJobTypes {
				if err := w.queueRepo.ProcessRetryJobs(w.ctx, jobType); err != nil {
					w.logger.Error("Failed to promote retry jobs",
						"error", err,
						"job_type", jobType,
					)
				}
			}
		}
	}
}

// sweepPartials periodically re-queues videos whose extraction left
// fields unpopulated, so fail-open saves eventually fill in
func (w *WorkerService) sweepPartials() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			videos, err := w.videoRepo.GetPartial(w.ctx, 50)
			if err != nil {
				w.logger.Error("Failed to list partial videos", "error", err)
				continue
			}

			for _, video := range videos {
				if err := w.queueRepo.Enqueue(w.ctx, domain.JobTypeRefreshMetadata, map[string]interface{}{
					"video_id": video.ID.String(),
				}); err != nil {
					w.logger.Error("Failed to enqueue refresh job",
						"error", err,
						"video_id", video.ID,
					)
				}
			}

			if len(videos) > 0 {
				w.logger.Info("Queued partial videos for refresh", "count", len(videos))
			}
		}
	}
}

// processJobType drains up to a batch of pending jobs of one type
func (w *WorkerService) processJobType(jobType string) {
	ctx := w.ctx

	pendingCount, err := w.queueRepo.GetPendingCount(ctx, jobType)
	if err != nil {
		w.logger.Error("Failed to get pending job count",
			"error", err,
			"job_type", jobType,
		)
		return
	}

	if pendingCount == 0 {
		return
	}

	w.logger.Debug("Processing pending jobs",
		"job_type", jobType,
		"count", pendingCount,
	)

	// Limit to 10 per cycle to avoid starving the other job types
	maxJobs := 10
	if pendingCount < maxJobs {
		maxJobs = pendingCount
	}

	for i := 0; i < maxJobs; i++ {
		job, err := w.queueRepo.Dequeue(ctx, jobType)
		if err != nil {
			w.logger.Error("Failed to dequeue job",
				"error", err,
				"job_type", jobType,
			)
			continue
		}

		if job == nil {
			break // No more jobs
		}

		w.processJob(job)
	}
}

// processJob processes a single job
func (w *WorkerService) processJob(job *domain.QueueJob) {
	startTime := time.Now()
	jobLogger := w.logger.With(
		"job_id", job.ID,
		"job_type", job.Type,
	)

	jobLogger.Info("Processing job")

	var processingErr error
	switch job.Type {
	case domain.JobTypeExtractMetadata:
		processingErr = w.processor.ProcessMetadataExtraction(w.ctx, job.Payload, jobLogger)
	case domain.JobTypeRefreshMetadata:
		processingErr = w.processor.ProcessMetadataRefresh(w.ctx, job.Payload, jobLogger)
	case domain.JobTypeLogEvent:
		processingErr = w.processor.ProcessEventLog(w.ctx, job.Payload, jobLogger)
	default:
		processingErr = fmt.Errorf("unknown job type: %s", job.Type)
	}

	if processingErr != nil {
		jobLogger.Error("Job processing failed", "error", processingErr)

		if err := w.queueRepo.Fail(w.ctx, job.ID, processingErr.Error()); err != nil {
			jobLogger.Error("Failed to mark job as failed", "error", err)
		}

		w.stats.JobsFailed++
	} else {
		jobLogger.Info("Job processed successfully")

		if err := w.queueRepo.Complete(w.ctx, job.ID); err != nil {
			jobLogger.Error("Failed to mark job as completed", "error", err)
		}

		w.stats.JobsSucceeded++
	}

	w.stats.JobsProcessed++
	w.stats.LastJobTime = time.Now()

	jobDuration := time.Since(startTime)
	if w.stats.JobsProcessed > 1 {
		w.stats.AverageJobTime = time.Duration(
			(int64(w.stats.AverageJobTime) + int64(jobDuration)) / w.stats.JobsProcessed,
		)
	} else {
		w.stats.AverageJobTime = jobDuration
	}

	jobLogger.Debug("Job processing completed",
		"duration", jobDuration,
		"success", processingErr == nil,
	)
}

// GetStats returns current worker statistics
func (w *WorkerService) GetStats() *WorkerStats {
	return w.stats
}

// HealthCheck performs a health check on the worker service
func (w *WorkerService) HealthCheck() error {
	if w.ctx.Err() != nil {
		return fmt.Errorf("worker context cancelled: %w", w.ctx.Err())
	}

	if _, err := w.queueRepo.GetPendingCount(w.ctx, domain.JobTypeRefreshMetadata); err != nil {
		return fmt.Errorf("queue connectivity check failed: %w", err)
	}

	return nil
}
