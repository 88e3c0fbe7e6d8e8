package worker

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"vaultly/internal/domain"
	"vaultly/internal/service/metadata"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeVideoRepo struct {
	video   *domain.Video
	updated bool
}

func (f *fakeVideoRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	if f.video != nil && f.video.ID == id {
		return f.video, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeVideoRepo) GetByURL(ctx context.Context, userID, url string) (*domain.Video, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeVideoRepo) GetRecentByUser(ctx context.Context, userID string, cursor *time.Time, limit int) ([]*domain.Video, error) {
	return nil, nil
}

func (f *fakeVideoRepo) GetByFolder(ctx context.Context, folderID uuid.UUID, cursor *time.Time, limit int) ([]*domain.Video, error) {
	return nil, nil
}

func (f *fakeVideoRepo) Search(ctx context.Context, userID, query string, cursor *time.Time, limit int) ([]*domain.Video, error) {
	return nil, nil
}

func (f *fakeVideoRepo) GetPartial(ctx context.Context, limit int) ([]*domain.Video, error) {
	return nil, nil
}

func (f *fakeVideoRepo) Create(ctx context.Context, video *domain.Video) error { return nil }

func (f *fakeVideoRepo) Update(ctx context.Context, video *domain.Video) error {
	f.video = video
	f.updated = true
	return nil
}

func (f *fakeVideoRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeVideoRepo) UpdateExtractionStatus(ctx context.Context, id uuid.UUID, status string) error {
	return nil
}

type fakeEventRepo struct {
	events []*domain.Event
}

func (f *fakeEventRepo) Create(ctx context.Context, event *domain.Event) error {
	f.events = append(f.events, event)
	return nil
}

func metadataPage(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head>
			<meta property="og:title" content="Full Title">
			<meta property="og:description" content="Now with a description">
			<meta property="og:image" content="https://cdn.example.com/t.jpg">
			<meta property="og:site_name" content="SomeChannel">
		</head><body></body></html>`))
	}))
}

func TestProcessMetadataRefreshFillsMissingFields(t *testing.T) {
	page := metadataPage(t)
	defer page.Close()

	existingTitle := "Saved by hand"
	repo := &fakeVideoRepo{video: &domain.Video{
		ID:               uuid.New(),
		UserID:           "user-1",
		URL:              page.URL,
		Platform:         domain.PlatformUnknown,
		Title:            existingTitle,
		ExtractionStatus: domain.ExtractionStatusPartial,
	}}

	logger := testLogger()
	p := NewJobProcessor(logger, repo, &fakeEventRepo{}, metadata.New(logger, metadata.NewFetcher(logger)))

	payload := map[string]interface{}{"video_id": repo.video.ID.String()}
	if err := p.ProcessMetadataRefresh(context.Background(), payload, logger); err != nil {
		t.Fatalf("ProcessMetadataRefresh() error = %v", err)
	}

	if !repo.updated {
		t.Fatal("video was never updated")
	}
	if repo.video.Title != "Full Title" {
		t.Errorf("title = %q, want %q", repo.video.Title, "Full Title")
	}
	if repo.video.Description == nil || *repo.video.Description != "Now with a description" {
		t.Errorf("description = %v, want filled", repo.video.Description)
	}
	if repo.video.ThumbnailURL == nil {
		t.Error("thumbnail was not filled in")
	}
	if repo.video.ExtractionStatus != domain.ExtractionStatusComplete {
		t.Errorf("status = %q, want %q", repo.video.ExtractionStatus, domain.ExtractionStatusComplete)
	}
}

func TestProcessMetadataRefreshSkipsCompleteVideos(t *testing.T) {
	thumb := "https://cdn.example.com/t.jpg"
	uploader := "SomeChannel"
	desc := "done"
	repo := &fakeVideoRepo{video: &domain.Video{
		ID:               uuid.New(),
		URL:              "https://example.com/watch",
		Title:            "Already complete",
		ThumbnailURL:     &thumb,
		Uploader:         &uploader,
		Description:      &desc,
		ExtractionStatus: domain.ExtractionStatusComplete,
	}}

	logger := testLogger()
	p := NewJobProcessor(logger, repo, &fakeEventRepo{}, metadata.New(logger, metadata.NewFetcher(logger)))

	payload := map[string]interface{}{"video_id": repo.video.ID.String()}
	if err := p.ProcessMetadataRefresh(context.Background(), payload, logger); err != nil {
		t.Fatalf("ProcessMetadataRefresh() error = %v", err)
	}
	if repo.updated {
		t.Error("complete video should not be re-extracted")
	}
}

func TestProcessEventLog(t *testing.T) {
	events := &fakeEventRepo{}
	logger := testLogger()
	p := NewJobProcessor(logger, &fakeVideoRepo{}, events, metadata.New(logger, metadata.NewFetcher(logger)))

	payload := map[string]interface{}{
		"user_id":    "user-1",
		"event_type": domain.EventSaveVideo,
		"payload":    map[string]interface{}{"platform": "youtube"},
	}
	if err := p.ProcessEventLog(context.Background(), payload, logger); err != nil {
		t.Fatalf("ProcessEventLog() error = %v", err)
	}

	if len(events.events) != 1 {
		t.Fatalf("recorded events = %d, want 1", len(events.events))
	}
	e := events.events[0]
	if e.EventType != domain.EventSaveVideo || e.UserID != "user-1" {
		t.Errorf("event = %+v, want save event for user-1", e)
	}
}

func TestProcessEventLogRejectsBadPayload(t *testing.T) {
	logger := testLogger()
	p := NewJobProcessor(logger, &fakeVideoRepo{}, &fakeEventRepo{}, metadata.New(logger, metadata.NewFetcher(logger)))

	tests := []struct {
		name    string
		payload map[string]interface{}
	}{
		{"Missing user_id", map[string]interface{}{"event_type": domain.EventSaveVideo}},
		{"Missing event_type", map[string]interface{}{"user_id": "user-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := p.ProcessEventLog(context.Background(), tt.payload, logger); err == nil {
				t.Error("expected an error for an incomplete payload")
			}
		})
	}
}
