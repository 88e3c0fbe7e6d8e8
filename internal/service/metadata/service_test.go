package metadata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"vaultly/internal/domain"
)

func TestExtractGenericPipeline(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<meta property="og:title" content="A &amp; B #clip">
			<meta property="og:description" content="some caption">
			<meta property="og:image" content="https://cdn.example.com/t.jpg">
		</head></html>`))
	}))
	defer page.Close()

	s := New(createTestLogger(), NewFetcher(createTestLogger()))

	meta, err := s.Extract(context.Background(), page.URL)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if meta.Platform != domain.PlatformUnknown {
		t.Errorf("Platform = %q, want unknown", meta.Platform)
	}
	if meta.Title != "A & B #clip" {
		t.Errorf("Title = %q, want %q", meta.Title, "A & B #clip")
	}
	if meta.ThumbnailURL == nil || *meta.ThumbnailURL != "https://cdn.example.com/t.jpg" {
		t.Errorf("ThumbnailURL = %v", meta.ThumbnailURL)
	}
	if len(meta.Tags) != 1 || meta.Tags[0] != "clip" {
		t.Errorf("Tags = %v, want [clip]", meta.Tags)
	}
	if meta.Raw.URL != page.URL {
		t.Errorf("Raw.URL = %q, want %q", meta.Raw.URL, page.URL)
	}
}

func TestExtractDefaultsTitleWhenNothingFound(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>bare page</body></html>`))
	}))
	defer page.Close()

	s := New(createTestLogger(), NewFetcher(createTestLogger()))

	meta, err := s.Extract(context.Background(), page.URL)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if meta.Title != domain.DefaultTitle {
		t.Errorf("Title = %q, want %q", meta.Title, domain.DefaultTitle)
	}
	if meta.Description != nil || meta.ThumbnailURL != nil || meta.Uploader != nil {
		t.Errorf("missing candidates should leave fields nil: %+v", meta)
	}
}

func TestExtractPropagatesFetchFailure(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer page.Close()

	s := New(createTestLogger(), NewFetcher(createTestLogger()))

	meta, err := s.Extract(context.Background(), page.URL)
	if err == nil {
		t.Fatal("Extract() expected error for HTTP 500")
	}
	if meta != nil {
		t.Errorf("no partial metadata should be returned on failure, got %+v", meta)
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("error type = %T, want *FetchError", err)
	}
	if fetchErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", fetchErr.StatusCode)
	}
}

func TestExtractFacebookFailsOpen(t *testing.T) {
	// The platform classifier matches on substrings, so a URL whose path
	// carries facebook.com classifies as facebook even against a stub host.
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer page.Close()

	s := New(createTestLogger(), NewFetcher(createTestLogger()))

	blockedURL := page.URL + "/facebook.com/watch"
	meta, err := s.Extract(context.Background(), blockedURL)
	if err != nil {
		t.Fatalf("facebook fetch failure must not propagate, got %v", err)
	}

	if meta.Title != "Facebook Video" {
		t.Errorf("Title = %q, want %q", meta.Title, "Facebook Video")
	}
	if meta.Platform != domain.PlatformFacebook {
		t.Errorf("Platform = %q, want facebook", meta.Platform)
	}
	if meta.Uploader == nil || *meta.Uploader != "Facebook" {
		t.Errorf("Uploader = %v, want Facebook", meta.Uploader)
	}
	if meta.ThumbnailURL != nil {
		t.Errorf("ThumbnailURL = %v, want nil", meta.ThumbnailURL)
	}
	if meta.Description == nil || *meta.Description == "" {
		t.Error("fallback record should carry an explanatory description")
	}
	if len(meta.Tags) != 0 {
		t.Errorf("Tags = %v, want empty", meta.Tags)
	}
}

func TestFetcherProfiles(t *testing.T) {
	var gotUserAgent string
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte("ok"))
	}))
	defer page.Close()

	f := NewFetcher(createTestLogger())

	tests := []struct {
		name          string
		platform      string
		wantUserAgent string
	}{
		{"Facebook gets crawler identity", domain.PlatformFacebook, crawlerUserAgent},
		{"Instagram gets crawler identity", domain.PlatformInstagram, crawlerUserAgent},
		{"YouTube gets browser identity", domain.PlatformYouTube, browserUserAgent},
		{"Unknown gets bot identity", domain.PlatformUnknown, botUserAgent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.Fetch(context.Background(), page.URL, tt.platform); err != nil {
				t.Fatalf("Fetch() error = %v", err)
			}
			if gotUserAgent != tt.wantUserAgent {
				t.Errorf("User-Agent = %q, want %q", gotUserAgent, tt.wantUserAgent)
			}
		})
	}
}
