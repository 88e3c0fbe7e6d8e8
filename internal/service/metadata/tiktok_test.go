package metadata

import (
	"log/slog"
	"os"
	"testing"
)

// createTestLogger creates a logger for testing
func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Only show errors during tests
	}))
}

const tiktokFixture = `<html><head>
<meta property="og:title" content="TikTok video">
</head><body>
<script id="__UNIVERSAL_DATA_FOR_REHYDRATION__" type="application/json">
{"__DEFAULT_SCOPE__":{"webapp.video-detail":{"itemInfo":{"itemStruct":{
  "desc":"Sunset #vibes #ocean",
  "video":{"cover":"https://cdn.tiktok.example/cover.jpg"},
  "author":{"nickname":"beachwalker"}
}}}}}
</script>
</body></html>`

func TestRefineTikTok(t *testing.T) {
	s := New(createTestLogger(), NewFetcher(createTestLogger()))

	base := ExtractGeneric(tiktokFixture)
	got := s.refineTikTok(tiktokFixture, base)

	if got.Title != "Sunset #vibes #ocean" {
		t.Errorf("Title = %q, want %q", got.Title, "Sunset #vibes #ocean")
	}
	if got.Description != "Sunset #vibes #ocean" {
		t.Errorf("Description = %q, want %q", got.Description, "Sunset #vibes #ocean")
	}
	if got.ThumbnailURL != "https://cdn.tiktok.example/cover.jpg" {
		t.Errorf("ThumbnailURL = %q", got.ThumbnailURL)
	}
	if got.Uploader != "beachwalker" {
		t.Errorf("Uploader = %q, want %q", got.Uploader, "beachwalker")
	}

	tags := DeriveTags(got.Title, got.Description)
	if len(tags) != 2 || tags[0] != "vibes" || tags[1] != "ocean" {
		t.Errorf("derived tags = %v, want [vibes ocean]", tags)
	}
}

func TestRefineTikTokKeepsBaseOnBadPayload(t *testing.T) {
	s := New(createTestLogger(), NewFetcher(createTestLogger()))

	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "Malformed JSON",
			doc:  `<script id="__UNIVERSAL_DATA_FOR_REHYDRATION__" type="application/json">{not json</script>`,
		},
		{
			name: "Missing nested path",
			doc:  `<script id="__UNIVERSAL_DATA_FOR_REHYDRATION__" type="application/json">{"__DEFAULT_SCOPE__":{}}</script>`,
		},
		{
			name: "No script tag at all",
			doc:  `<html><body>nothing embedded</body></html>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := Partial{Title: "generic title", Description: "generic description"}
			got := s.refineTikTok(tt.doc, base)
			if got.Title != "generic title" || got.Description != "generic description" {
				t.Errorf("base was modified: %+v", got)
			}
		})
	}
}
