package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRefineYouTubeFromOEmbedStub(t *testing.T) {
	oembedStub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Errorf("format query = %q, want json", got)
		}
		if got := r.URL.Query().Get("url"); got == "" {
			t.Error("missing url query parameter")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"title":"X #shorts","thumbnail_url":"http://t","author_name":"Y"}`))
	}))
	defer oembedStub.Close()

	s := New(createTestLogger(), NewFetcher(createTestLogger()))
	s.oembedEndpoint = oembedStub.URL

	// No page body needed: oEmbed alone should populate the record
	got := s.refineYouTube(context.Background(), "https://www.youtube.com/watch?v=abc", "", Partial{})

	if got.Title != "X #shorts" {
		t.Errorf("Title = %q, want %q", got.Title, "X #shorts")
	}
	if got.ThumbnailURL != "http://t" {
		t.Errorf("ThumbnailURL = %q, want %q", got.ThumbnailURL, "http://t")
	}
	if got.Uploader != "Y" {
		t.Errorf("Uploader = %q, want %q", got.Uploader, "Y")
	}
	if got.Extra == nil || got.Extra["oembed"] == nil {
		t.Error("oEmbed response not retained in Extra")
	}

	tags := DeriveTags(got.Title, got.Description)
	if len(tags) != 1 || tags[0] != "shorts" {
		t.Errorf("derived tags = %v, want [shorts]", tags)
	}
}

func TestRefineYouTubeFallsBackWhenOEmbedFails(t *testing.T) {
	oembedStub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer oembedStub.Close()

	s := New(createTestLogger(), NewFetcher(createTestLogger()))
	s.oembedEndpoint = oembedStub.URL

	base := Partial{Title: "generic title", Uploader: "generic channel"}
	got := s.refineYouTube(context.Background(), "https://www.youtube.com/watch?v=abc", "", base)

	if got.Title != "generic title" || got.Uploader != "generic channel" {
		t.Errorf("oEmbed failure should keep generic result, got %+v", got)
	}
}

func TestExtractInlineDescription(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "Escaped newline and quote",
			doc:  `<script>var x = {"description":"line one\nline \"two\""};</script>`,
			want: "line one\nline \"two\"",
		},
		{
			name: "Whitespace around colon",
			doc:  `{"description" : "plain"}`,
			want: "plain",
		},
		{
			name: "Absent fragment",
			doc:  `<html>no embedded json</html>`,
			want: "",
		},
		{
			name: "Empty description",
			doc:  `{"description":""}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractInlineDescription(tt.doc)
			if got != tt.want {
				t.Errorf("extractInlineDescription() = %q, want %q", got, tt.want)
			}
		})
	}
}
