package urldetector

import (
	"testing"

	"vaultly/internal/domain"
)

func TestDetectURLs(t *testing.T) {
	d := New()

	tests := []struct {
		name         string
		content      string
		wantURL      string
		wantPlatform string
	}{
		{
			name:         "YouTube link in a message",
			content:      "check this out https://www.youtube.com/watch?v=dQw4w9WgXcQ so good",
			wantURL:      "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantPlatform: domain.PlatformYouTube,
		},
		{
			name:         "Short youtu.be link",
			content:      "https://youtu.be/dQw4w9WgXcQ",
			wantURL:      "https://youtu.be/dQw4w9WgXcQ",
			wantPlatform: domain.PlatformYouTube,
		},
		{
			name:         "TikTok link with trailing punctuation",
			content:      "look: https://www.tiktok.com/@user/video/123456789!",
			wantURL:      "https://www.tiktok.com/@user/video/123456789",
			wantPlatform: domain.PlatformTikTok,
		},
		{
			name:         "Instagram reel",
			content:      "https://instagram.com/reel/abc123/",
			wantURL:      "https://instagram.com/reel/abc123/",
			wantPlatform: domain.PlatformInstagram,
		},
		{
			name:         "fb.watch share link",
			content:      "https://fb.watch/abc123/",
			wantURL:      "https://fb.watch/abc123/",
			wantPlatform: domain.PlatformFacebook,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			urls := d.DetectURLs(tt.content)
			if len(urls) != 1 {
				t.Fatalf("DetectURLs() found %d URLs, want 1", len(urls))
			}
			if urls[0].URL != tt.wantURL {
				t.Errorf("URL = %q, want %q", urls[0].URL, tt.wantURL)
			}
			if urls[0].Platform != tt.wantPlatform {
				t.Errorf("Platform = %q, want %q", urls[0].Platform, tt.wantPlatform)
			}
		})
	}
}

func TestDetectURLsNoMatch(t *testing.T) {
	d := New()

	if urls := d.DetectURLs("nothing to see here, just words"); len(urls) != 0 {
		t.Errorf("DetectURLs() = %v, want none", urls)
	}
	if urls := d.DetectURLs("https://example.com/video/123"); len(urls) != 0 {
		t.Errorf("DetectURLs() = %v, want none for unsupported host", urls)
	}
}

func TestDetectURLsDeduplicates(t *testing.T) {
	d := New()

	content := "https://youtu.be/abc https://youtu.be/abc"
	if urls := d.DetectURLs(content); len(urls) != 1 {
		t.Errorf("DetectURLs() found %d URLs, want 1 after dedup", len(urls))
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "Strips tracking params",
			input: "https://www.youtube.com/watch?v=abc&utm_source=share&si=xyz",
			want:  "https://youtube.com/watch?v=abc",
		},
		{
			name:  "Adds protocol and lowercases host",
			input: "YouTube.com/watch?v=abc",
			want:  "https://youtube.com/watch?v=abc",
		},
		{
			name:  "Strips igshid from Instagram links",
			input: "https://www.instagram.com/reel/abc/?igshid=MzRlODBiNWFlZA==",
			want:  "https://instagram.com/reel/abc/",
		},
		{
			name:  "Strips fbclid",
			input: "https://facebook.com/watch/?v=123&fbclid=IwAR0abc",
			want:  "https://facebook.com/watch/?v=123",
		},
		{
			name:    "Empty URL",
			input:   "   ",
			wantErr: true,
		},
		{
			name:    "No domain",
			input:   "not-a-url",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("NormalizeURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFixMalformedQueryString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Double-encoded share URL",
			input: "https://youtube.com/watch?v=D1avYj7q42A?si=5c2KrgyqSfo_0jSE",
			want:  "https://youtube.com/watch?v=D1avYj7q42A&si=5c2KrgyqSfo_0jSE",
		},
		{
			name:  "Already correct URL",
			input: "https://youtube.com/watch?v=D1avYj7q42A&si=5c2KrgyqSfo_0jSE",
			want:  "https://youtube.com/watch?v=D1avYj7q42A&si=5c2KrgyqSfo_0jSE",
		},
		{
			name:  "No query string",
			input: "https://youtube.com/watch",
			want:  "https://youtube.com/watch",
		},
		{
			name:  "Multiple malformed ? in query",
			input: "https://example.com/path?a=1?b=2?c=3",
			want:  "https://example.com/path?a=1&b=2&c=3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fixMalformedQueryString(tt.input)
			if got != tt.want {
				t.Errorf("fixMalformedQueryString() = %v, want %v", got, tt.want)
			}
		})
	}
}
