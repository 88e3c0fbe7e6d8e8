package domain

import "testing"

func TestDetectPlatformFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"YouTube watch URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", PlatformYouTube},
		{"YouTube short URL", "https://youtu.be/dQw4w9WgXcQ", PlatformYouTube},
		{"Mixed-case domain", "https://www.YouTube.com/watch?v=abc", PlatformYouTube},
		{"TikTok video", "https://www.tiktok.com/@user/video/1234567890", PlatformTikTok},
		{"TikTok mobile share", "https://vm.tiktok.com/ZMabcdef/", PlatformTikTok},
		{"Instagram reel", "https://www.instagram.com/reel/Cabc123/", PlatformInstagram},
		{"Facebook watch", "https://www.facebook.com/watch/?v=123456", PlatformFacebook},
		{"Facebook share link", "https://fb.watch/abc123/", PlatformFacebook},
		{"Unsupported host", "https://vimeo.com/123456", PlatformUnknown},
		{"Plain text", "not a url at all", PlatformUnknown},
		{"Empty string", "", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectPlatformFromURL(tt.url); got != tt.want {
				t.Errorf("DetectPlatformFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestDetectPlatformOrderFirstMatchWins(t *testing.T) {
	// A URL mentioning two platforms classifies as the one earlier in the table
	url := "https://www.youtube.com/watch?v=abc&note=tiktok.com"
	if got := DetectPlatformFromURL(url); got != PlatformYouTube {
		t.Errorf("DetectPlatformFromURL() = %q, want %q", got, PlatformYouTube)
	}
}

func TestIsValidPlatform(t *testing.T) {
	for _, platform := range GetValidPlatforms() {
		if !IsValidPlatform(platform) {
			t.Errorf("IsValidPlatform(%q) = false, want true", platform)
		}
	}
	if IsValidPlatform("vimeo") {
		t.Error("IsValidPlatform(\"vimeo\") = true, want false")
	}
}

func TestGetPlatformConstraintSQL(t *testing.T) {
	want := "CHECK (platform IN ('youtube', 'tiktok', 'instagram', 'facebook', 'unknown'))"
	if got := GetPlatformConstraintSQL(); got != want {
		t.Errorf("GetPlatformConstraintSQL() = %q, want %q", got, want)
	}
}
