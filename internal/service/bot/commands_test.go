package bot

import (
	"testing"

	"github.com/google/uuid"

	"vaultly/internal/domain"
)

func TestVideoEmbedFields(t *testing.T) {
	uploader := "TrailChannel"
	videos := []*domain.Video{
		{
			ID:       uuid.New(),
			Title:    "Weekend Hike",
			URL:      "https://youtube.com/watch?v=abc",
			Uploader: &uploader,
		},
		{
			ID:    uuid.New(),
			Title: "No uploader yet",
			URL:   "https://tiktok.com/@x/video/1",
		},
	}

	fields := videoEmbedFields(videos)
	if len(fields) != 2 {
		t.Fatalf("fields = %d, want 2", len(fields))
	}

	if fields[0].Name != "Weekend Hike" {
		t.Errorf("name = %q, want %q", fields[0].Name, "Weekend Hike")
	}
	if want := "TrailChannel - https://youtube.com/watch?v=abc"; fields[0].Value != want {
		t.Errorf("value = %q, want %q", fields[0].Value, want)
	}
	if fields[1].Value != videos[1].URL {
		t.Errorf("value = %q, want bare URL when uploader is missing", fields[1].Value)
	}
}
