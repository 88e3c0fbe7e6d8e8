package redis

import (
	"io"
	"log/slog"
	"testing"
)

func TestNewClientRejectsBadURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name string
		url  string
	}{
		{"Empty URL", ""},
		{"Wrong scheme", "http://localhost:6379"},
		{"Garbage", "redis://[::bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewClient(tt.url, logger); err == nil {
				t.Error("expected an error for an invalid Redis URL")
			}
		})
	}
}
