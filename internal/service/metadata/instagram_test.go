package metadata

import "testing"

func TestRefineInstagram(t *testing.T) {
	tests := []struct {
		name            string
		doc             string
		wantTitle       string
		wantDescription string
		wantUploader    string
	}{
		{
			name: "Author and excerpt split from og:title",
			doc: `<html><head>
				<meta property="og:title" content="Jane Doe on Instagram: Morning run #fitness">
				<meta property="og:description" content="Morning run #fitness along the river">
			</head></html>`,
			wantTitle:       "Morning run #fitness",
			wantDescription: "Morning run #fitness along the river",
			wantUploader:    "Jane Doe",
		},
		{
			name: "No separator keeps og:title whole",
			doc: `<html><head>
				<meta property="og:title" content="Some reel title">
			</head></html>`,
			wantTitle:    "Some reel title",
			wantUploader: "Instagram",
		},
		{
			name: "Caption-only falls back to truncated description and Instagram uploader",
			doc: `<html><head>
				<meta property="og:description" content="A very long caption that goes well past fifty characters and keeps going for a while">
			</head></html>`,
			wantTitle:       "A very long caption that goes well past fifty char",
			wantDescription: "A very long caption that goes well past fifty characters and keeps going for a while",
			wantUploader:    "Instagram",
		},
		{
			name:         "Nothing found still sets uploader fallback",
			doc:          `<html><head></head></html>`,
			wantUploader: "Instagram",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := refineInstagram(tt.doc, Partial{})
			if got.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", got.Title, tt.wantTitle)
			}
			if got.Description != tt.wantDescription {
				t.Errorf("Description = %q, want %q", got.Description, tt.wantDescription)
			}
			if got.Uploader != tt.wantUploader {
				t.Errorf("Uploader = %q, want %q", got.Uploader, tt.wantUploader)
			}
		})
	}
}
