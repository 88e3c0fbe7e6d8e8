package metadata

import "testing"

func TestExtractGeneric(t *testing.T) {
	tests := []struct {
		name            string
		doc             string
		wantTitle       string
		wantDescription string
		wantThumbnail   string
		wantUploader    string
	}{
		{
			name: "Open Graph tags",
			doc: `<html><head>
				<meta property="og:title" content="A &amp; B">
				<meta property="og:description" content="The description">
				<meta property="og:image" content="https://cdn.example.com/t.jpg">
				<meta property="og:site_name" content="Example">
			</head></html>`,
			wantTitle:       "A & B",
			wantDescription: "The description",
			wantThumbnail:   "https://cdn.example.com/t.jpg",
			wantUploader:    "Example",
		},
		{
			name: "Plain meta tags when Open Graph is absent",
			doc: `<html><head>
				<meta name="title" content="Plain Title">
				<meta name="description" content="Plain description">
			</head></html>`,
			wantTitle:       "Plain Title",
			wantDescription: "Plain description",
		},
		{
			name: "Open Graph outranks plain meta",
			doc: `<html><head>
				<meta name="title" content="Plain Title">
				<meta property="og:title" content="OG Title">
			</head></html>`,
			wantTitle: "OG Title",
		},
		{
			name: "Twitter Card title fallback",
			doc: `<html><head>
				<meta name="twitter:title" content="Tweet Title">
			</head></html>`,
			wantTitle: "Tweet Title",
		},
		{
			name: "Apostrophe inside a double-quoted value",
			doc: `<html><head>
				<meta property="og:title" content="Bob's Epic Video">
				<meta property="og:description" content="It's the sequel to Bob's first video">
			</head></html>`,
			wantTitle:       "Bob's Epic Video",
			wantDescription: "It's the sequel to Bob's first video",
		},
		{
			name: "Double quote inside a single-quoted value",
			doc: `<html><head>
				<meta property='og:title' content='The "Big" One'>
			</head></html>`,
			wantTitle: `The "Big" One`,
		},
		{
			name: "Reversed attribute order",
			doc: `<html><head>
				<meta content="Reversed" property="og:title">
			</head></html>`,
			wantTitle: "Reversed",
		},
		{
			name:      "No candidates yields empty fields",
			doc:       `<html><head><title>only an element title</title></head></html>`,
			wantTitle: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractGeneric(tt.doc)
			if got.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", got.Title, tt.wantTitle)
			}
			if got.Description != tt.wantDescription {
				t.Errorf("Description = %q, want %q", got.Description, tt.wantDescription)
			}
			if got.ThumbnailURL != tt.wantThumbnail {
				t.Errorf("ThumbnailURL = %q, want %q", got.ThumbnailURL, tt.wantThumbnail)
			}
			if got.Uploader != tt.wantUploader {
				t.Errorf("Uploader = %q, want %q", got.Uploader, tt.wantUploader)
			}
		})
	}
}

func TestHTMLTitle(t *testing.T) {
	doc := `<html><head><title>
		Some   Page
	</title></head><body></body></html>`

	got := htmlTitle(doc)
	if got != "Some Page" {
		t.Errorf("htmlTitle() = %q, want %q", got, "Some Page")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 50); got != "short" {
		t.Errorf("truncate() = %q, want %q", got, "short")
	}
	if got := truncate("abcdef", 3); got != "abc" {
		t.Errorf("truncate() = %q, want %q", got, "abc")
	}
}
