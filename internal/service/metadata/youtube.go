package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

// defaultYouTubeOEmbedEndpoint is YouTube's public oEmbed API
const defaultYouTubeOEmbedEndpoint = "https://www.youtube.com/oembed"

// oEmbedResponse represents the standard oEmbed JSON response
// See: https://oembed.com/#section2.3
type oEmbedResponse struct {
	Type         string      `json:"type"`
	Version      interface{} `json:"version"` // should be "1.0" string, but some providers send numeric 1.0
	Title        string      `json:"title"`
	AuthorName   string      `json:"author_name"`
	AuthorURL    string      `json:"author_url"`
	ProviderName string      `json:"provider_name"`
	ThumbnailURL string      `json:"thumbnail_url"`
	HTML         string      `json:"html"`
}

// inlineDescriptionPattern matches the structured-description blob YouTube
// embeds in a page script as a JSON fragment
var inlineDescriptionPattern = regexp.MustCompile(`"description"\s*:\s*"((?:[^"\\]|\\.)*)"`)

// refineYouTube overlays oEmbed data and the inline page description onto
// the generic baseline. oEmbed outranks page scraping for title, thumbnail
// and uploader; any oEmbed failure falls back silently to the baseline.
func (s *Service) refineYouTube(ctx context.Context, videoURL, doc string, base Partial) Partial {
	oembed, raw, err := s.fetchOEmbed(ctx, videoURL)
	if err != nil {
		s.logger.Debug("YouTube oEmbed lookup failed, keeping generic result",
			"url", videoURL,
			"error", err,
		)
	} else {
		if oembed.Title != "" {
			base.Title = oembed.Title
		}
		if oembed.ThumbnailURL != "" {
			base.ThumbnailURL = oembed.ThumbnailURL
		}
		if oembed.AuthorName != "" {
			base.Uploader = oembed.AuthorName
		}
		if base.Extra == nil {
			base.Extra = make(map[string]interface{})
		}
		base.Extra["oembed"] = raw
	}

	if desc := extractInlineDescription(doc); desc != "" {
		base.Description = desc
	}

	return base
}

// fetchOEmbed queries the YouTube oEmbed endpoint for the video URL. The
// raw decoded body is returned alongside the typed response so it can be
// retained as provenance.
func (s *Service) fetchOEmbed(ctx context.Context, videoURL string) (*oEmbedResponse, map[string]interface{}, error) {
	endpoint, err := url.Parse(s.oembedEndpoint)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid oEmbed endpoint: %w", err)
	}
	query := endpoint.Query()
	query.Set("url", videoURL)
	query.Set("format", "json")
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.oembedClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("read body: %w", err)
	}

	var oembed oEmbedResponse
	if err := json.Unmarshal(body, &oembed); err != nil {
		return nil, nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		raw = nil
	}

	return &oembed, raw, nil
}

// extractInlineDescription regex-extracts the embedded description fragment
// and unescapes the literal \n and \" sequences it carries
func extractInlineDescription(doc string) string {
	m := inlineDescriptionPattern.FindStringSubmatch(doc)
	if m == nil || m[1] == "" {
		return ""
	}
	desc := m[1]
	desc = strings.ReplaceAll(desc, `\n`, "\n")
	desc = strings.ReplaceAll(desc, `\"`, `"`)
	return desc
}
