package metadata

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"vaultly/internal/domain"
)

// Service runs the extraction pipeline: classify the platform, fetch the
// document under a platform-keyed request profile, seed a baseline from
// generic meta tags, refine with the platform strategy, derive hashtags.
// Stateless: every call re-fetches and re-parses from scratch.
type Service struct {
	logger         *slog.Logger
	fetcher        *Fetcher
	oembedClient   *http.Client
	oembedEndpoint string
}

// New creates a metadata extraction service
func New(logger *slog.Logger, fetcher *Fetcher) *Service {
	return &Service{
		logger:  logger,
		fetcher: fetcher,
		oembedClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		oembedEndpoint: defaultYouTubeOEmbedEndpoint,
	}
}

// facebookFallbackDescription explains why no richer metadata is available
// for a blocked Facebook fetch
const facebookFallbackDescription = "Facebook blocked metadata extraction for this video. Open the link to view details."

// Extract produces a fresh VideoMetadata record for the URL. Fetch failures
// propagate for every platform except Facebook, which actively blocks
// scrapers and is resolved fail-open with a synthesized minimal record.
func (s *Service) Extract(ctx context.Context, rawURL string) (*domain.VideoMetadata, error) {
	platform := domain.DetectPlatformFromURL(rawURL)

	doc, err := s.fetcher.Fetch(ctx, rawURL, platform)
	if err != nil {
		if platform == domain.PlatformFacebook {
			s.logger.Info("Facebook fetch blocked, synthesizing fallback record",
				"url", rawURL,
				"error", err,
			)
			return facebookFallback(rawURL), nil
		}
		return nil, err
	}

	base := ExtractGeneric(doc.Body)

	switch platform {
	case domain.PlatformYouTube:
		base = s.refineYouTube(ctx, rawURL, doc.Body, base)
	case domain.PlatformTikTok:
		base = s.refineTikTok(doc.Body, base)
	case domain.PlatformInstagram:
		base = refineInstagram(doc.Body, base)
	case domain.PlatformFacebook:
		base = refineFacebook(doc.Body, base)
	}

	meta := finalize(rawURL, platform, base)

	s.logger.Info("Metadata extracted",
		"url", rawURL,
		"platform", platform,
		"title", meta.Title,
		"tag_count", len(meta.Tags),
		"has_thumbnail", meta.ThumbnailURL != nil,
	)

	return meta, nil
}

// finalize converts the working partial into the output record, enforcing
// the invariants: platform always set, title never empty, tags deduped.
func finalize(rawURL, platform string, p Partial) *domain.VideoMetadata {
	meta := &domain.VideoMetadata{
		Title:    p.Title,
		Platform: platform,
		Tags:     DeriveTags(p.Title, p.Description),
		Raw: domain.RawMeta{
			URL:   rawURL,
			Extra: p.Extra,
		},
	}
	if meta.Title == "" {
		meta.Title = domain.DefaultTitle
	}
	if p.ThumbnailURL != "" {
		meta.ThumbnailURL = &p.ThumbnailURL
	}
	if p.Uploader != "" {
		meta.Uploader = &p.Uploader
	}
	if p.Description != "" {
		meta.Description = &p.Description
	}
	return meta
}

// facebookFallback synthesizes the minimal success record returned when a
// Facebook fetch fails
func facebookFallback(rawURL string) *domain.VideoMetadata {
	uploader := "Facebook"
	description := facebookFallbackDescription
	return &domain.VideoMetadata{
		Title:       "Facebook Video",
		Platform:    domain.PlatformFacebook,
		Uploader:    &uploader,
		Description: &description,
		Tags:        []string{},
		Raw:         domain.RawMeta{URL: rawURL},
	}
}
