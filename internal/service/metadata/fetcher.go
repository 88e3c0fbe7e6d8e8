package metadata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"vaultly/internal/domain"
)

// User-Agent identities used by the fetch profiles. Instagram and Facebook
// serve usable Open Graph markup to social-preview crawlers but block
// generic clients, so those platforms get the crawler identity.
const (
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	crawlerUserAgent = "facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)"
	botUserAgent     = "Mozilla/5.0 (compatible; VaultlyBot/1.0)"
)

// FetchProfile is the request identity presented to a platform
type FetchProfile struct {
	UserAgent      string
	AcceptLanguage string
}

// fetchProfiles maps each platform to its request profile. This is a
// configuration table, not business logic: adding a platform means adding
// a row, never another branch.
var fetchProfiles = map[string]FetchProfile{
	domain.PlatformYouTube:   {UserAgent: browserUserAgent, AcceptLanguage: "en-US,en;q=0.9"},
	domain.PlatformTikTok:    {UserAgent: browserUserAgent, AcceptLanguage: "en-US,en;q=0.9"},
	domain.PlatformInstagram: {UserAgent: crawlerUserAgent},
	domain.PlatformFacebook:  {UserAgent: crawlerUserAgent},
	domain.PlatformUnknown:   {UserAgent: botUserAgent},
}

// maxDocumentBytes caps the response body read to protect memory
const maxDocumentBytes = 2 * 1024 * 1024

// FetchResult is a successfully fetched remote document
type FetchResult struct {
	Status int
	Body   string
}

// FetchError reports a failed document fetch. StatusCode is zero when the
// failure happened below HTTP (DNS, connect, read).
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves remote documents under a platform-keyed request profile.
// Single-shot: one GET per invocation, no retry, no redirect handling beyond
// the client's defaults.
type Fetcher struct {
	client  *http.Client
	logger  *slog.Logger
	browser *BrowserFetcher
}

// NewFetcher creates a document fetcher
func NewFetcher(logger *slog.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// WithBrowser enables headless-browser escalation for platforms that only
// render their metadata under JavaScript
func (f *Fetcher) WithBrowser(browser *BrowserFetcher) *Fetcher {
	f.browser = browser
	return f
}

// Fetch issues a single GET for the URL using the platform's request
// profile and classifies the outcome: 2xx is success, anything else is a
// *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, url, platform string) (*FetchResult, error) {
	if f.browser != nil && f.browser.Handles(platform) {
		return f.browser.Fetch(ctx, url)
	}

	profile, ok := fetchProfiles[platform]
	if !ok {
		profile = fetchProfiles[domain.PlatformUnknown]
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	req.Header.Set("User-Agent", profile.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	if profile.AcceptLanguage != "" {
		req.Header.Set("Accept-Language", profile.AcceptLanguage)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Warn("Document fetch failed",
			"url", url,
			"platform", platform,
			"error", err,
		)
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Warn("Document fetch returned non-2xx status",
			"url", url,
			"platform", platform,
			"status", resp.StatusCode,
		)
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}

	f.logger.Debug("Document fetched",
		"url", url,
		"platform", platform,
		"status", resp.StatusCode,
		"bytes", len(body),
	)

	return &FetchResult{Status: resp.StatusCode, Body: string(body)}, nil
}
