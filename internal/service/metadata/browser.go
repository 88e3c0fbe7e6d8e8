package metadata

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"vaultly/internal/domain"
)

// BrowserFetcher renders a page in a headless browser before reading its
// markup. Some platforms only emit their embedded state blob when the page
// executes JavaScript; a plain GET gets a shell document instead. Disabled
// by default and enabled per deployment via config.
type BrowserFetcher struct {
	logger    *slog.Logger
	platforms map[string]bool

	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewBrowserFetcher launches a headless browser serving the given platforms
func NewBrowserFetcher(logger *slog.Logger, platforms []string) (*BrowserFetcher, error) {
	l := launcher.New().
		Headless(true).
		Set("no-sandbox")

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	set := make(map[string]bool, len(platforms))
	for _, platform := range platforms {
		set[platform] = true
	}

	logger.Info("Headless browser fetcher started",
		"platforms", platforms,
	)

	return &BrowserFetcher{
		logger:    logger,
		platforms: set,
		launcher:  l,
		browser:   browser,
	}, nil
}

// Handles reports whether this fetcher serves the platform
func (b *BrowserFetcher) Handles(platform string) bool {
	return b.platforms[platform]
}

// Fetch navigates a fresh page to the URL, waits for the load event, and
// returns the rendered markup
func (b *BrowserFetcher) Fetch(ctx context.Context, url string) (*FetchResult, error) {
	page, err := b.browser.Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("failed to create page: %w", err)}
	}
	defer page.Close()

	page = page.Context(ctx).Timeout(15 * time.Second)

	if err := page.Navigate(url); err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("failed to navigate: %w", err)}
	}
	if err := page.WaitLoad(); err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("failed to wait for load: %w", err)}
	}

	body, err := page.HTML()
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("failed to read markup: %w", err)}
	}

	b.logger.Debug("Document rendered in browser",
		"url", url,
		"bytes", len(body),
	)

	return &FetchResult{Status: 200, Body: body}, nil
}

// Close shuts the browser down
func (b *BrowserFetcher) Close() error {
	if b.browser != nil {
		if err := b.browser.Close(); err != nil {
			return err
		}
	}
	if b.launcher != nil {
		b.launcher.Cleanup()
	}
	return nil
}

// DefaultBrowserPlatforms lists the platforms that benefit from rendered
// fetches when the browser fetcher is enabled
var DefaultBrowserPlatforms = []string{domain.PlatformTikTok}
