package urldetector

import (
	"regexp"
	"strings"
	"sync"

	"vaultly/internal/domain"
)

// URLInfo contains information about a detected URL
type URLInfo struct {
	URL      string
	Platform string
}

// Detector provides centralized URL detection using domain platform config
type Detector struct {
	patterns []compiledPattern
	mu       sync.RWMutex
}

type compiledPattern struct {
	regex    *regexp.Regexp
	platform string
}

// New creates a new URL detector using the centralized platform configuration
func New() *Detector {
	detector := &Detector{}
	detector.buildPatterns()
	return detector
}

// buildPatterns generates regex patterns from the domain platform table
func (d *Detector) buildPatterns() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.patterns = make([]compiledPattern, 0)

	for _, platform := range domain.GetPlatforms() {
		for _, urlPattern := range platform.URLPatterns {
			// Optional protocol, optional www, exact domain, word boundary
			regexPattern := `(?i)(?:https?://)?(?:www\.|m\.)?` + regexp.QuoteMeta(urlPattern) + `\b`

			if compiled, err := regexp.Compile(regexPattern); err == nil {
				d.patterns = append(d.patterns, compiledPattern{
					regex:    compiled,
					platform: platform.ID,
				})
			}
		}
	}
}

// DetectURLs finds all supported video URLs in content and returns them with platform info
func (d *Detector) DetectURLs(content string) []URLInfo {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var urls []URLInfo
	seen := make(map[string]bool)

	// Split content into words and check each for URL patterns
	words := strings.Fields(content)
	for _, word := range words {
		for _, pattern := range d.patterns {
			if pattern.regex.MatchString(word) {
				url := cleanTrailingPunctuation(word)

				if !seen[url] {
					seen[url] = true
					urls = append(urls, URLInfo{
						URL:      url,
						Platform: domain.DetectPlatformFromURL(url),
					})
				}
				break
			}
		}
	}

	return urls
}

// IsSupported checks if a URL matches any supported platform pattern
func (d *Detector) IsSupported(url string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, pattern := range d.patterns {
		if pattern.regex.MatchString(url) {
			return true
		}
	}
	return false
}

// GetSupportedPlatforms returns a list of all supported platform IDs
func (d *Detector) GetSupportedPlatforms() []string {
	return domain.GetValidPlatforms()
}
