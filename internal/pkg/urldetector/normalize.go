package urldetector

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeURL creates a canonical form of a URL for storage and deduplication.
// It handles:
// - Adding https:// protocol if missing
// - Lowercasing the domain
// - Removing www. prefix
// - Removing tracking parameters (utm_*, si, fbclid, igshid, ref, source)
// - Validating the URL structure
func NormalizeURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", fmt.Errorf("empty URL")
	}

	// Step 1: Add protocol if missing
	if !strings.HasPrefix(strings.ToLower(rawURL), "http://") &&
		!strings.HasPrefix(strings.ToLower(rawURL), "https://") {
		// Check if it looks like a domain (has at least one dot)
		if strings.Contains(rawURL, ".") {
			rawURL = "https://" + rawURL
		} else {
			return "", fmt.Errorf("invalid URL: no domain found")
		}
	}

	// Step 2: Repair share links that chain query strings with a second ?
	rawURL = fixMalformedQueryString(rawURL)

	// Step 3: Parse URL
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL: %w", err)
	}

	if u.Host == "" {
		return "", fmt.Errorf("invalid URL: no host found")
	}

	// Step 4: Normalize domain (lowercase, remove www.)
	u.Host = strings.ToLower(u.Host)
	u.Host = strings.TrimPrefix(u.Host, "www.")

	// Step 5: Remove tracking parameters
	q := u.Query()
	for _, param := range trackingParams {
		q.Del(param)
	}
	u.RawQuery = q.Encode()

	// Step 6: Rebuild canonical URL
	return u.String(), nil
}

var trackingParams = []string{
	// Google Analytics
	"utm_source",
	"utm_medium",
	"utm_campaign",
	"utm_content",
	"utm_term",
	// Platform-specific tracking
	"si",      // YouTube share ID
	"fbclid",  // Facebook click ID
	"igshid",  // Instagram share ID
	"gclid",   // Google click ID
	"ref",     // Generic referrer
	"source",  // Generic source
	"msclkid", // Microsoft click ID
}

// fixMalformedQueryString repairs URLs where share flows appended a second
// query string with ? instead of & (common when links pass through chat apps).
func fixMalformedQueryString(urlStr string) string {
	first := strings.Index(urlStr, "?")
	if first == -1 {
		return urlStr
	}

	head := urlStr[:first+1]
	tail := strings.ReplaceAll(urlStr[first+1:], "?", "&")
	return head + tail
}

// cleanTrailingPunctuation removes trailing punctuation from a URL intelligently.
// It preserves closing parentheses if they're balanced (for Wikipedia-style URLs).
func cleanTrailingPunctuation(urlStr string) string {
	if strings.Contains(urlStr, "(") && strings.HasSuffix(urlStr, ")") {
		openCount := strings.Count(urlStr, "(")
		closeCount := strings.Count(urlStr, ")")
		if openCount >= closeCount {
			return urlStr
		}
	}

	return strings.TrimRight(urlStr, ".,!?;:\"'")
}
