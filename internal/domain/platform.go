package domain

import "strings"

// Platform represents a social video platform
type Platform struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	URLPatterns []string `json:"url_patterns"`
}

// Platform constants - single source of truth
const (
	PlatformYouTube   = "youtube"
	PlatformTikTok    = "tiktok"
	PlatformInstagram = "instagram"
	PlatformFacebook  = "facebook"
	PlatformUnknown   = "unknown" // For unrecognized video sources
)

// platformTable is the ordered classification table. Order matters:
// detection walks the table top to bottom and the first pattern match wins.
var platformTable = []Platform{
	{
		ID:          PlatformYouTube,
		Name:        "YouTube",
		URLPatterns: []string{"youtube.com", "youtu.be"},
	},
	{
		ID:          PlatformTikTok,
		Name:        "TikTok",
		URLPatterns: []string{"tiktok.com"},
	},
	{
		ID:          PlatformInstagram,
		Name:        "Instagram",
		URLPatterns: []string{"instagram.com"},
	},
	{
		ID:          PlatformFacebook,
		Name:        "Facebook",
		URLPatterns: []string{"facebook.com", "fb.watch"},
	},
}

// GetPlatforms returns the ordered platform classification table
func GetPlatforms() []Platform {
	return platformTable
}

// DetectPlatformFromURL classifies a URL against the platform table.
// Matching is a case-insensitive substring check, so mixed-case domains
// (YouTube.com) classify the same as lowercase ones. Always returns a
// value; URLs matching no pattern resolve to PlatformUnknown.
func DetectPlatformFromURL(url string) string {
	lowered := strings.ToLower(url)
	for _, platform := range platformTable {
		for _, pattern := range platform.URLPatterns {
			if strings.Contains(lowered, pattern) {
				return platform.ID
			}
		}
	}
	return PlatformUnknown
}

// GetValidPlatforms returns all platform IDs including unknown
func GetValidPlatforms() []string {
	platforms := make([]string, 0, len(platformTable)+1)
	for _, platform := range platformTable {
		platforms = append(platforms, platform.ID)
	}
	platforms = append(platforms, PlatformUnknown)
	return platforms
}

// IsValidPlatform checks if a platform ID is valid
func IsValidPlatform(platformID string) bool {
	for _, platform := range platformTable {
		if platform.ID == platformID {
			return true
		}
	}
	return platformID == PlatformUnknown
}

// GetPlatformConstraintSQL generates the SQL constraint for platform validation
func GetPlatformConstraintSQL() string {
	platforms := GetValidPlatforms()
	quoted := make([]string, len(platforms))
	for i, platform := range platforms {
		quoted[i] = "'" + platform + "'"
	}
	return "CHECK (platform IN (" + strings.Join(quoted, ", ") + "))"
}
