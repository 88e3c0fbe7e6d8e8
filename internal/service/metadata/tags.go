package metadata

import "regexp"

var hashtagPattern = regexp.MustCompile(`#(\w+)`)

// DeriveTags scans the title and description for hashtag tokens and returns
// the de-duplicated set with the leading # stripped. De-duplication is
// case-sensitive: #Food and #food are distinct tags. Order follows first
// appearance.
func DeriveTags(title, description string) []string {
	tags := make([]string, 0)
	seen := make(map[string]bool)
	for _, text := range []string{title, description} {
		for _, match := range hashtagPattern.FindAllStringSubmatch(text, -1) {
			tag := match[1]
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	return tags
}
