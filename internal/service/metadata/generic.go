package metadata

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Partial is the working metadata record threaded through the extraction
// strategies. The generic pass seeds it; platform refiners overwrite only
// fields they can populate with higher confidence.
type Partial struct {
	Title        string
	Description  string
	ThumbnailURL string
	Uploader     string
	Extra        map[string]interface{}
}

// metaContent finds the content attribute of a <meta> tag identified by the
// given attribute (property or name) and key. Both attribute orders are
// accepted since platforms emit them inconsistently. The content value is
// matched per quote style so a double-quoted value can carry an apostrophe
// and vice versa.
func metaContent(doc, attr, key string) string {
	ident := attr + `=["']` + regexp.QuoteMeta(key) + `["']`
	patterns := []string{
		`<meta[^>]*` + ident + `[^>]*content="([^"]*)"`,
		`<meta[^>]*` + ident + `[^>]*content='([^']*)'`,
		`<meta[^>]*content="([^"]*)"[^>]*` + ident,
		`<meta[^>]*content='([^']*)'[^>]*` + ident,
	}
	for _, pattern := range patterns {
		if m := regexp.MustCompile(pattern).FindStringSubmatch(doc); m != nil {
			return m[1]
		}
	}
	return ""
}

// ogContent is metaContent for Open Graph property tags, checking the
// name= spelling as a fallback
func ogContent(doc, property string) string {
	if v := metaContent(doc, "property", property); v != "" {
		return v
	}
	return metaContent(doc, "name", property)
}

// firstMeta returns the first non-empty lookup result, entity-decoded
func firstMeta(doc string, lookups ...func(string) string) string {
	for _, lookup := range lookups {
		if v := lookup(doc); v != "" {
			return DecodeEntities(v)
		}
	}
	return ""
}

// ExtractGeneric runs the platform-agnostic baseline strategy: ordered
// Open Graph / Twitter Card / plain meta-tag lookups. A missing candidate
// leaves its field empty, never errors.
func ExtractGeneric(doc string) Partial {
	return Partial{
		Title: firstMeta(doc,
			func(d string) string { return ogContent(d, "og:title") },
			func(d string) string { return metaContent(d, "name", "title") },
			func(d string) string { return ogContent(d, "twitter:title") },
		),
		Description: firstMeta(doc,
			func(d string) string { return ogContent(d, "og:description") },
			func(d string) string { return metaContent(d, "name", "description") },
		),
		ThumbnailURL: firstMeta(doc,
			func(d string) string { return ogContent(d, "og:image") },
			func(d string) string { return metaContent(d, "name", "image") },
		),
		Uploader: firstMeta(doc,
			func(d string) string { return ogContent(d, "og:site_name") },
		),
	}
}

// htmlTitle extracts the text of the document's <title> element by walking
// the parsed tree
func htmlTitle(doc string) string {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return ""
	}
	title := findTitleInNode(root)
	title = strings.TrimSpace(title)
	return regexp.MustCompile(`\s+`).ReplaceAllString(title, " ")
}

// findTitleInNode recursively searches for title tag content
func findTitleInNode(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				return c.Data
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := findTitleInNode(c); title != "" {
			return title
		}
	}
	return ""
}

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
