package metadata

import "strings"

// facebookTitleSuffix is the boilerplate Facebook appends to page titles
const facebookTitleSuffix = " | Facebook"

// refineFacebook re-reads Facebook's Open Graph tags and the document
// title, mirroring the Instagram fallback policy.
func refineFacebook(doc string, base Partial) Partial {
	if desc := DecodeEntities(ogContent(doc, "og:description")); desc != "" {
		base.Description = desc
	}

	if title := htmlTitle(doc); title != "" {
		base.Title = DecodeEntities(strings.TrimSuffix(title, facebookTitleSuffix))
	}

	thumbnail := ogContent(doc, "og:image")
	if thumbnail == "" {
		thumbnail = ogContent(doc, "og:video:thumbnail")
	}
	if thumbnail != "" {
		base.ThumbnailURL = DecodeEntities(thumbnail)
	}

	if site := DecodeEntities(ogContent(doc, "og:site_name")); site != "" {
		base.Uploader = site
	}
	if base.Uploader == "" {
		base.Uploader = "Facebook"
	}
	if base.Title == "" && base.Description != "" {
		base.Title = truncate(base.Description, 50)
	}

	return base
}
