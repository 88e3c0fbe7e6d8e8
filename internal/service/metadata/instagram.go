package metadata

import "strings"

// instagramTitleSeparator splits author from caption excerpt in Instagram's
// og:title convention ("Author on Instagram: caption...")
const instagramTitleSeparator = "on Instagram:"

// refineInstagram re-reads the caption and author from Instagram's Open
// Graph tags. Instagram packs both the uploader and a caption excerpt into
// og:title, joined by a fixed separator.
func refineInstagram(doc string, base Partial) Partial {
	if caption := DecodeEntities(ogContent(doc, "og:description")); caption != "" {
		base.Description = caption
	}

	ogTitle := DecodeEntities(ogContent(doc, "og:title"))
	if idx := strings.Index(ogTitle, instagramTitleSeparator); idx >= 0 {
		if author := strings.TrimSpace(ogTitle[:idx]); author != "" {
			base.Uploader = author
		}
		if excerpt := strings.TrimSpace(ogTitle[idx+len(instagramTitleSeparator):]); excerpt != "" {
			base.Title = excerpt
		}
	} else if ogTitle != "" {
		base.Title = ogTitle
	}

	if base.Uploader == "" {
		base.Uploader = "Instagram"
	}
	if base.Title == "" && base.Description != "" {
		base.Title = truncate(base.Description, 50)
	}

	return base
}
