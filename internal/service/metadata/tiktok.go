package metadata

import (
	"encoding/json"
	"regexp"
)

// universalDataPattern locates the embedded state blob TikTok hydrates its
// web app from. Brittle by nature: a markup change here only requires
// replacing this one strategy.
var universalDataPattern = regexp.MustCompile(`(?s)<script id="__UNIVERSAL_DATA_FOR_REHYDRATION__"[^>]*>(.*?)</script>`)

// tiktokUniversalData is the narrow slice of the rehydration payload the
// refiner consumes
type tiktokUniversalData struct {
	DefaultScope struct {
		VideoDetail struct {
			ItemInfo struct {
				ItemStruct struct {
					Desc  string `json:"desc"`
					Video struct {
						Cover string `json:"cover"`
					} `json:"video"`
					Author struct {
						Nickname string `json:"nickname"`
					} `json:"author"`
				} `json:"itemStruct"`
			} `json:"itemInfo"`
		} `json:"webapp.video-detail"`
	} `json:"__DEFAULT_SCOPE__"`
}

// refineTikTok parses the embedded rehydration JSON and overwrites the
// baseline with the video detail fields when the expected nested path
// resolves. Malformed JSON or a missing path keeps the baseline unchanged;
// nothing propagates as a pipeline error.
func (s *Service) refineTikTok(doc string, base Partial) Partial {
	m := universalDataPattern.FindStringSubmatch(doc)
	if m == nil {
		return base
	}

	var data tiktokUniversalData
	if err := json.Unmarshal([]byte(m[1]), &data); err != nil {
		s.logger.Debug("TikTok rehydration payload did not parse, keeping generic result",
			"error", err,
		)
		return base
	}

	item := data.DefaultScope.VideoDetail.ItemInfo.ItemStruct
	if item.Desc != "" {
		base.Title = item.Desc
		base.Description = item.Desc
	}
	if item.Video.Cover != "" {
		base.ThumbnailURL = item.Video.Cover
	}
	if item.Author.Nickname != "" {
		base.Uploader = item.Author.Nickname
	}

	return base
}
