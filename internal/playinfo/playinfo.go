// Package playinfo decodes the playback metadata a watch page embeds (or the
// play-url API returns) into a typed quality catalog.
package playinfo

import "encoding/json"

// Variant is one concrete encoded stream. QualityID is zero for audio
// variants; only one audio track set exists per page and selection among its
// entries is purely by bandwidth.
type Variant struct {
	QualityID int
	URL       string
	Bandwidth int64
}

// Catalog is the full set of quality tiers and stream variants advertised
// for one video. AcceptQuality lists selectable tier ids most-preferred
// first, index-aligned with the human-readable AcceptDescription labels;
// that alignment is the only id-to-label mapping. Video may carry several
// variants sharing a quality id at different bandwidths. A Catalog is built
// once per page fetch and not mutated afterwards.
type Catalog struct {
	AcceptQuality     []int
	AcceptDescription []string
	Video             []Variant
	Audio             []Variant
}

type wireStream struct {
	ID        int    `json:"id"`
	BaseURL   string `json:"base_url"`
	Bandwidth int64  `json:"bandwidth"`
}

type wireDash struct {
	Video []wireStream `json:"video"`
	Audio []wireStream `json:"audio"`
}

type wireData struct {
	AcceptDescription []string  `json:"accept_description"`
	AcceptQuality     []int     `json:"accept_quality"`
	Dash              *wireDash `json:"dash"`
}

type wirePlayinfo struct {
	Data *wireData `json:"data"`
}

// Decode strictly decodes playinfo JSON into a Catalog. Unknown fields are
// ignored. A missing required member or a type mismatch fails with a
// *DecodeError naming the offending field; there is no partial decoding.
func Decode(data []byte) (*Catalog, error) {
	var raw wirePlayinfo
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, wrapJSONError(err)
	}
	switch {
	case raw.Data == nil:
		return nil, missingField("data")
	case raw.Data.AcceptDescription == nil:
		return nil, missingField("data.accept_description")
	case raw.Data.AcceptQuality == nil:
		return nil, missingField("data.accept_quality")
	case raw.Data.Dash == nil:
		return nil, missingField("data.dash")
	case raw.Data.Dash.Video == nil:
		return nil, missingField("data.dash.video")
	case raw.Data.Dash.Audio == nil:
		return nil, missingField("data.dash.audio")
	}

	cat := &Catalog{
		AcceptQuality:     raw.Data.AcceptQuality,
		AcceptDescription: raw.Data.AcceptDescription,
		Video:             make([]Variant, 0, len(raw.Data.Dash.Video)),
		Audio:             make([]Variant, 0, len(raw.Data.Dash.Audio)),
	}
	for _, s := range raw.Data.Dash.Video {
		cat.Video = append(cat.Video, Variant{QualityID: s.ID, URL: s.BaseURL, Bandwidth: s.Bandwidth})
	}
	for _, s := range raw.Data.Dash.Audio {
		cat.Audio = append(cat.Audio, Variant{URL: s.BaseURL, Bandwidth: s.Bandwidth})
	}
	return cat, nil
}
