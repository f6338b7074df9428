// Package resolve turns a decoded quality catalog into the concrete video
// and audio URLs to fetch.
package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/famomatic/bvget/internal/playinfo"
)

var (
	// ErrResourceNotFound reports a catalog that advertises a tier with no
	// backing variant, or no variants at all.
	ErrResourceNotFound = errors.New("no matching media resource")
	// ErrQualityLabelMissing reports a quality id with no index-aligned
	// label, an inconsistency in the page data.
	ErrQualityLabelMissing = errors.New("quality label missing")
)

// Selection is the resolved download target for one video.
type Selection struct {
	Title    string
	VideoURL string
	AudioURL string
}

var titleReplacer = strings.NewReplacer("/", "|", "\\", "|")

// SanitizeTitle replaces path-unsafe characters so the title can name files.
func SanitizeTitle(title string) string {
	return titleReplacer.Replace(title)
}

// BestQualityIndex returns the index into AcceptQuality holding the
// numerically largest id. Ties keep the first occurrence.
func BestQualityIndex(c *playinfo.Catalog) (int, error) {
	if len(c.AcceptQuality) == 0 {
		return 0, fmt.Errorf("%w: catalog advertises no quality tiers", ErrResourceNotFound)
	}
	best := 0
	for i, id := range c.AcceptQuality {
		if id > c.AcceptQuality[best] {
			best = i
		}
	}
	return best, nil
}

// Label maps a quality id to its human-readable name through the
// index-aligned accept lists.
func Label(c *playinfo.Catalog, qualityID int) (string, error) {
	for i, id := range c.AcceptQuality {
		if id == qualityID {
			if i >= len(c.AcceptDescription) {
				break
			}
			return c.AcceptDescription[i], nil
		}
	}
	return "", fmt.Errorf("%w: quality id %d", ErrQualityLabelMissing, qualityID)
}

// BestVideo returns the highest-bandwidth video variant carrying the given
// quality id. Ties keep the first encountered.
func BestVideo(c *playinfo.Catalog, qualityID int) (playinfo.Variant, error) {
	candidates := lo.Filter(c.Video, func(v playinfo.Variant, _ int) bool {
		return v.QualityID == qualityID
	})
	if len(candidates) == 0 {
		return playinfo.Variant{}, fmt.Errorf("%w: no video variant for quality id %d", ErrResourceNotFound, qualityID)
	}
	return lo.MaxBy(candidates, func(a, b playinfo.Variant) bool {
		return a.Bandwidth > b.Bandwidth
	}), nil
}

// BestAudio returns the highest-bandwidth audio variant. Ties keep the first
// encountered.
func BestAudio(c *playinfo.Catalog) (playinfo.Variant, error) {
	if len(c.Audio) == 0 {
		return playinfo.Variant{}, fmt.Errorf("%w: no audio variant", ErrResourceNotFound)
	}
	return lo.MaxBy(c.Audio, func(a, b playinfo.Variant) bool {
		return a.Bandwidth > b.Bandwidth
	}), nil
}

// Validate checks that every video variant's quality id resolves to a label.
// A variant outside the accept lists is a data-integrity failure, caught here
// rather than papered over at selection time.
func Validate(c *playinfo.Catalog) error {
	ids := lo.Uniq(lo.Map(c.Video, func(v playinfo.Variant, _ int) int {
		return v.QualityID
	}))
	var bad []int
	for _, id := range ids {
		if _, err := Label(c, id); err != nil {
			bad = append(bad, id)
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: no label for quality ids %v", ErrQualityLabelMissing, bad)
	}
	return nil
}

// Select resolves the tier at index in AcceptQuality into the pair of stream
// URLs to fetch, with a filename-safe title. All inputs are already-decoded
// data; any failure here reflects an inconsistency in the upstream page and
// is not retried.
func Select(c *playinfo.Catalog, title string, index int) (Selection, error) {
	if index < 0 || index >= len(c.AcceptQuality) {
		return Selection{}, fmt.Errorf("quality index %d out of range [0,%d)", index, len(c.AcceptQuality))
	}
	video, err := BestVideo(c, c.AcceptQuality[index])
	if err != nil {
		return Selection{}, err
	}
	audio, err := BestAudio(c)
	if err != nil {
		return Selection{}, err
	}
	return Selection{
		Title:    SanitizeTitle(title),
		VideoURL: video.URL,
		AudioURL: audio.URL,
	}, nil
}
