package selection

import (
	"github.com/ytget/tg-media-bot/internal/model"
)

// Container required for video offers; muxed mp4 plays everywhere Telegram does
const (
	CompatibleContainer = "mp4"
)

// CanonicalResolutions is the fixed ascending ladder of video offer heights.
var CanonicalResolutions = []int{360, 480, 720, 1080}

// Offers reduces raw probe candidates to the ordered offer list: audio first
// (if any audio-only candidate exists), then one video offer per canonical
// resolution that has a matching muxed candidate. An empty result means the
// media has nothing downloadable.
func Offers(candidates []model.Candidate) []model.FormatOffer {
	var offers []model.FormatOffer

	if best, ok := bestAudio(candidates); ok {
		offers = append(offers, model.FormatOffer{
			Kind:          model.KindAudio,
			EstimatedSize: best.EstimatedSize(),
		})
	}

	for _, res := range CanonicalResolutions {
		best, ok := bestVideoAt(candidates, res)
		if !ok {
			continue
		}
		offers = append(offers, model.FormatOffer{
			Kind:          model.KindVideo,
			ResolutionP:   res,
			EstimatedSize: best.EstimatedSize(),
		})
	}

	return offers
}

// bestAudio picks the audio-only candidate with the highest audio bitrate.
// Ties keep the first encountered candidate.
func bestAudio(candidates []model.Candidate) (model.Candidate, bool) {
	var best model.Candidate
	found := false
	for _, c := range candidates {
		if !c.HasAudio || c.HasVideo {
			continue
		}
		if !found || c.AudioBitrate > best.AudioBitrate {
			best = c
			found = true
		}
	}
	return best, found
}

// bestVideoAt picks the highest-total-bitrate candidate muxed at exactly the
// given height in the compatible container.
func bestVideoAt(candidates []model.Candidate, height int) (model.Candidate, bool) {
	var best model.Candidate
	found := false
	for _, c := range candidates {
		if c.Height != height || c.Container != CompatibleContainer {
			continue
		}
		if !c.HasAudio || !c.HasVideo {
			continue
		}
		if !found || c.Bitrate > best.Bitrate {
			best = c
			found = true
		}
	}
	return best, found
}
