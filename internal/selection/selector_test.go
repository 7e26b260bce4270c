package selection

import (
	"testing"

	"github.com/ytget/tg-media-bot/internal/model"
)

func size(n int64) *int64 { return &n }

func audioOnly(abr float64, sz *int64) model.Candidate {
	return model.Candidate{HasAudio: true, Container: "webm", AudioBitrate: abr, SizeBytes: sz}
}

func muxed(height int, container string, tbr float64, sz *int64) model.Candidate {
	return model.Candidate{
		HasAudio:  true,
		HasVideo:  true,
		Container: container,
		Height:    height,
		Bitrate:   tbr,
		SizeBytes: sz,
	}
}

func TestOffers_BestAudioByBitrate(t *testing.T) {
	candidates := []model.Candidate{
		audioOnly(96, size(100)),
		audioOnly(160, size(300)),
		audioOnly(128, size(200)),
	}

	offers := Offers(candidates)

	if len(offers) != 1 {
		t.Fatalf("expected 1 offer, got %d", len(offers))
	}
	if offers[0].Kind != model.KindAudio {
		t.Errorf("expected audio offer, got %s", offers[0].Kind)
	}
	if offers[0].EstimatedSize == nil || *offers[0].EstimatedSize != 300 {
		t.Errorf("expected size of the 160kbps candidate (300), got %v", offers[0].EstimatedSize)
	}
}

func TestOffers_NoAudioCandidates(t *testing.T) {
	candidates := []model.Candidate{
		muxed(360, "mp4", 500, nil),
		// video-only track must never count as an audio candidate
		{HasVideo: true, Container: "mp4", Height: 720, Bitrate: 900},
	}

	for _, offer := range Offers(candidates) {
		if offer.Kind == model.KindAudio {
			t.Fatal("audio offer produced without any audio-only candidate")
		}
	}
}

func TestOffers_DeduplicatesResolution(t *testing.T) {
	candidates := []model.Candidate{
		muxed(480, "mp4", 700, size(700)),
		muxed(480, "mp4", 900, size(900)),
		muxed(480, "mp4", 800, size(800)),
	}

	offers := Offers(candidates)

	if len(offers) != 1 {
		t.Fatalf("expected exactly 1 offer for duplicated resolution, got %d", len(offers))
	}
	if offers[0].ResolutionP != 480 {
		t.Errorf("expected 480p, got %dp", offers[0].ResolutionP)
	}
	if offers[0].EstimatedSize == nil || *offers[0].EstimatedSize != 900 {
		t.Errorf("expected the 900-bitrate candidate to win, got size %v", offers[0].EstimatedSize)
	}
}

func TestOffers_NoDuplicateKindResolutionPairs(t *testing.T) {
	candidates := []model.Candidate{
		audioOnly(128, nil),
		audioOnly(128, nil),
		muxed(360, "mp4", 400, nil),
		muxed(360, "mp4", 450, nil),
		muxed(720, "mp4", 1500, nil),
		muxed(720, "mp4", 1200, nil),
	}

	offers := Offers(candidates)

	seen := make(map[[2]interface{}]bool)
	for _, offer := range offers {
		key := [2]interface{}{offer.Kind, offer.ResolutionP}
		if seen[key] {
			t.Fatalf("duplicate offer for (%s, %d)", offer.Kind, offer.ResolutionP)
		}
		seen[key] = true
	}
}

func TestOffers_SkipsNonCanonicalAndIncompatible(t *testing.T) {
	candidates := []model.Candidate{
		muxed(240, "mp4", 300, nil),  // below the ladder
		muxed(480, "webm", 800, nil), // wrong container
		{HasVideo: true, Container: "mp4", Height: 720, Bitrate: 1000}, // video-only, needs merging
	}

	offers := Offers(candidates)

	if len(offers) != 0 {
		t.Fatalf("expected no offers, got %d", len(offers))
	}
}

func TestOffers_AscendingResolutionOrder(t *testing.T) {
	candidates := []model.Candidate{
		muxed(1080, "mp4", 3000, nil),
		muxed(360, "mp4", 400, nil),
		muxed(720, "mp4", 1500, nil),
	}

	offers := Offers(candidates)

	if len(offers) != 3 {
		t.Fatalf("expected 3 offers, got %d", len(offers))
	}
	want := []int{360, 720, 1080}
	for i, res := range want {
		if offers[i].ResolutionP != res {
			t.Errorf("offer %d: expected %dp, got %dp", i, res, offers[i].ResolutionP)
		}
	}
}

func TestOffers_AudioComesFirst(t *testing.T) {
	candidates := []model.Candidate{
		muxed(360, "mp4", 400, nil),
		audioOnly(128, nil),
	}

	offers := Offers(candidates)

	if len(offers) != 2 {
		t.Fatalf("expected 2 offers, got %d", len(offers))
	}
	if offers[0].Kind != model.KindAudio {
		t.Errorf("expected audio offer first, got %s", offers[0].Kind)
	}
}
