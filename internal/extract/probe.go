package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ytget/tg-media-bot/internal/model"
)

// probeInfo mirrors the subset of the yt-dlp single-JSON dump the bot needs.
type probeInfo struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Thumbnail string        `json:"thumbnail"`
	Formats   []probeFormat `json:"formats"`
}

type probeFormat struct {
	FormatID       string   `json:"format_id"`
	Ext            string   `json:"ext"`
	ACodec         string   `json:"acodec"`
	VCodec         string   `json:"vcodec"`
	Height         *int     `json:"height"`
	TBR            *float64 `json:"tbr"`
	ABR            *float64 `json:"abr"`
	Filesize       *int64   `json:"filesize"`
	FilesizeApprox *int64   `json:"filesize_approx"`
}

// parseProbeOutput converts a yt-dlp JSON dump into the domain probe result.
func parseProbeOutput(raw string) (*model.ProbeResult, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty probe output")
	}

	var info probeInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return nil, fmt.Errorf("parse probe output: %w", err)
	}
	if info.ID == "" {
		return nil, fmt.Errorf("probe output missing media id")
	}

	candidates := make([]model.Candidate, 0, len(info.Formats))
	for _, f := range info.Formats {
		candidates = append(candidates, model.Candidate{
			FormatID:     f.FormatID,
			HasAudio:     hasCodec(f.ACodec),
			HasVideo:     hasCodec(f.VCodec),
			Container:    f.Ext,
			Height:       intOrZero(f.Height),
			Bitrate:      floatOrZero(f.TBR),
			AudioBitrate: floatOrZero(f.ABR),
			SizeBytes:    f.Filesize,
			SizeApprox:   f.FilesizeApprox,
		})
	}

	return &model.ProbeResult{
		MediaID:      info.ID,
		Title:        info.Title,
		ThumbnailURL: info.Thumbnail,
		Candidates:   candidates,
	}, nil
}

// hasCodec reports whether a yt-dlp codec field names a real track.
// yt-dlp uses the literal string "none" for absent tracks.
func hasCodec(codec string) bool {
	return codec != "" && codec != "none"
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
