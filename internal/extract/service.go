package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/tg-media-bot/internal/model"
)

// Format selection templates passed to yt-dlp
const (
	AudioFormatSpec    = "bestaudio/best"
	AudioCodec         = "mp3"
	AudioQuality       = "192K"
	VideoFormatSpecTpl = "bestvideo[height<=%d][ext=mp4]+bestaudio[ext=m4a]/best[height<=%d][ext=mp4]"
)

// Service handles probe and fetch operations against source links
type Service struct {
	downloadDir string
}

// NewService creates a new extraction service writing artifacts under dir.
func NewService(dir string) *Service {
	return &Service{downloadDir: dir}
}

// Probe enumerates available encodings for a link without downloading media.
func (s *Service) Probe(ctx context.Context, url string) (*model.ProbeResult, error) {
	dl := ytdlp.New().
		Quiet().
		NoWarnings().
		NoPlaylist().
		SkipDownload().
		DumpSingleJSON()

	result, err := dl.Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", url, err)
	}

	return parseProbeOutput(result.Stdout)
}

// Fetch materializes one requested encoding into the working path derived
// from spec.WorkID. The returned path is valid even on error so the caller
// can clean up partial artifacts.
func (s *Service) Fetch(ctx context.Context, spec model.FetchSpec) (string, error) {
	workBase := filepath.Join(s.downloadDir, spec.WorkID)
	artifactPath := workBase + "." + spec.Kind.Ext()

	dl := ytdlp.New().
		Quiet().
		NoWarnings().
		NoPlaylist().
		ForceOverwrites().
		Output(workBase + ".%(ext)s")

	switch spec.Kind {
	case model.KindAudio:
		dl = dl.
			Format(AudioFormatSpec).
			ExtractAudio().
			AudioFormat(AudioCodec).
			AudioQuality(AudioQuality)
	case model.KindVideo:
		if spec.ResolutionP <= 0 {
			return artifactPath, fmt.Errorf("video fetch requires a resolution ceiling")
		}
		dl = dl.Format(fmt.Sprintf(VideoFormatSpecTpl, spec.ResolutionP, spec.ResolutionP))
	default:
		return artifactPath, fmt.Errorf("unknown media kind %q", spec.Kind)
	}

	if _, err := dl.Run(ctx, spec.SourceURL); err != nil {
		return artifactPath, fmt.Errorf("fetch %s: %w", spec.SourceURL, err)
	}

	if _, err := os.Stat(artifactPath); err != nil {
		return artifactPath, fmt.Errorf("fetch produced no artifact at %s: %w", artifactPath, err)
	}

	return artifactPath, nil
}
