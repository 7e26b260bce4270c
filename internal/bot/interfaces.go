package bot

import (
	"context"

	"github.com/ytget/tg-media-bot/internal/model"
)

// Extractor defines the media extraction capability the workflow consumes.
type Extractor interface {
	// Probe enumerates candidate encodings without transferring media.
	Probe(ctx context.Context, url string) (*model.ProbeResult, error)

	// Fetch materializes one encoding locally and returns its path. The
	// path is valid even on error so partial artifacts can be removed.
	Fetch(ctx context.Context, spec model.FetchSpec) (string, error)
}
