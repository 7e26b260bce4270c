package extract

// Package extract implements the media extraction boundary on top of yt-dlp
// (via github.com/lrstanley/go-ytdlp). Probe enumerates formats without
// transferring media; Fetch materializes exactly one requested encoding into
// a caller-owned working path.
