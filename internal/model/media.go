package model

import "strings"

// MediaKind distinguishes deliverable media types.
type MediaKind string

const (
	// KindAudio is an audio-only artifact (mp3).
	KindAudio MediaKind = "audio"

	// KindVideo is a muxed audio+video artifact (mp4).
	KindVideo MediaKind = "video"
)

// Ext returns the artifact file extension for the kind, without a dot.
func (k MediaKind) Ext() string {
	if k == KindAudio {
		return "mp3"
	}
	return "mp4"
}

// MediaRequest is the session record written after a successful probe and
// read back when a selection arrives. It is write-once: never mutated after
// creation.
type MediaRequest struct {
	MediaID      string // probe-reported media identifier, unique per media
	Title        string // display title
	SourceURL    string // original link the user pasted
	ThumbnailURL string // best-known cover image, empty if none
}

// Candidate is one concrete encoding reported by a probe.
type Candidate struct {
	FormatID     string
	HasAudio     bool
	HasVideo     bool
	Container    string // file extension reported by the source, e.g. "mp4"
	Height       int    // pixel height, 0 for audio-only candidates
	Bitrate      float64
	AudioBitrate float64
	SizeBytes    *int64 // exact size if reported
	SizeApprox   *int64 // approximate size if reported
}

// EstimatedSize returns the exact size when present, else the approximate
// size, else nil.
func (c Candidate) EstimatedSize() *int64 {
	if c.SizeBytes != nil {
		return c.SizeBytes
	}
	return c.SizeApprox
}

// ProbeResult is the outcome of a metadata-only probe against a source link.
type ProbeResult struct {
	MediaID      string
	Title        string
	ThumbnailURL string
	Candidates   []Candidate
}

// FormatOffer is one user-selectable, deduplicated download option.
type FormatOffer struct {
	Kind          MediaKind
	ResolutionP   int    // pixel height for video offers, 0 for audio
	EstimatedSize *int64 // nil renders as "N/A"
}

// FetchSpec describes exactly one download to execute.
type FetchSpec struct {
	Kind        MediaKind
	ResolutionP int    // video resolution ceiling, ignored for audio
	SourceURL   string
	WorkID      string // per-invocation unique working identifier
}

// Filename derives a delivery filename from a display title and kind.
// Path separators are stripped so the title can never escape a directory.
func Filename(title string, kind MediaKind) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '\x00':
			return ' '
		}
		return r
	}, title)
	clean = strings.TrimSpace(clean)
	if clean == "" {
		clean = "media"
	}
	return clean + "." + kind.Ext()
}
