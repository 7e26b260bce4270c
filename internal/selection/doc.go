package selection

// Package selection implements the format selector: it reduces the raw
// candidate list reported by a probe to a small, ranked, deduplicated set of
// user-facing offers: one best-bitrate audio offer and at most one muxed
// video offer per canonical resolution.
