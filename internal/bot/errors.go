// Package bot drives the per-request download workflow: probe a pasted link,
// render deduplicated offers, fulfill a later selection, and clean up the
// transient artifact. This file centralizes workflow error values so callers
// can classify failures with errors.Is; translation into user-facing text
// happens where the status message is edited.
package bot

import "errors"

var (
	// ErrNoOffers means a probe succeeded but no downloadable format could
	// be offered. Terminal for the request; the user must try another link.
	ErrNoOffers = errors.New("no downloadable formats")

	// ErrSessionMiss means a selection referenced a media id that was never
	// stored or has expired. Expected after restarts and long idle gaps,
	// recovered by asking for the link again.
	ErrSessionMiss = errors.New("session not found")

	// ErrFetchInFlight means an identical selection is already downloading.
	// The duplicate tap is dropped, not queued.
	ErrFetchInFlight = errors.New("fetch already in flight")
)
