package bot

import (
	"fmt"
	"unicode/utf8"

	"github.com/ytget/tg-media-bot/internal/model"
)

// User-facing message text
const (
	msgGreeting = "Hi! 👋 Send me a media link (YouTube, Facebook, TikTok, etc.) and I'll show you download options."
	msgSendLink = "That doesn't look like a link. Paste a media URL starting with http:// or https://."

	msgChecking    = "🔎 Checking the link... hang on..."
	msgProbeFailed = "❌ Sorry, I can't download from this link. Check that it's correct and try again."
	msgNoFormats   = "❌ No downloadable formats found for this link."

	msgSessionMiss = "Session expired. Please send the link again."
	msgDuplicate   = "Already downloading this one..."

	msgDownloading = "⏳ Downloading... This may take a while depending on the file size."
	msgDone        = "✅ Done! Sent you the file."

	captionSuffix = "\n\nPick a format to download:"
)

// offerLabel builds the button text for one offer.
func offerLabel(offer model.FormatOffer) string {
	size := model.SizeLabel(offer.EstimatedSize)
	if offer.Kind == model.KindAudio {
		return fmt.Sprintf("🎵 MP3 Audio (%s)", size)
	}
	return fmt.Sprintf("🎬 %dp Video (%s)", offer.ResolutionP, size)
}

// offerCaption builds the offer message caption.
func offerCaption(title string) string {
	return title + captionSuffix
}

// fetchFailedText builds the failure notice with a short diagnostic. The
// diagnostic is cut at a rune boundary so a multi-byte character is never
// split mid-sequence.
func fetchFailedText(reason string) string {
	const maxDiag = 120
	if len(reason) > maxDiag {
		cut := maxDiag
		for cut > 0 && !utf8.RuneStart(reason[cut]) {
			cut--
		}
		reason = reason[:cut] + "…"
	}
	return fmt.Sprintf("❌ Download failed: %s", reason)
}
