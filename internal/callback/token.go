// Package callback encodes selection tokens that cross the messaging
// transport as opaque callback data. The format is a fixed-field, colon
// delimited string with the media id always in the trailing position, so a
// delimiter inside a media id can never shift fields. Telegram limits
// callback data to 64 bytes, which rules out heavier serializations.
package callback

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ytget/tg-media-bot/internal/model"
)

// Action names the operation a token requests.
type Action string

const (
	// ActionDownload asks for one offer to be fetched and delivered.
	ActionDownload Action = "dl"
)

const (
	delimiter = ":"

	kindCodeAudio = "a"
	kindCodeVideo = "v"
)

// Token is the decoded form of one selection event payload.
type Token struct {
	Action      Action
	Kind        model.MediaKind
	ResolutionP int // video only
	MediaID     string
}

// Encode serializes the token. The media id is written last and is never
// split, so any characters inside it survive a round trip.
func Encode(t Token) (string, error) {
	if t.Action != ActionDownload {
		return "", fmt.Errorf("unknown action %q", t.Action)
	}
	if t.MediaID == "" {
		return "", fmt.Errorf("empty media id")
	}
	switch t.Kind {
	case model.KindAudio:
		return string(t.Action) + delimiter + kindCodeAudio + delimiter + t.MediaID, nil
	case model.KindVideo:
		if t.ResolutionP <= 0 {
			return "", fmt.Errorf("video token requires a resolution")
		}
		return fmt.Sprintf("%s%s%s%s%d%s%s", t.Action, delimiter, kindCodeVideo, delimiter, t.ResolutionP, delimiter, t.MediaID), nil
	default:
		return "", fmt.Errorf("unknown media kind %q", t.Kind)
	}
}

// Decode parses a callback payload. Malformed input returns an error, never
// a panic.
func Decode(data string) (Token, error) {
	parts := strings.SplitN(data, delimiter, 2)
	if len(parts) != 2 || Action(parts[0]) != ActionDownload {
		return Token{}, fmt.Errorf("unknown callback action in %q", data)
	}
	rest := parts[1]

	parts = strings.SplitN(rest, delimiter, 2)
	if len(parts) != 2 {
		return Token{}, fmt.Errorf("truncated callback data %q", data)
	}

	switch parts[0] {
	case kindCodeAudio:
		if parts[1] == "" {
			return Token{}, fmt.Errorf("empty media id in %q", data)
		}
		return Token{Action: ActionDownload, Kind: model.KindAudio, MediaID: parts[1]}, nil
	case kindCodeVideo:
		fields := strings.SplitN(parts[1], delimiter, 2)
		if len(fields) != 2 || fields[1] == "" {
			return Token{}, fmt.Errorf("truncated video callback data %q", data)
		}
		res, err := strconv.Atoi(fields[0])
		if err != nil || res <= 0 {
			return Token{}, fmt.Errorf("bad resolution %q in callback data", fields[0])
		}
		return Token{Action: ActionDownload, Kind: model.KindVideo, ResolutionP: res, MediaID: fields[1]}, nil
	default:
		return Token{}, fmt.Errorf("unknown media kind code %q", parts[0])
	}
}

// Key returns the in-flight guard key for the token: one fetch at a time per
// (media id, kind, resolution).
func (t Token) Key() string {
	return fmt.Sprintf("%s|%s|%d", t.MediaID, t.Kind, t.ResolutionP)
}
