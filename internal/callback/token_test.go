package callback

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ytget/tg-media-bot/internal/model"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		token Token
	}{
		{"audio", Token{Action: ActionDownload, Kind: model.KindAudio, MediaID: "dQw4w9WgXcQ"}},
		{"video 480p", Token{Action: ActionDownload, Kind: model.KindVideo, ResolutionP: 480, MediaID: "dQw4w9WgXcQ"}},
		{"video 1080p", Token{Action: ActionDownload, Kind: model.KindVideo, ResolutionP: 1080, MediaID: "x"}},
		{"media id containing delimiter", Token{Action: ActionDownload, Kind: model.KindVideo, ResolutionP: 360, MediaID: "weird:id:with:colons"}},
		{"audio id containing delimiter", Token{Action: ActionDownload, Kind: model.KindAudio, MediaID: "a:b"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			data, err := Encode(test.token)
			require.NoError(t, err)

			decoded, err := Decode(data)
			require.NoError(t, err)
			require.Equal(t, test.token, decoded)
		})
	}
}

func TestEncode_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		token Token
	}{
		{"unknown action", Token{Action: "nope", Kind: model.KindAudio, MediaID: "x"}},
		{"empty media id", Token{Action: ActionDownload, Kind: model.KindAudio}},
		{"video without resolution", Token{Action: ActionDownload, Kind: model.KindVideo, MediaID: "x"}},
		{"unknown kind", Token{Action: ActionDownload, Kind: "picture", MediaID: "x"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Encode(test.token)
			require.Error(t, err)
		})
	}
}

func TestDecode_Rejects(t *testing.T) {
	inputs := []string{
		"",
		"dl",
		"dl:",
		"dl:a:",
		"dl:v:480:",
		"dl:v:notanumber:id",
		"dl:v:-1:id",
		"dl:x:id",
		"gen:a:id",
		"random garbage",
	}

	for _, input := range inputs {
		if _, err := Decode(input); err == nil {
			t.Errorf("Decode(%q) succeeded, expected error", input)
		}
	}
}

func TestToken_Key_DistinguishesSelections(t *testing.T) {
	a := Token{Action: ActionDownload, Kind: model.KindAudio, MediaID: "m"}
	v360 := Token{Action: ActionDownload, Kind: model.KindVideo, ResolutionP: 360, MediaID: "m"}
	v480 := Token{Action: ActionDownload, Kind: model.KindVideo, ResolutionP: 480, MediaID: "m"}

	require.NotEqual(t, a.Key(), v360.Key())
	require.NotEqual(t, v360.Key(), v480.Key())
	require.Equal(t, v480.Key(), Token{Action: ActionDownload, Kind: model.KindVideo, ResolutionP: 480, MediaID: "m"}.Key())
}
