package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleProbeJSON = `{
	"id": "dQw4w9WgXcQ",
	"title": "Test Clip",
	"thumbnail": "https://example.com/thumb.jpg",
	"formats": [
		{"format_id": "140", "ext": "m4a", "acodec": "mp4a.40.2", "vcodec": "none", "abr": 129.5, "filesize": 3400000},
		{"format_id": "18", "ext": "mp4", "acodec": "mp4a.40.2", "vcodec": "avc1.42001E", "height": 360, "tbr": 500.1, "filesize_approx": 9000000},
		{"format_id": "137", "ext": "mp4", "acodec": "none", "vcodec": "avc1.640028", "height": 1080, "tbr": 4400.0}
	]
}`

func TestParseProbeOutput(t *testing.T) {
	result, err := parseProbeOutput(sampleProbeJSON)
	require.NoError(t, err)

	require.Equal(t, "dQw4w9WgXcQ", result.MediaID)
	require.Equal(t, "Test Clip", result.Title)
	require.Equal(t, "https://example.com/thumb.jpg", result.ThumbnailURL)
	require.Len(t, result.Candidates, 3)

	audio := result.Candidates[0]
	require.True(t, audio.HasAudio)
	require.False(t, audio.HasVideo)
	require.Equal(t, 129.5, audio.AudioBitrate)
	require.NotNil(t, audio.SizeBytes)
	require.EqualValues(t, 3400000, *audio.SizeBytes)

	muxed := result.Candidates[1]
	require.True(t, muxed.HasAudio)
	require.True(t, muxed.HasVideo)
	require.Equal(t, 360, muxed.Height)
	require.Equal(t, "mp4", muxed.Container)
	require.Nil(t, muxed.SizeBytes)
	require.NotNil(t, muxed.SizeApprox)

	videoOnly := result.Candidates[2]
	require.False(t, videoOnly.HasAudio)
	require.True(t, videoOnly.HasVideo)
	require.Nil(t, videoOnly.EstimatedSize())
}

func TestParseProbeOutput_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", "   \n"},
		{"not json", "yt-dlp: error"},
		{"missing id", `{"title": "no id", "formats": []}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := parseProbeOutput(test.raw)
			require.Error(t, err)
		})
	}
}

func TestParseProbeOutput_NoFormats(t *testing.T) {
	result, err := parseProbeOutput(`{"id": "abc", "title": "bare"}`)
	require.NoError(t, err)
	require.Empty(t, result.Candidates)
}
