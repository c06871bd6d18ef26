package ioenrich

import (
	"testing"

	"github.com/ecoglobe/biosync/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaFormat(t *testing.T) {
	tests := []struct {
		msg    string
		format string
		id     string
		res    string
	}{
		{"given mime", "Image/PNG", "https://x/a.jpg", "image/png"},
		{"jpeg by extension", "", "https://x/a.jpeg", "image/jpeg"},
		{"query string ignored", "", "https://x/a.mp3?dl=1", "audio/mpeg"},
		{"video", "", "https://x/clip.MP4", "video/mp4"},
		{"unknown extension", "", "https://x/a.bin", ""},
		{"no extension keeps non mime", "jpeg", "https://x/a", "jpeg"},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, mediaFormat(v.format, v.id), v.msg)
	}
}

func TestMediaType(t *testing.T) {
	assert.Equal(t, StillImage, mediaType("image/jpeg", "Sound"))
	assert.Equal(t, Sound, mediaType("audio/ogg", ""))
	assert.Equal(t, MovingImage, mediaType("video/mp4", ""))
	assert.Equal(t, "InteractiveResource", mediaType("", " InteractiveResource "))
}

func TestNormalizeMedia(t *testing.T) {
	res := normalizeMedia([]sources.MediaItem{
		{Identifier: ""},
		{Identifier: "https://x/b.wav", Creator: " Ann ", License: "CC-BY"},
	})
	require.Len(t, res, 1)
	assert.Equal(t, Sound, res[0].Type)
	assert.Equal(t, "audio/wav", res[0].Format)
	assert.Equal(t, "Ann", res[0].Creator)
	assert.Equal(t, "CC-BY", res[0].License)
}

func TestPlain(t *testing.T) {
	assert.Empty(t, plain(" \n "))
	assert.Equal(t, "Lives in forests.",
		plain("<p>Lives   in <i>forests</i>.</p>"))
}

func TestPickVernacular(t *testing.T) {
	tests := []struct {
		msg   string
		names []sources.Vernacular
		res   string
	}{
		{"empty", nil, ""},
		{"first if no english", []sources.Vernacular{
			{VernacularName: "Puma", Language: "spa"},
			{VernacularName: "Onça-parda", Language: "por"},
		}, "Puma"},
		{"english preferred", []sources.Vernacular{
			{VernacularName: "Puma", Language: "spa"},
			{VernacularName: "Cougar", Language: "ENG"},
		}, "Cougar"},
		{"blank skipped", []sources.Vernacular{
			{VernacularName: " ", Language: "eng"},
			{VernacularName: "Puma", Language: "spa"},
		}, "Puma"},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, pickVernacular(v.names), v.msg)
	}
}
