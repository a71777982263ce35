package captions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ytt/models"
)

func TestTrackListPartitions(t *testing.T) {
	tl := &TrackList{
		VideoID: "dQw4w9WgXcQ",
		Tracks: []models.CaptionTrack{
			{LanguageCode: "en", Generated: true},
			{LanguageCode: "de"},
			{LanguageCode: "en"},
		},
	}

	assert.Equal(t, []string{"en", "de", "en"}, tl.LanguageCodes())
	assert.Len(t, tl.Manual(), 2)
	assert.Equal(t, "de", tl.Manual()[0].LanguageCode)
	assert.Len(t, tl.Generated(), 1)
}

func TestWatchURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", WatchURL("dQw4w9WgXcQ"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "German", DisplayName("de"))
	assert.Equal(t, "English", DisplayName("en"))
	assert.Equal(t, "not a code!", DisplayName("not a code!"))
}
