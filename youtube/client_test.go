package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytt/captions"
	"ytt/models"
)

const testVideoID = "dQw4w9WgXcQ"

const watchHTML = `<!DOCTYPE html><html><head>
<title>Never Gonna Give You Up - YouTube</title>
<meta name="title" content="Never Gonna Give You Up">
</head><body>
<script>ytcfg.set({"INNERTUBE_API_KEY": "test-key_123", "OTHER": 1});</script>
</body></html>`

const timedTextXML = `<?xml version="1.0" encoding="utf-8" ?><transcript>
<text start="0.08" dur="2.3">We&amp;#39;re no strangers</text>
<text start="65.5" dur="1.5">to &lt;i&gt;love&lt;/i&gt;</text>
<text start="70" dur="1">   </text>
</transcript>`

// fakeYouTube serves the three endpoints the client uses.
type fakeYouTube struct {
	watch      string
	player     func(host string) string
	playerCode int
	timedtext  string
	playerBody playerRequest
	requests   []string
	cookies    []string
}

func (f *fakeYouTube) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	f.cookies = append(f.cookies, r.Header.Get("Cookie"))

	switch r.URL.Path {
	case "/watch":
		fmt.Fprint(w, f.watch)
	case "/youtubei/v1/player":
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &f.playerBody)
		if f.playerCode != 0 {
			w.WriteHeader(f.playerCode)
			return
		}
		fmt.Fprint(w, f.player(r.Host))
	case "/api/timedtext":
		fmt.Fprint(w, f.timedtext)
	default:
		http.NotFound(w, r)
	}
}

func playerWithTracks(host string) string {
	return fmt.Sprintf(`{
  "playabilityStatus": {"status": "OK"},
  "videoDetails": {"videoId": %q, "title": "Never Gonna Give You Up"},
  "captions": {"playerCaptionsTracklistRenderer": {"captionTracks": [
    {"baseUrl": "http://%s/api/timedtext?v=x&lang=en&fmt=srv3", "name": {"runs": [{"text": "English"}]}, "languageCode": "en", "isTranslatable": true},
    {"baseUrl": "http://%s/api/timedtext?v=x&lang=en&kind=asr", "name": {"simpleText": "English (auto-generated)"}, "languageCode": "en", "kind": "asr"},
    {"baseUrl": "http://%s/api/timedtext?v=x&lang=de", "languageCode": "de"}
  ]}}
}`, testVideoID, host, host, host)
}

func newTestClient(t *testing.T, f *fakeYouTube, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return NewClient(append([]Option{WithBaseURL(srv.URL)}, opts...)...)
}

func TestClient_ListTracks(t *testing.T) {
	f := &fakeYouTube{watch: watchHTML, player: playerWithTracks}
	c := newTestClient(t, f)

	list, err := c.ListTracks(context.Background(), testVideoID)

	require.NoError(t, err)
	assert.Equal(t, testVideoID, list.VideoID)
	assert.Equal(t, "Never Gonna Give You Up", list.Title)
	require.Len(t, list.Tracks, 3)

	assert.Equal(t, "English", list.Tracks[0].Language)
	assert.False(t, list.Tracks[0].Generated)
	assert.True(t, list.Tracks[0].Translatable)
	assert.NotContains(t, list.Tracks[0].URL, "fmt=srv3")

	assert.Equal(t, "English (auto-generated)", list.Tracks[1].Language)
	assert.True(t, list.Tracks[1].Generated)

	assert.Equal(t, "German", list.Tracks[2].Language, "missing names fall back to the display name")

	assert.Equal(t, "ANDROID", f.playerBody.Context.Client.ClientName)
	assert.Equal(t, testVideoID, f.playerBody.VideoID)
}

func TestClient_FetchSegments(t *testing.T) {
	f := &fakeYouTube{watch: watchHTML, player: playerWithTracks, timedtext: timedTextXML}
	c := newTestClient(t, f)

	list, err := c.ListTracks(context.Background(), testVideoID)
	require.NoError(t, err)

	segs, err := c.FetchSegments(context.Background(), list.Tracks[0])

	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, models.Segment{Start: 0.08, Duration: 2.3, Text: "We're no strangers"}, segs[0])
	assert.Equal(t, "to love", segs[1].Text)
	assert.Equal(t, 65.5, segs[1].Start)
}

func TestClient_FetchSegmentsPreservesFormatting(t *testing.T) {
	f := &fakeYouTube{watch: watchHTML, player: playerWithTracks, timedtext: timedTextXML}
	c := newTestClient(t, f, WithPreserveFormatting(true))

	list, err := c.ListTracks(context.Background(), testVideoID)
	require.NoError(t, err)

	segs, err := c.FetchSegments(context.Background(), list.Tracks[0])

	require.NoError(t, err)
	assert.Equal(t, "to <i>love</i>", segs[1].Text)
}

func TestClient_FetchSegmentsInvalidTrack(t *testing.T) {
	c := NewClient()

	_, err := c.FetchSegments(context.Background(), models.CaptionTrack{LanguageCode: "en"})

	assert.ErrorContains(t, err, "invalid caption track")
}

func TestClient_TranscriptsDisabled(t *testing.T) {
	f := &fakeYouTube{watch: watchHTML, player: func(string) string {
		return `{"playabilityStatus": {"status": "OK"}, "videoDetails": {"title": "t"}}`
	}}
	c := newTestClient(t, f)

	_, err := c.ListTracks(context.Background(), testVideoID)

	var disabled *captions.TranscriptsDisabledError
	require.ErrorAs(t, err, &disabled)
	assert.Equal(t, testVideoID, disabled.VideoID)
}

func TestClient_PlayabilityErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		sentinel error
	}{
		{"unavailable", `{"status": "ERROR", "reason": "This video is unavailable"}`, captions.ErrVideoUnavailable},
		{"bot check", `{"status": "LOGIN_REQUIRED", "reason": "Sign in to confirm you're not a bot"}`, captions.ErrTooManyRequests},
		{"age restricted", `{"status": "LOGIN_REQUIRED", "reason": "This video may be inappropriate for some users."}`, captions.ErrAgeRestricted},
		{"unplayable", `{"status": "UNPLAYABLE", "reason": "Private video", "errorScreen": {"playerErrorMessageRenderer": {"subreason": {"runs": [{"text": "Sign in"}]}}}}`, captions.ErrVideoUnplayable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := tt.status
			f := &fakeYouTube{watch: watchHTML, player: func(string) string {
				return `{"playabilityStatus": ` + status + `}`
			}}
			c := newTestClient(t, f)

			_, err := c.ListTracks(context.Background(), testVideoID)

			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestClient_UnplayableReasonIncludesSubreason(t *testing.T) {
	f := &fakeYouTube{watch: watchHTML, player: func(string) string {
		return `{"playabilityStatus": {"status": "UNPLAYABLE", "reason": "Private video", "errorScreen": {"playerErrorMessageRenderer": {"subreason": {"simpleText": "Ask the owner"}}}}}`
	}}
	c := newTestClient(t, f)

	_, err := c.ListTracks(context.Background(), testVideoID)

	var unplayable *captions.VideoUnplayableError
	require.ErrorAs(t, err, &unplayable)
	assert.Equal(t, "Private video Ask the owner", unplayable.Reason)
}

func TestClient_Recaptcha(t *testing.T) {
	f := &fakeYouTube{watch: `<html><body><div class="g-recaptcha"></div></body></html>`}
	c := newTestClient(t, f)

	_, err := c.ListTracks(context.Background(), testVideoID)

	assert.ErrorIs(t, err, captions.ErrTooManyRequests)
	assert.Equal(t, []string{"GET /watch"}, f.requests, "player endpoint must not be called")
}

func TestClient_MissingAPIKey(t *testing.T) {
	f := &fakeYouTube{watch: `<html><head><title>YouTube</title></head></html>`}
	c := newTestClient(t, f)

	_, err := c.ListTracks(context.Background(), testVideoID)

	assert.ErrorIs(t, err, captions.ErrVideoUnavailable)
}

func TestClient_HTTP429(t *testing.T) {
	f := &fakeYouTube{watch: watchHTML, playerCode: http.StatusTooManyRequests}
	c := newTestClient(t, f)

	_, err := c.ListTracks(context.Background(), testVideoID)

	assert.ErrorIs(t, err, captions.ErrTooManyRequests)
}

func TestClient_ConsentInterstitial(t *testing.T) {
	consent := `<html><body><form action="https://consent.youtube.com/s" method="POST">
<input type="hidden" name="v" value="cb.20210328-17-p0.en+FX+123"></form></body></html>`

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/watch":
			calls++
			if strings.HasPrefix(r.Header.Get("Cookie"), "CONSENT=YES+cb.20210328") {
				fmt.Fprint(w, watchHTML)
				return
			}
			fmt.Fprint(w, consent)
		case "/youtubei/v1/player":
			assert.Equal(t, "CONSENT=YES+cb.20210328-17-p0.en+FX+123", r.Header.Get("Cookie"))
			fmt.Fprint(w, playerWithTracks(r.Host))
		}
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	list, err := c.ListTracks(context.Background(), testVideoID)

	require.NoError(t, err)
	assert.Len(t, list.Tracks, 3)
	assert.Equal(t, 2, calls)
}

func TestClient_ContextCancelled(t *testing.T) {
	f := &fakeYouTube{watch: watchHTML, player: playerWithTracks}
	c := newTestClient(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListTracks(ctx, testVideoID)

	assert.ErrorIs(t, err, context.Canceled)
}
