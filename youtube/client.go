// Package youtube implements captions.Provider against youtube.com.
//
// Listing tracks takes two requests: the watch page (for the innertube API
// key, the title and block/consent markers) and the innertube player
// endpoint (for playability and the caption track list). Fetching a track
// downloads its timedtext XML.
package youtube

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"ytt/captions"
	"ytt/models"
)

const (
	// DefaultBaseURL is the origin all requests are made against.
	DefaultBaseURL = "https://www.youtube.com"

	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

	// DefaultTimeout bounds each HTTP request.
	DefaultTimeout = 30 * time.Second

	// maxBodySize caps how much of a response is read.
	maxBodySize = 16 << 20
)

// Client talks to YouTube over HTTP. The zero value is not usable; create
// one with NewClient.
type Client struct {
	baseURL            string
	httpClient         *http.Client
	userAgent          string
	acceptLanguage     string
	preserveFormatting bool
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the YouTube origin, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithPreserveFormatting keeps HTML formatting tags (<b>, <i>, ...) in
// caption text instead of stripping them.
func WithPreserveFormatting(preserve bool) Option {
	return func(c *Client) { c.preserveFormatting = preserve }
}

// NewClient creates a Client with default settings.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:        DefaultBaseURL,
		httpClient:     &http.Client{Timeout: DefaultTimeout},
		userAgent:      DefaultUserAgent,
		acceptLanguage: "en-US",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListTracks implements captions.Provider.
func (c *Client) ListTracks(ctx context.Context, videoID string) (*captions.TrackList, error) {
	page, err := c.fetchWatchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}

	player, err := c.fetchPlayer(ctx, videoID, page)
	if err != nil {
		return nil, err
	}

	if err := player.checkPlayability(videoID); err != nil {
		return nil, err
	}

	tracks, err := player.captionTracks(videoID)
	if err != nil {
		return nil, err
	}

	title := player.VideoDetails.Title
	if title == "" {
		title = page.title
	}

	log.Debug().
		Str("video_id", videoID).
		Int("tracks", len(tracks)).
		Msg("player response parsed")

	return &captions.TrackList{
		VideoID: videoID,
		Title:   title,
		Tracks:  tracks,
	}, nil
}

// FetchSegments implements captions.Provider.
func (c *Client) FetchSegments(ctx context.Context, track models.CaptionTrack) ([]models.Segment, error) {
	if err := track.Validate(); err != nil {
		return nil, fmt.Errorf("invalid caption track: %w", err)
	}
	return c.FetchTimedText(ctx, track.URL)
}

// FetchTimedText downloads a timedtext document (srv1 XML) and parses it
// into segments.
func (c *Client) FetchTimedText(ctx context.Context, url string) ([]models.Segment, error) {
	body, err := c.get(ctx, url, "", "")
	if err != nil {
		return nil, fmt.Errorf("failed to download captions: %w", err)
	}

	segments, err := ParseTimedText(strings.NewReader(body), c.preserveFormatting)
	if err != nil {
		return nil, err
	}

	log.Debug().Int("segments", len(segments)).Int("bytes", len(body)).Msg("timedtext fetched")
	return segments, nil
}

// get performs a GET request and returns the body. videoID is only used to
// classify a 429 response.
func (c *Client) get(ctx context.Context, url, videoID, cookie string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	return c.do(req, videoID)
}

func (c *Client) do(req *http.Request, videoID string) (string, error) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", c.acceptLanguage)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", &captions.TooManyRequestsError{VideoID: videoID}
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%s %s: unexpected status %s", req.Method, req.URL.Path, resp.Status)
	}

	return string(data), nil
}
