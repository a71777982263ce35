// Package ytdlp lists caption tracks by running the yt-dlp command-line
// tool and reading its JSON metadata dump.
package ytdlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"ytt/captions"
	"ytt/models"
)

// DefaultBinary is the executable looked up on PATH.
const DefaultBinary = "yt-dlp"

// captionFormat is the subtitle format whose URL is handed to the
// timedtext fetcher.
const captionFormat = "srv1"

// Runner executes name with args and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// TimedTextFetcher downloads and parses a timedtext document.
type TimedTextFetcher interface {
	FetchTimedText(ctx context.Context, url string) ([]models.Segment, error)
}

// SubtitleFormat is one downloadable rendition of a subtitle track.
type SubtitleFormat struct {
	Ext  string `json:"ext"`
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}

// ProbeResult holds the subset of the yt-dlp metadata dump used here.
type ProbeResult struct {
	ID                string                      `json:"id"`
	Title             string                      `json:"title"`
	Subtitles         map[string][]SubtitleFormat `json:"subtitles"`
	AutomaticCaptions map[string][]SubtitleFormat `json:"automatic_captions"`
}

// Tracks converts the dump into caption tracks: manual subtitles first,
// then automatic captions, each group sorted by language code. Live chat
// replays and machine translations are skipped.
func (pr *ProbeResult) Tracks() []models.CaptionTrack {
	tracks := collectTracks(pr.ID, pr.Subtitles, false)
	return append(tracks, collectTracks(pr.ID, pr.AutomaticCaptions, true)...)
}

func collectTracks(videoID string, byLang map[string][]SubtitleFormat, generated bool) []models.CaptionTrack {
	codes := make([]string, 0, len(byLang))
	for code := range byLang {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var tracks []models.CaptionTrack
	for _, code := range codes {
		if code == "live_chat" {
			continue
		}
		f, ok := findFormat(byLang[code], captionFormat)
		if !ok || (generated && strings.Contains(f.URL, "tlang=")) {
			continue
		}
		name := f.Name
		if name == "" {
			name = captions.DisplayName(code)
		}
		tracks = append(tracks, models.CaptionTrack{
			VideoID:      videoID,
			Language:     name,
			LanguageCode: code,
			Generated:    generated,
			URL:          f.URL,
		})
	}
	return tracks
}

func findFormat(formats []SubtitleFormat, ext string) (SubtitleFormat, bool) {
	for _, f := range formats {
		if f.Ext == ext && f.URL != "" {
			return f, true
		}
	}
	return SubtitleFormat{}, false
}

// Prober implements captions.Provider on top of yt-dlp. Segment download
// is delegated to a TimedTextFetcher.
type Prober struct {
	binary  string
	run     Runner
	fetcher TimedTextFetcher
}

// NewProber creates a Prober that runs DefaultBinary and downloads
// segments through fetcher.
func NewProber(fetcher TimedTextFetcher) *Prober {
	return &Prober{
		binary:  DefaultBinary,
		run:     execRunner,
		fetcher: fetcher,
	}
}

// SetBinary sets the yt-dlp executable path.
func (p *Prober) SetBinary(path string) *Prober {
	if path != "" {
		p.binary = path
	}
	return p
}

// SetRunner replaces the command runner.
func (p *Prober) SetRunner(run Runner) *Prober {
	p.run = run
	return p
}

// Probe runs yt-dlp for a video and parses the metadata dump.
//
// Example:
//
//	result, err := ytdlp.NewProber(youtube.NewClient()).Probe(ctx, "dQw4w9WgXcQ")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, t := range result.Tracks() {
//	    fmt.Println(t)
//	}
func (p *Prober) Probe(ctx context.Context, videoID string) (*ProbeResult, error) {
	if videoID == "" {
		return nil, fmt.Errorf("video ID cannot be empty")
	}

	args := []string{
		"--dump-single-json",
		"--skip-download",
		"--no-warnings",
		captions.WatchURL(videoID),
	}

	log.Debug().Str("binary", p.binary).Strs("args", args).Msg("running yt-dlp")

	output, err := p.run(ctx, p.binary, args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, classify(videoID, err)
	}

	var result ProbeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp JSON output: %w", err)
	}
	if result.ID == "" {
		result.ID = videoID
	}
	return &result, nil
}

// ListTracks implements captions.Provider.
func (p *Prober) ListTracks(ctx context.Context, videoID string) (*captions.TrackList, error) {
	result, err := p.Probe(ctx, videoID)
	if err != nil {
		return nil, err
	}

	tracks := result.Tracks()
	if len(tracks) == 0 {
		return nil, &captions.TranscriptsDisabledError{VideoID: videoID}
	}

	return &captions.TrackList{
		VideoID: videoID,
		Title:   result.Title,
		Tracks:  tracks,
	}, nil
}

// FetchSegments implements captions.Provider.
func (p *Prober) FetchSegments(ctx context.Context, track models.CaptionTrack) ([]models.Segment, error) {
	if err := track.Validate(); err != nil {
		return nil, fmt.Errorf("invalid caption track: %w", err)
	}
	if p.fetcher == nil {
		return nil, fmt.Errorf("no timedtext fetcher configured")
	}
	return p.fetcher.FetchTimedText(ctx, track.URL)
}

// classify maps yt-dlp error output onto the captions error taxonomy.
func classify(videoID string, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "HTTP Error 429"), strings.Contains(msg, "not a bot"):
		return &captions.TooManyRequestsError{VideoID: videoID}
	case strings.Contains(msg, "confirm your age"):
		return &captions.AgeRestrictedError{VideoID: videoID}
	case strings.Contains(msg, "Video unavailable"), strings.Contains(msg, "Private video"):
		return &captions.VideoUnavailableError{VideoID: videoID}
	}
	return fmt.Errorf("yt-dlp failed: %w", err)
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w (output: %s)", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, err
	}
	return output, nil
}
