// Package transcript is the entry point for extracting a video transcript:
// it resolves the input to a video ID, selects and fetches a caption track
// and renders it.
package transcript

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"ytt/captions"
	"ytt/chunker"
	"ytt/formatter"
	"ytt/models"
	"ytt/resolver"
	"ytt/selector"
	"ytt/youtube"
)

// Extractor extracts transcripts through a captions provider.
type Extractor struct {
	provider captions.Provider
	policy   selector.FallbackPolicy
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithProvider replaces the default youtube.Client provider.
func WithProvider(p captions.Provider) Option {
	return func(e *Extractor) { e.provider = p }
}

// WithFallbackPolicy sets the policy used when no preferred language has a track.
func WithFallbackPolicy(policy selector.FallbackPolicy) Option {
	return func(e *Extractor) { e.policy = policy }
}

// NewExtractor creates an Extractor. Without options it uses a default
// youtube.Client and selector.FallbackNone.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{policy: selector.FallbackNone}
	for _, opt := range opts {
		opt(e)
	}
	if e.provider == nil {
		e.provider = youtube.NewClient()
	}
	return e
}

// Extract is a shorthand for NewExtractor(opts...).Extract.
//
// Example:
//
//	result, err := transcript.Extract(ctx, "https://youtu.be/dQw4w9WgXcQ", []string{"de", "en"}, true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Text)
func Extract(ctx context.Context, input string, languages []string, includeTimestamps bool, opts ...Option) (*models.TranscriptResult, error) {
	return NewExtractor(opts...).Extract(ctx, input, languages, includeTimestamps)
}

// Extract resolves input, selects a track following languages and returns
// the rendered transcript. An empty languages list means English.
func (e *Extractor) Extract(ctx context.Context, input string, languages []string, includeTimestamps bool) (*models.TranscriptResult, error) {
	videoID, err := resolver.Resolve(input)
	if err != nil {
		return nil, err
	}
	if len(languages) == 0 {
		languages = []string{selector.DefaultLanguage}
	}

	log.Debug().Str("input", input).Str("video_id", videoID).Msg("input resolved")

	sel, err := selector.NewSelector(e.provider).
		SetFallbackPolicy(e.policy).
		Select(ctx, videoID, languages)
	if err != nil {
		return nil, err
	}

	track := sel.Track
	if track.VideoID == "" {
		track.VideoID = videoID
	}

	text := formatter.Render(sel.Segments, includeTimestamps)
	result, err := models.NewTranscriptResult(track, sel.Origin, sel.Title, text, sel.Segments)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("video_id", videoID).
		Int("segments", len(result.Segments)).
		Int("characters", len(result.Text)).
		Msg("transcript rendered")

	return result, nil
}

// VideoInfo describes the caption tracks available for a video.
type VideoInfo struct {
	VideoID string                `json:"video_id"`
	URL     string                `json:"url"`
	Title   string                `json:"title,omitempty"`
	Tracks  []models.CaptionTrack `json:"tracks"`
}

// Info resolves input and lists its caption tracks without fetching any.
func (e *Extractor) Info(ctx context.Context, input string) (*VideoInfo, error) {
	videoID, err := resolver.Resolve(input)
	if err != nil {
		return nil, err
	}

	list, err := e.provider.ListTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	return &VideoInfo{
		VideoID: videoID,
		URL:     captions.WatchURL(videoID),
		Title:   list.Title,
		Tracks:  list.Tracks,
	}, nil
}

// Chunks splits a transcript into chunks of at most size characters.
// Units (lines or words) are never split, so joining the chunks with
// formatter.Separator(includeTimestamps) gives the rendered text.
func Chunks(result *models.TranscriptResult, includeTimestamps bool, size int) ([]*models.TextChunk, error) {
	if result == nil {
		return nil, fmt.Errorf("transcript result cannot be nil")
	}

	units := formatter.Units(result.Segments, includeTimestamps)
	chunks, err := chunker.NewChunker(units, formatter.Separator(includeTimestamps)).
		SetChunkSize(size).
		CreateChunks()
	if err != nil {
		return nil, fmt.Errorf("failed to chunk transcript: %w", err)
	}
	return chunks, nil
}
