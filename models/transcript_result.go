package models

import (
	"fmt"
	"strings"
)

// TranscriptResult is the outcome of a single extraction.
//
// It is produced once per invocation and not modified afterwards; Segments
// is a private copy of the fetched data.
type TranscriptResult struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title,omitempty"`
	Language     string    `json:"language"`
	LanguageCode string    `json:"language_code"`
	Origin       Origin    `json:"origin"`
	Generated    bool      `json:"is_generated"`
	Text         string    `json:"text"`
	Segments     []Segment `json:"segments"`
}

// NewTranscriptResult creates a validated TranscriptResult for the given
// track. Text is the rendered transcript.
func NewTranscriptResult(track CaptionTrack, origin Origin, title, text string, segments []Segment) (*TranscriptResult, error) {
	segs := make([]Segment, len(segments))
	copy(segs, segments)

	tr := &TranscriptResult{
		VideoID:      track.VideoID,
		Title:        title,
		Language:     track.Language,
		LanguageCode: track.LanguageCode,
		Origin:       origin,
		Generated:    track.Generated,
		Text:         text,
		Segments:     segs,
	}
	if err := tr.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transcript result: %w", err)
	}
	return tr, nil
}

// Validate checks if the TranscriptResult is complete.
//
// Returns an error if:
//   - VideoID is empty
//   - LanguageCode is empty
//   - Origin is not one of the known origins
//   - there are no segments
func (tr *TranscriptResult) Validate() error {
	if strings.TrimSpace(tr.VideoID) == "" {
		return fmt.Errorf("video_id cannot be empty")
	}
	if strings.TrimSpace(tr.LanguageCode) == "" {
		return fmt.Errorf("language_code cannot be empty")
	}
	switch tr.Origin {
	case OriginManual, OriginGenerated, OriginFallback:
	default:
		return fmt.Errorf("unknown origin %q", tr.Origin)
	}
	if len(tr.Segments) == 0 {
		return fmt.Errorf("transcript has no segments")
	}
	return nil
}

// Duration returns the end offset of the last segment in seconds.
func (tr *TranscriptResult) Duration() float64 {
	end := 0.0
	for i := range tr.Segments {
		if e := tr.Segments[i].End(); e > end {
			end = e
		}
	}
	return end
}
