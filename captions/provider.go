// Package captions defines the boundary to the external captions service:
// the Provider interface every backend implements and the error taxonomy
// shared by the resolver, the selector and the providers.
package captions

import (
	"context"
	"fmt"

	"ytt/models"
)

// Provider is the narrow interface to a captions-retrieval backend.
//
// ListTracks reports the caption tracks available for a video without
// downloading any of them. FetchSegments downloads the timed text of one
// track returned by ListTracks.
type Provider interface {
	ListTracks(ctx context.Context, videoID string) (*TrackList, error)
	FetchSegments(ctx context.Context, track models.CaptionTrack) ([]models.Segment, error)
}

// TrackList is the set of caption tracks a provider reports for a video.
type TrackList struct {
	VideoID string
	Title   string
	Tracks  []models.CaptionTrack
}

// Manual returns the manually created tracks in provider order.
func (tl *TrackList) Manual() []models.CaptionTrack {
	var out []models.CaptionTrack
	for _, t := range tl.Tracks {
		if !t.Generated {
			out = append(out, t)
		}
	}
	return out
}

// Generated returns the auto-generated tracks in provider order.
func (tl *TrackList) Generated() []models.CaptionTrack {
	var out []models.CaptionTrack
	for _, t := range tl.Tracks {
		if t.Generated {
			out = append(out, t)
		}
	}
	return out
}

// LanguageCodes returns the language codes of all tracks in provider order.
func (tl *TrackList) LanguageCodes() []string {
	codes := make([]string, len(tl.Tracks))
	for i, t := range tl.Tracks {
		codes[i] = t.LanguageCode
	}
	return codes
}

// WatchURL returns the canonical watch page URL for a video ID.
func WatchURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
}
