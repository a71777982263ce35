package models

import (
	"fmt"
	"strings"
)

// Origin describes how a transcript was obtained.
type Origin string

const (
	OriginManual    Origin = "manual"         // Uploaded by the video owner
	OriginGenerated Origin = "auto-generated" // Automatic speech recognition
	OriginFallback  Origin = "fallback"       // No preferred language matched
)

// CaptionTrack is one language's caption track for a video as reported
// by a captions provider.
//
// Segments are not part of the track: they are fetched lazily through the
// provider once a track has been selected. URL is an opaque handle the
// provider uses to fetch them.
type CaptionTrack struct {
	VideoID      string `json:"video_id"`
	Language     string `json:"language"`      // Display name, e.g. "English"
	LanguageCode string `json:"language_code"` // e.g. "en", "pt-BR"
	Generated    bool   `json:"is_generated"`
	Translatable bool   `json:"is_translatable"`
	URL          string `json:"-"`
}

// Validate checks that the track can be selected and fetched.
func (t *CaptionTrack) Validate() error {
	if strings.TrimSpace(t.LanguageCode) == "" {
		return fmt.Errorf("language_code cannot be empty")
	}
	if strings.TrimSpace(t.URL) == "" {
		return fmt.Errorf("url cannot be empty")
	}
	return nil
}

// Origin returns the origin implied by the track kind.
func (t *CaptionTrack) Origin() Origin {
	if t.Generated {
		return OriginGenerated
	}
	return OriginManual
}

// Kind returns a human readable label for the track kind.
func (t *CaptionTrack) Kind() string {
	if t.Generated {
		return "Auto-generated"
	}
	return "Manual"
}

// String renders the track as "English (en) - Manual".
func (t CaptionTrack) String() string {
	name := t.Language
	if name == "" {
		name = t.LanguageCode
	}
	return fmt.Sprintf("%s (%s) - %s", name, t.LanguageCode, t.Kind())
}
