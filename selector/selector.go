// Package selector chooses the caption track to fetch from the tracks a
// provider reports, following an ordered list of preferred languages.
package selector

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"ytt/captions"
	"ytt/models"
)

// DefaultLanguage is used when no preferred language is given.
const DefaultLanguage = "en"

// Match is the track chosen by Choose and the origin it is reported with.
type Match struct {
	Track  models.CaptionTrack
	Origin models.Origin
}

// Choose picks a track from list.
//
// For each preferred language in order, a manually created track in that
// language is taken first, then an auto-generated one; the first hit wins.
// Language codes are compared after BCP 47 canonicalisation, so "EN" and
// "en" or "pt-br" and "pt-BR" are equal.
//
// When no preferred language matches, FallbackFirst returns the first
// reported track with origin models.OriginFallback and FallbackNone returns
// *captions.NoTranscriptError. An empty track list always fails.
func Choose(list *captions.TrackList, languages []string, policy FallbackPolicy) (Match, error) {
	if len(languages) == 0 {
		languages = []string{DefaultLanguage}
	}

	noMatch := &captions.NoTranscriptError{
		VideoID:   list.VideoID,
		Requested: languages,
		Available: list.LanguageCodes(),
	}

	if len(list.Tracks) == 0 {
		return Match{}, noMatch
	}

	for _, lang := range languages {
		want := Canonical(lang)
		if want == "" {
			continue
		}
		if t, ok := find(list.Manual(), want); ok {
			return Match{Track: t, Origin: models.OriginManual}, nil
		}
		if t, ok := find(list.Generated(), want); ok {
			return Match{Track: t, Origin: models.OriginGenerated}, nil
		}
	}

	if policy == FallbackFirst {
		return Match{Track: list.Tracks[0], Origin: models.OriginFallback}, nil
	}

	return Match{}, noMatch
}

func find(tracks []models.CaptionTrack, canonicalCode string) (models.CaptionTrack, bool) {
	for _, t := range tracks {
		if Canonical(t.LanguageCode) == canonicalCode {
			return t, true
		}
	}
	return models.CaptionTrack{}, false
}

// Canonical returns the canonical form of a language code. Codes that are
// not valid BCP 47 tags are only trimmed and lower-cased.
func Canonical(code string) string {
	c := strings.TrimSpace(code)
	if c == "" {
		return ""
	}
	tag, err := language.Parse(c)
	if err != nil {
		return strings.ToLower(c)
	}
	return tag.String()
}

// Selection is a chosen track together with its fetched segments.
type Selection struct {
	Match
	Title    string
	Segments []models.Segment
}

// Selector lists the tracks of a video through a provider, chooses one and
// fetches its segments.
type Selector struct {
	provider captions.Provider
	policy   FallbackPolicy
}

// NewSelector creates a Selector that fails when no language matches.
func NewSelector(provider captions.Provider) *Selector {
	return &Selector{
		provider: provider,
		policy:   FallbackNone,
	}
}

// SetFallbackPolicy sets the policy applied when no preferred language matches
func (s *Selector) SetFallbackPolicy(policy FallbackPolicy) *Selector {
	s.policy = policy
	return s
}

// Select chooses a track for videoID and fetches its segments. The segment
// fetch is the only download of caption data per call.
func (s *Selector) Select(ctx context.Context, videoID string, languages []string) (*Selection, error) {
	list, err := s.provider.ListTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("video_id", videoID).
		Strs("available", list.LanguageCodes()).
		Strs("requested", languages).
		Msg("caption tracks listed")

	match, err := Choose(list, languages, s.policy)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("video_id", videoID).
		Str("language", match.Track.LanguageCode).
		Str("origin", string(match.Origin)).
		Msg("caption track selected")

	segments, err := s.provider.FetchSegments(ctx, match.Track)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s captions: %w", match.Track.LanguageCode, err)
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("caption track %s of video %s is empty", match.Track.LanguageCode, videoID)
	}

	return &Selection{
		Match:    match,
		Title:    list.Title,
		Segments: segments,
	}, nil
}
