package captions

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is checks. Each typed error below matches
// exactly one of them.
var (
	ErrInvalidInput        = errors.New("invalid YouTube URL or video ID")
	ErrNoTranscript        = errors.New("no transcript found")
	ErrTranscriptsDisabled = errors.New("transcripts are disabled")
	ErrVideoUnavailable    = errors.New("video unavailable")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrAgeRestricted       = errors.New("video is age restricted")
	ErrVideoUnplayable     = errors.New("video is unplayable")
)

// InvalidInputError is returned when a string is neither a supported
// YouTube URL nor a bare video ID.
type InvalidInputError struct {
	Input string
}

func (e *InvalidInputError) Error() string {
	if e.Input == "" {
		return "invalid YouTube URL or video ID: input is empty"
	}
	return fmt.Sprintf("invalid YouTube URL or video ID: %q", e.Input)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// NoTranscriptError is returned when no track matches the requested
// languages and no fallback is permitted.
type NoTranscriptError struct {
	VideoID   string
	Requested []string
	Available []string
}

func (e *NoTranscriptError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("no transcripts are available for video %s", e.VideoID)
	}
	return fmt.Sprintf("no transcript found for video %s in languages [%s] (available: %s)",
		e.VideoID, strings.Join(e.Requested, ", "), strings.Join(e.Available, ", "))
}

func (e *NoTranscriptError) Is(target error) bool { return target == ErrNoTranscript }

// TranscriptsDisabledError is returned when the video has captions disabled.
type TranscriptsDisabledError struct {
	VideoID string
}

func (e *TranscriptsDisabledError) Error() string {
	return fmt.Sprintf("transcripts are disabled for video %s", e.VideoID)
}

func (e *TranscriptsDisabledError) Is(target error) bool { return target == ErrTranscriptsDisabled }

// VideoUnavailableError is returned when the video does not exist or was removed.
type VideoUnavailableError struct {
	VideoID string
}

func (e *VideoUnavailableError) Error() string {
	return fmt.Sprintf("video %s is no longer available", e.VideoID)
}

func (e *VideoUnavailableError) Is(target error) bool { return target == ErrVideoUnavailable }

// TooManyRequestsError is returned when the service blocks the client,
// typically by asking it to solve a captcha.
type TooManyRequestsError struct {
	VideoID string
}

func (e *TooManyRequestsError) Error() string {
	return fmt.Sprintf("YouTube is receiving too many requests from this IP and requires solving a captcha (video %s)", e.VideoID)
}

func (e *TooManyRequestsError) Is(target error) bool { return target == ErrTooManyRequests }

// AgeRestrictedError is returned for videos that need a signed-in session.
type AgeRestrictedError struct {
	VideoID string
}

func (e *AgeRestrictedError) Error() string {
	return fmt.Sprintf("video %s is age restricted and requires authentication", e.VideoID)
}

func (e *AgeRestrictedError) Is(target error) bool { return target == ErrAgeRestricted }

// VideoUnplayableError carries the reason the service gave for refusing playback.
type VideoUnplayableError struct {
	VideoID string
	Reason  string
}

func (e *VideoUnplayableError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("video %s is unplayable", e.VideoID)
	}
	return fmt.Sprintf("video %s is unplayable: %s", e.VideoID, e.Reason)
}

func (e *VideoUnplayableError) Is(target error) bool { return target == ErrVideoUnplayable }
