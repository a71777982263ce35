// Package resolver extracts a canonical YouTube video ID from the forms a
// user is likely to paste: watch URLs, short youtu.be links, embed/shorts
// paths or the bare ID itself.
package resolver

import (
	"net/url"
	"regexp"
	"strings"

	"ytt/captions"
)

// IDLength is the length of every YouTube video ID.
const IDLength = 11

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// pathPrefixes are first path segments that are followed by the video ID.
var pathPrefixes = map[string]bool{
	"embed":  true,
	"shorts": true,
	"live":   true,
	"v":      true,
	"e":      true,
}

var youtubeHosts = map[string]bool{
	"youtube.com":          true,
	"m.youtube.com":        true,
	"music.youtube.com":    true,
	"youtube-nocookie.com": true,
}

// IsVideoID reports whether s has the shape of a YouTube video ID.
func IsVideoID(s string) bool {
	return idPattern.MatchString(s)
}

// Resolve returns the video ID encoded in input.
//
// Supported forms:
//
//	dQw4w9WgXcQ
//	https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42
//	https://youtu.be/dQw4w9WgXcQ?si=abc
//	youtube.com/embed/dQw4w9WgXcQ
//	https://www.youtube.com/shorts/dQw4w9WgXcQ
//
// Any other input fails with *captions.InvalidInputError.
func Resolve(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", &captions.InvalidInputError{Input: input}
	}

	if IsVideoID(s) {
		return s, nil
	}

	if id := fromURL(s); id != "" {
		return id, nil
	}

	return "", &captions.InvalidInputError{Input: input}
}

// fromURL returns the ID found in a URL-shaped string or "" if none.
func fromURL(s string) string {
	raw := s
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	segments := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })

	var candidate string
	switch {
	case host == "youtu.be":
		if len(segments) > 0 {
			candidate = segments[0]
		}
	case youtubeHosts[host]:
		if len(segments) == 1 && segments[0] == "watch" {
			candidate = u.Query().Get("v")
		} else if len(segments) >= 2 && pathPrefixes[segments[0]] {
			candidate = segments[1]
		}
	}

	if IsVideoID(candidate) {
		return candidate
	}
	return ""
}
