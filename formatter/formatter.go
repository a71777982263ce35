// Package formatter renders caption segments as plain or timestamped text.
//
// Rendering is defined in terms of units: one line per segment when
// timestamps are included, one word otherwise. Render joins the units with
// Separator, and the chunker packs the same units into bounded chunks, so
// joining the chunks with Separator gives back the Render output.
package formatter

import (
	"strings"

	"ytt/internal/timeutil"
	"ytt/models"
)

// Render returns the full transcript text.
//
// With timestamps every segment becomes a "[MM:SS] text" line and lines are
// joined by newlines. Without timestamps the segment texts are joined by
// single spaces with all whitespace runs collapsed.
func Render(segments []models.Segment, includeTimestamps bool) string {
	return strings.Join(Units(segments, includeTimestamps), Separator(includeTimestamps))
}

// Units returns the rendered units in order: timestamped lines or words.
// Segments that are blank after trimming produce no unit.
func Units(segments []models.Segment, includeTimestamps bool) []string {
	if includeTimestamps {
		lines := make([]string, 0, len(segments))
		for i := range segments {
			if line := Line(segments[i]); line != "" {
				lines = append(lines, line)
			}
		}
		return lines
	}

	var words []string
	for i := range segments {
		words = append(words, strings.Fields(segments[i].Text)...)
	}
	return words
}

// Line renders a single segment as "[MM:SS] text". Whitespace inside the
// text, including caption line breaks, collapses to single spaces.
// Returns "" for a blank segment.
func Line(seg models.Segment) string {
	text := collapse(seg.Text)
	if text == "" {
		return ""
	}
	return timeutil.Bracket(seg.Start) + " " + text
}

// Separator returns the string placed between units.
func Separator(includeTimestamps bool) string {
	if includeTimestamps {
		return "\n"
	}
	return " "
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
