// Package timeutil provides time formatting utilities for transcript output.
package timeutil

import (
	"fmt"
	"math"
)

// FormatTimestamp converts a caption offset in seconds to MM:SS, or to
// HH:MM:SS once the offset reaches one hour.
//
// Fractional seconds are truncated, matching integer division of the
// offset. Negative offsets are clamped to zero.
//
// Example:
//
//	FormatTimestamp(0)       // "00:00"
//	FormatTimestamp(65)      // "01:05"
//	FormatTimestamp(65.99)   // "01:05"
//	FormatTimestamp(3725)    // "01:02:05"
func FormatTimestamp(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// Bracket wraps FormatTimestamp in square brackets, e.g. "[01:05]".
func Bracket(seconds float64) string {
	return "[" + FormatTimestamp(seconds) + "]"
}
