// Package models provides core data structures for transcript extraction.
package models

import (
	"fmt"
	"strings"
)

// Segment is a single timed unit of caption text.
//
// Start and Duration are expressed in seconds and keep their fractional
// part as reported by the captions service (e.g., 65.28).
type Segment struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// NewSegment creates a new Segment with validation.
//
// Example:
//
//	seg, err := models.NewSegment(65.28, 2.5, "hello world")
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewSegment(start, duration float64, text string) (*Segment, error) {
	s := &Segment{
		Start:    start,
		Duration: duration,
		Text:     text,
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid segment: %w", err)
	}
	return s, nil
}

// Validate checks if the Segment has valid data.
//
// Returns an error if:
//   - Start is negative
//   - Duration is negative
func (s *Segment) Validate() error {
	if s.Start < 0 {
		return fmt.Errorf("start must not be negative")
	}
	if s.Duration < 0 {
		return fmt.Errorf("duration must not be negative")
	}
	return nil
}

// End returns the end offset of the segment in seconds.
func (s *Segment) End() float64 {
	return s.Start + s.Duration
}

// IsBlank reports whether the segment carries no visible text.
func (s *Segment) IsBlank() bool {
	return strings.TrimSpace(s.Text) == ""
}
