package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TextChunk is a bounded-length contiguous slice of a rendered transcript.
type TextChunk struct {
	Index int    `json:"index"` // 1-based position in the chunk sequence
	Text  string `json:"text"`
}

// NewTextChunk creates a new TextChunk with validation.
func NewTextChunk(index int, text string) (*TextChunk, error) {
	c := &TextChunk{Index: index, Text: text}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chunk: %w", err)
	}
	return c, nil
}

// Validate checks if the TextChunk has valid data.
func (c *TextChunk) Validate() error {
	if c.Index < 1 {
		return fmt.Errorf("index must be at least 1")
	}
	if strings.TrimSpace(c.Text) == "" {
		return fmt.Errorf("text cannot be empty")
	}
	return nil
}

// Len returns the chunk length in characters (runes).
func (c *TextChunk) Len() int {
	return utf8.RuneCountInString(c.Text)
}
