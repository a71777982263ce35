package chunker

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"ytt/models"
)

const (
	// DefaultChunkSize is the default chunk length in characters
	DefaultChunkSize = 1000

	// MinChunkSize is the minimum allowed chunk length in characters
	MinChunkSize = 1

	// MaxChunkSize is the maximum allowed chunk length in characters
	MaxChunkSize = 10_000_000
)

// Chunker splits rendered transcript units (lines or words) into chunks
// of bounded length.
type Chunker struct {
	units     []string
	separator string
	chunkSize int
}

// NewChunker creates a new Chunker with default settings.
//
// units are the rendered units in order and separator is the string placed
// between two units of the same chunk (see formatter.Units and
// formatter.Separator).
func NewChunker(units []string, separator string) *Chunker {
	return &Chunker{
		units:     units,
		separator: separator,
		chunkSize: DefaultChunkSize,
	}
}

// SetChunkSize sets the maximum chunk length in characters
func (c *Chunker) SetChunkSize(size int) *Chunker {
	c.chunkSize = size
	return c
}

// CreateChunks packs units into chunks.
//
// Units are added to the current chunk until adding the next one (plus the
// separator) would exceed the chunk size, then a new chunk is started. A
// unit is never split, so a single unit longer than the chunk size becomes
// a chunk of its own. Order is preserved and the last chunk may be shorter
// than the limit. Lengths are counted in runes.
//
// Example:
//
//	units := formatter.Units(segments, false)
//	chunks, err := NewChunker(units, " ").SetChunkSize(1000).CreateChunks()
func (c *Chunker) CreateChunks() ([]*models.TextChunk, error) {
	if c.chunkSize < MinChunkSize {
		return nil, fmt.Errorf("chunk size must be at least %d characters", MinChunkSize)
	}

	if c.chunkSize > MaxChunkSize {
		return nil, fmt.Errorf("chunk size cannot exceed %d characters", MaxChunkSize)
	}

	if len(c.units) == 0 {
		return nil, fmt.Errorf("no text to chunk")
	}

	sepLen := utf8.RuneCountInString(c.separator)

	var (
		chunks  []*models.TextChunk
		current []string
		length  int
	)

	flush := func() error {
		chunk, err := models.NewTextChunk(len(chunks)+1, strings.Join(current, c.separator))
		if err != nil {
			return fmt.Errorf("invalid chunk %d: %w", len(chunks)+1, err)
		}
		chunks = append(chunks, chunk)
		current = current[:0]
		length = 0
		return nil
	}

	for _, unit := range c.units {
		unitLen := utf8.RuneCountInString(unit)
		if unitLen == 0 {
			continue
		}

		if len(current) > 0 && length+sepLen+unitLen > c.chunkSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}

		if len(current) > 0 {
			length += sepLen
		}
		current = append(current, unit)
		length += unitLen
	}

	if len(current) > 0 {
		if err := flush(); err != nil {
			return nil, err
		}
	}

	if len(chunks) == 0 {
		return nil, fmt.Errorf("no text to chunk")
	}

	return chunks, nil
}

// ValidateChunks validates a sequence of chunks for completeness and correctness
func ValidateChunks(chunks []*models.TextChunk) error {
	if len(chunks) == 0 {
		return fmt.Errorf("chunk list is empty")
	}

	for i, chunk := range chunks {
		if err := chunk.Validate(); err != nil {
			return fmt.Errorf("chunk %d is invalid: %w", i, err)
		}
	}

	// Check for sequential chunk indices
	for i, chunk := range chunks {
		expected := i + 1
		if chunk.Index != expected {
			return fmt.Errorf("chunk %d has incorrect index: expected %d, got %d",
				i, expected, chunk.Index)
		}
	}

	return nil
}

// Join concatenates chunk texts with separator.
func Join(chunks []*models.TextChunk, separator string) string {
	parts := make([]string, len(chunks))
	for i, chunk := range chunks {
		parts[i] = chunk.Text
	}
	return strings.Join(parts, separator)
}
