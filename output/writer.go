// Package output writes rendered transcripts to stdout or to files.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"ytt/models"
)

const (
	// Stdout is the output path that selects standard output.
	Stdout = "-"

	// PreviewLength is the number of characters shown by Preview.
	PreviewLength = 500

	// chunkSeparator separates chunks written to the same destination.
	chunkSeparator = "\n\n"
)

// DefaultFilename returns the file name used when no output path is given:
// youtube_transcript_<ID>_<YYYYMMDD_HHMMSS>.txt
func DefaultFilename(videoID string, now time.Time) string {
	return fmt.Sprintf("youtube_transcript_%s_%s.txt", videoID, now.Format("20060102_150405"))
}

// ChunkPath returns the path of chunk index (1-based) derived from base:
// "out.txt" becomes "out_chunk_2.txt".
func ChunkPath(base string, index int) string {
	ext := filepath.Ext(base)
	return fmt.Sprintf("%s_chunk_%d%s", strings.TrimSuffix(base, ext), index, ext)
}

// Writer writes transcript chunks to their destination.
type Writer struct {
	singleFile bool // If true, all chunks go to one file. If false, one file per chunk.
	stdout     io.Writer
}

// NewWriter creates a new writer
func NewWriter(singleFile bool) *Writer {
	return &Writer{
		singleFile: singleFile,
		stdout:     os.Stdout,
	}
}

// SetStdout sets where the Stdout path writes to
func (w *Writer) SetStdout(out io.Writer) *Writer {
	w.stdout = out
	return w
}

// Write writes chunks to path and returns the files written, in order.
//
// A path of Stdout prints the chunks separated by a blank line and returns
// no files. Otherwise a single chunk, or any number of chunks in
// single-file mode, goes to path; several chunks in split mode go to
// ChunkPath(path, i) each.
func (w *Writer) Write(path string, chunks []*models.TextChunk) ([]string, error) {
	ordered, err := w.validateChunks(chunks)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if path == Stdout {
		if _, err := io.WriteString(w.stdout, joinChunks(ordered)+"\n"); err != nil {
			return nil, fmt.Errorf("failed to write to stdout: %w", err)
		}
		return nil, nil
	}

	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("output path cannot be empty")
	}

	if w.singleFile || len(ordered) == 1 {
		if err := writeFile(path, joinChunks(ordered)); err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	paths := make([]string, 0, len(ordered))
	for _, chunk := range ordered {
		p := ChunkPath(path, chunk.Index)
		if err := writeFile(p, chunk.Text); err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// WriteText writes an unchunked transcript to path, or to stdout for Stdout.
func (w *Writer) WriteText(path, text string) ([]string, error) {
	chunk, err := models.NewTextChunk(1, text)
	if err != nil {
		return nil, err
	}
	return w.Write(path, []*models.TextChunk{chunk})
}

// validateChunks sorts chunks by index and rejects gaps and blank chunks.
func (w *Writer) validateChunks(chunks []*models.TextChunk) ([]*models.TextChunk, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no chunks provided")
	}

	ordered := make([]*models.TextChunk, len(chunks))
	copy(ordered, chunks)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Index < ordered[j].Index
	})

	var gaps []int
	for i, chunk := range ordered {
		if err := chunk.Validate(); err != nil {
			return nil, fmt.Errorf("chunk %d: %w", chunk.Index, err)
		}
		if i == 0 {
			continue
		}
		for idx := ordered[i-1].Index + 1; idx < chunk.Index; idx++ {
			gaps = append(gaps, idx)
		}
	}

	if len(gaps) > 0 {
		return nil, fmt.Errorf("missing chunks: %v", gaps)
	}
	return ordered, nil
}

func joinChunks(chunks []*models.TextChunk) string {
	parts := make([]string, len(chunks))
	for i, chunk := range chunks {
		parts[i] = chunk.Text
	}
	return strings.Join(parts, chunkSeparator)
}

func writeFile(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Preview returns the first n characters of text, followed by "..." when
// text is longer.
func Preview(text string, n int) string {
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n]) + "..."
}
