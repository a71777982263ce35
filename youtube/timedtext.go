package youtube

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"ytt/models"
)

// formattingTags are kept when formatting is preserved.
var formattingTags = map[string]bool{
	"strong": true, "em": true, "b": true, "i": true, "mark": true,
	"small": true, "del": true, "ins": true, "sub": true, "sup": true,
}

type timedText struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Body  string `xml:",chardata"`
	} `xml:"text"`
}

// ParseTimedText parses a timedtext srv1 document:
//
//	<transcript><text start="0.08" dur="2.3">hello &amp;amp; bye</text></transcript>
//
// Text bodies are HTML-unescaped; HTML tags are removed unless
// preserveFormatting is set, in which case formatting tags are kept.
// Entries with blank text are dropped.
func ParseTimedText(r io.Reader, preserveFormatting bool) ([]models.Segment, error) {
	var doc timedText
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("caption document is empty")
		}
		return nil, fmt.Errorf("failed to parse caption document: %w", err)
	}

	segments := make([]models.Segment, 0, len(doc.Texts))
	for i, t := range doc.Texts {
		start, err := parseSeconds(t.Start)
		if err != nil {
			return nil, fmt.Errorf("caption entry %d: invalid start %q", i+1, t.Start)
		}
		dur, err := parseSeconds(t.Dur)
		if err != nil {
			return nil, fmt.Errorf("caption entry %d: invalid duration %q", i+1, t.Dur)
		}

		seg := models.Segment{
			Start:    start,
			Duration: dur,
			Text:     cleanText(t.Body, preserveFormatting),
		}
		if seg.IsBlank() {
			continue
		}
		if err := seg.Validate(); err != nil {
			return nil, fmt.Errorf("caption entry %d: %w", i+1, err)
		}
		segments = append(segments, seg)
	}

	return segments, nil
}

// parseSeconds parses a seconds attribute; a missing attribute is zero.
func parseSeconds(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// cleanText unescapes HTML entities and drops tags from caption text.
func cleanText(s string, preserveFormatting bool) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			if !preserveFormatting {
				continue
			}
			raw := string(z.Raw())
			name, _ := z.TagName()
			if formattingTags[string(name)] {
				b.WriteString(raw)
			}
		}
	}
}
