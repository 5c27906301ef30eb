// Package parse turns raw user text into the collections the draw engine
// consumes: plain line lists and "author: text" comment records.
package parse

import (
	"errors"
	"strings"
)

// ErrParseNoResults means non-empty input produced no usable records.
var ErrParseNoResults = errors.New("no usable entries found")

// DefaultPlaceholder is the text given to comments that have only an author.
const DefaultPlaceholder = "(no text)"

// Comment is one parsed comment line.
type Comment struct {
	Author string `json:"author" yaml:"author"`
	Text   string `json:"text" yaml:"text"`
}

// Comments parses one comment per line in the form "author: text".
//
// The first colon splits author from text when both trimmed halves are
// non-empty. Any other non-blank line becomes an author-only comment carrying
// placeholder (or DefaultPlaceholder when placeholder is empty). Blank lines
// are skipped.
//
// Empty input returns an empty slice and no error. Input that is not empty
// but holds only blank lines returns ErrParseNoResults.
func Comments(raw, placeholder string) ([]Comment, error) {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}

	out := []Comment{}
	for _, line := range splitLines(raw) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		out = append(out, parseComment(trimmed, placeholder))
	}

	if len(out) == 0 && raw != "" {
		return out, ErrParseNoResults
	}
	return out, nil
}

func parseComment(trimmed, placeholder string) Comment {
	author, text, ok := strings.Cut(trimmed, ":")
	author, text = strings.TrimSpace(author), strings.TrimSpace(text)
	if ok && author != "" && text != "" {
		return Comment{Author: author, Text: text}
	}
	return Comment{Author: trimmed, Text: placeholder}
}

// Format renders comments back into the form read by Comments. A comment
// whose text is placeholder (or DefaultPlaceholder when placeholder is empty)
// is written as its author alone, so author-only records survive a round trip
// even when the author holds a colon. Authors of comments with text must not
// contain a colon.
func Format(comments []Comment, placeholder string) string {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}

	var b strings.Builder
	for _, c := range comments {
		b.WriteString(c.Author)
		if c.Text != placeholder {
			b.WriteString(": ")
			b.WriteString(c.Text)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// splitLines splits on \n and drops a trailing \r from each line.
func splitLines(raw string) []string {
	lines := strings.Split(raw, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
