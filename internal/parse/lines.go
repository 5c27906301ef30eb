package parse

import (
	"fmt"
	"io"
	"strings"
)

// Lines returns the trimmed, non-blank lines of raw in order. Empty input
// yields an empty slice; non-empty input with no usable line yields
// ErrParseNoResults.
func Lines(raw string) ([]string, error) {
	out := []string{}
	for _, line := range splitLines(raw) {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	if len(out) == 0 && raw != "" {
		return out, ErrParseNoResults
	}
	return out, nil
}

// ReadLines reads r to the end and applies Lines.
func ReadLines(r io.Reader) ([]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return Lines(string(b))
}

// ReadComments reads r to the end and applies Comments.
func ReadComments(r io.Reader, placeholder string) ([]Comment, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read comments: %w", err)
	}
	return Comments(string(b), placeholder)
}
