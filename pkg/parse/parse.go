// Package parse provides the content-parsing hook available to node
// authors: structured JSON extraction tolerant of the formatting noise
// generated text tends to carry, plus a line-oriented fallback.
package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON marks text containing no extractable JSON document.
var ErrNoJSON = errors.New("no JSON document found")

// ExtractJSON returns the first complete JSON object or array embedded in
// text. Markdown code fences, prose before and after, and trailing noise
// are tolerated: the scan starts at the first { or [ and matches brackets
// until the document closes.
func ExtractJSON(text string) (string, error) {
	text = stripFences(text)

	start := strings.IndexAny(text, "{[")
	if start == -1 {
		return "", ErrNoJSON
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("%w: unbalanced brackets", ErrNoJSON)
}

// DecodeJSON extracts the embedded JSON document and unmarshals it into v.
func DecodeJSON(text string, v any) error {
	doc, err := ExtractJSON(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(doc), v); err != nil {
		return fmt.Errorf("failed to decode extracted JSON: %w", err)
	}
	return nil
}

// Lines is the line-oriented fallback parser: it splits text into trimmed,
// non-empty lines with leading bullets and list numbering removed.
func Lines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = stripListMarker(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// stripFences removes markdown code fences, keeping their content. A fence
// language tag such as ```json is dropped with the fence line.
func stripFences(text string) string {
	if !strings.Contains(text, "```") {
		return text
	}
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// stripListMarker removes "- ", "* ", "1. ", "1) " style prefixes.
func stripListMarker(line string) string {
	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(line[len(marker):])
		}
	}
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		return strings.TrimSpace(line[i+1:])
	}
	return line
}
