// Package chunker splits long text into paragraph-aligned segments bounded
// by a maximum size, for feeding into size-limited translation backends.
package chunker

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMaxChunkSize is the default upper bound on chunk length in runes.
const DefaultMaxChunkSize = 4000

// Split divides text into an ordered sequence of chunks of at most maxSize
// runes each, without ever splitting a paragraph (text between double
// newlines). A single paragraph longer than maxSize is placed alone in its
// own oversized chunk; paragraph integrity wins over strict size compliance.
// Empty text yields an empty slice.
func Split(text string, maxSize int) ([]string, error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("max chunk size must be positive, got %d", maxSize)
	}
	if text == "" {
		return nil, nil
	}

	paragraphs := strings.Split(text, "\n\n")

	var chunks []string
	var current strings.Builder
	currentLen := 0

	for _, paragraph := range paragraphs {
		paraLen := utf8.RuneCountInString(paragraph)
		if currentLen+paraLen > maxSize && currentLen > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
			currentLen = 0
		}
		current.WriteString(paragraph)
		current.WriteString("\n\n")
		currentLen += paraLen + 2
	}

	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}

	return chunks, nil
}
