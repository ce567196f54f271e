// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chunk splits extracted document text into bounded, sentence-aligned
// chunks for the rewrite stage. See docs/ARCHITECTURE § Chunking.
package chunk

import (
	"regexp"
	"strings"
)

// DefaultMaxChunkSize is the default soft cap on chunk length in bytes.
const DefaultMaxChunkSize = 7000

// sentenceEnd matches a terminal punctuation mark followed by whitespace.
// This is a heuristic, not a sentence parser: abbreviations like "Dr. Smith"
// mis-split, decimal numbers do not. Accepted limitation.
var sentenceEnd = regexp.MustCompile(`[.!?]\s+`)

// Split divides text into chunks of at most maxSize bytes, never breaking a
// sentence across two chunks. Sentences accumulate greedily; when appending
// the next sentence (plus a separating space) would exceed maxSize, the
// current chunk is closed and a new one started. A single sentence longer
// than maxSize becomes its own oversized chunk rather than being split
// mid-word. Empty or whitespace-only input yields no chunks; no returned
// chunk is ever empty. The cap is soft and measured with len, so multi-byte
// runes count per byte. When maxSize <= 0 the default cap applies.
func Split(text string, maxSize int) []string {
	if maxSize <= 0 {
		maxSize = DefaultMaxChunkSize
	}

	var chunks []string
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			chunks = append(chunks, buf.String())
			buf.Reset()
		}
	}

	for _, sentence := range sentences(text) {
		if buf.Len() > 0 && buf.Len()+1+len(sentence) > maxSize {
			flush()
		}
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(sentence)
	}
	flush()

	return chunks
}

// sentences splits text into trimmed sentence-like units at terminal
// punctuation. Text with no terminal punctuation is returned as a single
// unit. Whitespace-only input yields nothing.
func sentences(text string) []string {
	var out []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		// loc[0] is the punctuation mark; keep it with its sentence.
		s := strings.TrimSpace(text[start : loc[0]+1])
		if s != "" {
			out = append(out, s)
		}
		start = loc[1]
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		out = append(out, tail)
	}
	return out
}
