// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown checks that rewritten text still reads as Markdown.
// Validation here is best-effort: callers log failures as warnings and keep
// the text. See docs/ARCHITECTURE § Reassembly.
package markdown

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"
)

// Validate parses source as Markdown and reports anything that would keep a
// renderer from handling it. Blank input and input with no recognizable
// block structure are reported; ordinary prose parses as paragraphs and
// passes.
func Validate(source string) error {
	if strings.TrimSpace(source) == "" {
		return errors.New("blank document")
	}

	src := []byte(source)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	if !doc.HasChildren() {
		return errors.New("no markdown block structure found")
	}

	if err := md.Renderer().Render(io.Discard, src, doc); err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}

	return nil
}
