// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/jmcdice/plainify/internal/container"
)

const imageMarkitdown = "markitdown:latest"

// MarkitdownExtractor converts PDFs by piping them through the markitdown
// container image. It depends on a container.Runtime (docker or podman)
// injected at construction time. The image is chatty on stderr; that output
// is diverted to the diag writer so it never reaches the user-visible log.
type MarkitdownExtractor struct {
	runtime container.Runtime
	diag    io.Writer
}

// NewMarkitdownExtractor creates an extractor that uses the given container
// runtime to run the markitdown image. It verifies that the markitdown image
// exists locally before returning. A nil diag discards diagnostics.
func NewMarkitdownExtractor(rt container.Runtime, diag io.Writer) (*MarkitdownExtractor, error) {
	if err := rt.ImageExists(imageMarkitdown); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	if diag == nil {
		diag = io.Discard
	}
	return &MarkitdownExtractor{runtime: rt, diag: diag}, nil
}

// Extract reads the PDF at pdfPath, pipes it through the markitdown
// container, and returns the resulting Markdown text.
func (m *MarkitdownExtractor) Extract(pdfPath string) (string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := m.runtime.Run(imageMarkitdown, f, &out, m.diag); err != nil {
		return "", fmt.Errorf("converting %s with markitdown: %w", pdfPath, err)
	}

	if out.Len() == 0 {
		return "", fmt.Errorf("markitdown produced empty output for %s", pdfPath)
	}

	return out.String(), nil
}
