// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements PDF structural extraction with pluggable backends.
// See docs/ARCHITECTURE § Structural Extraction.
package convert

import (
	"fmt"
	"io"

	"github.com/jmcdice/plainify/internal/container"
	"github.com/jmcdice/plainify/pkg/types"
)

// Extractor transforms a PDF file into Markdown text. Different backends
// (markitdown, MuPDF) implement this interface.
type Extractor interface {
	// Extract reads a PDF at pdfPath and returns the Markdown content.
	Extract(pdfPath string) (string, error)
}

// New returns the Extractor for the configured backend. An empty backend
// selects markitdown. The markitdown backend needs a container runtime with
// the image present; anything the collaborator prints on its diagnostic
// channel is written to diag rather than the extracted document.
func New(cfg types.ConversionConfig, diag io.Writer) (Extractor, error) {
	switch cfg.Backend {
	case types.ExtractMuPDF:
		return &MuPDFExtractor{}, nil
	case types.ExtractMarkitdown, "":
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		return NewMarkitdownExtractor(rt, diag)
	default:
		return nil, fmt.Errorf("unknown extraction backend %q", cfg.Backend)
	}
}
