// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// MuPDFExtractor reads PDF text natively through the MuPDF bindings. It
// needs no container runtime. Page boundaries are recorded as HTML comment
// markers so downstream stages can tell where pages begin.
type MuPDFExtractor struct{}

// Extract opens the PDF at pdfPath and returns its text content, one marker
// per non-blank page. It fails when the document has no pages or none of
// them yields text (scanned documents without a text layer).
func (MuPDFExtractor) Extract(pdfPath string) (string, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return "", fmt.Errorf("PDF %s has no pages", pdfPath)
	}

	var b strings.Builder
	pagesWithText := 0
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("reading page %d of %s: %w", n+1, pdfPath, err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		fmt.Fprintf(&b, "<!-- page %d -->\n\n", n+1)
		b.WriteString(strings.TrimSpace(text))
		b.WriteString("\n\n")
		pagesWithText++
	}

	if pagesWithText == 0 {
		return "", fmt.Errorf("no extractable text in %s", pdfPath)
	}

	return b.String(), nil
}
