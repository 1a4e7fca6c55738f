// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls plain text out of downloaded PDFs page by page.
// Extraction is best-effort: unreadable pages are skipped, and only a PDF
// with no extractable text at all is an error.
package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/meshintel/paperlens/pkg/types"
)

const defaultMaxPages = 50

// Extractor converts PDF files to raw text documents.
type Extractor struct {
	cfg types.ExtractConfig
}

// New returns an Extractor. A zero MaxPages falls back to 50 pages.
func New(cfg types.ExtractConfig) *Extractor {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = defaultMaxPages
	}
	return &Extractor{cfg: cfg}
}

// Text extracts plain text from the PDF at path, reading at most MaxPages
// pages. Pages whose content cannot be decoded are skipped.
func (e *Extractor) Text(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	total := r.NumPage()
	if total > e.cfg.MaxPages {
		total = e.cfg.MaxPages
	}

	var b strings.Builder
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, pageErr := p.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no extractable text in %s", path)
	}
	return b.String(), nil
}
