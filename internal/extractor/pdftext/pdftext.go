// Package pdftext extracts plain text from PDF files using ledongthuc/pdf.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"encomendas/internal/port"
)

type extractor struct{}

// New creates a TextExtractor backed by ledongthuc/pdf.
func New() port.TextExtractor {
	return &extractor{}
}

// Extract pulls the text of every page, joined by newlines so the
// downstream line-oriented matchers see page rows as separate lines.
// The underlying library panics on some malformed files; that is
// normalized into an error here.
func (e *extractor) Extract(ctx context.Context, data []byte) (out *port.RawText, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("invalid pdf structure: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}

	numPages := reader.NumPage()
	var pages []string
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extracting page %d: %w", i, err)
		}
		if strings.TrimSpace(text) != "" {
			pages = append(pages, text)
		}
	}

	return &port.RawText{
		Text:  strings.Join(pages, "\n"),
		Pages: numPages,
	}, nil
}
