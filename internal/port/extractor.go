package port

import "context"

// RawText is the plain text pulled out of a PDF plus the page count.
type RawText struct {
	Text  string
	Pages int
}

// TextExtractor abstracts PDF text extraction.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (*RawText, error)
}
