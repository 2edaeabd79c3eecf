package domain

import (
	"encoding/json"
	"time"
)

// Package represents a single parcel entry extracted from an LDI list.
type Package struct {
	LineNumber   int     `json:"line_number"`
	TrackingCode string  `json:"tracking_code"`
	Recipient    string  `json:"recipient"`
	Position     string  `json:"position"`
	Date         string  `json:"date"`
	DateISO      string  `json:"date_iso"`
	Confidence   float64 `json:"confidence"`
}

// ParseMetadata describes how a parse run went.
type ParseMetadata struct {
	FileName       string `json:"file_name"`
	FileSize       int64  `json:"file_size"`
	ProcessingMS   int64  `json:"processing_ms"`
	Strategy       string `json:"strategy"`
	ExpectedTotal  int    `json:"expected_total"`
	ExtractedTotal int    `json:"extracted_total"`
	PagesProcessed int    `json:"pages_processed"`
}

// ParseResult is the full outcome of parsing one LDI PDF.
// Success is true when at least one valid package was extracted; partial
// extraction (count mismatch, sentinel names) still counts as success and
// is surfaced through Warnings.
type ParseResult struct {
	Success       bool          `json:"success"`
	TotalPackages int           `json:"total_packages"`
	Packages      []Package     `json:"packages"`
	Errors        []string      `json:"errors"`
	Warnings      []string      `json:"warnings"`
	Metadata      ParseMetadata `json:"metadata"`
}

// CacheEntry is a cached parse result keyed by the MD5 of the file bytes.
// The key is content-derived, so the same document re-uploaded under a
// different name still hits the cache.
type CacheEntry struct {
	ID           int64           `db:"id" json:"id"`
	FileHash     string          `db:"file_hash" json:"file_hash"`
	OriginalName string          `db:"original_name" json:"original_name"`
	Result       json.RawMessage `db:"result" json:"result"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	ExpiresAt    time.Time       `db:"expires_at" json:"expires_at"`
}

// DecodeResult deserializes the stored result payload.
func (e *CacheEntry) DecodeResult() (*ParseResult, error) {
	var r ParseResult
	if err := json.Unmarshal(e.Result, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// CacheStats summarizes the pdf_cache table.
type CacheStats struct {
	Total     int   `db:"total" json:"total"`
	Expired   int   `db:"expired" json:"expired"`
	Active    int   `db:"active" json:"active"`
	SizeBytes int64 `db:"size_bytes" json:"size_bytes"`
}
