package parser

import (
	"fmt"
	"strconv"
	"strings"

	"encomendas/internal/domain"
)

// rawRecord is an unvalidated capture produced by a strategy matcher.
type rawRecord struct {
	lineNumber   string
	date         string
	position     string
	trackingCode string
	recipient    string
	confidence   float64
	cleaned      bool // recipient already passed through CleanRecipientName
}

// recordBuilder validates raw captures into domain.Package records. It
// enforces the tracking-code grammar, dedupes by code (first capture wins,
// matching the priority order of the producing strategy) and assigns
// sequential line numbers when the source had none.
type recordBuilder struct {
	packages []domain.Package
	seen     map[string]bool
	nextLine int
	logger   *Logger
}

func newRecordBuilder(logger *Logger) *recordBuilder {
	return &recordBuilder{seen: map[string]bool{}, logger: logger}
}

func (b *recordBuilder) add(raw rawRecord, defaultDate string) {
	code := strings.ToUpper(strings.TrimSpace(raw.trackingCode))
	b.nextLine++

	if !ValidTrackingCode(code) {
		b.logger.Warn("Validation", fmt.Sprintf("line %d: invalid tracking code %q", b.nextLine, raw.trackingCode))
		return
	}
	if b.seen[code] {
		b.logger.Warn("Validation", fmt.Sprintf("line %d: duplicate tracking code %s", b.nextLine, code))
		return
	}
	b.seen[code] = true

	lineNumber := b.nextLine
	if n, err := strconv.Atoi(strings.TrimSpace(raw.lineNumber)); err == nil && n > 0 {
		lineNumber = n
	}

	dateStr := strings.TrimSpace(raw.date)
	if dateStr == "" {
		dateStr = defaultDate
	}
	display, iso := dateStr, ""
	if dateStr != "" {
		if d, i, err := ParseDate(dateStr); err == nil {
			display, iso = d, i
		} else {
			// Keep the display form; the caller decides what an absent
			// ISO date means.
			b.logger.Warn("Validation", fmt.Sprintf("line %d: %v", lineNumber, err))
		}
	}

	recipient := raw.recipient
	if !raw.cleaned {
		recipient = CleanRecipientName(recipient)
	}

	b.packages = append(b.packages, domain.Package{
		LineNumber:   lineNumber,
		TrackingCode: code,
		Recipient:    recipient,
		Position:     CleanPosition(raw.position),
		Date:         display,
		DateISO:      iso,
		Confidence:   raw.confidence,
	})
}
