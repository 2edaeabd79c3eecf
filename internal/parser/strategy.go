package parser

import (
	"fmt"
	"regexp"
	"strings"

	"encomendas/internal/domain"
)

// Strategy confidence levels. Heuristic, tunable; the ordering (structured
// layouts above permissive scans) is what callers rely on, not the values.
const (
	confidenceTable     = 1.0
	confidenceLDILayout = 0.9
	confidenceLineScan  = 0.7
	confidenceSentinel  = 0.4
	confidenceCodesOnly = 0.3
)

// ExtractInput is the shared input every strategy receives.
type ExtractInput struct {
	Text        string   // raw extracted text, all pages
	Lines       []string // normalized logical lines
	DefaultDate string   // DD/MM/YYYY from the list header, may be empty
}

// Strategy is one independent extraction approach. Extract is pure over its
// input; it reports partial-extraction issues through the logger and never
// fails hard.
type Strategy struct {
	Name    string
	Extract func(in ExtractInput, logger *Logger) []domain.Package
}

// Strategies returns the extraction strategies in priority order, most
// structured first. The engine short-circuits on the first acceptable
// result, so permissive fallbacks only run when needed.
func Strategies() []Strategy {
	return []Strategy{
		{Name: domain.StrategyTable, Extract: extractTable},
		{Name: domain.StrategyLDILayout, Extract: extractLDILayout},
		{Name: domain.StrategyLineScan, Extract: extractLineScan},
		{Name: domain.StrategyCodesOnly, Extract: extractCodesOnly},
	}
}

// RunStrategies tries each strategy in order against the same input and
// returns the first acceptable record set: an exact match to expectedTotal
// when the header declared one, otherwise any non-empty result. When no
// strategy is acceptable the best non-empty result still wins (with a
// count-mismatch warning); records with a valid tracking code are never
// silently discarded.
func RunStrategies(in ExtractInput, expectedTotal int, logger *Logger) ([]domain.Package, string) {
	var bestPackages []domain.Package
	bestStrategy := domain.StrategyNone

	for _, s := range Strategies() {
		packages := runOne(s, in, logger)
		logger.Info("Strategy", fmt.Sprintf("%s: %d records", s.Name, len(packages)))

		if len(packages) == 0 {
			continue
		}
		if expectedTotal > 0 {
			if len(packages) == expectedTotal {
				return packages, s.Name
			}
			// Remember the highest-priority non-empty set as fallback.
			if bestPackages == nil {
				bestPackages = packages
				bestStrategy = s.Name
			}
			continue
		}
		return packages, s.Name
	}

	if bestPackages != nil {
		logger.Warn("Strategy", fmt.Sprintf(
			"no strategy matched the declared total %d, keeping %s with %d records",
			expectedTotal, bestStrategy, len(bestPackages)))
	}
	return bestPackages, bestStrategy
}

// runOne isolates a strategy so a panic inside one matcher degrades into a
// warning and the engine moves on to the next strategy.
func runOne(s Strategy, in ExtractInput, logger *Logger) (packages []domain.Package) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Strategy", fmt.Sprintf("%s panicked: %v", s.Name, r))
			packages = nil
		}
	}()
	return s.Extract(in, logger)
}

// ============ Strategy 1: pipe-delimited table layout ============

// | Grupo | Data | Posição | Objeto | Destinatário |
var tableRowRe = regexp.MustCompile(
	`\|\s*(\d+)\s*\|\s*(\d{2}/\d{2}/\d{4})\s*\|\s*([A-Z]{2,4}\s*-\s*\d+)\s*\|\s*([A-Z]{2}\d{9}[A-Z]{2})\s*\|\s*([^|]+)\|`)

func extractTable(in ExtractInput, logger *Logger) []domain.Package {
	b := newRecordBuilder(logger)
	for _, m := range tableRowRe.FindAllStringSubmatch(in.Text, -1) {
		b.add(rawRecord{
			lineNumber:   m[1],
			date:         m[2],
			position:     m[3],
			trackingCode: m[4],
			recipient:    m[5],
			confidence:   confidenceTable,
		}, in.DefaultDate)
	}
	return b.packages
}

// ============ Strategy 2: LDI layout without pipes ============

// "1 08/12/2025 PCM - 120 AN246666127BR VANUSA NOVAIS RODRIGUES :RUA ..."
var ldiAnchorRe = regexp.MustCompile(
	`(\d+)\s+(\d{2}/\d{2}/\d{4})\s+([A-Z]{2,4}\s*-\s*\d+)\s+([A-Z]{2}\d{9}[A-Z]{2})[ \t]*`)

// extractLDILayout anchors on the fixed prefix of every record and slices
// the recipient out of the text between consecutive anchors. Go's RE2
// engine has no lookahead, so bounding the name by the next record anchor
// is done with index arithmetic instead of the usual lookahead idiom.
func extractLDILayout(in ExtractInput, logger *Logger) []domain.Package {
	text := strings.Join(in.Lines, "\n")
	matches := ldiAnchorRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	b := newRecordBuilder(logger)
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		recipient := cutAtDelimiter(text[m[1]:end])

		b.add(rawRecord{
			lineNumber:   text[m[2]:m[3]],
			date:         text[m[4]:m[5]],
			position:     text[m[6]:m[7]],
			trackingCode: text[m[8]:m[9]],
			recipient:    recipient,
			confidence:   confidenceLDILayout,
		}, in.DefaultDate)
	}
	return b.packages
}

// cutAtDelimiter trims a recipient capture at the first strong delimiter:
// colon, pipe, ampersand, underscore run, or line break.
func cutAtDelimiter(s string) string {
	if i := strings.IndexAny(s, ":|&_\n"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// ============ Strategy 3: line scan with layered name recovery ============

var (
	// Title-case or uppercase word runs that look like a person's name.
	namePatternRe = regexp.MustCompile(`[A-ZÀ-Ú][A-Za-zÀ-ú]+\s+[A-ZÀ-Ú][A-Za-zÀ-ú]+(?:\s+[A-Za-zÀ-ú]+)*`)
	// Street-type keywords that disqualify a candidate as a name.
	addressWordRe = regexp.MustCompile(`(?i)\b(RUA|AV|AVENIDA|TRAVESSA|ESTRADA|RODOVIA|KM)\b`)
	// Leading name run at the start of a continuation line.
	leadingNameRe = regexp.MustCompile(`^[A-ZÀ-Ú][A-Za-zÀ-ú\s]{3,50}`)
)

// extractLineScan walks the normalized lines, anchors on every tracking
// code and tries successively looser captures for the recipient: text
// right after the code, the following line, any name-shaped run in the
// line, and finally a name right before the code. A record whose name
// survives none of these still ships with the sentinel at low confidence.
func extractLineScan(in ExtractInput, logger *Logger) []domain.Package {
	b := newRecordBuilder(logger)

	for i, line := range in.Lines {
		for _, code := range trackingCodeGlobalRe.FindAllString(line, -1) {
			recipient := nameAfterCode(line, code)
			if recipient == domain.SentinelRecipient && i+1 < len(in.Lines) {
				recipient = nameFromNextLine(in.Lines[i+1])
			}
			if recipient == domain.SentinelRecipient {
				recipient = nameAnywhere(line)
			}
			if recipient == domain.SentinelRecipient {
				recipient = nameBeforeCode(line, code)
			}

			confidence := confidenceLineScan
			if recipient == domain.SentinelRecipient {
				confidence = confidenceSentinel
			}

			date := in.DefaultDate
			if m := dateGlobalRe.FindString(line); m != "" {
				date = m
			}

			b.add(rawRecord{
				date:         date,
				position:     positionRe.FindString(line),
				trackingCode: code,
				recipient:    recipient,
				confidence:   confidence,
				cleaned:      true,
			}, in.DefaultDate)
		}
	}
	return b.packages
}

func nameAfterCode(line, code string) string {
	idx := strings.Index(line, code)
	if idx < 0 {
		return domain.SentinelRecipient
	}
	rest := line[idx+len(code):]
	if next := trackingCodeGlobalRe.FindStringIndex(rest); next != nil {
		rest = rest[:next[0]]
	}
	return CleanRecipientName(cutAtDelimiter(rest))
}

func nameFromNextLine(next string) string {
	if trackingCodeGlobalRe.MatchString(next) || recordStartRe.MatchString(next) {
		return domain.SentinelRecipient
	}
	m := leadingNameRe.FindString(next)
	if m == "" {
		return domain.SentinelRecipient
	}
	return CleanRecipientName(m)
}

func nameAnywhere(line string) string {
	for _, candidate := range namePatternRe.FindAllString(line, -1) {
		if addressWordRe.MatchString(candidate) {
			continue
		}
		cleaned := CleanRecipientName(candidate)
		if cleaned != domain.SentinelRecipient && len(cleaned) >= 5 {
			return cleaned
		}
	}
	return domain.SentinelRecipient
}

func nameBeforeCode(line, code string) string {
	idx := strings.Index(line, code)
	if idx <= 0 {
		return domain.SentinelRecipient
	}
	before := strings.TrimSpace(line[:idx])
	runs := namePatternRe.FindAllString(before, -1)
	if len(runs) == 0 {
		return domain.SentinelRecipient
	}
	return CleanRecipientName(runs[len(runs)-1])
}

// ============ Strategy 4: codes only ============

// extractCodesOnly is the last resort: every tracking code in the text
// becomes a sentinel-named record so no parcel with a valid code vanishes.
func extractCodesOnly(in ExtractInput, logger *Logger) []domain.Package {
	codes := trackingCodeGlobalRe.FindAllString(in.Text, -1)
	if len(codes) == 0 {
		return nil
	}
	logger.Warn("Strategy", "falling back to tracking-code-only extraction")

	b := newRecordBuilder(logger)
	for _, code := range codes {
		b.add(rawRecord{
			date:         in.DefaultDate,
			trackingCode: code,
			recipient:    domain.SentinelRecipient,
			confidence:   confidenceCodesOnly,
			cleaned:      true,
		}, in.DefaultDate)
	}
	return b.packages
}
