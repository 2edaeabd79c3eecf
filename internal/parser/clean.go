package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"encomendas/internal/domain"
)

// Tracking code grammar: 2 letters + 9 digits + 2 letters (e.g. AN235172298BR).
var (
	trackingCodeRe       = regexp.MustCompile(`^[A-Z]{2}\d{9}[A-Z]{2}$`)
	trackingCodeGlobalRe = regexp.MustCompile(`[A-Z]{2}\d{9}[A-Z]{2}`)

	dateRe       = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	dateGlobalRe = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)

	// Position/bin labels such as "PCM - 433" or "AAF-50".
	positionRe = regexp.MustCompile(`[A-Z]{2,4}\s*-\s*\d+`)

	// Address fragments glued onto recipient names by the OCR layer.
	addressTailRe = regexp.MustCompile(`(?i)\s*(RUA|AV|AVENIDA|TRAVESSA|TV|ESTRADA|ROD|RODOVIA|KM|Nº|N°|NUMERO|BAIRRO|SETOR|QUADRA|LOTE|CASA|APT|APARTAMENTO|BLOCO|CONDOMINIO|COND|CEP|CIDADE|ESTADO|UF)\s.*`)

	nonNameCharsRe = regexp.MustCompile(`[^\p{L}\s.\-']`)
	multiSpaceRe   = regexp.MustCompile(`\s+`)
)

// Portuguese connectives kept lowercase inside a title-cased name.
var lowercaseWords = map[string]bool{
	"de": true, "da": true, "do": true, "dos": true, "das": true, "e": true,
}

// ValidTrackingCode reports whether code matches the Correios item grammar
// after trimming and upper-casing.
func ValidTrackingCode(code string) bool {
	return trackingCodeRe.MatchString(strings.ToUpper(strings.TrimSpace(code)))
}

// CleanRecipientName normalizes a raw recipient capture: strips the address
// tail, removes noise characters, collapses whitespace and converts to
// Title Case keeping Portuguese prepositions lowercase when not leading.
// Returns the sentinel when nothing plausible remains.
func CleanRecipientName(name string) string {
	if strings.TrimSpace(name) == "" {
		return domain.SentinelRecipient
	}

	cleaned := name
	// Anything after a colon is the address.
	if i := strings.Index(cleaned, ":"); i >= 0 {
		cleaned = cleaned[:i]
	}
	cleaned = addressTailRe.ReplaceAllString(cleaned, "")
	cleaned = nonNameCharsRe.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(multiSpaceRe.ReplaceAllString(cleaned, " "))

	if len(cleaned) < 3 {
		return domain.SentinelRecipient
	}

	words := strings.Fields(cleaned)
	// Require a full name, tolerating one long compound word.
	if len(words) < 2 && len(cleaned) < 8 {
		return domain.SentinelRecipient
	}

	for i, w := range words {
		lower := strings.ToLower(w)
		if i > 0 && lowercaseWords[lower] {
			words[i] = lower
			continue
		}
		runes := []rune(lower)
		runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		words[i] = string(runes)
	}
	cleaned = strings.Join(words, " ")

	if r := []rune(cleaned); len(r) > 60 {
		cleaned = strings.TrimSpace(string(r[:60]))
	}
	if cleaned == "" {
		return domain.SentinelRecipient
	}
	return cleaned
}

// ParseDate validates a DD/MM/YYYY display date and derives its ISO form.
// Impossible calendar dates (31/02/...) and years outside 2020-2100 are
// rejected.
func ParseDate(dateStr string) (display, iso string, err error) {
	dateStr = strings.TrimSpace(dateStr)
	if !dateRe.MatchString(dateStr) {
		return "", "", fmt.Errorf("date %q does not match DD/MM/YYYY", dateStr)
	}
	t, perr := time.Parse("02/01/2006", dateStr)
	if perr != nil {
		return "", "", fmt.Errorf("invalid calendar date %q: %w", dateStr, perr)
	}
	if t.Year() < 2020 || t.Year() > 2100 {
		return "", "", fmt.Errorf("date %q outside accepted year range", dateStr)
	}
	return dateStr, t.Format("2006-01-02"), nil
}

// CleanPosition normalizes a sorting bin label.
func CleanPosition(position string) string {
	return strings.ToUpper(strings.TrimSpace(multiSpaceRe.ReplaceAllString(position, " ")))
}
