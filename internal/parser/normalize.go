package parser

import (
	"regexp"
	"strings"
)

// A new record starts with a list line number followed by a date.
var recordStartRe = regexp.MustCompile(`^\d+\s+\d{2}/\d{2}/\d{4}`)

// A line that ends in a tracking code (optionally followed by the first
// words of a name) may have had the rest of the recipient wrapped onto the
// next physical line by the PDF text layer.
var trailingWrapRe = regexp.MustCompile(`[A-Z]{2}\d{9}[A-Z]{2}(\s+[\p{L}.\-']+)*$`)

// maxNormalizePasses caps the merge loop so malformed input cannot spin
// forever.
const maxNormalizePasses = 10

// NormalizeLines turns raw page text into logical record lines, re-joining
// recipient names the PDF broke across physical lines. Pure function:
// input text is never mutated and no error is ever returned; when no merge
// applies the original non-empty lines come back unchanged.
func NormalizeLines(text string) []string {
	lines := splitNonEmpty(text)

	for pass := 0; pass < maxNormalizePasses; pass++ {
		merged, changed := mergePass(lines)
		lines = merged
		if !changed {
			break
		}
	}
	return lines
}

func splitNonEmpty(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

func mergePass(lines []string) ([]string, bool) {
	var out []string
	changed := false

	for i := 0; i < len(lines); i++ {
		cur := lines[i]
		if i+1 < len(lines) && shouldMerge(cur, lines[i+1]) {
			out = append(out, cur+" "+lines[i+1])
			i++
			changed = true
			continue
		}
		out = append(out, cur)
	}
	return out, changed
}

// shouldMerge reports whether next is the wrapped continuation of cur:
// cur carries a tracking code near its end and next does not open a new
// record nor carry its own tracking code.
func shouldMerge(cur, next string) bool {
	if !trailingWrapRe.MatchString(cur) {
		return false
	}
	if recordStartRe.MatchString(next) {
		return false
	}
	if trackingCodeGlobalRe.MatchString(next) {
		return false
	}
	return true
}
