// Package pattern is the pure regex/Unicode transform layer: page-number and
// header/footer recognition, ligature and mojibake tables, and citation
// pattern families. Every function here is a referentially transparent text
// transform with no knowledge of Context, confidence, or the Defense System
// — those live one layer up, in heuristic/defense/charclean/reference.
package pattern

import (
	"regexp"
	"strings"
)

// pageNumberPatterns are the default standalone page-number forms: bare
// digits, Roman numerals, "Page N", "- N -", "— N —".
var pageNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*\d{1,5}\s*$`),
	regexp.MustCompile(`(?i)^\s*[ivxlcdm]{1,8}\s*$`),
	regexp.MustCompile(`(?i)^\s*page\s+\d{1,5}\s*$`),
	regexp.MustCompile(`^\s*-\s*\d{1,5}\s*-\s*$`),
	regexp.MustCompile(`^\s*—\s*\d{1,5}\s*—\s*$`),
	regexp.MustCompile(`^\s*\[\s*\d{1,5}\s*\]\s*$`),
}

var romanNumeralBody = regexp.MustCompile(`(?i)^[ivxlcdm]+$`)

// IsPageNumberLine reports whether line, considered on its own, is nothing
// but a page-number artefact in one of the default recognised forms.
// A bare Roman-numeral line is only treated as a page number if it is a
// valid Roman numeral (not just a run of the letters i/v/x/l/c/d/m), to
// avoid misclassifying short real words.
func IsPageNumberLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	for i, re := range pageNumberPatterns {
		if !re.MatchString(trimmed) {
			continue
		}
		if i == 1 && !isValidRomanNumeral(trimmed) {
			continue
		}
		return true
	}
	return false
}

var romanValues = map[byte]int{'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000}

// isValidRomanNumeral does a lightweight structural check (no run of more
// than three repeated symbols for additive numerals except valid
// subtractive pairs) sufficient to reject strings like "llll" or "vv" that
// match the bare-letter-class regex but are not real numerals.
func isValidRomanNumeral(s string) bool {
	upper := strings.ToUpper(s)
	if !romanNumeralBody.MatchString(upper) {
		return false
	}
	total := 0
	prev := 0
	repeat := 0
	for i := len(upper) - 1; i >= 0; i-- {
		v := romanValues[upper[i]]
		if v == prev {
			repeat++
			if repeat > 3 {
				return false
			}
		} else {
			repeat = 1
		}
		if v < prev {
			total -= v
		} else {
			total += v
			prev = v
		}
	}
	return total > 0
}

// CustomPageNumberRegex compiles a caller-supplied pattern (StructureHints'
// pageNumberRegex hint from Phase 0) for use alongside the defaults.
func CustomPageNumberRegex(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(pattern)
}

// NormalizeForRepetition lower-cases and collapses internal whitespace in a
// line, the normalisation header/footer repetition detection compares on
// so that trivial formatting differences (extra spaces, case) don't defeat
// the "same line appears on 3 or more pages" check.
func NormalizeForRepetition(line string) string {
	fields := strings.Fields(strings.ToLower(line))
	return strings.Join(fields, " ")
}
