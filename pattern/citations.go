package pattern

import (
	"regexp"
	"strconv"
	"strings"
)

// DOIPattern matches a DOI reference, a substring citation removal must
// leave verbatim.
var DOIPattern = regexp.MustCompile(`10\.\d{4,}/\S+`)

// DecimalPattern matches a decimal numeral (e.g. 3.14), the other substring
// citation removal must leave verbatim.
var DecimalPattern = regexp.MustCompile(`\b\d+\.\d+\b`)

// CitationPatterns are the inline citation forms recognised: APA, MLA,
// Chicago (author-date), IEEE, Harvard, Vancouver, and CSE numbered styles.
var CitationPatterns = []*regexp.Regexp{
	// APA/Harvard/Chicago author-date: (Smith, 2020), (Smith & Jones, 2020),
	// (Smith et al., 2020, p. 12).
	regexp.MustCompile(`\(\s*[A-Z][\p{L}'-]+(?:\s*(?:&|and|et al\.?)\s*[A-Z]?[\p{L}'-]*)?,?\s*\d{4}[a-z]?(?:,\s*p{1,2}\.?\s*\d+(?:-\d+)?)?\s*\)`),
	// MLA: (Smith 23), (Smith 23-45).
	regexp.MustCompile(`\(\s*[A-Z][\p{L}'-]+\s+\d+(?:-\d+)?\s*\)`),
	// IEEE/Vancouver numbered: [1], [1, 2], [1-3].
	regexp.MustCompile(`\[\s*\d+(?:\s*[-,]\s*\d+)*\s*\]`),
	// CSE superscript-style bracket numeral with trailing letter: [12a].
	regexp.MustCompile(`\[\s*\d+[a-z]?\s*\]`),
}

// shieldPlaceholder formats a shielding placeholder for kind at index i,
// matching the opaque-token convention used for code/table shielding
// (⟦KIND_n⟧).
func shieldPlaceholder(kind string, i int) string {
	return "⟦" + kind + "_" + strconv.Itoa(i) + "⟧"
}

// ShieldKind names the category of substring Shield protects during a
// destructive rewrite pass (citation shielding, code and table shielding).
type ShieldKind string

const (
	ShieldKindDecimal ShieldKind = "DECIMAL"
	ShieldKindDOI     ShieldKind = "DOI"
	ShieldKindCodeBlk ShieldKind = "CODEBLK"
	ShieldKindTable   ShieldKind = "TABLE"
)

// Shielded holds text with protected substrings replaced by opaque
// placeholders, and the map needed to restore them.
type Shielded struct {
	Text        string
	placeholder map[string]string
}

// ShieldDecimalsAndDOIs replaces every DOI and decimal-numeral substring of
// text with an opaque placeholder, protecting them from the citation
// removal pass that follows. DOIs are shielded before decimals so a DOI's
// internal numerals are never independently matched by DecimalPattern.
func ShieldDecimalsAndDOIs(text string) *Shielded {
	s := &Shielded{Text: text, placeholder: make(map[string]string)}
	s.Text = shieldPattern(s, DOIPattern, ShieldKindDOI)
	s.Text = shieldPattern(s, DecimalPattern, ShieldKindDecimal)
	return s
}

func shieldPattern(s *Shielded, re *regexp.Regexp, kind ShieldKind) string {
	idx := 0
	return re.ReplaceAllStringFunc(s.Text, func(match string) string {
		ph := shieldPlaceholder(string(kind), idx)
		idx++
		s.placeholder[ph] = match
		return ph
	})
}

// Unshield restores every placeholder in text to its original substring.
func (s *Shielded) Unshield(text string) string {
	for ph, original := range s.placeholder {
		text = strings.ReplaceAll(text, ph, original)
	}
	return text
}
