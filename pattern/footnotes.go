package pattern

import "regexp"

// footnoteMarkerRegex matches the superscript/bracket/symbol forms used for
// in-body footnote markers: superscript digits, [N], and the symbol
// sequence *†‡§.
var footnoteMarkerRegex = regexp.MustCompile(`[¹²³⁴⁵⁶⁷⁸⁹⁰]+|\[\d{1,3}\]|[*†‡§]+`)

// alphaBefore/alphaAfter require at least two letters of alphabetic context
// on one side of a candidate marker, the disambiguation needed so a
// mathematical exponent (e.g. "x²") is not misclassified as a footnote
// marker.
var (
	alphaBefore = regexp.MustCompile(`\p{L}{2,}$`)
	alphaAfter  = regexp.MustCompile(`^\p{L}{2,}`)
)

// FootnoteMarkerSpans returns the [start,end) byte ranges in line that look
// like footnote markers and have the required alphabetic context on at
// least one side — i.e., pass the "mathematical-exponent preservation"
// check.
func FootnoteMarkerSpans(line string) [][2]int {
	var spans [][2]int
	for _, loc := range footnoteMarkerRegex.FindAllStringIndex(line, -1) {
		start, end := loc[0], loc[1]
		before := line[:start]
		after := line[end:]
		if alphaBefore.MatchString(before) || alphaAfter.MatchString(after) {
			spans = append(spans, [2]int{start, end})
		}
	}
	return spans
}

// RemoveFootnoteMarkers deletes every span FootnoteMarkerSpans identifies in
// line, leaving bare numeric/mathematical superscripts (no alphabetic
// context) untouched.
func RemoveFootnoteMarkers(line string) string {
	spans := FootnoteMarkerSpans(line)
	if len(spans) == 0 {
		return line
	}
	var out []byte
	last := 0
	for _, sp := range spans {
		out = append(out, line[last:sp[0]]...)
		last = sp[1]
	}
	out = append(out, line[last:]...)
	return string(out)
}

// chapterIndicator matches the heading forms that must never appear inside
// a proposed front/back-matter, TOC, or auxiliary-list removal range, in
// English and the four other languages the Defense System's qualitative
// check covers.
var chapterIndicator = regexp.MustCompile(`(?im)^\s*#{0,3}\s*(chapter|part|prologue|epilogue|section\s+\d+(\.\d+)?|` +
	`cap[ií]tulo|parte|pr[oó]logo|` + // ES
	`chapitre|partie|prologue` + // FR
	`|kapitel|teil` + // DE
	`|cap[ií]tulo|parte` + // PT (shares ES spellings)
	`)\b`)

// HasChapterIndicator reports whether any line in lines contains a chapter,
// part, prologue, or numbered-section heading — the rejection signal the
// qualitative check applies across the *entire* proposed range.
func HasChapterIndicator(lines []string) bool {
	for _, l := range lines {
		if chapterIndicator.MatchString(l) {
			return true
		}
	}
	return false
}

// backMatterKeywords is the set of section headers (and localised forms)
// that indicate genuine back matter.
var backMatterKeywords = []string{
	"NOTES", "ENDNOTES", "APPENDIX", "GLOSSARY", "BIBLIOGRAPHY", "REFERENCES", "INDEX",
	"NOTAS", "APÉNDICE", "GLOSARIO", "BIBLIOGRAFÍA", "REFERENCIAS", "ÍNDICE", // ES
	"ANNEXE", "GLOSSAIRE", "BIBLIOGRAPHIE", "RÉFÉRENCES", // FR
	"ANHANG", "GLOSSAR", "BIBLIOGRAFIE", "LITERATURVERZEICHNIS", // DE
	"APÊNDICE", "BIBLIOGRAFIA", "REFERÊNCIAS", "ÍNDICE REMISSIVO", // PT
}

// BackMatterKeywords returns the canonical back-matter header keyword set.
func BackMatterKeywords() []string {
	out := make([]string, len(backMatterKeywords))
	copy(out, backMatterKeywords)
	return out
}

// CountKeywordMatches counts how many distinct keywords from the supplied
// set appear (case-insensitively, whole-word) anywhere in lines — the
// building block for the qualitative verifier's confidence scale.
func CountKeywordMatches(lines []string, keywords []string) int {
	joined := ""
	for _, l := range lines {
		joined += "\n" + l
	}
	found := 0
	for _, kw := range keywords {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
		if re.MatchString(joined) {
			found++
		}
	}
	return found
}
