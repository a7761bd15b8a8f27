// Package reference implements Phase 4: removing auxiliary lists,
// citations, and footnote/endnote apparatus. Structural removals (an
// auxiliary list's header-to-entries range) go through the Defense
// System; everything else is a pure pattern rule operating on shielded
// text so DOIs and decimal numerals survive untouched.
package reference

import (
	"regexp"
	"strings"

	"github.com/Tangerg/cleanforge/defense"
	"github.com/Tangerg/cleanforge/document"
	"github.com/Tangerg/cleanforge/pattern"
)

// auxiliaryListHeaders are the English headers of the 13 canonical
// auxiliary-list types, plus Spanish, French, and German headers for the
// figure, table, and abbreviation lists only; the other ten types have no
// localised header.
var auxiliaryListHeaders = []string{
	"LIST OF FIGURES", "LIST OF ILLUSTRATIONS", "LIST OF PLATES", "LIST OF MAPS",
	"LIST OF CHARTS", "LIST OF DIAGRAMS", "LIST OF TABLES", "LIST OF EXHIBITS",
	"LIST OF CODE SAMPLES", "LIST OF EQUATIONS", "LIST OF ABBREVIATIONS",
	"LIST OF ACRONYMS", "LIST OF SYMBOLS",
	"LISTA DE FIGURAS", "LISTA DE TABLAS", "LISTA DE ABREVIATURAS", // ES
	"LISTE DES FIGURES", "LISTE DES TABLEAUX", "LISTE DES ABRÉVIATIONS", // FR
	"ABBILDUNGSVERZEICHNIS", "TABELLENVERZEICHNIS", "ABKÜRZUNGSVERZEICHNIS", // DE
}

var auxiliaryListHeaderRegex = buildHeaderRegex(auxiliaryListHeaders)

func buildHeaderRegex(headers []string) *regexp.Regexp {
	parts := make([]string, len(headers))
	for i, h := range headers {
		parts[i] = regexp.QuoteMeta(h)
	}
	return regexp.MustCompile(`(?i)^\s*(` + strings.Join(parts, "|") + `)\s*$`)
}

// AuxiliaryListRange is a candidate auxiliary-list range found by header
// pattern: a canonical header line followed by a run of entry-like lines.
type AuxiliaryListRange struct {
	HeaderLine int
	EndLine    int
}

// FindAuxiliaryLists scans lines for canonical auxiliary-list headers and
// the entry run that follows each one.
func FindAuxiliaryLists(lines []string) []AuxiliaryListRange {
	var out []AuxiliaryListRange
	entryLike := regexp.MustCompile(`^.{2,100}?\s+\d{1,4}$`)
	for i, l := range lines {
		if !auxiliaryListHeaderRegex.MatchString(strings.TrimSpace(l)) {
			continue
		}
		end := i
		for j := i + 1; j < len(lines); j++ {
			trimmed := strings.TrimSpace(lines[j])
			if trimmed == "" {
				continue
			}
			if !entryLike.MatchString(trimmed) {
				break
			}
			end = j
		}
		if end > i {
			out = append(out, AuxiliaryListRange{HeaderLine: i, EndLine: end + 1})
		}
	}
	return out
}

// RemoveAuxiliaryLists deletes every auxiliary-list range the Defense
// System approves. Unlike front/back matter, a canonical header match
// ("LIST OF FIGURES" followed by an entry run) is itself strong enough
// evidence that the quantitative gate alone is sufficient; the qualitative
// check only needs to confirm the range holds no chapter indicator. Ranges
// are deleted last-to-first so earlier line indices stay valid.
func RemoveAuxiliaryLists(doc *document.Document) ([]string, int) {
	lines := doc.Lines()
	ranges := FindAuxiliaryLists(lines)
	removed := 0
	for i := len(ranges) - 1; i >= 0; i-- {
		r := ranges[i]
		candidate := lines[r.HeaderLine:r.EndLine]
		a := defense.ValidateBoundary(defense.KindAuxiliaryList, r.HeaderLine, r.EndLine, 0.75, len(lines))
		if !a.Valid {
			continue
		}
		if pattern.HasChapterIndicator(candidate) {
			continue
		}
		lines = append(lines[:r.HeaderLine], lines[r.EndLine:]...)
		removed += r.EndLine - r.HeaderLine
	}
	return lines, removed
}

// orphanArtefactFixer repairs the residue a citation removal leaves behind
// ("Fix B1"): empty parentheses, doubled spaces, and a trailing comma or
// semicolon at line end.
var (
	emptyParens   = regexp.MustCompile(`\(\s*\)`)
	doubleSpaces  = regexp.MustCompile(` {2,}`)
	trailingPunct = regexp.MustCompile(`[,;]\s*$`)
)

func fixOrphanArtefacts(line string) string {
	line = emptyParens.ReplaceAllString(line, "")
	line = doubleSpaces.ReplaceAllString(line, " ")
	line = trailingPunct.ReplaceAllString(line, "")
	return strings.TrimRight(line, " ")
}

// codeFenceLine and tableRowLine recognise the lines citation removal
// must leave untouched: a bracketed numeral inside a fenced code block is
// array indexing, not an IEEE citation, and a table cell's parenthesised
// year may be data.
var (
	codeFenceLine = regexp.MustCompile("^\\s*(```|~~~)")
	tableRowLine  = regexp.MustCompile(`^\s*\|.*\|\s*$`)
)

// RemoveCitations shields DOIs and decimal numerals, strips every
// recognised inline citation pattern, repairs orphaned artefacts left by
// the removal, and unshields the protected substrings. Lines inside
// fenced code blocks and Markdown table rows are passed through verbatim.
func RemoveCitations(lines []string) ([]string, int) {
	out := make([]string, len(lines))
	removed := 0
	inFence := false
	for i, line := range lines {
		if codeFenceLine.MatchString(line) {
			inFence = !inFence
			out[i] = line
			continue
		}
		if inFence || tableRowLine.MatchString(line) {
			out[i] = line
			continue
		}
		shielded := pattern.ShieldDecimalsAndDOIs(line)
		text := shielded.Text
		for _, re := range pattern.CitationPatterns {
			text = re.ReplaceAllStringFunc(text, func(m string) string {
				removed++
				return ""
			})
		}
		text = fixOrphanArtefacts(text)
		out[i] = shielded.Unshield(text)
	}
	return out, removed
}

// RemoveFootnoteMarkers strips in-body footnote markers from every line,
// preserving mathematical exponents that lack alphabetic context.
func RemoveFootnoteMarkers(lines []string) ([]string, int) {
	out := make([]string, len(lines))
	removed := 0
	for i, line := range lines {
		spans := pattern.FootnoteMarkerSpans(line)
		removed += len(spans)
		out[i] = pattern.RemoveFootnoteMarkers(line)
	}
	return out, removed
}

// notesHeaderRegex matches a chapter-local or document-level NOTES section
// header, Markdown or bare.
var notesHeaderRegex = regexp.MustCompile(`(?im)^\s*#{0,3}\s*(NOTES|ENDNOTES)\s*$`)

// FindNotesSection locates a NOTES/ENDNOTES section header and returns its
// line index, or -1 if none is found.
func FindNotesSection(lines []string, from int) int {
	for i := from; i < len(lines); i++ {
		if notesHeaderRegex.MatchString(lines[i]) {
			return i
		}
	}
	return -1
}

// RemoveNotesSection deletes the NOTES/ENDNOTES section starting at
// headerLine through the end of the document, if the Defense System
// approves it as a footnote section. It does not stop at a later
// back-matter header: anything after the notes header goes with it.
func RemoveNotesSection(doc *document.Document, headerLine int) ([]string, bool) {
	lines := doc.Lines()
	end := len(lines)
	a := defense.ValidateBoundary(defense.KindFootnoteSection, headerLine, end, 0.75, len(lines))
	if !a.Valid {
		return lines, false
	}
	b := defense.VerifyContent(defense.KindBackMatter, lines[headerLine:end])
	if b.Rejected || !b.Confirmed {
		return lines, false
	}
	out := append(append([]string{}, lines[:headerLine]...), lines[end:]...)
	return out, true
}
