// Package reflow implements Phase 6: Reflow (step 13) rejoins paragraphs
// fragmented by pagination, and Optimise (step 14) splits paragraphs that
// exceed a configured word limit. Both are LLM-driven with a
// word-count-preserving verifier; a verification failure rolls the step
// back to a deterministic fallback (or, for Optimise, returns the input
// lines unchanged).
package reflow

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Tangerg/cleanforge/document"
)

// Paragraph is a maximal run of non-blank lines, the unit reflow and
// optimise both operate over.
type Paragraph struct {
	StartLine int
	Lines     []string
}

// SplitParagraphs partitions lines into paragraphs separated by one or
// more blank lines. Leading/trailing blank lines produce no paragraph.
func SplitParagraphs(lines []string) []Paragraph {
	var out []Paragraph
	var current []string
	start := -1
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			if len(current) > 0 {
				out = append(out, Paragraph{StartLine: start, Lines: current})
				current = nil
			}
			continue
		}
		if len(current) == 0 {
			start = i
		}
		current = append(current, l)
	}
	if len(current) > 0 {
		out = append(out, Paragraph{StartLine: start, Lines: current})
	}
	return out
}

// Join renders paragraphs back into a single blank-line-separated text,
// the inverse of SplitParagraphs for deterministic (non-LLM) lines.
func Join(paragraphs []Paragraph) string {
	blocks := make([]string, len(paragraphs))
	for i, p := range paragraphs {
		blocks[i] = strings.Join(p.Lines, "\n")
	}
	return strings.Join(blocks, "\n\n")
}

var sentenceFinal = ".!?\"'”’)"

// endsWithSentenceFinalPunctuation reports whether line, trimmed, ends in
// one of the characters that mark a genuine sentence end.
func endsWithSentenceFinalPunctuation(line string) bool {
	trimmed := strings.TrimRight(line, " \t")
	if trimmed == "" {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(trimmed)
	return strings.ContainsRune(sentenceFinal, r)
}

// startsLowercase reports whether line's first letter rune is lowercase,
// the other half of the deterministic intra-paragraph join rule.
func startsLowercase(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return false
	}
	r := []rune(trimmed)[0]
	return unicode.IsLower(r)
}

// softHyphen is the U+00AD a hyphenation pass leaves at a line break;
// when it terminates a joined line it stands for a literal hyphen.
const softHyphen = "\u00AD"

// DeterministicRejoin joins a paragraph's physical lines into logical
// lines: a line lacking sentence-final punctuation is joined to the
// following line when that line starts lowercase. A line already ending
// in a hyphen — literal or soft (U+00AD) — is joined directly with no
// inserted space, repairing a hyphenated word split across the page
// break; a soft hyphen is rendered as a literal one in the process.
// Otherwise a single space separates the two.
func DeterministicRejoin(paragraph []string) []string {
	var out []string
	i := 0
	for i < len(paragraph) {
		line := paragraph[i]
		for i+1 < len(paragraph) && !endsWithSentenceFinalPunctuation(line) && startsLowercase(paragraph[i+1]) {
			next := paragraph[i+1]
			switch {
			case strings.HasSuffix(line, "-"):
				line = line + next
			case strings.HasSuffix(line, softHyphen):
				line = strings.TrimSuffix(line, softHyphen) + "-" + next
			default:
				line = line + " " + next
			}
			i++
		}
		out = append(out, line)
		i++
	}
	return out
}

// IsPoetry applies the poetry heuristic to a paragraph: at least three
// lines, a mean line length under twelve words, and more than 60% of
// lines lacking sentence-final punctuation.
func IsPoetry(lines []string) bool {
	if len(lines) < 3 {
		return false
	}
	totalWords := 0
	noPunct := 0
	for _, l := range lines {
		totalWords += document.WordCount([]string{l})
		if !endsWithSentenceFinalPunctuation(l) {
			noPunct++
		}
	}
	mean := float64(totalWords) / float64(len(lines))
	ratio := float64(noPunct) / float64(len(lines))
	return mean < 12 && ratio > 0.60
}
