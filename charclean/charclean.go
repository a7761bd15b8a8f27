package charclean

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/Tangerg/cleanforge/pattern"
	"github.com/Tangerg/cleanforge/pipectx"
	"github.com/Tangerg/cleanforge/pkg/text"
)

// mathRunRegex recognises an inline math run ($...$), the span this
// phase's OCR, quote, and markdown substeps skip over when the caller
// asks that math symbols be preserved.
var mathRunRegex = regexp.MustCompile(`\$[^$]+\$`)

// Clean runs all nine Phase 5 substeps over lines in a fixed order.
// When preserveCodeBlocks is set, code blocks and tables are shielded
// before the first substep and restored verbatim after the last. When flags.Code is set, the OCR, quote, and markdown substeps are
// skipped on every line; when preserveMathSymbols is set, those same substeps
// skip any inline math run on a line.
func Clean(lines []string, flags pipectx.ContentFlags, preserveCodeBlocks, preserveMathSymbols bool) []string {
	shielded := &Shielded{}
	work := append([]string{}, lines...)
	if preserveCodeBlocks {
		shielded = ShieldCodeAndTables(lines)
		work = shielded.Lines
	}

	for i, l := range work {
		l = pattern.FixMojibake(l)
		// NFC recomposes the decomposed combining sequences OCR output
		// tends to carry (e + U+0301 -> é) so later substeps see one
		// code point per character.
		l = norm.NFC.String(l)
		l = pattern.ExpandLigatures(l)
		work[i] = l
	}

	work = StripInvisibles(work)

	for i, l := range work {
		if !flags.Code {
			l = applyUnlessMath(l, preserveMathSymbols, FixOCRDigits)
		}
		work[i] = l
	}

	for i, l := range work {
		work[i] = NormalizeDashes(l)
	}

	work, _ = RemoveDecorativeEmDashLines(work)

	for i, l := range work {
		if !flags.Code {
			l = applyUnlessMath(l, preserveMathSymbols, NormalizeQuotes)
		}
		work[i] = l
	}

	for i, l := range work {
		if !flags.Code {
			l = applyUnlessMath(l, preserveMathSymbols, CollapseTripleEmphasis)
		}
		work[i] = l
	}

	for i, l := range work {
		work[i] = CleanResidue(l)
	}

	// Upstream removals leave runs of blank lines behind; collapse them
	// here, while code blocks are still shielded behind non-blank
	// placeholders, so a blank line inside a fence survives verbatim.
	work = text.Lines(text.TrimAdjacentBlankLines(strings.Join(work, "\n")))

	return shielded.Restore(work)
}

// applyUnlessMath runs fn over line, skipping any inline math run
// ($...$) when preserveMath is set so fn never rewrites a formula.
func applyUnlessMath(line string, preserveMath bool, fn func(string) string) string {
	if !preserveMath || !strings.Contains(line, "$") {
		return fn(line)
	}
	var out strings.Builder
	last := 0
	for _, loc := range mathSpans(line) {
		out.WriteString(fn(line[last:loc[0]]))
		out.WriteString(line[loc[0]:loc[1]])
		last = loc[1]
	}
	out.WriteString(fn(line[last:]))
	return out.String()
}

func mathSpans(line string) [][2]int {
	locs := mathRunRegex.FindAllStringIndex(line, -1)
	out := make([][2]int, len(locs))
	for i, loc := range locs {
		out[i] = [2]int{loc[0], loc[1]}
	}
	return out
}
