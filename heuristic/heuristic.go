// Package heuristic implements the HeuristicBoundaryDetector, the
// deterministic fallback layer of the Defense System. It
// runs the same positional constraints Phase A enforces but scores the
// candidate region by weighted pattern matches instead of an LLM-reported
// confidence, so a boundary can still be found when reconnaissance fails or
// is disabled.
package heuristic

import (
	"regexp"
	"strings"

	"github.com/Tangerg/cleanforge/pattern"
)

// Kind names the structural section a heuristic scan is looking for.
type Kind string

const (
	KindBackMatter      Kind = "backMatter"
	KindFrontMatter     Kind = "frontMatter"
	KindTableOfContents Kind = "tableOfContents"
	KindIndex           Kind = "index"
	KindAuxiliaryList   Kind = "auxiliaryList"
	KindFootnoteSection Kind = "footnoteSection"
)

// weightedPattern is one entry of the weighted back-matter signal table.
type weightedPattern struct {
	re     *regexp.Regexp
	weight float64
}

// backMatterPatterns are checked in descending specificity so the
// strongest signal wins.
var backMatterPatterns = []weightedPattern{
	{regexp.MustCompile(`(?im)^#{1,3}\s*NOTES\s*$`), 1.00},
	{regexp.MustCompile(`\bBIBLIOGRAPHY\b`), 0.90},
	{regexp.MustCompile(`\bNOTES\b`), 0.85},
	{regexp.MustCompile(`\bAPPENDIX\b`), 0.85},
	{regexp.MustCompile(`\bINDEX\b`), 0.85},
	{regexp.MustCompile(`\bGLOSSARY\b`), 0.80},
}

// Result is the outcome of a heuristic scan: either a found boundary with a
// confidence derived from the strongest matched pattern, or the zero value
// (Found=false) when nothing was found.
type Result struct {
	Found      bool
	Line       int
	Confidence float64
	Pattern    string
}

// DetectBackMatter scans lines[from:] for the strongest back-matter
// pattern, observing the same position band the quantitative validator
// applies (back matter must start at or after the midpoint; the caller
// enforces this via `from`). Returns Found=false if nothing scores above the
// 0.6 floor below which this layer must not trigger a removal.
func DetectBackMatter(lines []string, from int) Result {
	best := Result{}
	for i := from; i < len(lines); i++ {
		for _, wp := range backMatterPatterns {
			if !wp.re.MatchString(lines[i]) {
				continue
			}
			if wp.weight > best.Confidence {
				best = Result{Found: true, Line: i, Confidence: wp.weight, Pattern: wp.re.String()}
			}
		}
	}
	if best.Confidence < 0.6 {
		return Result{}
	}
	return best
}

// HeaderFooterRepetitionWeight scores header/footer repetition detection:
// the more page slices a normalised line repeats across, the higher the
// score, capped at 0.50.
func HeaderFooterRepetitionWeight(occurrences int) float64 {
	if occurrences < 3 {
		return 0
	}
	w := 0.40 + 0.02*float64(occurrences-3)
	if w > 0.50 {
		w = 0.50
	}
	return w
}

// DetectIndex scans lines[from:] for an INDEX header followed by
// alphabetised-looking entries (short lines ending in a page number), a
// stronger signal than a bare INDEX match.
func DetectIndex(lines []string, from int) Result {
	indexHeader := regexp.MustCompile(`(?i)\bINDEX\b`)
	entryLike := regexp.MustCompile(`^[\p{L} ,'-]{2,60}\s+\d{1,4}$`)

	for i := from; i < len(lines); i++ {
		if !indexHeader.MatchString(lines[i]) {
			continue
		}
		alphabetisedCount := 0
		limit := i + 20
		if limit > len(lines) {
			limit = len(lines)
		}
		for j := i + 1; j < limit; j++ {
			if entryLike.MatchString(strings.TrimSpace(lines[j])) {
				alphabetisedCount++
			}
		}
		if alphabetisedCount >= 3 {
			return Result{Found: true, Line: i, Confidence: 0.85, Pattern: "INDEX+entries"}
		}
	}
	return Result{}
}

// DetectFrontMatterEnd scans from the top of the document for the first
// chapter, part, or prologue heading, treating everything before it as
// front matter; a long prose paragraph with no such heading does not end it.
// This is the fallback for front matter, using the same chapter-indicator
// signal the qualitative check relies on, inverted: here finding one is how
// the boundary is *placed*, not how a proposed one is rejected.
func DetectFrontMatterEnd(lines []string, maxLine int) Result {
	chapterHeading := regexp.MustCompile(`(?i)^\s*#{0,3}\s*(chapter|part|prologue)\b`)
	for i := 0; i < maxLine && i < len(lines); i++ {
		if chapterHeading.MatchString(lines[i]) {
			return Result{Found: true, Line: i, Confidence: 0.75, Pattern: "chapterHeading"}
		}
	}
	return Result{}
}

// DetectAuxiliaryListEnd finds the end of a run of auxiliary-list-like
// lines (short lines ending in a page number, similar to an index entry)
// starting at a recognised auxiliary-list header.
func DetectAuxiliaryListEnd(lines []string, headerLine int) Result {
	entryLike := regexp.MustCompile(`^[\p{L}\d ,'".:-]{2,80}\.{0,}\s+\d{1,4}$`)
	end := headerLine
	for i := headerLine + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if !entryLike.MatchString(trimmed) {
			break
		}
		end = i
	}
	if end == headerLine {
		return Result{}
	}
	return Result{Found: true, Line: end, Confidence: 0.70, Pattern: "auxListEntries"}
}

// IsPageNumberLine re-exports pattern.IsPageNumberLine for callers that only
// import heuristic; kept here so structural/pagecleanup packages have one
// obvious entry point for the "is this a page-number artefact" question.
func IsPageNumberLine(line string) bool {
	return pattern.IsPageNumberLine(line)
}
