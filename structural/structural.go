// Package structural implements Phase 3: removing front matter, table of
// contents, back matter, and index — each a Defense-System-protected
// line-range delete against the boundaries Phase 0 proposed.
package structural

import (
	"github.com/Tangerg/cleanforge/defense"
	"github.com/Tangerg/cleanforge/document"
	"github.com/Tangerg/cleanforge/pipectx"
)

// Removal is the outcome of attempting one structural removal: whether it
// was applied, the range it covered, and the Defense System verdict that
// decided it.
type Removal struct {
	Applied   bool
	StartLine int
	EndLine   int
	Verdict   defense.Verdict
}

// RemoveFrontMatter deletes lines [0, endLine) if the Defense System
// approves the removal. chapters are Phase 0's detected chapter starts,
// used to veto a range that would swallow one.
func RemoveFrontMatter(doc *document.Document, endLine int, confidence float64, chapters []pipectx.ChapterHint) ([]string, Removal) {
	return applyRangeRemoval(doc, defense.KindFrontMatter, 0, endLine, confidence, chapters)
}

// RemoveTableOfContents deletes lines [startLine, endLine) if the Defense
// System approves the removal. The table-of-contents boundary is not
// produced by Phase 0 the way front/back matter are; callers locate a
// candidate range (e.g. a heading match) before calling this.
func RemoveTableOfContents(doc *document.Document, startLine, endLine int, confidence float64, chapters []pipectx.ChapterHint) ([]string, Removal) {
	return applyRangeRemoval(doc, defense.KindTableOfContents, startLine, endLine, confidence, chapters)
}

// RemoveBackMatter deletes lines [startLine, lineCount) if the Defense
// System approves the removal.
func RemoveBackMatter(doc *document.Document, startLine int, confidence float64, chapters []pipectx.ChapterHint) ([]string, Removal) {
	return applyRangeRemoval(doc, defense.KindBackMatter, startLine, doc.LineCount(), confidence, chapters)
}

// RemoveIndex deletes lines [startLine, endLine) if the Defense System
// approves the removal.
func RemoveIndex(doc *document.Document, startLine, endLine int, confidence float64, chapters []pipectx.ChapterHint) ([]string, Removal) {
	return applyRangeRemoval(doc, defense.KindIndex, startLine, endLine, confidence, chapters)
}

func applyRangeRemoval(doc *document.Document, kind defense.Kind, startLine, endLine int, confidence float64, chapters []pipectx.ChapterHint) ([]string, Removal) {
	lineCount := doc.LineCount()
	if startLine < 0 {
		startLine = 0
	}
	if endLine > lineCount {
		endLine = lineCount
	}
	if startLine >= endLine {
		return doc.Lines(), Removal{}
	}

	lines := doc.Lines()
	verdict := defense.Evaluate(kind, startLine, endLine, confidence, lineCount, lines, chapters)
	if !verdict.Approved {
		return lines, Removal{Verdict: verdict}
	}

	// The C path may have rediscovered a narrower range than the proposal;
	// the verdict's range is the one that was actually validated.
	startLine, endLine = verdict.StartLine, verdict.EndLine
	out := make([]string, 0, len(lines)-(endLine-startLine))
	out = append(out, lines[:startLine]...)
	out = append(out, lines[endLine:]...)
	return out, Removal{Applied: true, StartLine: startLine, EndLine: endLine, Verdict: verdict}
}
