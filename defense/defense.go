// Package defense implements the three-layer Defense System that guards
// every structural removal: a quantitative BoundaryValidator (Phase A), a
// qualitative ContentVerifier (Phase B), and the combined gate the
// orchestrator applies around a proposed boundary before it is allowed to
// become a removal.
package defense

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Tangerg/cleanforge/heuristic"
	"github.com/Tangerg/cleanforge/pattern"
	"github.com/Tangerg/cleanforge/pipectx"
)

// Kind names the structural section a proposed removal claims to be.
type Kind string

const (
	KindFrontMatter     Kind = "frontMatter"
	KindTableOfContents Kind = "tableOfContents"
	KindBackMatter      Kind = "backMatter"
	KindIndex           Kind = "index"
	KindAuxiliaryList   Kind = "auxiliaryList"
	KindFootnoteSection Kind = "footnoteSection"
)

// RejectionReason enumerates why Phase A refused a proposed boundary.
type RejectionReason string

const (
	ReasonPositionTooEarly      RejectionReason = "positionTooEarly"
	ReasonPositionTooLate       RejectionReason = "positionTooLate"
	ReasonInvalidRange          RejectionReason = "invalidRange"
	ReasonOutOfBounds           RejectionReason = "outOfBounds"
	ReasonExcessiveRemoval      RejectionReason = "excessiveRemoval"
	ReasonSectionTooSmall       RejectionReason = "sectionTooSmall"
	ReasonLowConfidence         RejectionReason = "lowConfidence"
	ReasonInconsistentWithHints RejectionReason = "inconsistentWithHints"
)

// constraint is one row of the Phase A table: the section-specific
// maximum removal size, minimum reported confidence, and minimum line
// count a proposed range must satisfy. The position band is not part of
// the row; ValidateBoundary checks it per kind in its own switch.
type constraint struct {
	maxRemovalPercent float64
	minConfidence     float64
	minLines          int
}

var constraints = map[Kind]constraint{
	KindFrontMatter:     {maxRemovalPercent: 0.40, minConfidence: 0.60, minLines: 3},
	KindTableOfContents: {maxRemovalPercent: 0.20, minConfidence: 0.60, minLines: 5},
	KindBackMatter:      {maxRemovalPercent: 0.45, minConfidence: 0.70, minLines: 5},
	KindIndex:           {maxRemovalPercent: 0.25, minConfidence: 0.65, minLines: 10},
	KindAuxiliaryList:   {maxRemovalPercent: 0.15, minConfidence: 0.65, minLines: 3},
	KindFootnoteSection: {maxRemovalPercent: 1.00, minConfidence: 0.70, minLines: 4},
}

// ValidationResult is Phase A's verdict on a proposed removal.
type ValidationResult struct {
	Valid       bool
	Reason      RejectionReason
	Explanation string
	Suggestion  string
}

func invalid(reason RejectionReason, explanation, suggestion string) ValidationResult {
	return ValidationResult{Valid: false, Reason: reason, Explanation: explanation, Suggestion: suggestion}
}

// ValidateBoundary is Phase A: a quantitative gate over a proposed
// [startLine, endLine] range, checked against the section-specific
// position band, maximum removal size, minimum confidence, and minimum
// line count.
func ValidateBoundary(kind Kind, startLine, endLine int, confidence float64, lineCount int) ValidationResult {
	c, ok := constraints[kind]
	if !ok {
		return invalid(ReasonInvalidRange, fmt.Sprintf("unrecognised section kind %q", kind), "")
	}
	if lineCount <= 0 || startLine < 0 || endLine < startLine || endLine > lineCount {
		return invalid(ReasonOutOfBounds, "proposed range falls outside the document", "clamp the range to [0, lineCount]")
	}

	// The position band is checked before any size or confidence
	// constraint: a proposal in the wrong half of the document is wrong
	// for that reason first, however large or confident it also is.
	startPercent := float64(startLine) / float64(lineCount)
	endPercent := float64(endLine) / float64(lineCount)
	switch kind {
	case KindFrontMatter, KindAuxiliaryList:
		if endPercent > 0.40 {
			return invalid(ReasonPositionTooLate, "end of range falls after the allowed 40% position", "")
		}
	case KindTableOfContents:
		if endPercent > 0.35 {
			return invalid(ReasonPositionTooLate, "end of range falls after the allowed 35% position", "")
		}
	case KindBackMatter:
		if startPercent < 0.50 {
			return invalid(ReasonPositionTooEarly, "start of range falls before the allowed 50% position", "")
		}
	case KindIndex:
		if startPercent < 0.60 {
			return invalid(ReasonPositionTooEarly, "start of range falls before the allowed 60% position", "")
		}
	case KindFootnoteSection:
		if startPercent < 0.05 || endPercent > 0.95 {
			reason := ReasonPositionTooEarly
			if startPercent >= 0.05 {
				reason = ReasonPositionTooLate
			}
			return invalid(reason, "footnote section falls outside the 5%-95% position band", "")
		}
	}

	if endLine-startLine < c.minLines {
		return invalid(ReasonSectionTooSmall, "proposed range is smaller than the minimum section size", "widen the range or skip removal")
	}
	removalPercent := float64(endLine-startLine) / float64(lineCount)
	if removalPercent > c.maxRemovalPercent {
		return invalid(ReasonExcessiveRemoval, "proposed removal exceeds the maximum fraction of the document", "narrow the boundary")
	}
	if confidence < c.minConfidence {
		return invalid(ReasonLowConfidence, "reported confidence below the section's minimum", "fall back to the heuristic detector")
	}

	return ValidationResult{Valid: true}
}

// hintTrustFloor is the minimum confidence a Phase 0 chapter hint must
// carry before it can veto a proposed removal.
const hintTrustFloor = 0.50

// ValidateAgainstHints rejects a proposed [startLine, endLine) removal
// that contradicts the chapter structure Phase 0 detected: a trusted
// chapter start falling inside the range means the removal would swallow
// narrative the reconnaissance pass already located.
func ValidateAgainstHints(startLine, endLine int, chapters []pipectx.ChapterHint) ValidationResult {
	for _, ch := range chapters {
		if ch.Confidence < hintTrustFloor {
			continue
		}
		if ch.StartLine >= startLine && ch.StartLine < endLine {
			return invalid(ReasonInconsistentWithHints,
				fmt.Sprintf("detected chapter %q starts at line %d, inside the proposed range", ch.Name, ch.StartLine),
				"narrow the range to exclude the detected chapter start")
		}
	}
	return ValidationResult{Valid: true}
}

// backMatterKeywordSet and frontMatterKeywordSet are the content-pattern
// families ContentVerifier searches for, per kind.
var backMatterKeywordSet = pattern.BackMatterKeywords()

// tocEntryLine matches a table-of-contents entry: any text ending in a
// page number, with or without a dot leader.
var tocEntryLine = regexp.MustCompile(`\s\d{1,4}$`)

// tocKeywordSet is the header family that confirms a proposed
// table-of-contents range, in English, Spanish, French, German, and
// Portuguese.
var tocKeywordSet = []string{
	"TABLE OF CONTENTS", "CONTENTS",
	"ÍNDICE", "SOMMAIRE", "TABLE DES MATIÈRES", "INHALTSVERZEICHNIS", "SUMÁRIO",
}

var frontMatterKeywordSet = []string{
	"COPYRIGHT", "DEDICATION", "ACKNOWLEDGMENTS", "ACKNOWLEDGEMENTS", "PREFACE", "FOREWORD",
	"CONTENTS", "ALSO BY", "TITLE PAGE",
	"DERECHOS DE AUTOR", "DEDICATORIA", "AGRADECIMIENTOS", "PREFACIO", // ES
	"DROITS D'AUTEUR", "DÉDICACE", "REMERCIEMENTS", "PRÉFACE", // FR
	"URHEBERRECHT", "WIDMUNG", "DANKSAGUNG", "VORWORT", // DE
}

// VerificationResult is Phase B's verdict: whether the claimed content was
// confirmed, the confidence that confirmation carries, and how many
// expected markers were matched.
type VerificationResult struct {
	Confirmed  bool
	Confidence float64
	Matches    int
	Rejected   bool
	Reason     string
}

func confidenceForMatches(matches, expected int) float64 {
	switch {
	case expected > 0 && matches >= expected:
		return 0.95
	case matches >= 3:
		return 0.85
	case matches == 2:
		return 0.75
	case matches == 1:
		return 0.65
	default:
		return 0.40
	}
}

// VerifyContent is Phase B: a qualitative gate confirming the proposed
// region's content matches its claimed kind, and rejecting it outright if
// it contains a chapter indicator (front matter, TOC, and auxiliary-list
// claims can never legitimately contain one).
func VerifyContent(kind Kind, lines []string) VerificationResult {
	switch kind {
	case KindFrontMatter, KindAuxiliaryList:
		if pattern.HasChapterIndicator(lines) {
			return VerificationResult{Rejected: true, Reason: "chapter indicator found inside proposed front-matter range"}
		}
		matches := pattern.CountKeywordMatches(lines, frontMatterKeywordSet)
		return VerificationResult{Confirmed: matches > 0, Confidence: confidenceForMatches(matches, len(frontMatterKeywordSet)), Matches: matches}
	case KindTableOfContents:
		// A table of contents legitimately lists "Chapter One .... 12"
		// lines; only a chapter line WITHOUT a trailing page number marks
		// real narrative inside the proposed range.
		var bare []string
		for _, l := range lines {
			if !tocEntryLine.MatchString(strings.TrimSpace(l)) {
				bare = append(bare, l)
			}
		}
		if pattern.HasChapterIndicator(bare) {
			return VerificationResult{Rejected: true, Reason: "bare chapter heading found inside proposed table-of-contents range"}
		}
		matches := pattern.CountKeywordMatches(lines, tocKeywordSet)
		return VerificationResult{Confirmed: matches > 0, Confidence: confidenceForMatches(matches, len(tocKeywordSet)), Matches: matches}
	case KindBackMatter, KindIndex:
		matches := pattern.CountKeywordMatches(lines, backMatterKeywordSet)
		return VerificationResult{Confirmed: matches > 0, Confidence: confidenceForMatches(matches, len(backMatterKeywordSet)), Matches: matches}
	default:
		matches := pattern.CountKeywordMatches(lines, backMatterKeywordSet)
		return VerificationResult{Confirmed: matches > 0, Confidence: confidenceForMatches(matches, len(backMatterKeywordSet)), Matches: matches}
	}
}

// Verdict is the combined outcome of running all three Defense System
// layers around one proposed (or heuristically discovered) removal. When
// Approved, StartLine/EndLine hold the range the removal may cover: the
// original proposal on the A+B path, or the heuristically rediscovered
// range on the C path (which may be narrower than what was proposed).
type Verdict struct {
	Approved   bool
	Method     string // "A+B", "C", or "" if nothing approved
	Confidence float64
	StartLine  int
	EndLine    int
	A          ValidationResult
	B          VerificationResult
}

// Evaluate runs the full Defense System for a proposed removal. lines is
// the whole working document; the proposed candidate region is
// [startLine, endLine). Phase A validates the proposal quantitatively —
// including consistency with any chapter hints Phase 0 produced — Phase
// B verifies the candidate's content, and if either rejects, Phase C
// rescans the document for the same kind of boundary — from the
// section's positional floor, never from the proposal's own start, so an
// early false positive (back matter "found" at line 4 of 415) cannot
// drag the heuristic into the narrative. Removal is approved only if A
// and B both pass, or C yields a positionally valid boundary with
// confidence ≥ 0.6.
func Evaluate(kind Kind, startLine, endLine int, confidence float64, lineCount int, lines []string, chapters []pipectx.ChapterHint) Verdict {
	a := ValidateBoundary(kind, startLine, endLine, confidence, lineCount)
	if a.Valid {
		a = ValidateAgainstHints(startLine, endLine, chapters)
	}
	if a.Valid {
		candidate := lines
		if startLine >= 0 && endLine <= len(lines) && startLine < endLine {
			candidate = lines[startLine:endLine]
		}
		b := VerifyContent(kind, candidate)
		if !b.Rejected && b.Confirmed {
			return Verdict{
				Approved:   true,
				Method:     "A+B",
				Confidence: (confidence + b.Confidence) / 2,
				StartLine:  startLine,
				EndLine:    endLine,
				A:          a,
				B:          b,
			}
		}
		return fallbackToHeuristic(kind, lines, lineCount, chapters, a, b)
	}
	return fallbackToHeuristic(kind, lines, lineCount, chapters, a, VerificationResult{})
}

// fallbackToHeuristic is Phase C: rediscover the boundary deterministically,
// scanning only at or after the positional floor Phase A enforces for the
// section kind. The rediscovered range replaces the proposal, and is
// itself revalidated quantitatively (hints included) before approval.
func fallbackToHeuristic(kind Kind, lines []string, lineCount int, chapters []pipectx.ChapterHint, a ValidationResult, b VerificationResult) Verdict {
	var hr heuristic.Result
	end := lineCount
	switch kind {
	case KindBackMatter:
		hr = heuristic.DetectBackMatter(lines, lineCount/2)
	case KindIndex:
		hr = heuristic.DetectIndex(lines, lineCount*60/100)
	default:
		// No heuristic layer exists for the remaining kinds; the
		// conservative default is no removal.
		return Verdict{Approved: false, A: a, B: b}
	}
	if hr.Found && hr.Confidence >= 0.6 &&
		ValidateBoundary(kind, hr.Line, end, hr.Confidence, lineCount).Valid &&
		ValidateAgainstHints(hr.Line, end, chapters).Valid {
		return Verdict{Approved: true, Method: "C", Confidence: hr.Confidence, StartLine: hr.Line, EndLine: end, A: a, B: b}
	}
	return Verdict{Approved: false, A: a, B: b}
}
