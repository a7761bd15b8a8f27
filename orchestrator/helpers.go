package orchestrator

import (
	"github.com/Tangerg/cleanforge/defense"
	"github.com/Tangerg/cleanforge/pipectx"
)

// phaseForStep maps a step number to the phase name its confidence and
// removal records are grouped under, one name per pipeline phase.
func phaseForStep(stepNumber int) string {
	switch {
	case stepNumber == 1:
		return "reconnaissance"
	case stepNumber == 2:
		return "metadata"
	case stepNumber == 3, stepNumber == 4:
		return "pageCleanup"
	case stepNumber >= 5 && stepNumber <= 8:
		return "structural"
	case stepNumber >= 9 && stepNumber <= 11:
		return "reference"
	case stepNumber == 12:
		return "characterCleaning"
	case stepNumber == 13, stepNumber == 14:
		return "reflow"
	case stepNumber == 15:
		return "assembly"
	case stepNumber == 16:
		return "finalReview"
	default:
		return "unknown"
	}
}

// evaluateLengthAdvisories checks a step's before/after line counts against
// the two size-based advisories: a length increase, or a removal exceeding
// half the working text. A qualifying large removal also counts toward
// runState.anomalies, the signal HeuristicReview's structural-anomaly
// penalty reads.
func evaluateLengthAdvisories(pc *pipectx.Context, st *runState, stepNumber int, before, after []string) {
	if len(before) == 0 {
		return
	}
	if len(after) > len(before) {
		pc.RecordAdvisory(stepNumber, pipectx.AdvisoryLengthIncreased, "working text line count increased across this step")
		return
	}
	removedFraction := float64(len(before)-len(after)) / float64(len(before))
	if removedFraction > 0.50 {
		pc.RecordAdvisory(stepNumber, pipectx.AdvisoryLargeRemoval, "this step removed more than 50% of the working text")
		st.anomalies++
	}
}

// recordAppliedChange folds an already-decided change (one whose
// validation method and confidence the caller has already determined) into
// pc: the removal record, the confidence entry, the length advisories, and
// the boundary shift. A zero matchCount is a no-op: nothing changed, so
// nothing is recorded.
func recordAppliedChange(pc *pipectx.Context, st *runState, stepNumber int, kind pipectx.RemovalKind, before, after []string, matchCount int, method pipectx.ValidationMethod, confidence float64, justification string) {
	if matchCount == 0 {
		return
	}
	delta := wordDelta(before, after)
	pc.WorkingText = joinLines(after)
	pc.RecordRemoval(pipectx.RemovalRecord{
		StepNumber:       stepNumber,
		Kind:             kind,
		MatchCount:       matchCount,
		WordDelta:        delta,
		ValidationMethod: method,
		Confidence:       confidence,
		Justification:    justification,
	})
	pc.RecordConfidence(stepNumber, phaseForStep(stepNumber), confidence)
	evaluateLengthAdvisories(pc, st, stepNumber, before, after)
	st.shiftBoundariesAfterRemoval(0, len(before)-len(after))
}

// applyPatternRemoval folds a pure pattern-matched removal (no Defense
// System gate applies: page numbers, headers/footers, citations, footnote
// markers, character cleaning) into pc. A zero matchCount is a no-op:
// nothing was found, so nothing is recorded.
func applyPatternRemoval(pc *pipectx.Context, st *runState, stepNumber int, kind pipectx.RemovalKind, before, after []string, matchCount int, justification string) {
	recordAppliedChange(pc, st, stepNumber, kind, before, after, matchCount, pipectx.ValidationCodeOnly, 1.0, justification)
}

// applyStructuralRemoval folds the outcome of a Defense-System-gated range
// removal into pc. When the Defense System rejected the proposal, no
// content changed and an AdvisoryBoundaryNoRemoval is recorded instead.
func applyStructuralRemoval(pc *pipectx.Context, st *runState, stepNumber int, kind pipectx.RemovalKind, before, after []string, applied bool, startLine, endLine int, verdict defense.Verdict) {
	if !applied {
		pc.RecordAdvisory(stepNumber, pipectx.AdvisoryBoundaryNoRemoval, "a boundary was proposed for "+string(kind)+" but the Defense System did not approve its removal")
		return
	}
	method := pipectx.ValidationC
	if verdict.Method == "A+B" {
		method = pipectx.ValidationB
	}
	delta := wordDelta(before, after)
	pc.WorkingText = joinLines(after)
	pc.RecordRemoval(pipectx.RemovalRecord{
		StepNumber:       stepNumber,
		Kind:             kind,
		StartLine:        startLine,
		EndLine:          endLine,
		WordDelta:        delta,
		ValidationMethod: method,
		Confidence:       verdict.Confidence,
		Justification:    "approved by Defense System method " + verdict.Method,
	})
	pc.RecordConfidence(stepNumber, phaseForStep(stepNumber), verdict.Confidence)
	evaluateLengthAdvisories(pc, st, stepNumber, before, after)
	st.shiftBoundariesAfterRemoval(startLine, len(before)-len(after))
}
