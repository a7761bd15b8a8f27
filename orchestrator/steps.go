package orchestrator

import (
	"context"

	"github.com/Tangerg/cleanforge/assemble"
	"github.com/Tangerg/cleanforge/charclean"
	"github.com/Tangerg/cleanforge/confidence"
	"github.com/Tangerg/cleanforge/config"
	"github.com/Tangerg/cleanforge/document"
	"github.com/Tangerg/cleanforge/heuristic"
	"github.com/Tangerg/cleanforge/metatext"
	"github.com/Tangerg/cleanforge/pagecleanup"
	"github.com/Tangerg/cleanforge/pipectx"
	"github.com/Tangerg/cleanforge/pipeflow"
	"github.com/Tangerg/cleanforge/recon"
	"github.com/Tangerg/cleanforge/reference"
	"github.com/Tangerg/cleanforge/reflow"
	"github.com/Tangerg/cleanforge/review"
	"github.com/Tangerg/cleanforge/structural"
)

// buildSteps wires every component package into the 16 numbered steps and
// returns them in the order this Sequence actually executes them.
//
// That order is NOT numeric. Citation and footnote detection must run
// before reflow and special-character cleaning, so step 12 (character
// cleaning) runs after steps 13/14 (reflow/optimise) even though its
// documented number is lower: citation and footnote pattern detection must see text that
// hasn't yet had its mojibake/ligatures/dashes normalised, or recall
// degrades. Step.Number() still reports each step's fixed documented
// position, independent of this run order, exactly as pipeflow.Step
// documents.
func buildSteps(st *runState, cfg config.Config) []pipeflow.Step {
	return []pipeflow.Step{
		step1Reconnaissance(st),
		step2Metadata(st),
		step3PageNumbers(st),
		step4HeadersFooters(st),
		step5FrontMatter(st),
		step6TableOfContents(st),
		step7BackMatter(st),
		step8Index(st),
		step9AuxiliaryLists(st, cfg),
		step10Citations(st, cfg),
		step11Footnotes(st, cfg),
		step13Reflow(st),
		step14Optimize(st, cfg),
		step12CharacterCleaning(st, cfg),
		step15Assembly(st, cfg),
		step16FinalReview(st),
	}
}

func step1Reconnaissance(st *runState) pipeflow.Step {
	return pipeflow.Func{
		StepNumber: 1,
		StepPhase:  "reconnaissance",
		RunFunc: func(ctx context.Context, pc *pipectx.Context) error {
			doc := document.New(pc.WorkingText)
			svc := recon.Service{Client: st.client, Prompts: st.deps.Prompts}

			hints, _ := svc.Analyze(ctx, doc)
			pc.Hints = &hints
			st.documentType = hints.DocumentType
			st.chapters = hints.Chapters
			if detail := recon.AlignmentAdvisory(hints.DocumentType, st.cfg.SelectedContentType); detail != "" {
				pc.RecordAdvisory(1, pipectx.AdvisoryContentTypeMismatch, detail)
			}

			boundary := svc.DetectBoundaries(ctx, doc)
			pc.Boundary = &boundary
			st.frontMatterEndLine = -1
			if boundary.FrontMatterEndLine != nil {
				st.frontMatterEndLine = *boundary.FrontMatterEndLine
			}
			st.backMatterStartLine = -1
			if boundary.BackMatterStartLine != nil {
				st.backMatterStartLine = *boundary.BackMatterStartLine
			}

			pc.RecordConfidence(1, phaseForStep(1), hints.OverallConfidence)
			return nil
		},
	}
}

func step2Metadata(st *runState) pipeflow.Step {
	return pipeflow.Func{
		StepNumber: 2,
		StepPhase:  "metadata",
		RunFunc: func(ctx context.Context, pc *pipectx.Context) error {
			doc := document.New(pc.WorkingText)
			svc := metatext.Service{Client: st.client, Prompts: st.deps.Prompts}

			effectiveEnd := st.frontMatterEndLine
			if effectiveEnd < 0 {
				effectiveEnd = doc.PercentLine(20)
			}
			meta, ok := svc.Extract(ctx, doc, effectiveEnd)
			pc.Meta = &meta
			pc.Flags = &meta.ContentFlags

			confidence := pipectx.FallbackFloor
			if ok {
				confidence = 0.85
			}
			pc.RecordConfidence(2, phaseForStep(2), confidence)
			return nil
		},
	}
}

func step3PageNumbers(st *runState) pipeflow.Step {
	return pipeflow.Func{
		StepNumber: 3,
		StepPhase:  "pageCleanup",
		RunFunc: func(ctx context.Context, pc *pipectx.Context) error {
			lines := document.New(pc.WorkingText).Lines()
			customRegex := ""
			if pc.Hints != nil {
				customRegex = pc.Hints.PageNumberRegex
			}
			out, removed := pagecleanup.RemovePageNumbers(lines, customRegex)
			applyPatternRemoval(pc, st, 3, pipectx.RemovalPageNumbers, lines, out, removed,
				"removed standalone page-number artefact lines")
			return nil
		},
	}
}

func step4HeadersFooters(st *runState) pipeflow.Step {
	return pipeflow.Func{
		StepNumber: 4,
		StepPhase:  "pageCleanup",
		RunFunc: func(ctx context.Context, pc *pipectx.Context) error {
			lines := document.New(pc.WorkingText).Lines()
			out, removed := pagecleanup.RemoveHeadersFooters(lines, 0)
			applyPatternRemoval(pc, st, 4, pipectx.RemovalHeadersFooters, lines, out, removed,
				"removed lines repeated across at least three page slices")
			return nil
		},
	}
}

func step5FrontMatter(st *runState) pipeflow.Step {
	return pipeflow.Func{
		StepNumber: 5,
		StepPhase:  "structural",
		RunFunc: func(ctx context.Context, pc *pipectx.Context) error {
			if st.frontMatterEndLine < 0 {
				return nil
			}
			doc := document.New(pc.WorkingText)
			lines := doc.Lines()
			confidence := 0.5
			if pc.Boundary != nil {
				confidence = pc.Boundary.FrontMatterConfidence
			}
			out, removal := structural.RemoveFrontMatter(doc, st.frontMatterEndLine, confidence, st.chapters)
			applyStructuralRemoval(pc, st, 5, pipectx.RemovalFrontMatter, lines, out,
				removal.Applied, removal.StartLine, removal.EndLine, removal.Verdict)
			return nil
		},
	}
}

func step6TableOfContents(st *runState) pipeflow.Step {
	return pipeflow.Func{
		StepNumber: 6,
		StepPhase:  "structural",
		RunFunc: func(ctx context.Context, pc *pipectx.Context) error {
			doc := document.New(pc.WorkingText)
			lines := doc.Lines()
			start, end, found := FindTableOfContents(lines)
			if !found {
				return nil
			}
			out, removal := structural.RemoveTableOfContents(doc, start, end, tocConfidence, st.chapters)
			applyStructuralRemoval(pc, st, 6, pipectx.RemovalTOC, lines, out,
				removal.Applied, removal.StartLine, removal.EndLine, removal.Verdict)
			return nil
		},
	}
}

func step7BackMatter(st *runState) pipeflow.Step {
	return pipeflow.Func{
		StepNumber: 7,
		StepPhase:  "structural",
		RunFunc: func(ctx context.Context, pc *pipectx.Context) error {
			if st.backMatterStartLine < 0 {
				return nil
			}
			doc := document.New(pc.WorkingText)
			lines := doc.Lines()
			confidence := 0.5
			if pc.Boundary != nil {
				confidence = pc.Boundary.BackMatterConfidence
			}
			out, removal := structural.RemoveBackMatter(doc, st.backMatterStartLine, confidence, st.chapters)
			applyStructuralRemoval(pc, st, 7, pipectx.RemovalBackMatter, lines, out,
				removal.Applied, removal.StartLine, removal.EndLine, removal.Verdict)
			return nil
		},
	}
}

func step8Index(st *runState) pipeflow.Step {
	return pipeflow.Func{
		StepNumber: 8,
		StepPhase:  "structural",
		RunFunc: func(ctx context.Context, pc *pipectx.Context) error {
			doc := document.New(pc.WorkingText)
			lines := doc.Lines()
			idx := heuristic.DetectIndex(lines, doc.PercentLine(60))
			if !idx.Found {
				return nil
			}
			out, removal := structural.RemoveIndex(doc, idx.Line, doc.LineCount(), idx.Confidence, st.chapters)
			applyStructuralRemoval(pc, st, 8, pipectx.RemovalIndex, lines, out,
				removal.Applied, removal.StartLine, removal.EndLine, removal.Verdict)
			return nil
		},
	}
}

func step9AuxiliaryLists(st *runState, cfg config.Config) pipeflow.Step {
	return pipeflow.Func{
		StepNumber: 9,
		StepPhase:  "reference",
		Enabled:    func(pc *pipectx.Context) bool { return cfg.RemoveAuxiliaryLists },
		RunFunc: func(ctx context.Context, pc *pipectx.Context) error {
			doc := document.New(pc.WorkingText)
			lines := doc.Lines()
			out, removed := reference.RemoveAuxiliaryLists(doc)
			if removed == 0 {
				pc.RecordAdvisory(9, pipectx.AdvisoryReferenceRejected,
					"auxiliary-list header patterns were scanned but none passed the Defense System gate")
				return nil
			}
			recordAppliedChange(pc, st, 9, pipectx.RemovalAuxList, lines, out, removed,
				pipectx.ValidationB, 0.80, "removed auxiliary-list ranges approved by position and chapter-indicator gate")
			return nil
		},
	}
}

func step10Citations(st *runState, cfg config.Config) pipeflow.Step {
	return pipeflow.Func{
		StepNumber: 10,
		StepPhase:  "reference",
		Enabled:    func(pc *pipectx.Context) bool { return cfg.RemoveCitations },
		RunFunc: func(ctx context.Context, pc *pipectx.Context) error {
			lines := document.New(pc.WorkingText).Lines()
			out, removed := reference.RemoveCitations(lines)
			applyPatternRemoval(pc, st, 10, pipectx.RemovalCitations, lines, out, removed,
				"removed inline citation patterns; DOIs and decimal numerals shielded before removal")
			return nil
		},
	}
}

func step11Footnotes(st *runState, cfg config.Config) pipeflow.Step {
	return pipeflow.Func{
		StepNumber: 11,
		StepPhase:  "reference",
		Enabled:    func(pc *pipectx.Context) bool { return cfg.RemoveFootnotesEndnotes },
		RunFunc: func(ctx context.Context, pc *pipectx.Context) error {
			lines := document.New(pc.WorkingText).Lines()
			out, markersRemoved := reference.RemoveFootnoteMarkers(lines)
			applyPatternRemoval(pc, st, 11, pipectx.RemovalFootnotes, lines, out, markersRemoved,
				"removed in-body footnote markers; mathematical-exponent context preserved")

			doc := document.New(pc.WorkingText)
			notesLines := doc.Lines()
			headerLine := reference.FindNotesSection(notesLines, 0)
			if headerLine < 0 {
				return nil
			}
			out2, ok := reference.RemoveNotesSection(doc, headerLine)
			if !ok {
				pc.RecordAdvisory(11, pipectx.AdvisoryReferenceRejected,
					"a NOTES/ENDNOTES section was detected but the Defense System rejected its removal")
				return nil
			}
			recordAppliedChange(pc, st, 11, pipectx.RemovalFootnotes, notesLines, out2,
				len(notesLines)-len(out2), pipectx.ValidationB, 0.80,
				"removed NOTES/ENDNOTES section approved by position and content gate")
			return nil
		},
	}
}

func step12CharacterCleaning(st *runState, cfg config.Config) pipeflow.Step {
	return pipeflow.Func{
		StepNumber: 12,
		StepPhase:  "characterCleaning",
		RunFunc: func(ctx context.Context, pc *pipectx.Context) error {
			lines := document.New(pc.WorkingText).Lines()
			flags := pipectx.ContentFlags{}
			if cfg.RespectContentFlags && pc.Flags != nil {
				flags = *pc.Flags
			}
			out := charclean.Clean(lines, flags, cfg.PreserveCodeBlocks, cfg.PreserveMathSymbols)
			applyPatternRemoval(pc, st, 12, pipectx.RemovalSpecial, lines, out, changedLineCount(lines, out),
				"normalised mojibake, ligatures, invisibles, OCR digits, dashes, quotes, markdown emphasis, and empty residue")
			return nil
		},
	}
}

// changedLineCount counts lines that differ between before and after,
// plus any outright line-count difference, the match-count signal
// character cleaning's single RemovalRecord reports since it has no
// single regular-expression match count of its own.
func changedLineCount(before, after []string) int {
	count := 0
	n := len(before)
	if len(after) < n {
		n = len(after)
	}
	for i := 0; i < n; i++ {
		if before[i] != after[i] {
			count++
		}
	}
	if diff := len(before) - len(after); diff != 0 {
		if diff < 0 {
			diff = -diff
		}
		count += diff
	}
	return count
}

func step13Reflow(st *runState) pipeflow.Step {
	return pipeflow.Func{
		StepNumber: 13,
		StepPhase:  "reflow",
		RunFunc: func(ctx context.Context, pc *pipectx.Context) error {
			lines := document.New(pc.WorkingText).Lines()
			svc := reflow.Service{Client: st.client, Prompts: st.deps.Prompts}
			result := svc.Reflow(ctx, lines)
			pc.WorkingText = joinLines(result.Lines)

			confidence := 0.75
			if result.UsedAI {
				confidence = 0.90
			}
			pc.RecordConfidence(13, phaseForStep(13), confidence)
			return nil
		},
	}
}

func step14Optimize(st *runState, cfg config.Config) pipeflow.Step {
	return pipeflow.Func{
		StepNumber: 14,
		StepPhase:  "reflow",
		Enabled:    func(pc *pipectx.Context) bool { return cfg.MaxParagraphWords > 0 },
		RunFunc: func(ctx context.Context, pc *pipectx.Context) error {
			lines := document.New(pc.WorkingText).Lines()
			svc := reflow.Service{Client: st.client, Prompts: st.deps.Prompts}
			result := svc.Optimize(ctx, lines, cfg.MaxParagraphWords)
			pc.WorkingText = joinLines(result.Lines)

			confidence := 0.75
			if result.UsedAI {
				confidence = 0.90
			}
			pc.RecordConfidence(14, phaseForStep(14), confidence)
			return nil
		},
	}
}

func step15Assembly(st *runState, cfg config.Config) pipeflow.Step {
	return pipeflow.Func{
		StepNumber: 15,
		StepPhase:  "assembly",
		RunFunc: func(ctx context.Context, pc *pipectx.Context) error {
			lines := document.New(pc.WorkingText).Lines()
			meta := pipectx.Metadata{}
			if pc.Meta != nil {
				meta = *pc.Meta
			}
			if cfg.ChapterMarkerStyle != config.ChapterMarkerNone && len(st.chapters) == 0 {
				pc.RecordAdvisory(15, pipectx.AdvisoryNoChaptersDetected,
					"a chapter marker style is configured but no chapters were detected")
			}

			result, err := assemble.Assemble(lines, meta, st.chapters, cfg)
			if err != nil {
				return err
			}
			pc.WorkingText = result.Text
			pc.RecordConfidence(15, phaseForStep(15), 1.0)
			return nil
		},
	}
}

func step16FinalReview(st *runState) pipeflow.Step {
	return pipeflow.Func{
		StepNumber: 16,
		StepPhase:  "finalReview",
		RunFunc: func(ctx context.Context, pc *pipectx.Context) error {
			svc := review.Service{Client: st.client, Prompts: st.deps.Prompts}
			documentType := st.documentType
			if documentType == "" {
				documentType = "nonFiction"
			}
			// Phases that aggregated below the configured confidence
			// threshold count as structural anomalies for the heuristic
			// fallback's scoring.
			low := confidence.NewTracker(pc.StepConfidences).BelowThreshold(st.cfg.ConfidenceThreshold)
			result := svc.Review(ctx, st.originalText, pc.WorkingText, documentType, st.anomalies+len(low))
			pc.Review = result
			pc.RecordConfidence(16, phaseForStep(16), result.Score)
			return nil
		},
	}
}
