// Package orchestrator implements the Orchestrator (EvolvedCleaningPipeline):
// the top-level entry point that sequences all 16 cleaning steps across 8
// phases over a single pipectx.Context, wiring every other package in this
// module together.
package orchestrator

import (
	"context"
	"errors"
	"strings"

	"github.com/Tangerg/cleanforge/confidence"
	"github.com/Tangerg/cleanforge/config"
	"github.com/Tangerg/cleanforge/document"
	"github.com/Tangerg/cleanforge/llmclient"
	"github.com/Tangerg/cleanforge/pipectx"
	"github.com/Tangerg/cleanforge/pipeflow"
	"github.com/Tangerg/cleanforge/promptstore"
)

// Dependencies bundles the three injected capabilities a run needs: an LLM
// client, a prompt store, and a progress sink. Client and Prompts may
// both be nil, in which case every LLM-driven step runs its deterministic
// or heuristic fallback path; Sink may be nil for a silent run.
type Dependencies struct {
	Client  llmclient.Client
	Prompts promptstore.Store
	Sink    pipeflow.ProgressSink
}

// ErrLegacyPipelineNotSupported is returned immediately, before any step
// runs, when cfg.UseEvolvedPipeline is false: the legacy path it would
// otherwise route to is out of scope for this module.
var ErrLegacyPipelineNotSupported = errors.New("orchestrator: legacy (non-evolved) pipeline is out of scope")

// Run is the core's one public entry point: run(document_text,
// configuration) -> PipelineResult. It executes Phases 0..8 in order,
// each step gated by cfg, and returns the accumulated PipelineResult —
// partial, with Cancelled set, if ctx is cancelled mid-run.
func Run(ctx context.Context, sourceText string, cfg config.Config, deps Dependencies) (pipectx.PipelineResult, error) {
	if !cfg.UseEvolvedPipeline {
		return pipectx.PipelineResult{}, ErrLegacyPipelineNotSupported
	}

	pc := pipectx.New(sourceText)
	st := &runState{
		deps:                deps,
		cfg:                 cfg,
		client:              newUsageTrackingClient(deps.Client, pc),
		originalText:        sourceText,
		originalLineCount:   document.New(sourceText).LineCount(),
		frontMatterEndLine:  -1,
		backMatterStartLine: -1,
	}

	if cfg.DryRun {
		return runDryRun(ctx, pc, st)
	}

	seq := pipeflow.Sequence{Steps: buildSteps(st, cfg), Sink: deps.Sink}
	if err := seq.Run(ctx, pc); err != nil {
		return pc.PipelineResult(), err
	}

	return finalize(pc), nil
}

// runDryRun executes only Phase 0 and returns its StructureHints /
// BoundaryResult without any removal or rewriting, the zero-cost preview
// hook cfg.DryRun documents.
func runDryRun(ctx context.Context, pc *pipectx.Context, st *runState) (pipectx.PipelineResult, error) {
	steps := buildSteps(st, st.cfg)[:1]
	seq := pipeflow.Sequence{Steps: steps, Sink: st.deps.Sink}
	if err := seq.Run(ctx, pc); err != nil {
		return pc.PipelineResult(), err
	}
	result := pc.PipelineResult()
	result.CleanedContent = pc.WorkingText
	return result, nil
}

// finalize folds the confidence.Tracker's per-phase aggregates into pc
// (step 16's Final Review result is already attached by buildSteps) and
// returns the completed PipelineResult.
func finalize(pc *pipectx.Context) pipectx.PipelineResult {
	tracker := confidence.NewTracker(pc.StepConfidences)
	pc.PhaseConfidences = tracker.PhaseScores()
	return pc.PipelineResult()
}

// splitLines and joinLines convert pc.WorkingText to and from the line
// slice every deterministic step operates over.
func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

func wordDelta(before, after []string) int {
	delta := document.WordCount(before) - document.WordCount(after)
	if delta < 0 {
		return 0
	}
	return delta
}
