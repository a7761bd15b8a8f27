package orchestrator

import (
	"github.com/Tangerg/cleanforge/config"
	"github.com/Tangerg/cleanforge/llmclient"
	"github.com/Tangerg/cleanforge/pipectx"
)

// runState carries the cross-step working data the 16 steps close over:
// the original source text (Final Review's baseline), Phase 0's proposed
// boundaries (shifted as earlier removals move later lines), the
// detected chapters and document type, and a running count of
// structural anomalies Final Review's heuristic fallback weighs.
type runState struct {
	deps Dependencies
	cfg  config.Config

	// client is deps.Client wrapped so every completion's reported usage is
	// folded into the run's pipectx.Context.Usage; nil exactly when
	// deps.Client is nil, so every LLM-driven service's own nil-client
	// fallback logic still applies unchanged.
	client llmclient.Client

	originalText      string
	originalLineCount int

	frontMatterEndLine  int // -1 if none proposed
	backMatterStartLine int // -1 if none proposed

	chapters     []pipectx.ChapterHint
	documentType string
	anomalies    int
}

// shiftBoundariesAfterRemoval adjusts the still-pending boundary lines by
// delta once a removal at or after removedFromLine has mutated the
// working text, keeping them relative to the current (not original) line
// numbering: indices of later records are always recomputed against the
// mutated working text.
func (st *runState) shiftBoundariesAfterRemoval(removedFromLine, delta int) {
	if delta == 0 {
		return
	}
	if st.frontMatterEndLine >= removedFromLine {
		st.frontMatterEndLine -= delta
	}
	if st.backMatterStartLine >= removedFromLine {
		st.backMatterStartLine -= delta
	}
	for i := range st.chapters {
		if st.chapters[i].StartLine >= removedFromLine {
			st.chapters[i].StartLine -= delta
		}
	}
}
