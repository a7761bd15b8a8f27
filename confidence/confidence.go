// Package confidence aggregates the per-step confidence measurements a
// run records into per-phase and overall scores. It reads only
// Completed-step entries Context already carries; it never fabricates a
// value for a skipped or failed step.
package confidence

import (
	"github.com/samber/lo"

	"github.com/Tangerg/cleanforge/pipectx"
)

// Tracker computes phase and overall aggregates from a run's recorded
// ConfidenceEntry values.
type Tracker struct {
	entries []pipectx.ConfidenceEntry
}

// NewTracker wraps entries for aggregation. Callers typically pass
// Context.StepConfidences directly.
func NewTracker(entries []pipectx.ConfidenceEntry) Tracker {
	return Tracker{entries: entries}
}

// PhaseScores returns the mean recorded confidence for each phase that
// has at least one entry. A phase with no Completed steps is simply
// absent from the result, never reported at zero.
func (t Tracker) PhaseScores() map[string]float64 {
	grouped := lo.GroupBy(t.entries, func(e pipectx.ConfidenceEntry) string {
		return e.Phase
	})
	return lo.MapValues(grouped, func(entries []pipectx.ConfidenceEntry, _ string) float64 {
		return mean(entries)
	})
}

// Overall returns the mean of every recorded entry across all phases, or
// 0 if none were recorded.
func (t Tracker) Overall() float64 {
	return mean(t.entries)
}

func mean(entries []pipectx.ConfidenceEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := lo.SumBy(entries, func(e pipectx.ConfidenceEntry) float64 { return e.Value })
	return sum / float64(len(entries))
}

// BelowThreshold returns the phases whose aggregated score falls below
// threshold, sorted by ascending score — the set an orchestrator uses to
// decide whether advisory (4)-style warnings should be surfaced at the
// phase granularity.
func (t Tracker) BelowThreshold(threshold float64) []string {
	phases := t.PhaseScores()
	keys := lo.Keys(phases)
	below := lo.Filter(keys, func(phase string, _ int) bool {
		return phases[phase] < threshold
	})
	return sortByScore(below, phases)
}

func sortByScore(phases []string, scores map[string]float64) []string {
	out := append([]string{}, phases...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && scores[out[j-1]] > scores[out[j]]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
