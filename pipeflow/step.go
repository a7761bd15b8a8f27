// Package pipeflow provides the composable step abstraction the
// orchestrator sequences a run's 16 cleaning steps through. It
// generalises the flow package's Node/Processor pattern (a function
// wrapped in a uniform Run signature, chained by an enclosing runner)
// to this pipeline's own step lifecycle: Pending → Running →
// {Completed | Skipped | Failed | Cancelled}, against a single threaded
// *pipectx.Context rather than a chained input/output value.
package pipeflow

import (
	"context"
	"fmt"

	"github.com/Tangerg/cleanforge/pipectx"
)

// Step is one numbered, phase-tagged unit of work a Sequence runs in
// order. Run mutates pc directly (appending removals, confidences, and
// advisories) and returns the terminal status the step reached.
type Step interface {
	// Number is the step's fixed position (1-16) in the documented step
	// list, independent of the order a Sequence actually executes steps
	// in (citations/footnotes/reflow/special-characters run out of
	// numeric order).
	Number() int
	Phase() string
	Run(ctx context.Context, pc *pipectx.Context) (pipectx.StepStatus, error)
}

// Func adapts a plain function plus its (number, phase, enabled) facts
// into a Step, the pipeflow equivalent of flow.AsProcessor: most steps
// need nothing more than their run logic wrapped in the uniform
// interface.
type Func struct {
	StepNumber int
	StepPhase  string
	// Enabled reports whether this step should run at all for the
	// current configuration; false short-circuits Run to Skipped without
	// invoking RunFunc.
	Enabled func(pc *pipectx.Context) bool
	RunFunc func(ctx context.Context, pc *pipectx.Context) error
}

var _ Step = Func{}

func (f Func) Number() int   { return f.StepNumber }
func (f Func) Phase() string { return f.StepPhase }

// Run checks cancellation, then the Enabled predicate, then invokes
// RunFunc. A nil RunFunc is a configuration error: every constructed Func
// must carry one.
func (f Func) Run(ctx context.Context, pc *pipectx.Context) (pipectx.StepStatus, error) {
	if err := ctx.Err(); err != nil {
		return pipectx.StepCancelled, err
	}
	if f.Enabled != nil && !f.Enabled(pc) {
		return pipectx.StepSkipped, nil
	}
	if f.RunFunc == nil {
		return pipectx.StepFailed, fmt.Errorf("pipeflow: step %d has no run function", f.StepNumber)
	}
	if err := f.RunFunc(ctx, pc); err != nil {
		return pipectx.StepFailed, err
	}
	return pipectx.StepCompleted, nil
}
