package pipeflow

import (
	"context"
	"errors"
	"time"

	"github.com/Tangerg/cleanforge/pipectx"
	"github.com/Tangerg/cleanforge/promptstore"
)

// ProgressSink is the injected clock/progress capability:
// callbacks a Sequence invokes around each step, plus a running percent
// complete. The sink itself is optional; a nil ProgressSink runs silently.
type ProgressSink interface {
	OnStepStart(stepNumber int)
	OnStepComplete(stepNumber int, status pipectx.StepStatus)
	OnProgress(percent float64, elapsed time.Duration)
}

// Sequence runs an ordered list of Steps against a single *pipectx.Context,
// one at a time, start to finish (no step observes a later step's
// output). This ordering is the only concurrency the orchestrator itself
// introduces; independent LLM calls within a single step (e.g. front- and
// back-matter boundary detection) are the step's own concern.
type Sequence struct {
	Steps []Step
	Sink  ProgressSink
}

// Run executes every step in order. A step-local error is recorded
// against that step and execution continues to the next step. A
// *promptstore.ConfigError is a configuration error and aborts the run
// immediately. Cancellation (ctx.Err() at a step boundary) stops the
// sequence and marks the context Cancelled, returning the partial state
// accumulated so far.
func (s Sequence) Run(ctx context.Context, pc *pipectx.Context) error {
	total := len(s.Steps)
	start := time.Now()

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			pc.Cancelled = true
			pc.StepStatuses[step.Number()] = pipectx.StepCancelled
			return nil
		}

		s.notifyStart(step.Number())
		status, err := step.Run(ctx, pc)
		pc.StepStatuses[step.Number()] = status
		s.notifyComplete(step.Number(), status)
		s.notifyProgress(i+1, total, start)

		if status == pipectx.StepCancelled {
			pc.Cancelled = true
			return nil
		}
		if status == pipectx.StepFailed {
			var cfgErr *promptstore.ConfigError
			if errors.As(err, &cfgErr) {
				return err
			}
			// Step-local failure: recorded via StepStatuses above, run
			// continues to the next step.
		}
	}
	return nil
}

func (s Sequence) notifyStart(stepNumber int) {
	if s.Sink != nil {
		s.Sink.OnStepStart(stepNumber)
	}
}

func (s Sequence) notifyComplete(stepNumber int, status pipectx.StepStatus) {
	if s.Sink != nil {
		s.Sink.OnStepComplete(stepNumber, status)
	}
}

func (s Sequence) notifyProgress(done, total int, start time.Time) {
	if s.Sink == nil || total == 0 {
		return
	}
	s.Sink.OnProgress(float64(done)/float64(total)*100.0, time.Since(start))
}
