package pipeflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Tangerg/cleanforge/pipectx"
	"github.com/Tangerg/cleanforge/promptstore"
)

type recordingSink struct {
	starts    []int
	completes []int
	statuses  []pipectx.StepStatus
}

func (r *recordingSink) OnStepStart(n int) { r.starts = append(r.starts, n) }
func (r *recordingSink) OnStepComplete(n int, status pipectx.StepStatus) {
	r.completes = append(r.completes, n)
	r.statuses = append(r.statuses, status)
}
func (r *recordingSink) OnProgress(percent float64, elapsed time.Duration) {}

func TestSequence_RunsStepsInOrder(t *testing.T) {
	var order []int
	steps := []Step{
		Func{StepNumber: 1, StepPhase: "a", RunFunc: func(ctx context.Context, pc *pipectx.Context) error {
			order = append(order, 1)
			return nil
		}},
		Func{StepNumber: 2, StepPhase: "a", RunFunc: func(ctx context.Context, pc *pipectx.Context) error {
			order = append(order, 2)
			return nil
		}},
	}
	pc := pipectx.New("text")
	err := Sequence{Steps: steps}.Run(context.Background(), pc)
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, pipectx.StepCompleted, pc.StepStatuses[1])
	assert.Equal(t, pipectx.StepCompleted, pc.StepStatuses[2])
}

func TestSequence_SkipsDisabledStep(t *testing.T) {
	ran := false
	steps := []Step{
		Func{
			StepNumber: 5, StepPhase: "x",
			Enabled: func(pc *pipectx.Context) bool { return false },
			RunFunc: func(ctx context.Context, pc *pipectx.Context) error { ran = true; return nil },
		},
	}
	pc := pipectx.New("text")
	err := Sequence{Steps: steps}.Run(context.Background(), pc)
	assert.NoError(t, err)
	assert.False(t, ran)
	assert.Equal(t, pipectx.StepSkipped, pc.StepStatuses[5])
}

func TestSequence_StepLocalFailureContinues(t *testing.T) {
	secondRan := false
	steps := []Step{
		Func{StepNumber: 1, RunFunc: func(ctx context.Context, pc *pipectx.Context) error {
			return errors.New("boom")
		}},
		Func{StepNumber: 2, RunFunc: func(ctx context.Context, pc *pipectx.Context) error {
			secondRan = true
			return nil
		}},
	}
	pc := pipectx.New("text")
	err := Sequence{Steps: steps}.Run(context.Background(), pc)
	assert.NoError(t, err)
	assert.True(t, secondRan)
	assert.Equal(t, pipectx.StepFailed, pc.StepStatuses[1])
	assert.Equal(t, pipectx.StepCompleted, pc.StepStatuses[2])
}

func TestSequence_ConfigErrorAbortsImmediately(t *testing.T) {
	secondRan := false
	steps := []Step{
		Func{StepNumber: 1, RunFunc: func(ctx context.Context, pc *pipectx.Context) error {
			return &promptstore.ConfigError{Name: promptstore.StructureAnalysisV1}
		}},
		Func{StepNumber: 2, RunFunc: func(ctx context.Context, pc *pipectx.Context) error {
			secondRan = true
			return nil
		}},
	}
	pc := pipectx.New("text")
	err := Sequence{Steps: steps}.Run(context.Background(), pc)
	assert.Error(t, err)
	assert.False(t, secondRan)
}

func TestSequence_CancellationStopsAndMarksPartial(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ran := false
	steps := []Step{
		Func{StepNumber: 1, RunFunc: func(ctx context.Context, pc *pipectx.Context) error {
			ran = true
			return nil
		}},
	}
	pc := pipectx.New("text")
	err := Sequence{Steps: steps}.Run(ctx, pc)
	assert.NoError(t, err)
	assert.False(t, ran)
	assert.True(t, pc.Cancelled)
	assert.Equal(t, pipectx.StepCancelled, pc.StepStatuses[1])
}

func TestSequence_NotifiesProgressSink(t *testing.T) {
	sink := &recordingSink{}
	steps := []Step{
		Func{StepNumber: 1, RunFunc: func(ctx context.Context, pc *pipectx.Context) error { return nil }},
		Func{StepNumber: 3, RunFunc: func(ctx context.Context, pc *pipectx.Context) error { return nil }},
	}
	pc := pipectx.New("text")
	err := Sequence{Steps: steps, Sink: sink}.Run(context.Background(), pc)
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 3}, sink.starts)
	assert.Equal(t, []int{1, 3}, sink.completes)
	assert.Equal(t, []pipectx.StepStatus{pipectx.StepCompleted, pipectx.StepCompleted}, sink.statuses)
}
