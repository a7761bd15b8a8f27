package orchestrator_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tangerg/cleanforge/config"
	"github.com/Tangerg/cleanforge/orchestrator"
)

func sampleDocument() string {
	var b strings.Builder
	b.WriteString("Title Page\n\nCopyright 2020\n\n")
	b.WriteString("# Chapter 1\n\n")
	for i := 0; i < 40; i++ {
		b.WriteString("This is a line of plain narrative prose that runs on.\n")
	}
	b.WriteString("\n# Chapter 2\n\n")
	for i := 0; i < 40; i++ {
		b.WriteString("Another line of plain narrative prose for the second chapter.\n")
	}
	b.WriteString("\nBIBLIOGRAPHY\n\nSmith, J. (2020). A Book. Publisher.\n")
	return b.String()
}

func TestRun_RejectsLegacyPipeline(t *testing.T) {
	cfg := config.New(config.PresetDefault)
	cfg.UseEvolvedPipeline = false
	_, err := orchestrator.Run(context.Background(), "text", cfg, orchestrator.Dependencies{})
	assert.ErrorIs(t, err, orchestrator.ErrLegacyPipelineNotSupported)
}

func TestRun_HeuristicOnlyProducesCleanedContent(t *testing.T) {
	cfg := config.New(config.PresetDefault)
	result, err := orchestrator.Run(context.Background(), sampleDocument(), cfg, orchestrator.Dependencies{})
	require.NoError(t, err)
	assert.False(t, result.Cancelled)
	assert.NotEmpty(t, result.CleanedContent)
	assert.NotNil(t, result.StructureHints)
	assert.NotNil(t, result.BoundaryResult)
	assert.GreaterOrEqual(t, result.OverallConfidence, 0.0)
	assert.LessOrEqual(t, result.OverallConfidence, 1.0)
	assert.NotEmpty(t, result.FinalReview.Rating)
}

func TestRun_MinimalPresetSkipsReferenceSteps(t *testing.T) {
	cfg := config.New(config.PresetMinimal)
	result, err := orchestrator.Run(context.Background(), sampleDocument(), cfg, orchestrator.Dependencies{})
	require.NoError(t, err)
	for _, r := range result.RemovalRecords {
		assert.NotEqual(t, "citations", string(r.Kind))
	}
}

func TestRun_DryRunSkipsRemovalAndAssembly(t *testing.T) {
	cfg := config.New(config.PresetDefault)
	cfg.DryRun = true
	result, err := orchestrator.Run(context.Background(), sampleDocument(), cfg, orchestrator.Dependencies{})
	require.NoError(t, err)
	assert.NotNil(t, result.StructureHints)
	assert.Empty(t, result.RemovalRecords)
}

func TestRun_CancellationReturnsPartialResult(t *testing.T) {
	cfg := config.New(config.PresetDefault)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := orchestrator.Run(ctx, sampleDocument(), cfg, orchestrator.Dependencies{})
	require.NoError(t, err)
	assert.True(t, result.Cancelled)
}
