package reflow

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Tangerg/cleanforge/llmclient"
	"github.com/Tangerg/cleanforge/promptstore"
)

func TestSplitParagraphs_JoinRoundTrip(t *testing.T) {
	lines := []string{"alpha", "beta", "", "gamma", "", "", "delta", "epsilon"}
	paragraphs := SplitParagraphs(lines)
	assert.Len(t, paragraphs, 3)
	assert.Equal(t, "alpha\nbeta\n\ngamma\n\ndelta\nepsilon", Join(paragraphs))
}

func TestDeterministicRejoin_JoinsAcrossSentenceBreak(t *testing.T) {
	out := DeterministicRejoin([]string{"This sentence runs across", "two lines."})
	assert.Equal(t, []string{"This sentence runs across two lines."}, out)
}

func TestDeterministicRejoin_HyphenatedWordJoinsWithoutSpace(t *testing.T) {
	out := DeterministicRejoin([]string{"a fine-", "grained result."})
	assert.Equal(t, []string{"a fine-grained result."}, out)
}

func TestDeterministicRejoin_SoftHyphenBridgeRendersLiteralHyphen(t *testing.T) {
	out := DeterministicRejoin([]string{"a fine" + softHyphen, "grained result."})
	assert.Equal(t, []string{"a fine-grained result."}, out)
}

func TestDeterministicRejoin_StopsAtSentenceFinalPunctuation(t *testing.T) {
	out := DeterministicRejoin([]string{"First sentence.", "Second sentence."})
	assert.Equal(t, []string{"First sentence.", "Second sentence."}, out)
}

func TestDeterministicRejoin_DoesNotJoinWhenNextStartsUppercase(t *testing.T) {
	out := DeterministicRejoin([]string{"A fragment without punctuation", "Next line starts a new thought"})
	assert.Equal(t, []string{"A fragment without punctuation", "Next line starts a new thought"}, out)
}

func TestIsPoetry_DetectsShortUnpunctuatedLines(t *testing.T) {
	lines := []string{
		"Roses are red",
		"Violets are blue",
		"Sugar is sweet",
		"And so are you",
	}
	assert.True(t, IsPoetry(lines))
}

func TestIsPoetry_RejectsOrdinaryProse(t *testing.T) {
	lines := []string{
		"This is an ordinary paragraph of prose that runs long enough to disqualify it from the poetry heuristic.",
		"It continues here with another full sentence ending in punctuation.",
		"And a third one, just to be sure the average line length stays high.",
	}
	assert.False(t, IsPoetry(lines))
}

// nilService exercises every Reflow/Optimize path with no injected LLM
// client, forcing the deterministic fallbacks.
var nilService = Service{}

func TestReflow_NoClientFallsBackToDeterministicRejoin(t *testing.T) {
	lines := []string{"A fragment without punctuation", "continues the same sentence."}
	res := nilService.Reflow(context.Background(), lines)
	assert.False(t, res.UsedAI)
	assert.Equal(t, []string{"A fragment without punctuation continues the same sentence."}, res.Lines)
}

func TestReflow_PoetryPreservedVerbatim(t *testing.T) {
	lines := []string{
		"Roses are red",
		"Violets are blue",
		"Sugar is sweet",
		"And so are you",
	}
	res := nilService.Reflow(context.Background(), lines)
	assert.False(t, res.UsedAI)
	assert.Equal(t, lines, res.Lines)
}

func TestOptimize_DisabledWhenMaxWordsZero(t *testing.T) {
	lines := []string{"some short paragraph"}
	res := nilService.Optimize(context.Background(), lines, 0)
	assert.False(t, res.UsedAI)
	assert.Equal(t, lines, res.Lines)
}

func TestOptimize_LeavesShortParagraphUntouched(t *testing.T) {
	lines := []string{"a short paragraph under the limit"}
	res := nilService.Optimize(context.Background(), lines, 300)
	assert.Equal(t, lines, res.Lines)
}

// failingClient always returns an error, exercising the fallback path
// when a Client is present but every call fails.
type failingClient struct{}

func (failingClient) Complete(ctx context.Context, model, system, user string, maxTokens int, stopSequences []string, temperature float64) (llmclient.Response, error) {
	return llmclient.Response{}, &llmclient.Error{Kind: llmclient.KindBadRequest}
}

func (failingClient) Validate(ctx context.Context) bool { return true }

func TestReflow_CallFailureFallsBackWithoutError(t *testing.T) {
	store := promptstore.NewMemoryStore()
	_ = store.Register(promptstore.ParagraphReflowV1, "{{.text}}")
	svc := Service{Client: failingClient{}, Prompts: store}

	lines := []string{"A fragment without punctuation", "continues the same sentence."}
	res := svc.Reflow(context.Background(), lines)
	assert.False(t, res.UsedAI)
	assert.Equal(t, []string{"A fragment without punctuation continues the same sentence."}, res.Lines)
}

// droppingClient returns a reflow that silently lost words, exercising
// the word-count verifier's rollback to the deterministic rejoin.
type droppingClient struct{}

func (droppingClient) Complete(ctx context.Context, model, system, user string, maxTokens int, stopSequences []string, temperature float64) (llmclient.Response, error) {
	return llmclient.Response{Text: `{"reflowedText": "a much shorter text"}`}, nil
}

func (droppingClient) Validate(ctx context.Context) bool { return true }

func TestReflow_WordCountViolationRollsBackToDeterministic(t *testing.T) {
	store := promptstore.NewMemoryStore()
	_ = store.Register(promptstore.ParagraphReflowV1, "{{.text}}")
	svc := Service{Client: droppingClient{}, Prompts: store}

	lines := []string{
		"the committee met in the small hours of the morning to discuss at",
		"length the many difficulties that the previous season had visited upon the struggling harvest",
		"and the villagers who depended on it for their livelihood through the long winter.",
	}
	wordsBefore := 0
	for _, l := range lines {
		wordsBefore += len(strings.Fields(l))
	}

	res := svc.Reflow(context.Background(), lines)
	assert.False(t, res.UsedAI)
	wordsAfter := 0
	for _, l := range res.Lines {
		wordsAfter += len(strings.Fields(l))
	}
	assert.Equal(t, wordsBefore, wordsAfter)
}

func TestSplitChunks_SingleChunkWhenShort(t *testing.T) {
	lines := make([]string, 10)
	chunks := SplitChunks(lines)
	assert.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].StartLine)
	assert.Equal(t, 10, chunks[0].EndLine)
}

func TestSplitChunks_OverlapsAcrossBoundary(t *testing.T) {
	lines := make([]string, chunkTargetLines+100)
	chunks := SplitChunks(lines)
	assert.Len(t, chunks, 2)
	assert.Equal(t, chunkTargetLines, chunks[0].EndLine)
	assert.Equal(t, chunkTargetLines-chunkOverlapLines, chunks[1].StartLine)
}

func TestMergeChunks_DedupsOverlap(t *testing.T) {
	first := []string{"a", "b", "c"}
	second := []string{"b", "c", "d"}
	merged := MergeChunks([][]string{first, second})
	assert.Equal(t, []string{"a", "b", "c", "d"}, merged)
}

func TestMergeChunks_NoOverlapConcatenates(t *testing.T) {
	merged := MergeChunks([][]string{{"a", "b"}, {"c", "d"}})
	assert.Equal(t, []string{"a", "b", "c", "d"}, merged)
}
