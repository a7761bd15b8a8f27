package reflow

import (
	"context"
	"strings"

	"github.com/Tangerg/cleanforge/document"
	"github.com/Tangerg/cleanforge/llmclient"
	"github.com/Tangerg/cleanforge/llmjson"
	"github.com/Tangerg/cleanforge/promptstore"
)

// reflowWordTolerance and optimizeWordTolerance are the maximum relative
// word-count drift a reflow/optimise step may introduce before its
// output is rejected in favour of the deterministic fallback.
const (
	reflowWordTolerance   = 0.005
	optimizeWordTolerance = 0.01
)

// Service bundles the injected capabilities Reflow and Optimise need,
// mirroring recon.Service and metatext.Service.
type Service struct {
	Client  llmclient.Client
	Prompts promptstore.Store
}

// Result is one step's outcome: the rewritten lines, whether the LLM
// path was used (false means the deterministic/untouched fallback ran),
// and the measured word-count delta ratio.
type Result struct {
	Lines     []string
	UsedAI    bool
	WordDelta float64
}

// Reflow rejoins paragraphs fragmented by pagination. Poetry paragraphs
// (per IsPoetry) are preserved untouched. Everything else is split into
// chunks, each chunk issued to the LLM, and the merged output verified
// against the ±0.5% word-count tolerance; a verification failure (or any
// call failure) falls back to DeterministicRejoin applied paragraph by
// paragraph.
func (s Service) Reflow(ctx context.Context, lines []string) Result {
	paragraphs := SplitParagraphs(lines)
	var out []string
	usedAI := false
	wordsBefore := document.WordCount(lines)

	for _, p := range paragraphs {
		if IsPoetry(p.Lines) {
			out = append(out, p.Lines...)
			out = append(out, "")
			continue
		}
		rejoined, ok := s.reflowParagraph(ctx, p.Lines)
		if ok {
			usedAI = true
		} else {
			rejoined = DeterministicRejoin(p.Lines)
		}
		out = append(out, rejoined...)
		out = append(out, "")
	}
	if n := len(out); n > 0 && out[n-1] == "" {
		out = out[:n-1]
	}

	wordsAfter := document.WordCount(out)
	delta := relativeDelta(wordsBefore, wordsAfter)
	if delta > reflowWordTolerance {
		return s.deterministicReflowAll(lines, wordsBefore)
	}
	return Result{Lines: out, UsedAI: usedAI, WordDelta: delta}
}

// deterministicReflowAll is the whole-document fallback path Reflow takes
// when the LLM-assisted merge fails the word-count invariant: every
// paragraph is rejoined deterministically instead.
func (s Service) deterministicReflowAll(lines []string, wordsBefore int) Result {
	paragraphs := SplitParagraphs(lines)
	var out []string
	for _, p := range paragraphs {
		if IsPoetry(p.Lines) {
			out = append(out, p.Lines...)
		} else {
			out = append(out, DeterministicRejoin(p.Lines)...)
		}
		out = append(out, "")
	}
	if n := len(out); n > 0 && out[n-1] == "" {
		out = out[:n-1]
	}
	return Result{Lines: out, UsedAI: false, WordDelta: relativeDelta(wordsBefore, document.WordCount(out))}
}

// reflowParagraph issues one LLM call per paragraph, chunking it first
// when it exceeds chunkTargetLines. ok is false on any call, parse, or
// per-chunk merge failure, signalling the caller to fall back.
func (s Service) reflowParagraph(ctx context.Context, lines []string) ([]string, bool) {
	if s.Client == nil || s.Prompts == nil {
		return nil, false
	}
	chunks := SplitChunks(lines)
	outputs := make([][]string, 0, len(chunks))
	for _, c := range chunks {
		rewritten, ok := s.reflowChunk(ctx, c.Lines)
		if !ok {
			return nil, false
		}
		outputs = append(outputs, rewritten)
	}
	return MergeChunks(outputs), true
}

func (s Service) reflowChunk(ctx context.Context, lines []string) ([]string, bool) {
	prompt, err := s.Prompts.Render(promptstore.ParagraphReflowV1, map[string]any{
		"text": strings.Join(lines, "\n"),
	})
	if err != nil {
		return nil, false
	}
	resp, err := llmclient.Call(ctx, s.Client, llmclient.Request{User: prompt, MaxTokens: 4096, Extended: true})
	if err != nil {
		return nil, false
	}
	parsed, err := llmjson.Parse(resp.Text)
	if err != nil {
		return nil, false
	}
	text := parsed.String("reflowedText", "")
	if text == "" {
		return nil, false
	}
	return strings.Split(text, "\n"), true
}

// Optimize splits paragraphs exceeding maxWords into smaller paragraphs
// at topical boundaries via one LLM call per oversized paragraph, subject
// to the ±1% word-count invariant; a call failure leaves that paragraph
// untouched, and the invariant is checked over the whole output, a
// violation returning lines unchanged. maxWords <= 0 disables the step
// entirely (Config.MaxParagraphWords == 0).
func (s Service) Optimize(ctx context.Context, lines []string, maxWords int) Result {
	if maxWords <= 0 {
		return Result{Lines: lines, UsedAI: false, WordDelta: 0}
	}
	paragraphs := SplitParagraphs(lines)
	var out []string
	usedAI := false
	wordsBefore := document.WordCount(lines)

	for _, p := range paragraphs {
		if document.WordCount(p.Lines) <= maxWords || IsPoetry(p.Lines) {
			out = append(out, p.Lines...)
			out = append(out, "")
			continue
		}
		split, ok := s.optimizeParagraph(ctx, p.Lines)
		if ok {
			usedAI = true
			out = append(out, split...)
		} else {
			out = append(out, p.Lines...)
		}
		out = append(out, "")
	}
	if n := len(out); n > 0 && out[n-1] == "" {
		out = out[:n-1]
	}

	delta := relativeDelta(wordsBefore, document.WordCount(out))
	if delta > optimizeWordTolerance {
		return Result{Lines: lines, UsedAI: false, WordDelta: 0}
	}
	return Result{Lines: out, UsedAI: usedAI, WordDelta: delta}
}

func (s Service) optimizeParagraph(ctx context.Context, lines []string) ([]string, bool) {
	if s.Client == nil || s.Prompts == nil {
		return nil, false
	}
	prompt, err := s.Prompts.Render(promptstore.ParagraphOptimizationV1, map[string]any{
		"text": strings.Join(lines, "\n"),
	})
	if err != nil {
		return nil, false
	}
	resp, err := llmclient.Call(ctx, s.Client, llmclient.Request{User: prompt, MaxTokens: 2048})
	if err != nil {
		return nil, false
	}
	parsed, err := llmjson.Parse(resp.Text)
	if err != nil {
		return nil, false
	}
	text := parsed.String("optimizedText", "")
	if text == "" {
		return nil, false
	}
	paragraphs := strings.Split(strings.TrimSpace(text), "\n\n")
	var out []string
	for i, p := range paragraphs {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, strings.Split(p, "\n")...)
	}
	return out, true
}

func relativeDelta(before, after int) float64 {
	if before == 0 {
		if after == 0 {
			return 0
		}
		return 1
	}
	diff := after - before
	if diff < 0 {
		diff = -diff
	}
	return float64(diff) / float64(before)
}
