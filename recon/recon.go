// Package recon implements Phase 0: ReconnaissanceService (document
// structure analysis) and BoundaryDetectionService (front/back-matter
// boundary detection), both LLM-driven with a deterministic heuristic
// fallback whenever the LLM fails or reports sub-threshold confidence.
package recon

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Tangerg/cleanforge/document"
	"github.com/Tangerg/cleanforge/heuristic"
	"github.com/Tangerg/cleanforge/llmclient"
	"github.com/Tangerg/cleanforge/llmjson"
	"github.com/Tangerg/cleanforge/pipectx"
	"github.com/Tangerg/cleanforge/pkg/result"
	"github.com/Tangerg/cleanforge/pkg/safe"
	"github.com/Tangerg/cleanforge/promptstore"
)

const (
	sampleMaxChars          = 3000
	boundaryConfidenceFloor = 0.60

	// reconCallTimeout bounds each Phase 0 LLM call, tighter than the
	// client's own standard timeout: reconnaissance reads a small sample
	// and must not stall the whole run.
	reconCallTimeout = 30 * time.Second
)

// sample is the three-region excerpt (head/mid/tail) reconnaissance reads
// instead of the whole document, keeping the LLM call's token footprint
// bounded regardless of document length.
type sample struct {
	Head, Mid, Tail string
}

func buildSample(doc *document.Document) sample {
	text := doc.Text()
	n := len(text)
	if n <= sampleMaxChars*3 {
		return sample{Head: text, Mid: "", Tail: ""}
	}
	mid := n / 2
	return sample{
		Head: text[:sampleMaxChars],
		Mid:  text[mid-sampleMaxChars/2 : mid+sampleMaxChars/2],
		Tail: text[n-sampleMaxChars:],
	}
}

// Service bundles the injected capabilities Phase 0 needs: an LLM client
// and a prompt store. A zero-value Service with a nil Client always runs
// the heuristic fallback path.
type Service struct {
	Client  llmclient.Client
	Prompts promptstore.Store
}

// Analyze returns StructureHints for doc: document type, detected
// chapters, content flags, pattern hints, and an overall confidence. On
// any LLM failure or unparsable response it falls back to a conservative
// heuristic result at the fallback floor confidence; it never returns an
// error for that reason.
func (s Service) Analyze(ctx context.Context, doc *document.Document) (pipectx.StructureHints, bool) {
	if s.Client == nil || s.Prompts == nil {
		return s.heuristicHints(doc), false
	}

	smp := buildSample(doc)
	prompt, err := s.Prompts.Render(promptstore.StructureAnalysisV1, map[string]any{
		"head": smp.Head, "mid": smp.Mid, "tail": smp.Tail,
	})
	if err != nil {
		return s.heuristicHints(doc), false
	}

	callCtx, cancel := context.WithTimeout(ctx, reconCallTimeout)
	defer cancel()
	resp, err := llmclient.Call(callCtx, s.Client, llmclient.Request{User: prompt, MaxTokens: 1024})
	if err != nil {
		return s.heuristicHints(doc), false
	}

	parsed, err := llmjson.Parse(resp.Text)
	if err != nil {
		return s.heuristicHints(doc), false
	}

	hints := pipectx.StructureHints{
		DocumentType:      parsed.String("documentType", "unknown"),
		PageNumberRegex:   parsed.String("pageNumberRegex", ""),
		OverallConfidence: parsed.Confidence("overallConfidence", pipectx.FallbackFloor),
		Flags: pipectx.ContentFlags{
			Poetry:   parsed.Bool("flags.poetry", false),
			Dialogue: parsed.Bool("flags.dialogue", false),
			Code:     parsed.Bool("flags.code", false),
			Table:    parsed.Bool("flags.table", false),
			Academic: parsed.Bool("flags.academic", false),
		},
	}
	for _, ch := range parsed.Array("chapters") {
		hints.Chapters = append(hints.Chapters, pipectx.ChapterHint{
			Name:       ch.Get("name").String(),
			StartLine:  int(ch.Get("startLine").Int()),
			Confidence: llmjson.Clamp01(ch.Get("confidence").Float()),
		})
	}
	for _, hf := range parsed.Array("headerFooterHints") {
		hints.HeaderFooterHints = append(hints.HeaderFooterHints, hf.String())
	}
	return hints, true
}

// heuristicHints builds a conservative StructureHints at the fallback
// floor confidence, used whenever the LLM path is unavailable or fails.
// Its only chapter hint is the first chapter/part/prologue heading the
// front-matter heuristic finds in the first 30% of the document, if any.
func (s Service) heuristicHints(doc *document.Document) pipectx.StructureHints {
	hints := pipectx.StructureHints{
		DocumentType:      "unknown",
		OverallConfidence: pipectx.FallbackFloor,
	}
	if fm := heuristic.DetectFrontMatterEnd(doc.Lines(), doc.PercentLine(30)); fm.Found {
		hints.Chapters = append(hints.Chapters, pipectx.ChapterHint{
			Name: "Chapter 1", StartLine: fm.Line, Confidence: fm.Confidence,
		})
	}
	return hints
}

// boundaryCall is the outcome of one LLM-or-heuristic boundary detection,
// before it is folded into the final BoundaryResult.
type boundaryCall struct {
	line       int
	confidence float64
	usedAI     bool
	fallback   bool
}

// DetectBoundaries issues (up to) two LLM calls in parallel, for the
// front-matter end line and the back-matter start line, joining them at a
// single point. Either call falls back to the heuristic package's
// DetectFrontMatterEnd / DetectBackMatter if the LLM fails or reports
// confidence below 0.60.
func (s Service) DetectBoundaries(ctx context.Context, doc *document.Document) pipectx.BoundaryResult {
	var wg sync.WaitGroup
	var frontRes, backRes result.Result[boundaryCall]

	// Either detector call runs third-party prompt-rendering and JSON
	// parsing code outside this package's control; safe.Go keeps a panic
	// there from taking the whole run down, falling back to a no-boundary
	// (line -1), fallback-floor boundaryCall instead.
	// wg.Done is the last statement of both the normal path and the panic
	// handler, not a defer inside fn: a deferred Done would fire during
	// panic unwinding before the handler assigns the fallback value,
	// letting wg.Wait race past an unset result.
	wg.Add(2)
	safe.Go(func() {
		frontRes = result.Value(s.detectFrontMatterBoundary(ctx, doc))
		wg.Done()
	}, func(err error) {
		frontRes = result.Value(boundaryCall{line: -1, confidence: pipectx.FallbackFloor, fallback: true})
		wg.Done()
	})
	safe.Go(func() {
		backRes = result.Value(s.detectBackMatterBoundary(ctx, doc))
		wg.Done()
	}, func(err error) {
		backRes = result.Value(boundaryCall{line: -1, confidence: pipectx.FallbackFloor, fallback: true})
		wg.Done()
	})
	wg.Wait()

	front, _ := frontRes.Get()
	back, _ := backRes.Get()

	out := pipectx.BoundaryResult{
		FrontMatterConfidence: front.confidence,
		BackMatterConfidence:  back.confidence,
		UsedAI:                front.usedAI || back.usedAI,
		FallbackUsed:          front.fallback || back.fallback,
	}
	if front.line >= 0 {
		line := front.line
		out.FrontMatterEndLine = &line
		out.FrontMatterEvidence = pipectx.BoundaryEvidence{Line: line, Confidence: front.confidence}
	}
	if back.line >= 0 {
		line := back.line
		out.BackMatterStartLine = &line
		out.BackMatterEvidence = pipectx.BoundaryEvidence{Line: line, Confidence: back.confidence}
	}
	return out
}

func (s Service) detectFrontMatterBoundary(ctx context.Context, doc *document.Document) boundaryCall {
	if s.Client != nil && s.Prompts != nil {
		if call, ok := s.llmBoundary(ctx, doc, promptstore.FrontMatterBoundaryV1, "frontMatterEndLine"); ok {
			return call
		}
	}
	fm := heuristic.DetectFrontMatterEnd(doc.Lines(), doc.PercentLine(40))
	if !fm.Found {
		return boundaryCall{line: -1, confidence: pipectx.FallbackFloor, fallback: true}
	}
	return boundaryCall{line: fm.Line, confidence: fm.Confidence, fallback: true}
}

func (s Service) detectBackMatterBoundary(ctx context.Context, doc *document.Document) boundaryCall {
	if s.Client != nil && s.Prompts != nil {
		if call, ok := s.llmBoundary(ctx, doc, promptstore.BackMatterBoundaryV1, "backMatterStartLine"); ok {
			return call
		}
	}
	bm := heuristic.DetectBackMatter(doc.Lines(), doc.PercentLine(50))
	if !bm.Found {
		return boundaryCall{line: -1, confidence: pipectx.FallbackFloor, fallback: true}
	}
	return boundaryCall{line: bm.Line, confidence: bm.Confidence, fallback: true}
}

// llmBoundary issues one boundary-detection LLM call and returns the
// parsed (line, confidence), ok=true only when the call succeeded, parsed
// cleanly, and met the 0.60 confidence floor.
func (s Service) llmBoundary(ctx context.Context, doc *document.Document, name promptstore.Name, lineField string) (boundaryCall, bool) {
	smp := buildSample(doc)
	excerpt := smp.Head
	if name == promptstore.BackMatterBoundaryV1 {
		excerpt = smp.Tail
	}
	prompt, err := s.Prompts.Render(name, map[string]any{"excerpt": excerpt})
	if err != nil {
		return boundaryCall{}, false
	}
	callCtx, cancel := context.WithTimeout(ctx, reconCallTimeout)
	defer cancel()
	resp, err := llmclient.Call(callCtx, s.Client, llmclient.Request{User: prompt, MaxTokens: 256})
	if err != nil {
		return boundaryCall{}, false
	}
	parsed, err := llmjson.Parse(resp.Text)
	if err != nil {
		return boundaryCall{}, false
	}
	confidence := parsed.Confidence("confidence", 0)
	if confidence < boundaryConfidenceFloor {
		return boundaryCall{}, false
	}
	line := parsed.Int(lineField, -1)
	if line < 0 {
		return boundaryCall{}, false
	}
	return boundaryCall{line: line, confidence: confidence, usedAI: true}, true
}

// AlignmentAdvisory compares the detected document type with the caller's
// selected content type, returning a non-empty detail when they disagree
// (an advisory, never an error).
func AlignmentAdvisory(detected, selected string) string {
	if selected == "" || detected == "" || detected == "unknown" || strings.EqualFold(detected, selected) {
		return ""
	}
	return "detected content type " + detected + " differs from selected " + selected
}
