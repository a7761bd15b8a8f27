// Package review implements Phase 8 (step 16): a single LLM-driven
// quality assessment of the finished artefact against content-type-aware
// reduction expectations, with a deterministic heuristic fallback.
package review

import (
	"context"
	"strings"

	"github.com/Tangerg/cleanforge/document"
	"github.com/Tangerg/cleanforge/llmclient"
	"github.com/Tangerg/cleanforge/llmjson"
	"github.com/Tangerg/cleanforge/pipectx"
	"github.com/Tangerg/cleanforge/promptstore"
)

// ExpectedReduction is the content-type-aware [low, high] band of
// acceptable size reduction a review weighs the observed reduction
// against.
type ExpectedReduction struct {
	Low, High float64
}

// expectedReductionByType is the band named for each detected document
// type; an unrecognised type falls back to the non-fiction band, the
// widest of the five.
var expectedReductionByType = map[string]ExpectedReduction{
	"fiction":    {Low: 0.10, High: 0.25},
	"nonFiction": {Low: 0.15, High: 0.35},
	"academic":   {Low: 0.30, High: 0.50},
	"technical":  {Low: 0.10, High: 0.20},
	"poetry":     {Low: 0.00, High: 0.10},
}

func lookupExpectedReduction(documentType string) ExpectedReduction {
	if band, ok := expectedReductionByType[documentType]; ok {
		return band
	}
	return expectedReductionByType["nonFiction"]
}

// sampleMaxChars bounds the head/mid/tail excerpt the LLM call reads,
// matching recon's sampling budget.
const sampleMaxChars = 3000

func buildSample(text string) (head, mid, tail string) {
	n := len(text)
	if n <= sampleMaxChars*3 {
		return text, "", ""
	}
	m := n / 2
	return text[:sampleMaxChars], text[m-sampleMaxChars/2 : m+sampleMaxChars/2], text[n-sampleMaxChars:]
}

// Service bundles the injected capabilities Final Review needs.
type Service struct {
	Client  llmclient.Client
	Prompts promptstore.Store
}

// Review assesses the cleaned document against the original, scoped to
// documentType's expected reduction band. anomalies is the count of
// structural anomalies the caller has already detected elsewhere (e.g.
// an orphaned heading, a truncated sentence at the cut boundary); it only
// feeds the heuristic fallback, since the LLM path forms its own
// judgement from the samples.
func (s Service) Review(ctx context.Context, original, cleaned string, documentType string, anomalies int) pipectx.FinalReviewResult {
	if result, ok := s.llmReview(ctx, original, cleaned); ok {
		return result
	}
	return HeuristicReview(original, cleaned, documentType, anomalies)
}

func (s Service) llmReview(ctx context.Context, original, cleaned string) (pipectx.FinalReviewResult, bool) {
	if s.Client == nil || s.Prompts == nil {
		return pipectx.FinalReviewResult{}, false
	}
	head, mid, tail := buildSample(cleaned)
	prompt, err := s.Prompts.Render(promptstore.FinalReviewV1, map[string]any{
		"originalLength": len(original),
		"cleanedLength":  len(cleaned),
		"head":           head,
		"mid":            mid,
		"tail":           tail,
	})
	if err != nil {
		return pipectx.FinalReviewResult{}, false
	}
	resp, err := llmclient.Call(ctx, s.Client, llmclient.Request{User: prompt, MaxTokens: 1024})
	if err != nil {
		return pipectx.FinalReviewResult{}, false
	}
	parsed, err := llmjson.Parse(resp.Text)
	if err != nil {
		return pipectx.FinalReviewResult{}, false
	}
	score := llmjson.Clamp01(parsed.Float("score", -1))
	if score < 0 {
		return pipectx.FinalReviewResult{}, false
	}
	var issues []string
	for _, i := range parsed.Array("issues") {
		issues = append(issues, i.String())
	}
	return pipectx.FinalReviewResult{
		Rating:  ratingForScore(score),
		Score:   score,
		Issues:  issues,
		Summary: parsed.String("summary", ""),
	}, true
}

// HeuristicReview computes the deterministic fallback score: a base of
// 0.7, penalised 0.10 for >50% reduction, 0.05 for <5% reduction, and
// 0.10 once when any structural anomaly is reported, clamped to [0,1].
func HeuristicReview(original, cleaned string, documentType string, anomalies int) pipectx.FinalReviewResult {
	reduction := reductionRatio(original, cleaned)
	score := 0.7
	var issues []string

	if reduction > 0.50 {
		score -= 0.10
		issues = append(issues, "reduction exceeds 50% of original length")
	} else if reduction < 0.05 {
		score -= 0.05
		issues = append(issues, "reduction is below 5% of original length")
	}
	band := lookupExpectedReduction(documentType)
	if reduction < band.Low || reduction > band.High {
		issues = append(issues, "reduction falls outside the expected range for "+documentType)
	}
	if anomalies > 0 {
		score -= 0.10
		issues = append(issues, "structural anomalies detected in the cleaned output")
	}
	score = llmjson.Clamp01(score)

	return pipectx.FinalReviewResult{
		Rating:  ratingForScore(score),
		Score:   score,
		Issues:  issues,
		Summary: "heuristic fallback review (LLM assessment unavailable)",
	}
}

// ratingBand cutoffs translate a [0,1] score into the five-band rating.
// The heuristic's 0.7 base lands in Good; any single deduction lands in
// Acceptable (0.7 - 0.05 evaluates to just under 0.65 in float64).
const (
	ratingExcellentCutoff   = 0.85
	ratingGoodCutoff        = 0.65
	ratingAcceptableCutoff  = 0.45
	ratingNeedsReviewCutoff = 0.25
)

func ratingForScore(score float64) pipectx.FinalReviewRating {
	switch {
	case score >= ratingExcellentCutoff:
		return pipectx.RatingExcellent
	case score >= ratingGoodCutoff:
		return pipectx.RatingGood
	case score >= ratingAcceptableCutoff:
		return pipectx.RatingAcceptable
	case score >= ratingNeedsReviewCutoff:
		return pipectx.RatingNeedsReview
	default:
		return pipectx.RatingPoor
	}
}

// reductionRatio is the fraction of original's word count that is absent
// from cleaned, the measure every reduction-expectation check is made
// against.
func reductionRatio(original, cleaned string) float64 {
	before := document.WordCount(strings.Split(original, "\n"))
	after := document.WordCount(strings.Split(cleaned, "\n"))
	if before == 0 {
		return 0
	}
	if after > before {
		return 0
	}
	return float64(before-after) / float64(before)
}
