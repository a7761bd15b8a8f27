// Package pipectx holds the shared data model a pipeline run threads
// through its steps: the Context a run mutates, the hints and boundary
// results Phase 0 produces, the metadata Phase 1 extracts, and the
// removal/confidence/result records the orchestrator accumulates along
// the way.
package pipectx

import (
	"time"

	"github.com/google/uuid"
)

// ChapterHint is one chapter Phase 0 detected in the raw document.
type ChapterHint struct {
	Name       string
	StartLine  int
	Confidence float64
}

// ContentFlags records structural properties of the document that change
// how later phases behave: poetry preserves line breaks, code/table
// content gets shielded rather than rewritten.
type ContentFlags struct {
	Poetry   bool
	Dialogue bool
	Code     bool
	Table    bool
	Academic bool
}

// StructureHints is Phase 0's structural analysis of the document.
type StructureHints struct {
	DocumentType      string
	Chapters          []ChapterHint
	Flags             ContentFlags
	PageNumberRegex   string
	HeaderFooterHints []string
	OverallConfidence float64
}

// FallbackFloor is the minimum confidence StructureHints carries when
// reconnaissance could not produce a real measurement.
const FallbackFloor = 0.30

// BoundaryEvidence records why a boundary line was chosen, for advisories
// and diagnostics.
type BoundaryEvidence struct {
	Line       int
	Reason     string
	Confidence float64
}

// BoundaryResult is Phase 0's front/back-matter boundary detection
// outcome.
type BoundaryResult struct {
	FrontMatterEndLine    *int
	BackMatterStartLine   *int
	FrontMatterConfidence float64
	BackMatterConfidence  float64
	FrontMatterEvidence   BoundaryEvidence
	BackMatterEvidence    BoundaryEvidence
	UsedAI                bool
	FallbackUsed          bool
}

// Valid reports whether the populated boundary lines are internally
// consistent: when both are set, the front boundary must precede the back
// boundary.
func (b BoundaryResult) Valid(lineCount int) bool {
	if b.FrontMatterEndLine != nil && (*b.FrontMatterEndLine < 0 || *b.FrontMatterEndLine > lineCount) {
		return false
	}
	if b.BackMatterStartLine != nil && (*b.BackMatterStartLine < 0 || *b.BackMatterStartLine > lineCount) {
		return false
	}
	if b.FrontMatterEndLine != nil && b.BackMatterStartLine != nil {
		return *b.FrontMatterEndLine < *b.BackMatterStartLine
	}
	return true
}

// Metadata is the bibliographic record Phase 1 extracts.
type Metadata struct {
	Title        string
	Subtitle     string
	Author       string
	Publisher    string
	PublishDate  string
	ISBN         string
	Language     string
	Genre        string
	Series       string
	Edition      string
	ContentFlags ContentFlags
}

// RemovalKind names the structural or pattern-based category a removal
// belongs to.
type RemovalKind string

const (
	RemovalFrontMatter    RemovalKind = "frontMatter"
	RemovalBackMatter     RemovalKind = "backMatter"
	RemovalTOC            RemovalKind = "tableOfContents"
	RemovalIndex          RemovalKind = "index"
	RemovalAuxList        RemovalKind = "auxiliaryList"
	RemovalCitations      RemovalKind = "citations"
	RemovalFootnotes      RemovalKind = "footnotes"
	RemovalPageNumbers    RemovalKind = "pageNumbers"
	RemovalHeadersFooters RemovalKind = "headersFooters"
	RemovalSpecial        RemovalKind = "special"
)

// ValidationMethod names which Defense System layer (or none) approved a
// removal.
type ValidationMethod string

const (
	ValidationA        ValidationMethod = "A"
	ValidationB        ValidationMethod = "B"
	ValidationC        ValidationMethod = "C"
	ValidationCodeOnly ValidationMethod = "codeOnly"
)

// RemovalRecord documents one applied removal: what was removed, how it
// was validated, and the word-count delta it caused.
type RemovalRecord struct {
	StepNumber       int
	Kind             RemovalKind
	StartLine        int
	EndLine          int
	MatchCount       int
	WordDelta        int
	ValidationMethod ValidationMethod
	Justification    string
	Confidence       float64
}

// ConfidenceEntry is one real, measured confidence value attached to an
// executed step. Skipped and failed steps never produce one.
type ConfidenceEntry struct {
	StepNumber int
	Phase      string
	Value      float64
}

// AdvisoryKind names a non-blocking advisory: the five post-step
// advisories plus the reconnaissance content-type alignment check.
type AdvisoryKind int

const (
	AdvisoryBoundaryNoRemoval AdvisoryKind = iota + 1
	AdvisoryReferenceRejected
	AdvisoryNoChaptersDetected
	AdvisoryLargeRemoval
	AdvisoryLengthIncreased
	// AdvisoryContentTypeMismatch is recorded when reconnaissance detects
	// a content type that differs from the caller's declared selection.
	AdvisoryContentTypeMismatch
)

// Advisory is a single informational, non-blocking observation attached to
// a step.
type Advisory struct {
	StepNumber int
	Kind       AdvisoryKind
	Detail     string
}

// StepStatus is the terminal or in-flight state of one orchestrator step.
type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepRunning   StepStatus = "running"
	StepCompleted StepStatus = "completed"
	StepSkipped   StepStatus = "skipped"
	StepFailed    StepStatus = "failed"
	StepCancelled StepStatus = "cancelled"
)

// Usage accumulates LLM call counts and token totals across a run.
type Usage struct {
	LLMCalls     int
	InputTokens  int
	OutputTokens int
}

// Add folds another call's usage into the running total.
func (u *Usage) Add(inputTokens, outputTokens int) {
	u.LLMCalls++
	u.InputTokens += inputTokens
	u.OutputTokens += outputTokens
}

// FinalReviewRating is FinalReviewer's qualitative verdict.
type FinalReviewRating string

const (
	RatingExcellent   FinalReviewRating = "excellent"
	RatingGood        FinalReviewRating = "good"
	RatingAcceptable  FinalReviewRating = "acceptable"
	RatingNeedsReview FinalReviewRating = "needsReview"
	RatingPoor        FinalReviewRating = "poor"
)

// FinalReviewResult is Phase 8's output.
type FinalReviewResult struct {
	Rating  FinalReviewRating
	Score   float64
	Issues  []string
	Summary string
}

// Context is the mutable state a single pipeline run threads through its
// steps. The Orchestrator is the only component that mutates it directly;
// every other component reads the subset it needs and returns a new
// working text plus records to append.
type Context struct {
	RunID uuid.UUID

	WorkingText string

	Hints    *StructureHints
	Boundary *BoundaryResult
	Flags    *ContentFlags
	Meta     *Metadata
	Review   FinalReviewResult

	StepConfidences  []ConfidenceEntry
	PhaseConfidences map[string]float64
	Removals         []RemovalRecord
	Advisories       []Advisory

	Usage Usage

	StepStatuses [17]StepStatus // index 0 unused, steps are 1..16
	Cancelled    bool

	startedAt time.Time
}

// New returns a fresh Context for a run over the given source text.
func New(sourceText string) *Context {
	c := &Context{
		RunID:            uuid.New(),
		WorkingText:      sourceText,
		PhaseConfidences: make(map[string]float64),
		startedAt:        time.Now(),
	}
	for i := range c.StepStatuses {
		c.StepStatuses[i] = StepPending
	}
	return c
}

// Elapsed returns the wall-clock duration since the run started.
func (c *Context) Elapsed() time.Duration {
	return time.Since(c.startedAt)
}

// RecordConfidence appends a real confidence measurement for stepNumber in
// phase.
func (c *Context) RecordConfidence(stepNumber int, phase string, value float64) {
	c.StepConfidences = append(c.StepConfidences, ConfidenceEntry{StepNumber: stepNumber, Phase: phase, Value: value})
}

// RecordRemoval appends a removal record.
func (c *Context) RecordRemoval(r RemovalRecord) {
	c.Removals = append(c.Removals, r)
}

// RecordAdvisory appends a non-blocking advisory.
func (c *Context) RecordAdvisory(stepNumber int, kind AdvisoryKind, detail string) {
	c.Advisories = append(c.Advisories, Advisory{StepNumber: stepNumber, Kind: kind, Detail: detail})
}

// OverallConfidence returns the mean of all recorded real confidence
// entries, or 0 if none were recorded.
func (c *Context) OverallConfidence() float64 {
	if len(c.StepConfidences) == 0 {
		return 0
	}
	var sum float64
	for _, e := range c.StepConfidences {
		sum += e.Value
	}
	return sum / float64(len(c.StepConfidences))
}

// PipelineResult is the artefact returned to the caller at completion (or
// at cancellation, as a partial result).
type PipelineResult struct {
	RunID uuid.UUID

	CleanedContent string

	StructureHints *StructureHints
	BoundaryResult *BoundaryResult
	Metadata       Metadata
	FinalReview    FinalReviewResult

	PhaseConfidences  map[string]float64
	OverallConfidence float64

	RemovalRecords  []RemovalRecord
	AnomalyWarnings []Advisory

	TotalDuration time.Duration
	Usage         Usage

	Cancelled bool
}

// PipelineResult builds the artefact returned to the caller from the
// current state of c: working text, extracted hints/metadata, recorded
// removals and advisories, and usage/timing totals. Called both at
// normal completion and (with CleanedContent left at whatever c.WorkingText
// held at the point of cancellation) to build a partial result.
func (c *Context) PipelineResult() PipelineResult {
	meta := Metadata{}
	if c.Meta != nil {
		meta = *c.Meta
	}
	return PipelineResult{
		RunID:             c.RunID,
		CleanedContent:    c.WorkingText,
		StructureHints:    c.Hints,
		BoundaryResult:    c.Boundary,
		Metadata:          meta,
		FinalReview:       c.Review,
		PhaseConfidences:  c.PhaseConfidences,
		OverallConfidence: c.OverallConfidence(),
		RemovalRecords:    c.Removals,
		AnomalyWarnings:   c.Advisories,
		TotalDuration:     c.Elapsed(),
		Usage:             c.Usage,
		Cancelled:         c.Cancelled,
	}
}

// Advisories groups the accumulated advisories by kind with counts, a
// read-only convenience view over the flat Advisory slice.
func (p PipelineResult) Advisories() map[AdvisoryKind]int {
	counts := make(map[AdvisoryKind]int)
	for _, a := range p.AnomalyWarnings {
		counts[a.Kind]++
	}
	return counts
}
