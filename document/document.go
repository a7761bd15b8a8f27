// Package document models the immutable source text a cleaning pipeline run
// operates over.
//
// A Document never mutates once built: every pipeline step reads the working
// text it is handed and produces a new working text, leaving the original
// Document available for position-relative calculations (percent-of-document
// boundary checks, sampling, and so on) for the lifetime of the run.
package document

import (
	"strings"

	"github.com/Tangerg/cleanforge/pkg/text"
)

// Document is an ordered, 0-indexed sequence of lines together with the
// totals derived from them. Line indices handed to external callers
// (RemovalRecord ranges, StructureHints.Chapter.StartLine, ...) are also
// 0-indexed; a "1-indexed for external references" convention applies only
// to a human-facing presentation layer outside this pipeline, which renders
// DisplayLine = index + 1 when needed.
type Document struct {
	lines     []string
	charCount int
}

// New builds a Document from raw text. A line is a maximal '\n'-free
// substring, matching the data model's invariant; trailing '\r' from
// CRLF input is stripped so downstream pattern matching never has to
// special-case it.
func New(raw string) *Document {
	lines := text.Lines(raw)
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return &Document{
		lines:     lines,
		charCount: len(raw),
	}
}

// Lines returns a copy of the document's lines. Callers must not mutate the
// Document through the returned slice.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// LineCount returns the total number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// CharCount returns the total character count of the original raw text.
func (d *Document) CharCount() int {
	return d.charCount
}

// Text rejoins the document's lines with '\n', reconstructing the working
// text a pipeline step would start from.
func (d *Document) Text() string {
	return strings.Join(d.lines, "\n")
}

// PercentLine returns the 0-indexed line number corresponding to a
// percentage position (0-100] in the document. Used by the orchestrator
// steps and recon to turn a percentage limit into the line number a
// heuristic scan starts from or stops at.
func (d *Document) PercentLine(percent float64) int {
	if len(d.lines) == 0 {
		return 0
	}
	line := int(percent / 100.0 * float64(len(d.lines)))
	if line < 0 {
		return 0
	}
	if line > len(d.lines) {
		return len(d.lines)
	}
	return line
}

// LinePercent is the inverse of PercentLine: the position of lineIndex
// expressed as a percentage of the document's total line count.
func (d *Document) LinePercent(lineIndex int) float64 {
	if len(d.lines) == 0 {
		return 0
	}
	return float64(lineIndex) / float64(len(d.lines)) * 100.0
}

// Slice returns the lines in [start, end), clamped to the document bounds.
func (d *Document) Slice(start, end int) []string {
	if start < 0 {
		start = 0
	}
	if end > len(d.lines) {
		end = len(d.lines)
	}
	if start >= end {
		return nil
	}
	out := make([]string, end-start)
	copy(out, d.lines[start:end])
	return out
}

// WordCount counts whitespace-delimited words across the given lines, the
// unit word-count-preservation checks are measured in.
func WordCount(lines []string) int {
	count := 0
	for _, l := range lines {
		count += len(strings.Fields(l))
	}
	return count
}
