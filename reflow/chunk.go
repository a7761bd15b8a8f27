package reflow

import "unicode"

// chunkTargetLines and chunkOverlapLines are the target chunk size and
// overlap reflow's LLM call is split into, so a book-length document
// never has to fit in a single completion.
const (
	chunkTargetLines  = 2500
	chunkOverlapLines = 60
)

// Chunk is one window of working text handed to a single reflow LLM
// call, together with the overlap it shares with its neighbours.
type Chunk struct {
	StartLine int
	EndLine   int
	Lines     []string
}

// SplitChunks partitions lines into overlapping windows of
// chunkTargetLines with chunkOverlapLines of shared context between
// consecutive windows. A document shorter than one chunk produces a
// single chunk with no overlap to merge.
func SplitChunks(lines []string) []Chunk {
	if len(lines) <= chunkTargetLines {
		return []Chunk{{StartLine: 0, EndLine: len(lines), Lines: lines}}
	}
	var chunks []Chunk
	start := 0
	for start < len(lines) {
		end := start + chunkTargetLines
		if end > len(lines) {
			end = len(lines)
		}
		chunks = append(chunks, Chunk{StartLine: start, EndLine: end, Lines: lines[start:end]})
		if end == len(lines) {
			break
		}
		start = end - chunkOverlapLines
	}
	return chunks
}

// MergeChunks concatenates processed chunk outputs, deduplicating the
// overlap between consecutive chunks by fuzzy suffix/prefix alignment:
// the longest run of lines at the end of one chunk that matches
// (whitespace/case-insensitively) a run at the start of the next is
// counted once.
func MergeChunks(outputs [][]string) []string {
	if len(outputs) == 0 {
		return nil
	}
	merged := append([]string{}, outputs[0]...)
	for _, next := range outputs[1:] {
		overlap := matchingOverlap(merged, next)
		merged = append(merged, next[overlap:]...)
	}
	return merged
}

// matchingOverlap returns how many leading lines of next duplicate
// trailing lines of prev, scanning from the largest plausible overlap
// (chunkOverlapLines) down to zero so the longest real match wins.
func matchingOverlap(prev, next []string) int {
	maxOverlap := chunkOverlapLines
	if maxOverlap > len(prev) {
		maxOverlap = len(prev)
	}
	if maxOverlap > len(next) {
		maxOverlap = len(next)
	}
	for size := maxOverlap; size > 0; size-- {
		if linesFuzzyEqual(prev[len(prev)-size:], next[:size]) {
			return size
		}
	}
	return 0
}

func linesFuzzyEqual(a, b []string) bool {
	for i := range a {
		if normalizeForCompare(a[i]) != normalizeForCompare(b[i]) {
			return false
		}
	}
	return true
}

func normalizeForCompare(s string) string {
	out := make([]rune, 0, len(s))
	prevSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' {
			if prevSpace {
				continue
			}
			prevSpace = true
			out = append(out, ' ')
			continue
		}
		prevSpace = false
		out = append(out, unicode.ToLower(r))
	}
	return string(out)
}
