package orchestrator

import (
	"regexp"
	"strings"
)

// tocHeaderRegex recognises a table-of-contents header in its common
// English and localised forms; unlike front/back matter, Phase 0 does not
// propose a TOC boundary, so the orchestrator locates a candidate range
// itself the same way reference.FindAuxiliaryLists locates an
// auxiliary-list range: a canonical header followed by a run of
// entry-like lines.
var tocHeaderRegex = regexp.MustCompile(`(?i)^\s*(table of contents|contents|índice|sommaire|inhaltsverzeichnis)\s*$`)

// tocEntryLike matches a line that looks like a table-of-contents entry:
// a title followed by a page number, with or without a dot leader.
var tocEntryLike = regexp.MustCompile(`^.{2,120}?\.{0,}\s+\d{1,4}$`)

// tocConfidence is the fixed confidence a header-plus-entries match
// reports to the Defense System; a TOC header is specific enough that no
// LLM signal is needed to propose it.
const tocConfidence = 0.70

// FindTableOfContents scans lines for a TOC header and the entry run that
// follows it, returning the [headerLine, endLine) range and whether one
// was found.
func FindTableOfContents(lines []string) (startLine, endLine int, found bool) {
	for i, l := range lines {
		if !tocHeaderRegex.MatchString(strings.TrimSpace(l)) {
			continue
		}
		end := i + 1
		for j := i + 1; j < len(lines); j++ {
			trimmed := strings.TrimSpace(lines[j])
			if trimmed == "" {
				continue
			}
			if !tocEntryLike.MatchString(trimmed) {
				break
			}
			end = j + 1
		}
		if end > i+1 {
			return i, end, true
		}
	}
	return 0, 0, false
}
