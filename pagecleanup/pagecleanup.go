// Package pagecleanup implements Phase 2: deterministic page-number and
// header/footer removal. Headers and footers are identified by repetition
// across page slices rather than single-occurrence matching, so a line
// that merely resembles a header once (a short sentence, a one-word
// paragraph) is never mistaken for one.
package pagecleanup

import (
	"regexp"

	"github.com/samber/lo"

	"github.com/Tangerg/cleanforge/pattern"
)

// defaultPageSliceSize is the number of lines treated as one "page" when
// counting repetitions; OCR markdown rarely carries real page-break
// markers, so slices stand in for pages.
const defaultPageSliceSize = 40

// minRepetitions is the repetition-across-pages floor a normalised line
// must clear before it is treated as a header or footer.
const minRepetitions = 3

// RemovePageNumbers deletes every line that is, on its own, nothing but a
// page-number artefact in one of the recognised forms (default patterns
// plus an optional custom regex hint).
func RemovePageNumbers(lines []string, customRegex string) (out []string, removed int) {
	var custom *regexp.Regexp
	if customRegex != "" {
		if re, err := pattern.CustomPageNumberRegex(customRegex); err == nil {
			custom = re
		}
	}
	for _, l := range lines {
		if pattern.IsPageNumberLine(l) || (custom != nil && custom.MatchString(l)) {
			removed++
			continue
		}
		out = append(out, l)
	}
	return out, removed
}

// DetectRepeatedLines partitions lines into page-sized slices and returns
// the set of normalised line forms that repeat across at least
// minRepetitions distinct slices, at most once per slice — candidate
// headers/footers. The once-per-slice condition is what separates a
// running head (one occurrence per page) from body text that happens to
// repeat within a page.
func DetectRepeatedLines(lines []string, sliceSize int) map[string]int {
	if sliceSize <= 0 {
		sliceSize = defaultPageSliceSize
	}
	sliceHits := make(map[string]map[int]int)
	for i, l := range lines {
		norm := pattern.NormalizeForRepetition(l)
		if norm == "" {
			continue
		}
		slice := i / sliceSize
		if sliceHits[norm] == nil {
			sliceHits[norm] = make(map[int]int)
		}
		sliceHits[norm][slice]++
	}
	counts := make(map[string]int)
	for norm, slices := range sliceHits {
		if len(slices) < minRepetitions {
			continue
		}
		oncePerSlice := true
		for _, n := range slices {
			if n > 1 {
				oncePerSlice = false
				break
			}
		}
		if oncePerSlice {
			counts[norm] = len(slices)
		}
	}
	return counts
}

// RemoveHeadersFooters deletes every line whose normalised form repeats
// across at least minRepetitions page slices.
func RemoveHeadersFooters(lines []string, sliceSize int) (out []string, removed int) {
	repeated := DetectRepeatedLines(lines, sliceSize)
	out = lo.Filter(lines, func(l string, _ int) bool {
		norm := pattern.NormalizeForRepetition(l)
		if norm == "" {
			return true
		}
		if _, isRepeated := repeated[norm]; isRepeated {
			removed++
			return false
		}
		return true
	})
	return out, removed
}
