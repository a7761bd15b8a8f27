// Package charclean implements Phase 5: the nine-substep character
// normalisation pass (mojibake, ligatures, invisibles, OCR digit repair,
// dash normalisation, decorative em-dash removal, quote normalisation,
// markdown cleanup, empty-residue cleanup). Code blocks and tables are
// extracted to opaque placeholders before the phase runs and restored
// verbatim afterward, so their content survives byte-for-byte
// regardless of which substeps would otherwise touch it.
package charclean

import (
	"regexp"
	"strconv"
	"strings"
)

// codeFenceRegex matches a fenced code block delimiter line, ``` or ~~~,
// optionally followed by a language tag.
var codeFenceRegex = regexp.MustCompile("^\\s*(```|~~~)")

// tableRowRegex matches a Markdown table row: a line whose trimmed form
// starts and ends with a pipe.
var tableRowRegex = regexp.MustCompile(`^\s*\|.*\|\s*$`)

func placeholder(kind string, i int) string {
	return "⟦" + kind + "_" + strconv.Itoa(i) + "⟧"
}

// Shielded holds lines with code blocks and tables replaced by opaque
// single-line placeholders, and the map needed to restore them.
type Shielded struct {
	Lines  []string
	blocks map[string]string
}

// ShieldCodeAndTables extracts every fenced code block and every
// contiguous run of Markdown table rows from lines, replacing each with a
// single placeholder line, and returns the shielded lines alongside the
// restoration map.
func ShieldCodeAndTables(lines []string) *Shielded {
	s := &Shielded{blocks: make(map[string]string)}
	codeIdx, tableIdx := 0, 0

	out := make([]string, 0, len(lines))
	i := 0
	for i < len(lines) {
		if codeFenceRegex.MatchString(lines[i]) {
			start := i
			i++
			for i < len(lines) && !codeFenceRegex.MatchString(lines[i]) {
				i++
			}
			if i < len(lines) {
				i++ // consume closing fence
			}
			ph := placeholder("CODEBLK", codeIdx)
			codeIdx++
			s.blocks[ph] = strings.Join(lines[start:i], "\n")
			out = append(out, ph)
			continue
		}
		if tableRowRegex.MatchString(lines[i]) {
			start := i
			for i < len(lines) && tableRowRegex.MatchString(lines[i]) {
				i++
			}
			ph := placeholder("TABLE", tableIdx)
			tableIdx++
			s.blocks[ph] = strings.Join(lines[start:i], "\n")
			out = append(out, ph)
			continue
		}
		out = append(out, lines[i])
		i++
	}
	s.Lines = out
	return s
}

// Restore replaces every placeholder in lines with its original
// multi-line block, byte-for-byte.
func (s *Shielded) Restore(lines []string) []string {
	if len(s.blocks) == 0 {
		return lines
	}
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if block, ok := s.blocks[l]; ok {
			out = append(out, strings.Split(block, "\n")...)
			continue
		}
		out = append(out, l)
	}
	return out
}
