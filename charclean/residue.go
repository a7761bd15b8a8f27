package charclean

import "regexp"

var (
	emptyParens   = regexp.MustCompile(`\(\s*\)`)
	emptyBrackets = regexp.MustCompile(`\[\s*\]`)
	multiSpace    = regexp.MustCompile(` {2,}`)
)

// CleanResidue deletes empty "()"/"[]" pairs, collapses runs of spaces to
// one, normalises tabs to four spaces, and trims trailing whitespace —
// the residue left behind by the substeps that ran before it.
func CleanResidue(line string) string {
	line = expandTabs(line)
	line = emptyParens.ReplaceAllString(line, "")
	line = emptyBrackets.ReplaceAllString(line, "")
	line = multiSpace.ReplaceAllString(line, " ")
	return trimTrailingSpace(line)
}

func expandTabs(line string) string {
	out := make([]byte, 0, len(line))
	for i := 0; i < len(line); i++ {
		if line[i] == '\t' {
			out = append(out, ' ', ' ', ' ', ' ')
			continue
		}
		out = append(out, line[i])
	}
	return string(out)
}

func trimTrailingSpace(line string) string {
	end := len(line)
	for end > 0 && line[end-1] == ' ' {
		end--
	}
	return line[:end]
}
