package charclean

import "regexp"

var (
	markdownHR           = regexp.MustCompile(`^\s*-{3,}\s*$`)
	bareDoubleHyphen     = regexp.MustCompile(`--`)
	decorativeEmDashLine = regexp.MustCompile(`^[\s—–]*[—–][\s—–]*$`)
	wordPattern          = regexp.MustCompile(`[^\s—–]+`)
)

// NormalizeDashes rewrites "--" to an em dash, preserving a Markdown
// horizontal rule ("---" alone on its line) and an intra-compound hyphen
// (a single "-" between letters, which this substep never touches since
// it only matches the doubled form).
func NormalizeDashes(line string) string {
	if markdownHR.MatchString(line) {
		return line
	}
	return bareDoubleHyphen.ReplaceAllString(line, "—")
}

// RemoveDecorativeEmDashLines deletes every line that consists only of
// em-dashes/en-dashes and whitespace and has fewer than three words
// ("Fix B2"); a line that mixes an em dash into real prose (a
// parenthetical aside) is left untouched because it is never
// dash-and-whitespace-only.
func RemoveDecorativeEmDashLines(lines []string) (out []string, removed int) {
	for _, l := range lines {
		if decorativeEmDashLine.MatchString(l) && wordCount(l) < 3 {
			removed++
			continue
		}
		out = append(out, l)
	}
	return out, removed
}

func wordCount(s string) int {
	return len(wordPattern.FindAllString(s, -1))
}
