package charclean

import "regexp"

// tripleEmphasis matches bold-italic emphasis (***x*** or ___x___),
// capturing the inner text so it can be collapsed to plain text. Single
// and double-level emphasis (*x*, **x**, _x_, __x__) are left alone.
var tripleEmphasis = regexp.MustCompile(`\*{3}([^*]+)\*{3}|_{3}([^_]+)_{3}`)

// CollapseTripleEmphasis rewrites "***x***" and "___x___" to bare "x",
// leaving any single- or double-level emphasis markers untouched.
func CollapseTripleEmphasis(line string) string {
	return tripleEmphasis.ReplaceAllStringFunc(line, func(m string) string {
		sub := tripleEmphasis.FindStringSubmatch(m)
		if sub[1] != "" {
			return sub[1]
		}
		return sub[2]
	})
}
