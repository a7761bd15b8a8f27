package charclean

import "strings"

const (
	zeroWidthSpace     = "\u200B"
	zeroWidthNonJoiner = "\u200C"
	zeroWidthJoiner    = "\u200D"
	byteOrderMark      = "\uFEFF"
	softHyphen         = "\u00AD"
)

var zeroWidthReplacer = strings.NewReplacer(zeroWidthSpace, "", zeroWidthNonJoiner, "", zeroWidthJoiner, "")

// StripInvisibles removes zero-width characters from every line, strips a
// byte-order mark if it opens the first line, and removes soft hyphens —
// except where one bridges a hyphenated word split across a line break
// (the line ends in a soft hyphen after a word character and the next
// line begins with one), in which case the soft hyphen is rendered as a
// literal hyphen so the compound survives when the lines are joined.
func StripInvisibles(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		l = zeroWidthReplacer.Replace(l)
		if i == 0 {
			l = strings.TrimPrefix(l, byteOrderMark)
		}
		bridges := i+1 < len(lines) && bridgesHyphenatedWord(l, lines[i+1])
		if bridges {
			l = strings.ReplaceAll(strings.TrimSuffix(l, softHyphen), softHyphen, "") + "-"
			out[i] = l
			continue
		}
		out[i] = strings.ReplaceAll(l, softHyphen, "")
	}
	return out
}

func bridgesHyphenatedWord(line, next string) bool {
	if !strings.HasSuffix(line, softHyphen) {
		return false
	}
	trimmed := strings.TrimSuffix(line, softHyphen)
	if trimmed == "" || !isWordChar(rune(trimmed[len(trimmed)-1])) {
		return false
	}
	next = strings.TrimSpace(next)
	return next != "" && isWordChar(rune(next[0]))
}

func isWordChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
