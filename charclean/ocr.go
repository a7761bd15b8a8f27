package charclean

import "github.com/dlclark/regexp2"

// ocrDigitPattern matches a single O, l, or S sandwiched between digits,
// commas, or periods on both sides — the lookaround Go's RE2-based
// regexp cannot express, so this substep is the one place charclean
// reaches for dlclark/regexp2 instead of the standard library.
var ocrDigitPattern = regexp2.MustCompile(`(?<=[\d,.])[OlS](?=[\d,.])`, regexp2.None)

// FixOCRDigits repairs context-sensitive OCR digit confusions (O→0, l→1,
// S→5) in line, applying the substitution only where both neighbouring
// characters are digits, commas, or periods — e.g. "1O,000" → "10,000"
// but "Oslo" is untouched.
func FixOCRDigits(line string) string {
	out, err := ocrDigitPattern.ReplaceFunc(line, func(m regexp2.Match) string {
		switch m.String() {
		case "O":
			return "0"
		case "l":
			return "1"
		case "S":
			return "5"
		default:
			return m.String()
		}
	}, -1, -1)
	if err != nil {
		return line
	}
	return out
}
