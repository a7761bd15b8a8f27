package charclean

import "strings"

var curlyToStraight = strings.NewReplacer(
	"“", `"`, "”", `"`, // “ ”
	"‘", "'", "’", "'", // ‘ ’
	"«", `"`, "»", `"`, // « »
	"‚", "'", "„", `"`, // ‚ „
)

// NormalizeQuotes maps curly quotation marks (and the French/German
// guillemet and low-quote variants) to their straight ASCII equivalents.
// Mapping both members of a pair to the same straight character preserves
// pairing by construction: there is nothing left to mismatch.
func NormalizeQuotes(line string) string {
	return curlyToStraight.Replace(line)
}
