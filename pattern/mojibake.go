package pattern

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// mojibakeTargets lists the characters whose UTF-8 encodings OCR
// pipelines and legacy scrapers most often mis-decode as Windows-1252 or
// Latin-1: accented Latin letters, Latin-1 symbols, and smart
// punctuation. The corrupted sequences are derived by misdecode rather
// than hand-written, so every entry is exactly the byte-level round trip
// that produces the corruption in the wild.
var mojibakeTargets = []rune{
	// Latin-1 accented letters (two-byte UTF-8, 0xC3 0xXX).
	'é', 'è', 'ê', 'ë', 'à', 'â', 'ä', 'å', 'ç',
	'î', 'ï', 'í', 'ì', 'ô', 'ö', 'ó', 'ò', 'ø',
	'ù', 'û', 'ü', 'ú', 'ñ', 'á', 'æ', 'ß',
	'Á', 'É', 'Í', 'Ó', 'Ú', 'Ñ', 'Ö', 'Ü', 'Å', 'Æ', 'Ø',
	// Latin-1 symbols (two-byte UTF-8, 0xC2 0xXX).
	'©', '®', '°', '£', '§', '·', '«', '»', '½', '¼', '¾', '¡', '¿', 'µ',
	// Smart punctuation (three-byte UTF-8, 0xE2 0x80 0xXX and friends).
	'’', '‘', '“', '”', '‚', '„', '–', '—', '…', '•', '‰', '‹', '›',
	'€', '™', '˜',
}

// misdecode returns the mojibake form of r: its UTF-8 bytes decoded one
// at a time through the Windows-1252 table, falling back to Latin-1 for
// the five bytes Windows-1252 leaves undefined.
func misdecode(r rune) string {
	var b strings.Builder
	buf := make([]byte, utf8.UTFMax)
	n := utf8.EncodeRune(buf, r)
	for _, c := range buf[:n] {
		d := charmap.Windows1252.DecodeByte(c)
		if d == utf8.RuneError {
			d = charmap.ISO8859_1.DecodeByte(c)
		}
		b.WriteRune(d)
	}
	return b.String()
}

// mojibakeTable pairs each derived corruption with its repair. Four
// curated entries follow the derived set: a mis-decoded non-breaking
// space repairs to a plain space rather than the NBSP it technically
// encodes, the plain-space variants of the two NBSP sequences cover text
// whose NBSPs were already normalised upstream, and a bare "â€" catches
// a right double quote whose final byte (0x9D, undefined in
// Windows-1252) was dropped entirely. The bare pair is appended last so
// every full three-character sequence wins over it in the replacer's
// argument-order matching.
var mojibakeTable = buildMojibakeTable()

func buildMojibakeTable() []struct{ from, to string } {
	table := make([]struct{ from, to string }, 0, len(mojibakeTargets)+4)
	for _, r := range mojibakeTargets {
		table = append(table, struct{ from, to string }{misdecode(r), string(r)})
	}
	table = append(table,
		struct{ from, to string }{misdecode('\u00a0'), " "},
		struct{ from, to string }{"Ã ", "à"},
		struct{ from, to string }{"Â ", " "},
		struct{ from, to string }{"â€", "”"},
	)
	return table
}

var mojibakeReplacer = buildReplacer()

func buildReplacer() *strings.Replacer {
	pairs := make([]string, 0, len(mojibakeTable)*2)
	for _, e := range mojibakeTable {
		pairs = append(pairs, e.from, e.to)
	}
	return strings.NewReplacer(pairs...)
}

// FixMojibake repairs the known UTF-8/Latin-1/Windows-1252 confusion
// patterns in s. It is a pure string substitution: sequences not in the
// table are left untouched, a conservative stance that avoids guessing
// beyond the published confusion set.
func FixMojibake(s string) string {
	return mojibakeReplacer.Replace(s)
}

// MojibakePatternCount returns the number of distinct confusion patterns
// recognised, primarily for tests asserting the table meets a "40+
// patterns" floor.
func MojibakePatternCount() int {
	return len(mojibakeTable)
}
