package pattern

import "strings"

// ligatureTable is the twelve-entry ligature expansion set: fi, fl, ff,
// ffi, ffl, ß, Œ/œ, Æ/æ, IJ/ij.
var ligatureTable = []struct{ from, to string }{
	{"ﬀ", "ff"},
	{"ﬁ", "fi"},
	{"ﬂ", "fl"},
	{"ﬃ", "ffi"},
	{"ﬄ", "ffl"},
	{"ß", "ss"},
	{"Œ", "OE"},
	{"œ", "oe"},
	{"Æ", "AE"},
	{"æ", "ae"},
	{"Ĳ", "IJ"},
	{"ĳ", "ij"},
}

var ligatureReplacer = func() *strings.Replacer {
	pairs := make([]string, 0, len(ligatureTable)*2)
	for _, e := range ligatureTable {
		pairs = append(pairs, e.from, e.to)
	}
	return strings.NewReplacer(pairs...)
}()

// ExpandLigatures replaces each of the twelve recognised ligature
// characters with its expanded Latin letters.
func ExpandLigatures(s string) string {
	return ligatureReplacer.Replace(s)
}

// LigatureCount reports how many ligature forms are recognised.
func LigatureCount() int {
	return len(ligatureTable)
}
