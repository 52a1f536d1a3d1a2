package regionmask

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// abbrevStrip lists characters removed outright during abbreviation
// construction. Slash and hyphen split words instead of being removed.
const abbrevStrip = "[]().'"

// foldDiacritics decomposes characters and removes combining marks,
// so "São Tomé" folds to "Sao Tome" before abbreviation.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ConstructAbbrevs derives short labels from region names: diacritics
// are folded to ASCII, bracket and quote characters are stripped, and
// the first three characters of each word are concatenated. Words are
// separated by whitespace, slashes, or hyphens.
//
// Duplicate abbreviations are disambiguated by appending a counter to
// every member of the duplicate group:
//
//	ConstructAbbrevs([]string{"South Asia", "South Africa"})
//	// -> ["SouAsi", "SouAfr"]
//
//	ConstructAbbrevs([]string{"Borneo", "Borneo"})
//	// -> ["Bor0", "Bor1"]
func ConstructAbbrevs(names []string) []string {
	abbrevs := make([]string, len(names))
	for i, name := range names {
		abbrevs[i] = abbreviate(name)
	}
	return enumerateDuplicates(abbrevs)
}

func abbreviate(name string) string {
	if folded, _, err := transform.String(foldDiacritics, name); err == nil {
		name = folded
	}
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(abbrevStrip, r) {
			return -1
		}
		return r
	}, name)
	name = strings.NewReplacer("/", " ", "-", " ").Replace(name)

	var b strings.Builder
	for _, word := range strings.Fields(name) {
		b.WriteString(firstRunes(word, 3))
	}
	return b.String()
}

func firstRunes(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}

// enumerateDuplicates appends 0, 1, ... to every member of each group
// of equal values, leaving unique values untouched.
func enumerateDuplicates(vals []string) []string {
	counts := make(map[string]int, len(vals))
	for _, v := range vals {
		counts[v]++
	}
	next := make(map[string]int, len(vals))
	out := make([]string, len(vals))
	for i, v := range vals {
		if counts[v] > 1 {
			out[i] = v + strconv.Itoa(next[v])
			next[v]++
		} else {
			out[i] = v
		}
	}
	return out
}
