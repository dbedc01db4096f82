// Package translit holds the fixed QWERTY to ЙЦУКЕН key-position table and the
// letter statistics the word heuristics are built from. Everything here is a
// pure function of its input.
package translit

import (
	"strings"
	"unicode"
)

var latinToCyrillic = map[rune]rune{
	'q': 'й', 'w': 'ц', 'e': 'у', 'r': 'к', 't': 'е', 'y': 'н', 'u': 'г', 'i': 'ш', 'o': 'щ', 'p': 'з',
	'a': 'ф', 's': 'ы', 'd': 'в', 'f': 'а', 'g': 'п', 'h': 'р', 'j': 'о', 'k': 'л', 'l': 'д',
	'z': 'я', 'x': 'ч', 'c': 'с', 'v': 'м', 'b': 'и', 'n': 'т', 'm': 'ь',
}

var cyrillicToLatin = func() map[rune]rune {
	m := make(map[rune]rune, len(latinToCyrillic))
	for lat, cyr := range latinToCyrillic {
		m[cyr] = lat
	}
	return m
}()

// CyrillicRune maps the Latin letter printed on a key to the Cyrillic letter
// on the same key, keeping case. Runes outside the table are returned as is.
func CyrillicRune(r rune) rune {
	cyr, ok := latinToCyrillic[unicode.ToLower(r)]
	if !ok {
		return r
	}
	if unicode.IsUpper(r) {
		return unicode.ToUpper(cyr)
	}
	return cyr
}

// LatinRune is the inverse of CyrillicRune.
func LatinRune(r rune) rune {
	lat, ok := cyrillicToLatin[unicode.ToLower(r)]
	if !ok {
		return r
	}
	if unicode.IsUpper(r) {
		return unicode.ToUpper(lat)
	}
	return lat
}

func ToCyrillic(s string) string {
	return strings.Map(CyrillicRune, s)
}

func ToLatin(s string) string {
	return strings.Map(LatinRune, s)
}

func isLatinVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

func isCyrillicVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'а', 'е', 'ё', 'и', 'о', 'у', 'ы', 'э', 'ю', 'я':
		return true
	}
	return false
}

func vowelRatio(s string, isVowel func(rune) bool) float64 {
	var vowels, letters int
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if isVowel(r) {
			vowels++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(vowels) / float64(letters)
}

// VowelRatioLatin is the share of a, e, i, o, u, y among the letters of s.
func VowelRatioLatin(s string) float64 {
	return vowelRatio(s, isLatinVowel)
}

// VowelRatioCyrillic is the share of Cyrillic vowels among the letters of s.
func VowelRatioCyrillic(s string) float64 {
	return vowelRatio(s, isCyrillicVowel)
}

// DefaultBigrams are letter pairs common in English and rare in
// wrong-layout Russian.
var DefaultBigrams = []string{"th", "sh", "ch", "ck", "qu", "ng", "oo", "ee"}

// HasStrongBigram reports whether s contains any of the bigrams, ignoring case.
func HasStrongBigram(s string, bigrams []string) bool {
	lower := strings.ToLower(s)
	for _, bg := range bigrams {
		if bg != "" && strings.Contains(lower, strings.ToLower(bg)) {
			return true
		}
	}
	return false
}

func IsAllUpperASCII(s string) bool {
	hasLetters := false
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			continue
		}
		hasLetters = true
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return hasLetters
}

func IsMixedCaseASCII(s string) bool {
	var lower, upper bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		}
	}
	return lower && upper
}
