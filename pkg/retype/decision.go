package retype

import (
	"unicode/utf8"

	"codeberg.org/miketth/retype/pkg/config"
	"codeberg.org/miketth/retype/pkg/translit"
)

type Direction int

const (
	None Direction = iota
	// EnToRu: Latin keys were typed while a Cyrillic word was meant.
	EnToRu
	// RuToEn: the Cyrillic layout was active but the keys spell an English word.
	RuToEn
)

func (d Direction) String() string {
	switch d {
	case EnToRu:
		return "en_to_ru"
	case RuToEn:
		return "ru_to_en"
	}
	return "none"
}

// Target is the layout class the corrected text belongs to.
func (d Direction) Target() translit.LayoutClass {
	switch d {
	case EnToRu:
		return translit.Cyrillic
	case RuToEn:
		return translit.Latin
	}
	return translit.Unknown
}

// Decision is the outcome of evaluating one committed word.
type Decision struct {
	Direction Direction
	// Original holds the physical Latin keys that were typed.
	Original  string
	Converted string
	// Boundary is the character that ended the word and already reached the
	// target field.
	Boundary    rune
	BufferedLen int
}

// EraseCount is the number of backspaces needed to remove the word and its
// boundary character.
func (d Decision) EraseCount() int {
	return d.BufferedLen + 1
}

// Replacement is the text injected after erasure.
func (d Decision) Replacement() string {
	return d.Converted + string(d.Boundary)
}

type Heuristics struct {
	EnVowelMin    float64
	EnVowelMax    float64
	RuVowelMin    float64
	RuVowelLow    float64
	RuVowelBigram float64
	Bigrams       []string
	MinLen        int
}

func HeuristicsFromConfig(cfg config.LayoutSwitcherConfig) Heuristics {
	h := cfg.Heuristics
	return Heuristics{
		EnVowelMin:    h.EnVowelMin,
		EnVowelMax:    h.EnVowelMax,
		RuVowelMin:    h.RuVowelMin,
		RuVowelLow:    h.RuVowelLow,
		RuVowelBigram: h.RuVowelBigram,
		Bigrams:       h.Bigrams,
		MinLen:        cfg.MinAutocorrectLen,
	}
}

func DefaultHeuristics() Heuristics {
	return HeuristicsFromConfig(config.Defaults().LayoutSwitcher)
}

// LooksEnglish is true when the Latin vowel ratio sits inside the English
// window or a strong English bigram is present.
func (h Heuristics) LooksEnglish(word string) bool {
	ratio := translit.VowelRatioLatin(word)
	if ratio >= h.EnVowelMin && ratio <= h.EnVowelMax {
		return true
	}
	return translit.HasStrongBigram(word, h.Bigrams)
}

// Filtered reports words that are never corrected: short ones, all-caps
// acronyms and mixed-case identifiers.
func Filtered(word string, minLen int) bool {
	return utf8.RuneCountInString(word) < minLen ||
		translit.IsAllUpperASCII(word) ||
		translit.IsMixedCaseASCII(word)
}

// Decide evaluates the physical keys of a word typed under the given layout
// class. Anything ambiguous yields None.
func Decide(word string, class translit.LayoutClass, h Heuristics) Decision {
	d := Decision{
		Original:    word,
		Boundary:    ' ',
		BufferedLen: utf8.RuneCountInString(word),
	}

	if word == "" || Filtered(word, h.MinLen) {
		return d
	}

	wouldBeRu := translit.ToCyrillic(word)
	ruRatio := translit.VowelRatioCyrillic(wouldBeRu)

	switch class {
	case translit.Latin:
		if !h.LooksEnglish(word) && ruRatio >= h.RuVowelMin {
			d.Direction = EnToRu
			d.Converted = wouldBeRu
		}

	case translit.Cyrillic:
		if !h.LooksEnglish(word) {
			break
		}
		bigram := translit.HasStrongBigram(word, h.Bigrams)
		if ruRatio < h.RuVowelLow || (bigram && ruRatio < h.RuVowelBigram) {
			d.Direction = RuToEn
			d.Converted = word
		}
	}

	return d
}
