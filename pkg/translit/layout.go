package translit

import "fmt"

type LayoutClass int

const (
	Unknown LayoutClass = iota
	Latin
	Cyrillic
)

func (c LayoutClass) String() string {
	switch c {
	case Latin:
		return "latin"
	case Cyrillic:
		return "cyrillic"
	}
	return "unknown"
}

// Language identifiers used when asking the OS for a specific layout.
const (
	LangEnglishUS uint16 = 0x0409
	LangRussian   uint16 = 0x0419
)

// primaryLangMask extracts the primary language from a LANGID.
const primaryLangMask = 0x03FF

var cyrillicPrimary = map[uint16]bool{
	0x02: true, // bulgarian
	0x19: true, // russian
	0x22: true, // ukrainian
	0x23: true, // belarusian
	0x28: true, // tajik
	0x2F: true, // macedonian
	0x3F: true, // kazakh
	0x40: true, // kyrgyz
	0x44: true, // tatar
	0x45: true, // bashkir
	0x50: true, // mongolian
}

var latinPrimary = map[uint16]bool{
	0x05: true, // czech
	0x06: true, // danish
	0x07: true, // german
	0x09: true, // english
	0x0A: true, // spanish
	0x0B: true, // finnish
	0x0C: true, // french
	0x0E: true, // hungarian
	0x10: true, // italian
	0x13: true, // dutch
	0x14: true, // norwegian
	0x15: true, // polish
	0x16: true, // portuguese
	0x18: true, // romanian
	0x1B: true, // slovak
	0x1D: true, // swedish
	0x1F: true, // turkish
	0x24: true, // slovenian
	0x25: true, // estonian
	0x26: true, // latvian
	0x27: true, // lithuanian
}

// ClassFromLangID classifies a LANGID by its primary language. Identifiers
// shared between scripts (serbian, for one) are Unknown.
func ClassFromLangID(id uint16) LayoutClass {
	primary := id & primaryLangMask
	switch {
	case cyrillicPrimary[primary]:
		return Cyrillic
	case latinPrimary[primary]:
		return Latin
	}
	return Unknown
}

// TargetLangID is the language identifier to request when switching to class c.
func TargetLangID(c LayoutClass) (uint16, error) {
	switch c {
	case Latin:
		return LangEnglishUS, nil
	case Cyrillic:
		return LangRussian, nil
	}
	return 0, fmt.Errorf("no language for layout class %s", c)
}

// LangIDs maps xkb layout codes to language identifiers for backends that
// have no native LANGID.
var LangIDs = map[string]uint16{
	"us": 0x0409,
	"gb": 0x0809,
	"de": 0x0407,
	"fr": 0x040C,
	"es": 0x0C0A,
	"it": 0x0410,
	"pl": 0x0415,
	"cz": 0x0405,
	"se": 0x041D,
	"no": 0x0414,
	"dk": 0x0406,
	"fi": 0x040B,
	"tr": 0x041F,
	"hu": 0x040E,
	"ru": 0x0419,
	"ua": 0x0422,
	"by": 0x0423,
	"bg": 0x0402,
	"kz": 0x043F,
	"mk": 0x042F,
}

// ISO639LangIDs maps ISO 639-2 language codes, as listed by evdev.xml, to
// language identifiers. Used when the layout code itself is not in LangIDs.
var ISO639LangIDs = map[string]uint16{
	"eng": 0x0409,
	"deu": 0x0407,
	"ger": 0x0407,
	"fra": 0x040C,
	"fre": 0x040C,
	"spa": 0x0C0A,
	"ita": 0x0410,
	"pol": 0x0415,
	"ces": 0x0405,
	"cze": 0x0405,
	"swe": 0x041D,
	"nor": 0x0414,
	"dan": 0x0406,
	"fin": 0x040B,
	"tur": 0x041F,
	"hun": 0x040E,
	"rus": 0x0419,
	"ukr": 0x0422,
	"bel": 0x0423,
	"bul": 0x0402,
	"kaz": 0x043F,
	"mkd": 0x042F,
	"mac": 0x042F,
}
