package xkblayouts

import "encoding/xml"

// XkbConfigRegistry is the subset of evdev.xml needed to turn the pretty
// keymap names Hyprland reports back into layouts and languages.
type XkbConfigRegistry struct {
	XMLName    xml.Name   `xml:"xkbConfigRegistry"`
	LayoutList LayoutList `xml:"layoutList"`
}

type ConfigItem struct {
	Name             string `xml:"name"`
	ShortDescription string `xml:"shortDescription"`
	Description      string `xml:"description"`
	// Languages holds ISO 639-2 codes such as "eng" or "rus".
	Languages []string `xml:"languageList>iso639Id"`
}

type Variant struct {
	ConfigItem ConfigItem `xml:"configItem"`
}

type VariantList struct {
	Variant []Variant `xml:"variant"`
}

type Layout struct {
	ConfigItem  ConfigItem  `xml:"configItem"`
	VariantList VariantList `xml:"variantList"`
}

type LayoutList struct {
	Layout []Layout `xml:"layout"`
}

// find returns the layout and, for variant names, the variant whose
// description is prettyName.
func (r *XkbConfigRegistry) find(prettyName string) (*Layout, *Variant) {
	if r == nil || prettyName == "" {
		return nil, nil
	}

	for i := range r.LayoutList.Layout {
		l := &r.LayoutList.Layout[i]
		if l.ConfigItem.Description == prettyName {
			return l, nil
		}

		for j := range l.VariantList.Variant {
			if v := &l.VariantList.Variant[j]; v.ConfigItem.Description == prettyName {
				return l, v
			}
		}
	}

	return nil, nil
}
