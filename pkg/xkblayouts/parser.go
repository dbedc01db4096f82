package xkblayouts

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

func ParseLayouts(path string) (*XkbConfigRegistry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

func Parse(r io.Reader) (*XkbConfigRegistry, error) {
	registry := &XkbConfigRegistry{}
	if err := xml.NewDecoder(r).Decode(registry); err != nil {
		return nil, fmt.Errorf("decode xml: %w", err)
	}

	return registry, nil
}

// GetLayoutAndVariantFromPrettyName maps a description such as
// "English (US)" or "Russian (phonetic)" to its xkb layout and variant codes.
// Both are empty when the name is unknown.
func (r *XkbConfigRegistry) GetLayoutAndVariantFromPrettyName(prettyName string) (string, string) {
	l, v := r.find(prettyName)
	switch {
	case l == nil:
		return "", ""
	case v == nil:
		return l.ConfigItem.Name, ""
	}
	return l.ConfigItem.Name, v.ConfigItem.Name
}

// GetLanguagesFromPrettyName returns the ISO 639-2 languages of a keymap. A
// variant without its own list inherits the layout's.
func (r *XkbConfigRegistry) GetLanguagesFromPrettyName(prettyName string) []string {
	l, v := r.find(prettyName)
	switch {
	case l == nil:
		return nil
	case v != nil && len(v.ConfigItem.Languages) > 0:
		return v.ConfigItem.Languages
	}
	return l.ConfigItem.Languages
}
