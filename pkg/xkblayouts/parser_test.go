package xkblayouts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRegistry = `<?xml version="1.0" encoding="UTF-8"?>
<xkbConfigRegistry version="1.1">
  <layoutList>
    <layout>
      <configItem>
        <name>us</name>
        <shortDescription>en</shortDescription>
        <description>English (US)</description>
        <languageList>
          <iso639Id>eng</iso639Id>
        </languageList>
      </configItem>
      <variantList>
        <variant>
          <configItem>
            <name>intl</name>
            <description>English (US, intl., with dead keys)</description>
          </configItem>
        </variant>
        <variant>
          <configItem>
            <name>chr</name>
            <description>Cherokee</description>
            <languageList>
              <iso639Id>chr</iso639Id>
            </languageList>
          </configItem>
        </variant>
      </variantList>
    </layout>
    <layout>
      <configItem>
        <name>ru</name>
        <description>Russian</description>
        <languageList>
          <iso639Id>rus</iso639Id>
        </languageList>
      </configItem>
      <variantList>
        <variant>
          <configItem>
            <name>phonetic</name>
            <description>Russian (phonetic)</description>
          </configItem>
        </variant>
      </variantList>
    </layout>
  </layoutList>
</xkbConfigRegistry>`

func TestGetLayoutAndVariantFromPrettyName(t *testing.T) {
	registry, err := Parse(strings.NewReader(testRegistry))
	require.NoError(t, err)

	tests := []struct {
		pretty  string
		layout  string
		variant string
	}{
		{"English (US)", "us", ""},
		{"English (US, intl., with dead keys)", "us", "intl"},
		{"Russian", "ru", ""},
		{"Russian (phonetic)", "ru", "phonetic"},
		{"Klingon", "", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		layout, variant := registry.GetLayoutAndVariantFromPrettyName(tt.pretty)
		assert.Equal(t, tt.layout, layout, tt.pretty)
		assert.Equal(t, tt.variant, variant, tt.pretty)
	}
}

func TestGetLanguagesFromPrettyName(t *testing.T) {
	registry, err := Parse(strings.NewReader(testRegistry))
	require.NoError(t, err)

	assert.Equal(t, []string{"eng"}, registry.GetLanguagesFromPrettyName("English (US)"))
	assert.Equal(t, []string{"eng"}, registry.GetLanguagesFromPrettyName("English (US, intl., with dead keys)"))
	assert.Equal(t, []string{"chr"}, registry.GetLanguagesFromPrettyName("Cherokee"))
	assert.Equal(t, []string{"rus"}, registry.GetLanguagesFromPrettyName("Russian (phonetic)"))
	assert.Nil(t, registry.GetLanguagesFromPrettyName("Klingon"))

	assert.Equal(t, "en", registry.LayoutList.Layout[0].ConfigItem.ShortDescription)
}

func TestParseLayoutsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evdev.xml")
	require.NoError(t, os.WriteFile(path, []byte(testRegistry), 0o644))

	registry, err := ParseLayouts(path)
	require.NoError(t, err)
	assert.Len(t, registry.LayoutList.Layout, 2)

	_, err = ParseLayouts(filepath.Join(t.TempDir(), "missing.xml"))
	assert.Error(t, err)
}

func TestNilRegistry(t *testing.T) {
	var registry *XkbConfigRegistry
	layout, _ := registry.GetLayoutAndVariantFromPrettyName("Russian")
	assert.Empty(t, layout)
	assert.Nil(t, registry.GetLanguagesFromPrettyName("Russian"))
}
