package hyprland

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/miketth/retype/pkg/retype"
	"codeberg.org/miketth/retype/pkg/translit"
	"codeberg.org/miketth/retype/pkg/xkblayouts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const registryXML = `<xkbConfigRegistry>
  <layoutList>
    <layout><configItem><name>us</name><description>English (US)</description></configItem></layout>
    <layout><configItem><name>gb</name><description>English (UK)</description></configItem></layout>
    <layout>
      <configItem><name>ru</name><description>Russian</description></configItem>
      <variantList>
        <variant><configItem><name>phonetic</name><description>Russian (phonetic)</description></configItem></variant>
      </variantList>
    </layout>
    <layout><configItem><name>jp</name><description>Japanese</description></configItem></layout>
    <layout>
      <configItem><name>md</name><description>Moldavian</description></configItem>
      <variantList>
        <variant><configItem><name>gag</name><description>Gagauz (Moldova)</description><languageList><iso639Id>tur</iso639Id></languageList></configItem></variant>
      </variantList>
    </layout>
  </layoutList>
</xkbConfigRegistry>`

type fakeCtl struct {
	keyboards []Keyboard
	window    Window
	windowErr error

	windowCalls int
	switched    []string
}

func (f *fakeCtl) GetKeyboards() ([]Keyboard, error) {
	return f.keyboards, nil
}

func (f *fakeCtl) SwitchToLayout(keyboard string, idx int) error {
	f.switched = append(f.switched, keyboard+":"+string(rune('0'+idx)))
	return nil
}

func (f *fakeCtl) SwitchToNext(keyboard string) error {
	f.switched = append(f.switched, keyboard+":next")
	return nil
}

func (f *fakeCtl) ActiveWindow() (Window, error) {
	f.windowCalls++
	return f.window, f.windowErr
}

func newTestOracle(t *testing.T, ctl *fakeCtl, name string) *Oracle {
	t.Helper()
	registry, err := xkblayouts.Parse(strings.NewReader(registryXML))
	require.NoError(t, err)
	return NewOracle(ctl, registry, name)
}

func twoKeyboards(activeMain string) []Keyboard {
	return []Keyboard{
		{Name: "power-button", Layouts: []string{"us"}, Variants: []string{""}, ActiveKeymap: "English (US)"},
		{Name: "at-translated-set-2-keyboard", Layouts: []string{"us", "ru"}, Variants: []string{"", ""}, ActiveKeymap: activeMain, Main: true},
	}
}

func TestActiveLangIDUsesMainKeyboard(t *testing.T) {
	ctl := &fakeCtl{keyboards: twoKeyboards("Russian")}
	o := newTestOracle(t, ctl, "")

	id, err := o.ActiveLangID()
	require.NoError(t, err)
	assert.Equal(t, translit.LangRussian, id)

	ctl.keyboards = twoKeyboards("Russian (phonetic)")
	id, err = o.ActiveLangID()
	require.NoError(t, err)
	assert.Equal(t, translit.Cyrillic, translit.ClassFromLangID(id))
}

func TestActiveLangIDNamedKeyboard(t *testing.T) {
	ctl := &fakeCtl{keyboards: twoKeyboards("Russian")}

	id, err := newTestOracle(t, ctl, "power-button").ActiveLangID()
	require.NoError(t, err)
	assert.Equal(t, translit.LangEnglishUS, id)

	_, err = newTestOracle(t, ctl, "nope").ActiveLangID()
	assert.ErrorIs(t, err, retype.ErrOSQuery)
}

func TestActiveLangIDFromLanguageList(t *testing.T) {
	ctl := &fakeCtl{keyboards: twoKeyboards("Gagauz (Moldova)")}

	id, err := newTestOracle(t, ctl, "").ActiveLangID()
	require.NoError(t, err)
	assert.Equal(t, translit.Latin, translit.ClassFromLangID(id))
}

func TestActiveLangIDUnknownKeymap(t *testing.T) {
	ctl := &fakeCtl{keyboards: twoKeyboards("Japanese")}

	_, err := newTestOracle(t, ctl, "").ActiveLangID()
	assert.ErrorIs(t, err, retype.ErrNotSupported)
}

func TestActiveWindowInfo(t *testing.T) {
	procRoot := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(procRoot, "4242"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(procRoot, "4242", "comm"), []byte("keepassxc\n"), 0o644))

	ctl := &fakeCtl{window: Window{Address: "0x55d1", Class: "org.keepassxc.KeePassXC", Title: "Passwords.kdbx", PID: 4242}}
	o := newTestOracle(t, ctl, "")
	o.procRoot = procRoot

	info, err := o.ActiveWindowInfo()
	require.NoError(t, err)
	assert.Equal(t, retype.WindowInfo{Title: "Passwords.kdbx", ProcessName: "keepassxc"}, info)

	// missing /proc entry falls back to the class
	ctl.window = Window{Address: "0x77aa", Class: "kitty", Title: "~", PID: 9999}
	info, err = o.ActiveWindowInfo()
	require.NoError(t, err)
	assert.Equal(t, "kitty", info.ProcessName)
}

func TestActiveWindowInfoErrors(t *testing.T) {
	ctl := &fakeCtl{}
	o := newTestOracle(t, ctl, "")

	_, err := o.ActiveWindowInfo()
	assert.ErrorIs(t, err, retype.ErrNoForegroundWindow)

	ctl.windowErr = errors.New("dial: no such file")
	_, err = o.ActiveWindowInfo()
	assert.ErrorIs(t, err, retype.ErrOSQuery)
}

func TestTitleChangeInvalidatesCache(t *testing.T) {
	ctl := &fakeCtl{window: Window{Address: "0x1", Class: "firefox", Title: "News"}}
	o := newTestOracle(t, ctl, "")

	info, err := o.ActiveWindowInfo()
	require.NoError(t, err)
	assert.Equal(t, "News", info.Title)

	ctl.window.Title = "Sign in - Password"
	info, err = o.ActiveWindowInfo()
	require.NoError(t, err)
	assert.Equal(t, "News", info.Title, "served from cache")

	o.processLine("windowtitle>>1")
	info, err = o.ActiveWindowInfo()
	require.NoError(t, err)
	assert.Equal(t, "Sign in - Password", info.Title)
}

type scriptedListener struct {
	lines []string
}

func (l *scriptedListener) ReadLine() (string, error) {
	if len(l.lines) == 0 {
		return "", io.EOF
	}
	line := l.lines[0]
	l.lines = l.lines[1:]
	return line, nil
}

func TestWatchStopsOnListenerError(t *testing.T) {
	ctl := &fakeCtl{window: Window{Address: "0x1", Title: "a"}}
	o := newTestOracle(t, ctl, "")
	_, err := o.ActiveWindowInfo()
	require.NoError(t, err)

	err = o.Watch(context.Background(), &scriptedListener{lines: []string{"garbage", "activewindow>>kitty,~"}})
	assert.ErrorIs(t, err, io.EOF)

	ctl.window.Title = "b"
	info, err := o.ActiveWindowInfo()
	require.NoError(t, err)
	assert.Equal(t, "b", info.Title)
}

func TestLayouts(t *testing.T) {
	ctl := &fakeCtl{keyboards: []Keyboard{
		{Name: "kb", Layouts: []string{"gb", "ru"}, Variants: []string{"", ""}, Main: true},
	}}
	l := NewLayouts(ctl, "")

	require.NoError(t, l.SetLayoutByLangID(translit.LangRussian))
	// en-US is not configured, en-GB shares the primary language
	require.NoError(t, l.SetLayoutByLangID(translit.LangEnglishUS))
	require.NoError(t, l.SwitchToNextLayout())
	assert.Equal(t, []string{"kb:1", "kb:0", "kb:next"}, ctl.switched)

	assert.ErrorIs(t, l.SetLayoutByLangID(0x0411), retype.ErrNotSupported)
}

func TestLayoutsSwitchVirtualKeyboard(t *testing.T) {
	ctl := &fakeCtl{keyboards: []Keyboard{
		{Name: "at-translated-set-2-keyboard", Layouts: []string{"us", "ru"}, Variants: []string{"", ""}, Main: true},
		{Name: "retype-virtual-keyboard", Layouts: []string{"us", "ru"}, Variants: []string{"", ""}},
	}}
	l := NewLayouts(ctl, "", "retype virtual keyboard")

	require.NoError(t, l.SetLayoutByLangID(translit.LangRussian))
	assert.Equal(t, []string{"at-translated-set-2-keyboard:1", "retype-virtual-keyboard:1"}, ctl.switched)

	ctl.switched = nil
	require.NoError(t, l.SwitchToNextLayout())
	assert.Equal(t, []string{"at-translated-set-2-keyboard:next"}, ctl.switched)

	// the virtual device has not shown up in hyprctl yet
	ctl.keyboards = ctl.keyboards[:1]
	ctl.switched = nil
	assert.ErrorIs(t, l.SetLayoutByLangID(translit.LangEnglishUS), retype.ErrOSQuery)
	assert.Equal(t, []string{"at-translated-set-2-keyboard:0"}, ctl.switched)
}

func TestDeviceName(t *testing.T) {
	assert.Equal(t, "retype-virtual-keyboard", DeviceName("retype virtual keyboard"))
	assert.Equal(t, "at-translated-set-2-keyboard", DeviceName("AT Translated Set 2 keyboard"))
}

func TestToKeyboardPadsVariants(t *testing.T) {
	kb := keyboard{Name: "kb", Layout: "us,ru", Variant: "", ActiveKeymap: "Russian", Main: true}.ToKeyboard()
	assert.Equal(t, []string{"us", "ru"}, kb.Layouts)
	assert.Equal(t, []string{"", ""}, kb.Variants)
	assert.True(t, kb.Main)
}
