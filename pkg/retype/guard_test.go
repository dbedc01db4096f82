package retype

import (
	"testing"

	"codeberg.org/miketth/retype/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsForbidden(t *testing.T) {
	cfg := config.Defaults().LayoutSwitcher.ForbiddenContexts

	tests := []struct {
		name string
		info WindowInfo
		want bool
	}{
		{"plain editor", WindowInfo{Title: "notes.txt - Notepad", ProcessName: "notepad.exe"}, false},
		{"process case-insensitive", WindowInfo{Title: "Vault", ProcessName: "KeePassXC.exe"}, true},
		{"terminal", WindowInfo{Title: "Windows PowerShell", ProcessName: "PowerShell.exe"}, true},
		{"title", WindowInfo{Title: "Enter Password", ProcessName: "firefox.exe"}, true},
		{"cyrillic title", WindowInfo{Title: "Введите ПАРОЛЬ", ProcessName: "chrome.exe"}, true},
		{"input type", WindowInfo{Title: "Login", ProcessName: "app.exe", InputType: "password"}, true},
		{"unknown process", WindowInfo{Title: "Document"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsForbidden(tt.info, cfg))
		})
	}
}

func TestIsForbiddenSkipsEmptyPatterns(t *testing.T) {
	cfg := config.ForbiddenContextsConfig{BlockedProcesses: []string{""}, BlockedWindows: []string{""}}
	assert.False(t, IsForbidden(WindowInfo{Title: "x", ProcessName: "y"}, cfg))
}

func TestGuardFailsClosed(t *testing.T) {
	oracle := &fakeOracle{infoErr: ErrNoForegroundWindow}
	g := NewGuard(oracle, config.Defaults().LayoutSwitcher.ForbiddenContexts)

	forbidden, err := g.IsForbiddenContext()
	assert.True(t, forbidden)
	assert.ErrorIs(t, err, ErrNoForegroundWindow)

	_, err = g.Permit()
	assert.ErrorIs(t, err, ErrNoForegroundWindow)
}

func TestGuardPermit(t *testing.T) {
	oracle := &fakeOracle{info: WindowInfo{Title: "main.go", ProcessName: "code.exe"}}
	g := NewGuard(oracle, config.Defaults().LayoutSwitcher.ForbiddenContexts)

	info, err := g.Permit()
	require.NoError(t, err)
	assert.Equal(t, "code.exe", info.ProcessName)

	forbidden, err := g.IsForbiddenContext()
	require.NoError(t, err)
	assert.False(t, forbidden)

	oracle.info.ProcessName = "1Password.exe"
	_, err = g.Permit()
	assert.ErrorIs(t, err, ErrForbidden)
}
