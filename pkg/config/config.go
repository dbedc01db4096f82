// Package config defines the retype configuration, its defaults and the
// loading order: file (TOML or YAML), then .env, then RETYPE_* variables.
// The result is immutable for the lifetime of the process.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Logging        LoggingConfig        `toml:"logging" yaml:"logging" envPrefix:"LOG_"`
	LayoutSwitcher LayoutSwitcherConfig `toml:"layout_switcher" yaml:"layout_switcher" envPrefix:"SWITCHER_"`
	Bus            BusConfig            `toml:"bus" yaml:"bus" envPrefix:"BUS_"`
	Stats          StatsConfig          `toml:"stats" yaml:"stats" envPrefix:"STATS_"`
	Linux          LinuxConfig          `toml:"linux" yaml:"linux" envPrefix:"LINUX_"`
}

type LoggingConfig struct {
	Level string `toml:"level" yaml:"level" env:"LEVEL"`
}

type LayoutSwitcherConfig struct {
	Enabled           bool   `toml:"enabled" yaml:"enabled" env:"ENABLED"`
	Hotkey            string `toml:"hotkey" yaml:"hotkey" env:"HOTKEY"`
	AutoDetect        bool   `toml:"auto_detect" yaml:"auto_detect" env:"AUTO_DETECT"`
	DetectThreshold   int    `toml:"detect_threshold" yaml:"detect_threshold" env:"DETECT_THRESHOLD"`
	MinAutocorrectLen int    `toml:"min_autocorrect_len" yaml:"min_autocorrect_len" env:"MIN_AUTOCORRECT_LEN"`
	// CorrectOnEnter lets Enter run the decision like Space does. Off by
	// default: Enter only clears the word so line breaks are never rewritten.
	CorrectOnEnter bool `toml:"correct_on_enter" yaml:"correct_on_enter" env:"CORRECT_ON_ENTER"`
	// SwitchOnHotkey makes retype advance the layout itself when the hotkey
	// is seen. Leave it off when the OS already handles the same chord.
	SwitchOnHotkey bool `toml:"switch_on_hotkey" yaml:"switch_on_hotkey" env:"SWITCH_ON_HOTKEY"`

	SwitchLayoutOnCorrect bool `toml:"switch_layout_on_correct" yaml:"switch_layout_on_correct" env:"SWITCH_LAYOUT_ON_CORRECT"`

	ForbiddenContexts ForbiddenContextsConfig `toml:"forbidden_contexts" yaml:"forbidden_contexts" envPrefix:"FORBIDDEN_"`
	Heuristics        HeuristicsConfig        `toml:"heuristics" yaml:"heuristics" envPrefix:"HEURISTICS_"`
}

// ForbiddenContextsConfig lists case-insensitive substrings. A match on any
// of them forbids automated input for the foreground window.
type ForbiddenContextsConfig struct {
	BlockedProcesses  []string `toml:"blocked_processes" yaml:"blocked_processes" env:"PROCESSES" envSeparator:","`
	BlockedWindows    []string `toml:"blocked_windows" yaml:"blocked_windows" env:"WINDOWS" envSeparator:","`
	BlockedInputTypes []string `toml:"blocked_input_types" yaml:"blocked_input_types" env:"INPUT_TYPES" envSeparator:","`
}

type HeuristicsConfig struct {
	EnVowelMin    float64  `toml:"en_vowel_min" yaml:"en_vowel_min" env:"EN_VOWEL_MIN"`
	EnVowelMax    float64  `toml:"en_vowel_max" yaml:"en_vowel_max" env:"EN_VOWEL_MAX"`
	RuVowelMin    float64  `toml:"ru_vowel_min" yaml:"ru_vowel_min" env:"RU_VOWEL_MIN"`
	RuVowelLow    float64  `toml:"ru_vowel_low" yaml:"ru_vowel_low" env:"RU_VOWEL_LOW"`
	RuVowelBigram float64  `toml:"ru_vowel_bigram" yaml:"ru_vowel_bigram" env:"RU_VOWEL_BIGRAM"`
	Bigrams       []string `toml:"bigrams" yaml:"bigrams" env:"BIGRAMS" envSeparator:","`
}

type BusConfig struct {
	Capacity int `toml:"capacity" yaml:"capacity" env:"CAPACITY"`
}

const (
	StatsMemory = "memory"
	StatsJSON   = "json"
	StatsSQLite = "sqlite"
)

type StatsConfig struct {
	Backend string `toml:"backend" yaml:"backend" env:"BACKEND"`
	// Path defaults to a file under the XDG data directory.
	Path string `toml:"path" yaml:"path" env:"PATH"`
}

type LinuxConfig struct {
	// EvdevDevices overrides keyboard autodetection, e.g. /dev/input/event3.
	EvdevDevices []string `toml:"evdev_devices" yaml:"evdev_devices" env:"EVDEV_DEVICES" envSeparator:","`
	// Keyboard is the Hyprland device name used for layout switching.
	// Empty selects the keyboard marked as main.
	Keyboard     string `toml:"keyboard" yaml:"keyboard" env:"KEYBOARD"`
	EvdevXMLPath string `toml:"evdev_xml_path" yaml:"evdev_xml_path" env:"EVDEV_XML_PATH"`
}

func Defaults() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		LayoutSwitcher: LayoutSwitcherConfig{
			Enabled:               true,
			Hotkey:                "alt+shift",
			AutoDetect:            true,
			DetectThreshold:       3,
			MinAutocorrectLen:     5,
			CorrectOnEnter:        false,
			SwitchOnHotkey:        false,
			SwitchLayoutOnCorrect: true,
			ForbiddenContexts: ForbiddenContextsConfig{
				BlockedProcesses: []string{
					"keepass", "1password", "bitwarden",
					"cmd.exe", "powershell", "windowsterminal",
				},
				BlockedWindows:    []string{"password", "пароль"},
				BlockedInputTypes: []string{"password"},
			},
			Heuristics: HeuristicsConfig{
				EnVowelMin:    0.15,
				EnVowelMax:    0.70,
				RuVowelMin:    0.20,
				RuVowelLow:    0.25,
				RuVowelBigram: 0.45,
				Bigrams:       []string{"th", "sh", "ch", "ck", "qu", "ng", "oo", "ee"},
			},
		},
		Bus:   BusConfig{Capacity: 256},
		Stats: StatsConfig{Backend: StatsSQLite},
		Linux: LinuxConfig{EvdevXMLPath: "/usr/share/X11/xkb/rules/evdev.xml"},
	}
}

func (c *Config) Validate() error {
	ls := c.LayoutSwitcher

	if !strings.EqualFold(strings.ReplaceAll(ls.Hotkey, " ", ""), "alt+shift") {
		return fmt.Errorf("%w: hotkey %q is not supported, only alt+shift", ErrInvalid, ls.Hotkey)
	}
	if ls.DetectThreshold < 1 {
		return fmt.Errorf("%w: detect_threshold must be >= 1, got %d", ErrInvalid, ls.DetectThreshold)
	}
	if ls.MinAutocorrectLen < 1 {
		return fmt.Errorf("%w: min_autocorrect_len must be >= 1, got %d", ErrInvalid, ls.MinAutocorrectLen)
	}

	h := ls.Heuristics
	ratios := map[string]float64{
		"en_vowel_min":    h.EnVowelMin,
		"en_vowel_max":    h.EnVowelMax,
		"ru_vowel_min":    h.RuVowelMin,
		"ru_vowel_low":    h.RuVowelLow,
		"ru_vowel_bigram": h.RuVowelBigram,
	}
	for name, v := range ratios {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s must be within [0, 1], got %v", ErrInvalid, name, v)
		}
	}
	if h.EnVowelMin > h.EnVowelMax {
		return fmt.Errorf("%w: en_vowel_min %v is above en_vowel_max %v", ErrInvalid, h.EnVowelMin, h.EnVowelMax)
	}

	if c.Bus.Capacity <= 0 {
		return fmt.Errorf("%w: bus capacity must be positive, got %d", ErrInvalid, c.Bus.Capacity)
	}

	switch c.Stats.Backend {
	case StatsMemory, StatsJSON, StatsSQLite:
	default:
		return fmt.Errorf("%w: unknown stats backend %q", ErrInvalid, c.Stats.Backend)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.Logging.Level)
	}

	return nil
}
