package hyprland

import "strings"

type Keyboard struct {
	Name     string
	Layouts  []string
	Variants []string
	// ActiveKeymap is the pretty name of the active layout, e.g. "Russian".
	ActiveKeymap string
	Main         bool
}

type keyboard struct {
	Name         string `json:"name"`
	Layout       string `json:"layout"`
	Variant      string `json:"variant"`
	Options      string `json:"options"`
	ActiveKeymap string `json:"active_keymap"`
	Main         bool   `json:"main"`
}

type devices struct {
	Keyboards []keyboard `json:"keyboards"`
}

func (k keyboard) ToKeyboard() Keyboard {
	layouts := strings.Split(k.Layout, ",")
	variants := strings.Split(k.Variant, ",")
	// hyprland omits trailing empty variants
	for len(variants) < len(layouts) {
		variants = append(variants, "")
	}

	return Keyboard{
		Name:         k.Name,
		Layouts:      layouts,
		Variants:     variants,
		ActiveKeymap: k.ActiveKeymap,
		Main:         k.Main,
	}
}

// Window is the subset of `hyprctl activewindow -j` retype looks at.
type Window struct {
	Address string `json:"address"`
	Class   string `json:"class"`
	Title   string `json:"title"`
	PID     int    `json:"pid"`
}
