package hyprland

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Hyprctl talks to the Hyprland request socket, one connection per request.
type Hyprctl struct{}

func NewHyprctl() (*Hyprctl, error) {
	if _, err := getSocketPath(ctlSocket); err != nil {
		return nil, err
	}
	return &Hyprctl{}, nil
}

func (c *Hyprctl) SwitchToLayout(keyboard string, idx int) error {
	return c.switchLayout(keyboard, fmt.Sprintf("%d", idx))
}

// SwitchToNext advances the keyboard to its next layout, wrapping around.
func (c *Hyprctl) SwitchToNext(keyboard string) error {
	return c.switchLayout(keyboard, "next")
}

func (c *Hyprctl) switchLayout(keyboard, arg string) error {
	resp, err := c.request(fmt.Sprintf("switchxkblayout %s %s", keyboard, arg), "")
	if err != nil {
		return err
	}

	if out := strings.TrimSpace(string(resp)); out != "ok" {
		return fmt.Errorf("hyprctl: %s", out)
	}

	return nil
}

func (c *Hyprctl) GetKeyboards() ([]Keyboard, error) {
	resp, err := c.request("devices", "j")
	if err != nil {
		return nil, err
	}

	var devs devices
	if err := json.Unmarshal(resp, &devs); err != nil {
		return nil, fmt.Errorf("unmarshal devices: %w", err)
	}

	out := make([]Keyboard, 0, len(devs.Keyboards))
	for _, k := range devs.Keyboards {
		out = append(out, k.ToKeyboard())
	}

	return out, nil
}

func (c *Hyprctl) ActiveWindow() (Window, error) {
	resp, err := c.request("activewindow", "j")
	if err != nil {
		return Window{}, err
	}

	// nothing focused is reported as an empty object
	var w Window
	if err := json.Unmarshal(resp, &w); err != nil {
		return Window{}, fmt.Errorf("unmarshal active window: %w", err)
	}

	return w, nil
}

func (c *Hyprctl) request(request string, args string) ([]byte, error) {
	conn, err := connect(ctlSocket)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	msg := request
	if args != "" {
		msg = args + "/" + request
	}

	if _, err := conn.Write([]byte(msg)); err != nil {
		return nil, fmt.Errorf("write to hyprctl socket: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, conn); err != nil {
		return nil, fmt.Errorf("read response from hyprctl socket: %w", err)
	}

	return buf.Bytes(), nil
}
