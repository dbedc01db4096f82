package hyprland

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

var ErrNotRunning = errors.New("hyprland might not be running")

type socketType int

const (
	ctlSocket socketType = iota
	eventSocket
)

func connect(sock socketType) (net.Conn, error) {
	socketPath, err := getSocketPath(sock)
	if err != nil {
		return nil, fmt.Errorf("get socket path: %w", err)
	}

	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}

	return conn, nil
}

// getSocketPath prefers $XDG_RUNTIME_DIR/hypr and falls back to the /tmp/hypr
// location used by older Hyprland releases.
func getSocketPath(sock socketType) (string, error) {
	signature := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	if signature == "" {
		return "", fmt.Errorf("HYPRLAND_INSTANCE_SIGNATURE is not set, %w", ErrNotRunning)
	}

	var name string
	switch sock {
	case ctlSocket:
		name = ".socket.sock"
	case eventSocket:
		name = ".socket2.sock"
	default:
		return "", fmt.Errorf("unknown socket type: %d", sock)
	}

	candidates := []string{
		filepath.Join(xdg.RuntimeDir, "hypr", signature, name),
		filepath.Join("/tmp/hypr", signature, name),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no %s for instance %s, %w", name, signature, ErrNotRunning)
}
