// Package platform detects the desktop session and checks for the external
// tools minitext drives (xdotool, xclip, xdg-open).
package platform

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// DisplayServer identifies the graphical session the process is attached to.
type DisplayServer string

const (
	// X11 is an X.Org session (DISPLAY set). xdotool and xclip work here.
	X11 DisplayServer = "x11"
	// Wayland is a Wayland session. xdotool can only reach XWayland windows.
	Wayland DisplayServer = "wayland"
	// Headless means no graphical session was found.
	Headless DisplayServer = "none"
)

// Default tool binaries.
const (
	AutomationTool = "xdotool"
	ClipboardTool  = "xclip"
	OpenerTool     = "xdg-open"
)

// Getenv is the environment lookup used by detection. Tests replace it.
var Getenv = os.Getenv

// DetectDisplay returns the display server of the current session.
//
// Detection logic:
//   - XDG_SESSION_TYPE == "wayland" or WAYLAND_DISPLAY set -> Wayland
//   - DISPLAY set -> X11
//   - otherwise -> Headless
func DetectDisplay() DisplayServer {
	if strings.EqualFold(Getenv("XDG_SESSION_TYPE"), "wayland") || Getenv("WAYLAND_DISPLAY") != "" {
		return Wayland
	}
	if Getenv("DISPLAY") != "" {
		return X11
	}
	return Headless
}

// Supported reports whether window automation can be expected to work.
// Only Linux X11 sessions qualify.
func Supported() bool {
	return runtime.GOOS == "linux" && DetectDisplay() == X11
}

// HostOSName returns a human-readable OS name string.
func HostOSName() string {
	switch runtime.GOOS {
	case "linux":
		return "Linux"
	case "darwin":
		return "macOS"
	case "windows":
		return "Windows"
	default:
		return runtime.GOOS
	}
}

// ClipboardReadArgs returns the xclip arguments that print the CLIPBOARD
// selection to stdout.
func ClipboardReadArgs() []string {
	return []string{"-selection", "clipboard", "-o"}
}

// ClipboardWriteArgs returns the xclip arguments that load stdin into the
// CLIPBOARD selection.
func ClipboardWriteArgs() []string {
	return []string{"-i", "-selection", "clipboard"}
}

// InstallHint returns the apt command installing the given tools.
func InstallHint(tools []string) string {
	if len(tools) == 0 {
		return ""
	}
	return "sudo apt install " + strings.Join(tools, " ")
}

// CommandExists checks whether a command is available in the system PATH.
func CommandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// MissingTools returns the subset of names not found in PATH, preserving order.
func MissingTools(names ...string) []string {
	var missing []string
	for _, name := range names {
		if name == "" {
			continue
		}
		if !CommandExists(name) {
			missing = append(missing, name)
		}
	}
	return missing
}
