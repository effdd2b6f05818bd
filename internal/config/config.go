// Package config provides configuration types, defaults, and file handling
// for minitext.
package config

import (
	"time"

	"github.com/sungur/minitext/internal/platform"
)

// --- Config ---

// Config represents the minitext configuration model.
// All fields are optional (zero value = not set). CLI flags take precedence.
type Config struct {
	Timing Timing `yaml:"timing,omitempty"`
	Tools  Tools  `yaml:"tools,omitempty"`
	Debug  int    `yaml:"debug,omitempty"`
}

// Timing holds the waits of the window protocols, as duration strings
// ("3s", "100ms").
type Timing struct {
	CopyFromWait       time.Duration `yaml:"copyFromWait,omitempty"`       // grace period before select-all
	KeyInputWait       time.Duration `yaml:"keyInputWait,omitempty"`       // between synthetic keystrokes
	WindowActivateWait time.Duration `yaml:"windowActivateWait,omitempty"` // after activating a window
	CommandTimeout     time.Duration `yaml:"commandTimeout,omitempty"`     // per external process
}

// Tools names the external binaries. Values may be names on PATH or paths.
type Tools struct {
	Automation string `yaml:"automation,omitempty"`
	Clipboard  string `yaml:"clipboard,omitempty"`
	Opener     string `yaml:"opener,omitempty"`
}

// --- Defaults ---

const (
	// DefaultCopyFromWait gives the user time to click into the target window.
	DefaultCopyFromWait = 3 * time.Second
	// DefaultKeyInputWait lets the window process a synthetic keystroke.
	DefaultKeyInputWait = 100 * time.Millisecond
	// DefaultWindowActivateWait lets the window manager finish focusing a window.
	DefaultWindowActivateWait = 300 * time.Millisecond
	// DefaultCommandTimeout bounds a single external process.
	DefaultCommandTimeout = 10 * time.Second
)

// Defaults returns a fully populated configuration.
func Defaults() Config {
	return Config{
		Timing: Timing{
			CopyFromWait:       DefaultCopyFromWait,
			KeyInputWait:       DefaultKeyInputWait,
			WindowActivateWait: DefaultWindowActivateWait,
			CommandTimeout:     DefaultCommandTimeout,
		},
		Tools: Tools{
			Automation: platform.AutomationTool,
			Clipboard:  platform.ClipboardTool,
			Opener:     platform.OpenerTool,
		},
	}
}

// --- Environment variables ---

// Env holds the minitext environment variable names.
var Env = struct {
	ConfigPath string
	Debug      string
}{
	ConfigPath: "MINITEXT_CONFIG",
	Debug:      "MINITEXT_DEBUG",
}

// ProjectURL is opened from the front end.
const ProjectURL = "https://github.com/sungur/minitext"
