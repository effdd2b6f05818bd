// Package ui is the terminal front end: a text area that can be sent to the
// clipboard or filled from whatever window the user focuses.
package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sungur/minitext/internal/app"
	"github.com/sungur/minitext/internal/clipboard"
	"github.com/sungur/minitext/internal/config"
)

// Invoker runs a named front-end command.
type Invoker interface {
	Invoke(ctx context.Context, name string) (string, error)
}

// URLOpener opens a URL in the desktop's handler.
type URLOpener interface {
	Open(ctx context.Context, rawURL string) error
}

// statusKind selects the status line styling.
type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusError
)

// Options holds the capabilities the front end uses.
type Options struct {
	Commands  Invoker
	Clipboard clipboard.Capability
	Opener    URLOpener
	Grace     time.Duration // announced before a copy starts
	URL       string        // opened with ctrl+o
}

// OptionsFromApp extracts front-end options from a wired App.
func OptionsFromApp(a *app.App) Options {
	opts := Options{
		Commands:  a.Commands,
		Clipboard: a.SystemClipboard,
		Grace:     a.Orchestrator.Delays().Grace,
		URL:       config.ProjectURL,
	}
	// A nil *opener.Opener must stay a nil interface.
	if a.Opener != nil {
		opts.Opener = a.Opener
	}
	return opts
}

// Model is the bubbletea model of the front end.
type Model struct {
	opts Options

	text   []rune
	cursor int // rune index into text

	status     string
	statusKind statusKind
	copying    bool

	width    int
	height   int
	quitting bool
}

// NewModel creates the initial model.
func NewModel(opts Options) Model {
	return Model{
		opts:   opts,
		status: "Waiting",
	}
}

// Init has no startup work.
func (m Model) Init() tea.Cmd {
	return nil
}

// Text returns the current buffer.
func (m Model) Text() string {
	return string(m.text)
}
