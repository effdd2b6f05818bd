package ui

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/docker/go-units"
	"golang.org/x/text/unicode/norm"

	"github.com/sungur/minitext/internal/command"
)

// --- Message types ---

type copyResultMsg struct {
	text string
	err  error
}

type sentMsg struct {
	chars int
	err   error
}

type statusMsg struct {
	message string
	kind    statusKind
}

// --- Update ---

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case copyResultMsg:
		m.copying = false
		switch {
		case msg.err != nil:
			m.setStatus("Error: "+msg.err.Error(), statusError)
		case strings.TrimSpace(msg.text) == "":
			m.setStatus("Copied text is empty", statusError)
		default:
			m.text = []rune(msg.text)
			m.cursor = len(m.text)
			m.setStatus(fmt.Sprintf("Copied from the active window (%d chars)", charCount(msg.text)), statusSuccess)
		}

	case sentMsg:
		if msg.err != nil {
			m.setStatus("Error: "+msg.err.Error(), statusError)
		} else {
			m.setStatus(fmt.Sprintf("Copied to clipboard (%d chars)", msg.chars), statusSuccess)
		}

	case statusMsg:
		m.setStatus(msg.message, msg.kind)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "ctrl+s":
		text := m.Text()
		if strings.TrimSpace(text) == "" {
			m.setStatus("Text is empty", statusError)
			return m, nil
		}
		return m, sendToClipboard(m.opts, text)

	case "ctrl+g":
		if m.copying {
			m.setStatus("A copy is already in progress", statusInfo)
			return m, nil
		}
		m.copying = true
		m.setStatus(fmt.Sprintf("Copying from the active window in %s... click into the target text box", humanWait(m.opts.Grace)), statusInfo)
		return m, copyFromActiveWindow(m.opts)

	case "ctrl+o":
		return m, openURL(m.opts)

	case "ctrl+l":
		m.text = nil
		m.cursor = 0
		m.setStatus("Cleared", statusInfo)
		return m, nil

	case "enter":
		m.insert([]rune{'\n'})

	case "backspace":
		if m.cursor > 0 {
			m.remove(m.cursor - 1)
			m.cursor--
		}

	case "delete":
		if m.cursor < len(m.text) {
			m.remove(m.cursor)
		}

	case "left":
		if m.cursor > 0 {
			m.cursor--
		}

	case "right":
		if m.cursor < len(m.text) {
			m.cursor++
		}

	case "home", "ctrl+a":
		m.cursor = lineStart(m.text, m.cursor)

	case "end", "ctrl+e":
		m.cursor = lineEnd(m.text, m.cursor)

	case " ":
		m.insert([]rune{' '})

	default:
		if msg.Type == tea.KeyRunes {
			m.insert(msg.Runes)
		}
	}
	return m, nil
}

func (m *Model) insert(rs []rune) {
	if len(rs) == 0 {
		return
	}
	text := make([]rune, 0, len(m.text)+len(rs))
	text = append(text, m.text[:m.cursor]...)
	text = append(text, rs...)
	text = append(text, m.text[m.cursor:]...)
	m.text = text
	m.cursor += len(rs)
}

// remove deletes the rune at i without touching the previous buffer, which
// earlier model values may still reference.
func (m *Model) remove(i int) {
	text := make([]rune, 0, len(m.text)-1)
	text = append(text, m.text[:i]...)
	text = append(text, m.text[i+1:]...)
	m.text = text
}

func (m *Model) setStatus(message string, kind statusKind) {
	m.status = message
	m.statusKind = kind
}

func lineStart(text []rune, pos int) int {
	for pos > 0 && text[pos-1] != '\n' {
		pos--
	}
	return pos
}

func lineEnd(text []rune, pos int) int {
	for pos < len(text) && text[pos] != '\n' {
		pos++
	}
	return pos
}

// charCount counts user-perceived characters after NFC composition, so a
// kana typed as base + combining voiced mark counts once.
func charCount(s string) int {
	return utf8.RuneCountInString(norm.NFC.String(s))
}

// humanWait renders d for the status line ("3 seconds").
func humanWait(d time.Duration) string {
	return strings.ToLower(units.HumanDuration(d))
}

// --- Commands ---

func copyFromActiveWindow(opts Options) tea.Cmd {
	return func() tea.Msg {
		if opts.Commands == nil {
			return copyResultMsg{err: fmt.Errorf("copy is not available")}
		}
		text, err := opts.Commands.Invoke(context.Background(), command.CopyFromActiveWindow)
		return copyResultMsg{text: text, err: err}
	}
}

func sendToClipboard(opts Options, text string) tea.Cmd {
	return func() tea.Msg {
		if opts.Clipboard == nil {
			return sentMsg{err: fmt.Errorf("clipboard is not available")}
		}
		if err := opts.Clipboard.WriteAll(text); err != nil {
			return sentMsg{err: err}
		}
		return sentMsg{chars: charCount(text)}
	}
}

func openURL(opts Options) tea.Cmd {
	return func() tea.Msg {
		if opts.Opener == nil || opts.URL == "" {
			return statusMsg{message: "Nothing to open", kind: statusError}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := opts.Opener.Open(ctx, opts.URL); err != nil {
			return statusMsg{message: "Open failed: " + err.Error(), kind: statusError}
		}
		return statusMsg{message: "Opened " + opts.URL, kind: statusInfo}
	}
}
