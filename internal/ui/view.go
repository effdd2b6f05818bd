package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// --- Styles ---

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#5B41DF", Dark: "#7B61FF"}).
			MarginBottom(1)

	areaStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#888888", Dark: "#555555"}).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().Reverse(true)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFD700"})

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#008800", Dark: "#00FF00"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"})

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#888888", Dark: "#555555"}).
			MarginTop(1)
)

const minAreaWidth = 20

// --- View ---

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("minitext"))
	b.WriteString("\n")

	area := areaStyle
	if m.width > minAreaWidth+4 {
		area = area.Width(m.width - 4)
	}
	b.WriteString(area.Render(m.renderText()))
	b.WriteString("\n")

	b.WriteString(m.renderStatus())
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("ctrl+s:send to clipboard  ctrl+g:copy from window  ctrl+l:clear  ctrl+o:help  esc:quit"))

	return b.String()
}

func (m Model) renderText() string {
	if len(m.text) == 0 {
		return cursorStyle.Render(" ") + placeholderStyle.Render("Type here (IME input supported)")
	}

	before := string(m.text[:m.cursor])
	at := " "
	after := ""
	if m.cursor < len(m.text) {
		at = string(m.text[m.cursor])
		after = string(m.text[m.cursor+1:])
	}
	// A newline under the cursor keeps its line break after the marker.
	if at == "\n" {
		return before + cursorStyle.Render(" ") + "\n" + after
	}
	return before + cursorStyle.Render(at) + after
}

func (m Model) renderStatus() string {
	line := "Status: " + m.status
	switch m.statusKind {
	case statusSuccess:
		return successStyle.Render(line)
	case statusError:
		return errorStyle.Render(line)
	default:
		return infoStyle.Render(line)
	}
}
