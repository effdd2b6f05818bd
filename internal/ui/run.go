package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sungur/minitext/internal/log"
)

// Run starts the interactive front end. It blocks until the user quits or an
// unrecoverable error occurs. Log output is discarded while the UI owns the
// terminal.
func Run(opts Options) error {
	restore := log.SetOutput(nil, nil)
	defer restore()

	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ui error: %w", err)
	}
	return nil
}
