package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Capability is the clipboard access offered to the front end, independent
// of the window-copy protocol.
type Capability interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// System is the desktop clipboard through github.com/atotto/clipboard.
type System struct{}

// Available reports whether a clipboard backend (xclip, xsel, wl-clipboard)
// was found.
func (System) Available() bool {
	return !clipboard.Unsupported
}

// ReadAll returns the clipboard text.
func (s System) ReadAll() (string, error) {
	if !s.Available() {
		return "", fmt.Errorf("no clipboard utility found (install xclip or xsel)")
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("clipboard read failed: %w", err)
	}
	return text, nil
}

// WriteAll replaces the clipboard text.
func (s System) WriteAll(text string) error {
	if !s.Available() {
		return fmt.Errorf("no clipboard utility found (install xclip or xsel)")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard write failed: %w", err)
	}
	return nil
}
