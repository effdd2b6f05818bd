package cli

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/sungur/minitext/internal/log"
)

func newSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <window-id> [text]",
		Short: "Paste text into a window",
		Long: `Loads text into the clipboard, activates the window (see "minitext windows"
for ids) and presses ctrl+v. Text is read from stdin when omitted.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runSend,
	}
}

func runSend(cmd *cobra.Command, args []string) error {
	windowID := args[0]

	var text string
	if len(args) == 2 {
		text = args[1]
	} else {
		var err error
		if text, err = readText(cmd.InOrStdin()); err != nil {
			return err
		}
	}

	a, err := newApp(loadedConfig)
	if err != nil {
		return err
	}
	if err := a.Orchestrator.SendToWindow(windowID, text); err != nil {
		return err
	}
	log.Successf("Sent %d chars to window %s", utf8.RuneCountInString(text), windowID)
	return nil
}

// readText reads all of r as UTF-8 text, dropping one trailing newline.
func readText(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("stdin is not valid UTF-8")
	}
	text := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(text, "\r"), nil
}
