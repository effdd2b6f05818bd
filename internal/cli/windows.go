package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sungur/minitext/internal/command"
	"github.com/sungur/minitext/internal/log"
	"github.com/sungur/minitext/internal/xdo"
)

func newWindowsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "windows",
		Short: "List visible windows",
		Args:  cobra.NoArgs,
		RunE:  runWindows,
	}
	cmd.Flags().Bool("json", false, "Print the list as JSON")
	return cmd
}

func runWindows(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	a, err := newApp(loadedConfig)
	if err != nil {
		return err
	}
	payload, err := a.Commands.Invoke(cmd.Context(), command.ListWindows)
	if err != nil {
		return err
	}
	if asJSON {
		log.Raw(payload)
		return nil
	}

	var windows []xdo.Window
	if err := json.Unmarshal([]byte(payload), &windows); err != nil {
		return fmt.Errorf("decode window list: %w", err)
	}
	if len(windows) == 0 {
		log.Dim("No visible windows")
		return nil
	}
	for _, line := range formatWindows(windows) {
		log.Raw(line)
	}
	return nil
}

// formatWindows renders one line per window with the ids right-aligned.
func formatWindows(windows []xdo.Window) []string {
	width := 0
	for _, w := range windows {
		width = max(width, len(w.ID))
	}
	lines := make([]string, 0, len(windows))
	for _, w := range windows {
		lines = append(lines, fmt.Sprintf("%*s  %s", width, w.ID, w.Title))
	}
	return lines
}
