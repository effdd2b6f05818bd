package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sungur/minitext/internal/app"
	"github.com/sungur/minitext/internal/command"
	"github.com/sungur/minitext/internal/log"
	"github.com/sungur/minitext/internal/platform"
)

func newCopyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy all text from the window focused after the grace period",
		Long: `Waits for the grace period so you can click into the target window,
sends ctrl+a and ctrl+c with xdotool, and prints the clipboard read by xclip.`,
		Args: cobra.NoArgs,
		RunE: runCopy,
	}
	f := cmd.Flags()
	f.Duration("grace", 0, "Wait before select-all (default from config, 3s)")
	f.Duration("key-wait", 0, "Wait after each keystroke (default from config, 100ms)")
	return cmd
}

func runCopy(cmd *cobra.Command, _ []string) error {
	cfg := loadedConfig
	fs := cmd.Flags()
	if err := durationOverride(fs, "grace", &cfg.Timing.CopyFromWait); err != nil {
		return err
	}
	if err := durationOverride(fs, "key-wait", &cfg.Timing.KeyInputWait); err != nil {
		return err
	}

	if !platform.Supported() {
		log.Warnf("Window automation needs an X11 session (detected: %s)", platform.DetectDisplay())
	}

	var extra []app.Option
	if interactiveStderr() {
		extra = append(extra, app.WithSleep(countdownSleep(os.Stderr)))
	}
	a, err := newApp(cfg, extra...)
	if err != nil {
		return err
	}

	log.Statusf("Focus the target window. Copying in %s...", cfg.Timing.CopyFromWait)
	text, err := a.Commands.Invoke(cmd.Context(), command.CopyFromActiveWindow)
	if err != nil {
		return err
	}
	log.Write(text)
	return nil
}

// durationOverride copies a changed duration flag into dst. Negative values
// are rejected; zero disables the wait.
func durationOverride(fs *pflag.FlagSet, name string, dst *time.Duration) error {
	if !fs.Changed(name) {
		return nil
	}
	d, err := fs.GetDuration(name)
	if err != nil {
		return err
	}
	if d < 0 {
		return fmt.Errorf("--%s must not be negative", name)
	}
	*dst = d
	return nil
}
