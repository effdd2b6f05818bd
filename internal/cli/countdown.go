package cli

import (
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/sungur/minitext/internal/log"
)

// countdownTick is the progress bar resolution.
const countdownTick = 100 * time.Millisecond

// countdownSleep returns a sleep function that draws a progress bar on w for
// waits of at least a second (the grace period) and sleeps silently
// otherwise.
func countdownSleep(w io.Writer) func(time.Duration) {
	return func(d time.Duration) {
		if d < time.Second {
			time.Sleep(d)
			return
		}
		steps := int(d / countdownTick)
		bar := progressbar.NewOptions(steps,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription("focus the target window"),
			progressbar.OptionSetWidth(30),
			progressbar.OptionClearOnFinish(),
		)
		for i := 0; i < steps; i++ {
			time.Sleep(countdownTick)
			_ = bar.Add(1)
		}
		time.Sleep(d - time.Duration(steps)*countdownTick)
		_ = bar.Finish()
	}
}

// interactiveStderr reports whether progress output can be drawn.
func interactiveStderr() bool {
	return !log.IsQuiet() && term.IsTerminal(int(os.Stderr.Fd()))
}
