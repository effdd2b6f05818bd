// Package clipboard reads and writes the X11 CLIPBOARD selection.
//
// The Tool type drives xclip through a runner so every access is a fully
// awaited process. System is the in-process clipboard capability handed to
// the front end.
package clipboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/sungur/minitext/internal/platform"
	"github.com/sungur/minitext/internal/runner"
)

// Tool wraps the clipboard binary.
type Tool struct {
	r   runner.Runner
	bin string
}

// New returns a Tool running bin through r. An empty bin means xclip.
func New(r runner.Runner, bin string) *Tool {
	if bin == "" {
		bin = platform.ClipboardTool
	}
	return &Tool{r: r, bin: bin}
}

// Binary returns the clipboard binary name.
func (t *Tool) Binary() string { return t.bin }

// ReadText prints the clipboard selection and returns it as text.
// Output that is not valid UTF-8 yields a *DecodeError. An empty clipboard
// is not an error.
func (t *Tool) ReadText(ctx context.Context, step string) (string, error) {
	out, err := runner.Output(ctx, t.r, runner.Command{
		Step: step,
		Name: t.bin,
		Args: platform.ClipboardReadArgs(),
	})
	if err != nil {
		return "", err
	}
	return Decode(step, out)
}

// WriteText loads text into the clipboard selection.
func (t *Tool) WriteText(ctx context.Context, step, text string) error {
	_, err := runner.Output(ctx, t.r, runner.Command{
		Step:  step,
		Name:  t.bin,
		Args:  platform.ClipboardWriteArgs(),
		Stdin: strings.NewReader(text),
	})
	if err != nil {
		return fmt.Errorf("clipboard write failed: %w", err)
	}
	return nil
}
