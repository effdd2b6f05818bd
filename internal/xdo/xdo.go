// Package xdo drives xdotool: synthetic key combinations, window search and
// window activation against the current X display.
package xdo

import (
	"context"
	"fmt"
	"strings"

	"github.com/sungur/minitext/internal/log"
	"github.com/sungur/minitext/internal/platform"
	"github.com/sungur/minitext/internal/runner"
)

// Common key combinations.
const (
	SelectAll = "ctrl+a"
	Copy      = "ctrl+c"
	Paste     = "ctrl+v"
)

// Window is a visible top-level window.
type Window struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Tool wraps the automation binary.
type Tool struct {
	r   runner.Runner
	bin string
}

// New returns a Tool running bin through r. An empty bin means xdotool.
func New(r runner.Runner, bin string) *Tool {
	if bin == "" {
		bin = platform.AutomationTool
	}
	return &Tool{r: r, bin: bin}
}

// Binary returns the automation binary name.
func (t *Tool) Binary() string { return t.bin }

// Key sends combo (e.g. "ctrl+a") to the focused window. step names the
// protocol step for error reporting.
func (t *Tool) Key(ctx context.Context, step, combo string) error {
	_, err := runner.Output(ctx, t.r, runner.Command{
		Step: step,
		Name: t.bin,
		Args: []string{"key", combo},
	})
	return err
}

// Activate raises and focuses the window, waiting until the window manager
// reports it active.
func (t *Tool) Activate(ctx context.Context, step, windowID string) error {
	if strings.TrimSpace(windowID) == "" {
		return fmt.Errorf("%s: window id is empty", step)
	}
	_, err := runner.Output(ctx, t.r, runner.Command{
		Step: step,
		Name: t.bin,
		Args: []string{"windowactivate", "--sync", windowID},
	})
	return err
}

// Search returns the ids of visible windows with a non-empty name.
func (t *Tool) Search(ctx context.Context) ([]string, error) {
	out, err := runner.Output(ctx, t.r, runner.Command{
		Step: "window-search",
		Name: t.bin,
		Args: []string{"search", "--onlyvisible", "--name", "."},
	})
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, line := range strings.Split(string(out), "\n") {
		if id := strings.TrimSpace(line); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// WindowName returns the title of the window.
func (t *Tool) WindowName(ctx context.Context, windowID string) (string, error) {
	out, err := runner.Output(ctx, t.r, runner.Command{
		Step: "window-name",
		Name: t.bin,
		Args: []string{"getwindowname", windowID},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ListWindows returns visible windows that have a title.
//
// A failed search yields an empty list rather than an error; windows whose
// name cannot be read are skipped.
func (t *Tool) ListWindows(ctx context.Context) []Window {
	ids, err := t.Search(ctx)
	if err != nil {
		log.Debugf("window search failed: %v", err)
		return nil
	}

	var windows []Window
	for _, id := range ids {
		title, err := t.WindowName(ctx, id)
		if err != nil {
			log.Debugf("skipping window %s: %v", id, err)
			continue
		}
		if title == "" {
			continue
		}
		windows = append(windows, Window{ID: id, Title: title})
	}
	return windows
}
