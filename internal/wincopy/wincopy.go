// Package wincopy moves text between minitext and whatever window holds the
// desktop focus by driving the automation and clipboard tools in a fixed,
// timed sequence.
//
// The desktop focus and the clipboard are shared with the user and every
// other program, so an Orchestrator serializes its own sequences: a second
// caller waits until the running sequence finishes, then runs its own in full
// (including its own grace period).
package wincopy

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sungur/minitext/internal/log"
	"github.com/sungur/minitext/internal/xdo"
)

// Protocol step names, used in errors and logs.
const (
	StepSelectAll     = "select-all"
	StepCopy          = "copy"
	StepClipboardRead = "clipboard-read"

	StepClipboardWrite = "clipboard-write"
	StepActivate       = "activate"
	StepPaste          = "paste"
)

// Default delays.
const (
	DefaultGrace        = 3 * time.Second
	DefaultKeyDelay     = 100 * time.Millisecond
	DefaultActivateWait = 300 * time.Millisecond
)

// ErrEmptyText is returned by SendToWindow for blank input.
var ErrEmptyText = errors.New("text is empty")

// Delays are the fixed waits between protocol steps.
type Delays struct {
	Grace          time.Duration // before select-all, for the user to focus the target
	AfterSelectAll time.Duration // before copy
	AfterCopy      time.Duration // before the clipboard read
	AfterActivate  time.Duration // between window activation and paste
}

// DefaultDelays returns the standard timing: 3s grace, 100ms key delays and a
// 300ms activation wait.
func DefaultDelays() Delays {
	return Delays{
		Grace:          DefaultGrace,
		AfterSelectAll: DefaultKeyDelay,
		AfterCopy:      DefaultKeyDelay,
		AfterActivate:  DefaultActivateWait,
	}
}

// Total returns the minimum wall time of a successful copy sequence.
func (d Delays) Total() time.Duration {
	return d.Grace + d.AfterSelectAll + d.AfterCopy
}

// KeySender synthesizes key combinations and activates windows.
type KeySender interface {
	Key(ctx context.Context, step, combo string) error
	Activate(ctx context.Context, step, windowID string) error
}

// ClipboardTool reads and writes the clipboard selection.
type ClipboardTool interface {
	ReadText(ctx context.Context, step string) (string, error)
	WriteText(ctx context.Context, step, text string) error
}

// Orchestrator runs the copy and send sequences.
type Orchestrator struct {
	keys   KeySender
	clip   ClipboardTool
	delays Delays
	sleep  func(time.Duration)

	mu sync.Mutex
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithDelays overrides the default delays.
func WithDelays(d Delays) Option {
	return func(o *Orchestrator) { o.delays = d }
}

// WithSleep replaces time.Sleep, e.g. with a fake clock in tests.
func WithSleep(sleep func(time.Duration)) Option {
	return func(o *Orchestrator) { o.sleep = sleep }
}

// New returns an Orchestrator using keys and clip.
func New(keys KeySender, clip ClipboardTool, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		keys:   keys,
		clip:   clip,
		delays: DefaultDelays(),
		sleep:  time.Sleep,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Delays returns the configured delays.
func (o *Orchestrator) Delays() Delays { return o.delays }

// CopyFromActiveWindow waits the grace period, selects everything in the
// focused window, copies it, and returns the clipboard text.
//
// The first failing step aborts the sequence. Failures are
// *runner.LaunchError, *runner.ExecutionError or *clipboard.DecodeError, each
// naming the step. The call cannot be cancelled once started.
func (o *Orchestrator) CopyFromActiveWindow() (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	ctx := context.Background()

	log.Debugf("copy: waiting %s for the target window", o.delays.Grace)
	o.wait(o.delays.Grace)

	log.Debug("copy: " + StepSelectAll)
	if err := o.keys.Key(ctx, StepSelectAll, xdo.SelectAll); err != nil {
		return "", err
	}
	o.wait(o.delays.AfterSelectAll)

	log.Debug("copy: " + StepCopy)
	if err := o.keys.Key(ctx, StepCopy, xdo.Copy); err != nil {
		return "", err
	}
	o.wait(o.delays.AfterCopy)

	log.Debug("copy: " + StepClipboardRead)
	text, err := o.clip.ReadText(ctx, StepClipboardRead)
	if err != nil {
		return "", err
	}

	log.Debugf("copy: read %d bytes", len(text))
	return text, nil
}

// SendToWindow puts text on the clipboard, activates the window and pastes.
func (o *Orchestrator) SendToWindow(windowID, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	ctx := context.Background()

	log.Debug("send: " + StepClipboardWrite)
	if err := o.clip.WriteText(ctx, StepClipboardWrite, text); err != nil {
		return err
	}

	log.Debugf("send: %s %s", StepActivate, windowID)
	if err := o.keys.Activate(ctx, StepActivate, windowID); err != nil {
		return err
	}
	o.wait(o.delays.AfterActivate)

	log.Debug("send: " + StepPaste)
	return o.keys.Key(ctx, StepPaste, xdo.Paste)
}

func (o *Orchestrator) wait(d time.Duration) {
	if d > 0 {
		o.sleep(d)
	}
}
