// Package runner runs external tools and classifies their failures.
//
// Every desktop interaction in minitext is an external process (xdotool,
// xclip, xdg-open). Callers depend on the Runner interface so the orchestration
// can be exercised with a fake instead of a real X session.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/sungur/minitext/internal/log"
)

// DefaultTimeout bounds a single external process.
const DefaultTimeout = 10 * time.Second

// Command describes one external process invocation.
type Command struct {
	Step  string    // protocol step the process belongs to (e.g. "select-all")
	Name  string    // binary name or path
	Args  []string  // arguments, no shell expansion
	Stdin io.Reader // optional standard input
}

// String renders the command line for logs, quoted so it can be pasted into
// a shell.
func (c Command) String() string {
	return shellquote.Join(append([]string{c.Name}, c.Args...)...)
}

// Result is the outcome of a process that was launched.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
	TimedOut bool
}

// Runner launches a command, waits for it, and collects its output.
// A non-nil error means the process could not be started; a process that
// started and failed is reported through Result.ExitCode.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Timeout bounds each process. Zero means DefaultTimeout.
	Timeout time.Duration
}

// NewExecRunner returns an ExecRunner with the given per-process timeout.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{Timeout: timeout}
}

// Run starts the process and blocks until it exits or the timeout elapses.
func (r *ExecRunner) Run(ctx context.Context, c Command) (Result, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log.Debugf("run [%s]: %s", c.Step, c)
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	// Grandchildren holding the output pipes must not outlive the timeout.
	cmd.WaitDelay = time.Second
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if c.Stdin != nil {
		cmd.Stdin = c.Stdin
	}

	if err := cmd.Start(); err != nil {
		return Result{ExitCode: -1}, err
	}
	waitErr := cmd.Wait()

	res := Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		TimedOut: errors.Is(ctx.Err(), context.DeadlineExceeded),
	}

	switch {
	case res.TimedOut:
		res.ExitCode = -1
	case waitErr != nil:
		var ee *exec.ExitError
		if errors.As(waitErr, &ee) {
			res.ExitCode = ee.ExitCode()
		} else {
			res.ExitCode = 1
		}
	default:
		res.ExitCode = cmd.ProcessState.ExitCode()
	}
	return res, nil
}

// LaunchError reports a tool that could not be started (missing binary,
// permission failure).
type LaunchError struct {
	Step string
	Tool string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("%s: failed to launch %s: %v", e.Step, e.Tool, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// ExecutionError reports a tool that started but exited unsuccessfully.
type ExecutionError struct {
	Step     string
	Tool     string
	ExitCode int
	Stderr   string
	TimedOut bool
}

func (e *ExecutionError) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("%s: %s timed out", e.Step, e.Tool)
	}
	if e.Stderr == "" {
		return fmt.Sprintf("%s: %s exited with status %d", e.Step, e.Tool, e.ExitCode)
	}
	return fmt.Sprintf("%s: %s exited with status %d: %s", e.Step, e.Tool, e.ExitCode, e.Stderr)
}

// Output runs cmd and returns its stdout, converting launch failures to
// *LaunchError and unsuccessful exits to *ExecutionError.
func Output(ctx context.Context, r Runner, cmd Command) ([]byte, error) {
	res, err := r.Run(ctx, cmd)
	if err != nil {
		return nil, &LaunchError{Step: cmd.Step, Tool: cmd.Name, Err: err}
	}
	if res.TimedOut || res.ExitCode != 0 {
		return nil, &ExecutionError{
			Step:     cmd.Step,
			Tool:     cmd.Name,
			ExitCode: res.ExitCode,
			Stderr:   strings.TrimSpace(string(res.Stderr)),
			TimedOut: res.TimedOut,
		}
	}
	return res.Stdout, nil
}

// IsLaunchError reports whether err is, or wraps, a *LaunchError.
func IsLaunchError(err error) bool {
	var le *LaunchError
	return errors.As(err, &le)
}
