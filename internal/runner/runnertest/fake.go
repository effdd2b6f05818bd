// Package runnertest provides a scripted runner.Runner for tests.
package runnertest

import (
	"context"
	"io"
	"sync"

	"github.com/sungur/minitext/internal/runner"
)

// Call records one command handed to the fake.
type Call struct {
	Step  string
	Name  string
	Args  []string
	Stdin string
}

type response struct {
	res runner.Result
	err error
}

// Fake is a runner.Runner returning scripted results keyed by step.
// Steps without a script succeed with empty output.
type Fake struct {
	// OnRun, if set, is called for every command before the scripted
	// response is returned (while the command counts as in flight).
	OnRun func(cmd runner.Command)

	// Handler, if set, answers commands whose step has no script.
	Handler func(cmd runner.Command) (runner.Result, error)

	mu          sync.Mutex
	calls       []Call
	scripts     map[string]response
	inFlight    int
	maxInFlight int
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{scripts: make(map[string]response)}
}

// Succeed scripts step to exit 0 with the given stdout.
func (f *Fake) Succeed(step string, stdout []byte) *Fake {
	return f.script(step, runner.Result{Stdout: stdout}, nil)
}

// Fail scripts step to exit with code and stderr.
func (f *Fake) Fail(step string, code int, stderr string) *Fake {
	return f.script(step, runner.Result{ExitCode: code, Stderr: []byte(stderr)}, nil)
}

// LaunchFail scripts step to fail before the process starts.
func (f *Fake) LaunchFail(step string, err error) *Fake {
	return f.script(step, runner.Result{ExitCode: -1}, err)
}

func (f *Fake) script(step string, res runner.Result, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scripts[step] = response{res: res, err: err}
	return f
}

// Run implements runner.Runner.
func (f *Fake) Run(_ context.Context, cmd runner.Command) (runner.Result, error) {
	call := Call{Step: cmd.Step, Name: cmd.Name, Args: append([]string(nil), cmd.Args...)}
	if cmd.Stdin != nil {
		data, _ := io.ReadAll(cmd.Stdin)
		call.Stdin = string(data)
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	resp, scripted := f.scripts[cmd.Step]
	f.mu.Unlock()

	if !scripted && f.Handler != nil {
		resp.res, resp.err = f.Handler(cmd)
	}

	if f.OnRun != nil {
		f.OnRun(cmd)
	}

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()
	return resp.res, resp.err
}

// Calls returns a copy of the recorded calls in order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Steps returns the step names of the recorded calls in order.
func (f *Fake) Steps() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	steps := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		steps = append(steps, c.Step)
	}
	return steps
}

// MaxInFlight returns the highest number of concurrently running commands seen.
func (f *Fake) MaxInFlight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxInFlight
}
