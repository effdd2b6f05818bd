package app

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/sungur/minitext/internal/command"
	"github.com/sungur/minitext/internal/config"
	"github.com/sungur/minitext/internal/runner"
	"github.com/sungur/minitext/internal/runner/runnertest"
	"github.com/sungur/minitext/internal/wincopy"
	"github.com/sungur/minitext/internal/xdo"
)

type memClipboard struct{ text string }

func (m *memClipboard) ReadAll() (string, error) { return m.text, nil }
func (m *memClipboard) WriteAll(text string) error { m.text = text; return nil }

func newTestApp(t *testing.T, fake *runnertest.Fake, cfg config.Config) *App {
	t.Helper()
	a, err := New(cfg,
		WithRunner(fake),
		WithSleep(func(time.Duration) {}),
		WithPlugins(ClipboardManager(&memClipboard{}), URLOpener()),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return a
}

func TestNewWiresComponents(t *testing.T) {
	a := newTestApp(t, runnertest.New(), config.Defaults())

	if got := a.Plugins(); !reflect.DeepEqual(got, []string{"clipboard-manager", "opener"}) {
		t.Errorf("Plugins() = %v", got)
	}
	if a.SystemClipboard == nil || a.Opener == nil {
		t.Error("plugins should publish clipboard and opener capabilities")
	}
	want := []string{command.CheckDependencies, command.CopyFromActiveWindow, command.ListWindows}
	if got := a.Commands.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Commands = %v, want %v", got, want)
	}
	if got := a.RequiredTools(); !reflect.DeepEqual(got, []string{"xdotool", "xclip"}) {
		t.Errorf("RequiredTools() = %v", got)
	}
}

func TestDelaysFromConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Timing.KeyInputWait = 250 * time.Millisecond

	got := DelaysFromConfig(cfg)
	want := wincopy.Delays{
		Grace:          3 * time.Second,
		AfterSelectAll: 250 * time.Millisecond,
		AfterCopy:      250 * time.Millisecond,
		AfterActivate:  300 * time.Millisecond,
	}
	if got != want {
		t.Errorf("DelaysFromConfig() = %+v, want %+v", got, want)
	}
}

func TestInvokeCopyFromActiveWindow(t *testing.T) {
	fake := runnertest.New().Succeed(wincopy.StepClipboardRead, []byte("hello world"))
	a := newTestApp(t, fake, config.Defaults())

	got, err := a.Commands.Invoke(context.Background(), command.CopyFromActiveWindow)
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if got != "hello world" {
		t.Errorf("Invoke() = %q, want %q", got, "hello world")
	}
}

func TestInvokeCopyFromActiveWindowError(t *testing.T) {
	fake := runnertest.New().Fail(wincopy.StepSelectAll, 1, "no window")
	a := newTestApp(t, fake, config.Defaults())

	_, err := a.Commands.Invoke(context.Background(), command.CopyFromActiveWindow)
	var cerr *command.Error
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want *command.Error", err)
	}
	if !strings.Contains(cerr.Message, "no window") || !strings.Contains(cerr.Message, "select-all") {
		t.Errorf("Message = %q, want step and stderr", cerr.Message)
	}
	var ee *runner.ExecutionError
	if !errors.As(err, &ee) {
		t.Error("command error should unwrap to *runner.ExecutionError")
	}
	if steps := fake.Steps(); !reflect.DeepEqual(steps, []string{wincopy.StepSelectAll}) {
		t.Errorf("steps = %v", steps)
	}
}

func TestInvokeListWindows(t *testing.T) {
	fake := runnertest.New().Succeed("window-search", []byte("7\n"))
	fake.Handler = func(cmd runner.Command) (runner.Result, error) {
		return runner.Result{Stdout: []byte("メモ帳\n")}, nil
	}
	a := newTestApp(t, fake, config.Defaults())

	payload, err := a.Commands.Invoke(context.Background(), command.ListWindows)
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	var windows []xdo.Window
	if err := json.Unmarshal([]byte(payload), &windows); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if !reflect.DeepEqual(windows, []xdo.Window{{ID: "7", Title: "メモ帳"}}) {
		t.Errorf("windows = %+v", windows)
	}
}

func TestInvokeListWindowsEmpty(t *testing.T) {
	fake := runnertest.New().Fail("window-search", 1, "")
	a := newTestApp(t, fake, config.Defaults())

	payload, err := a.Commands.Invoke(context.Background(), command.ListWindows)
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if payload != "[]" {
		t.Errorf("payload = %q, want []", payload)
	}
}

func TestInvokeCheckDependencies(t *testing.T) {
	t.Run("all present", func(t *testing.T) {
		cfg := config.Defaults()
		cfg.Tools.Automation = "go"
		cfg.Tools.Clipboard = "go"
		a := newTestApp(t, runnertest.New(), cfg)

		if _, err := a.Commands.Invoke(context.Background(), command.CheckDependencies); err != nil {
			t.Errorf("Invoke() error = %v", err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		cfg := config.Defaults()
		cfg.Tools.Automation = "minitext_missing_xdotool"
		cfg.Tools.Clipboard = "go"
		a := newTestApp(t, runnertest.New(), cfg)

		_, err := a.Commands.Invoke(context.Background(), command.CheckDependencies)
		if err == nil || !strings.Contains(err.Error(), "minitext_missing_xdotool") {
			t.Errorf("error = %v, want missing tool named", err)
		}
	})
}

type failingPlugin struct{}

func (failingPlugin) Name() string { return "broken" }
func (failingPlugin) Init(a *App) error { return errors.New("boom") }

func TestNewPluginFailure(t *testing.T) {
	_, err := New(config.Defaults(), WithRunner(runnertest.New()), WithPlugins(URLOpener(), failingPlugin{}))
	if err == nil || !strings.Contains(err.Error(), "plugin broken: boom") {
		t.Errorf("New() error = %v, want plugin failure", err)
	}
}

func TestClipboardManagerRequiresCapability(t *testing.T) {
	_, err := New(config.Defaults(), WithRunner(runnertest.New()), WithPlugins(ClipboardManager(nil)))
	if err == nil {
		t.Error("New() should fail without a clipboard capability")
	}
}
