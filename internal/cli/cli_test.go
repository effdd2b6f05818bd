package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/sungur/minitext/internal/app"
	"github.com/sungur/minitext/internal/config"
	"github.com/sungur/minitext/internal/log"
	"github.com/sungur/minitext/internal/runner"
	"github.com/sungur/minitext/internal/runner/runnertest"
	"github.com/sungur/minitext/internal/wincopy"
	"github.com/sungur/minitext/internal/xdo"
)

type memClipboard struct{ text string }

func (m *memClipboard) ReadAll() (string, error) { return m.text, nil }

func (m *memClipboard) WriteAll(text string) error {
	m.text = text
	return nil
}

type output struct {
	stdout string
	stderr string
}

// execute runs a fresh root command against fake tools with an isolated
// config directory.
func execute(t *testing.T, fake *runnertest.Fake, stdin string, extra []app.Option, args ...string) (output, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.Env.ConfigPath, "")
	t.Setenv(config.Env.Debug, "")

	prev := appOptions
	appOptions = append([]app.Option{
		app.WithRunner(fake),
		app.WithSleep(func(time.Duration) {}),
		app.WithPlugins(app.ClipboardManager(&memClipboard{}), app.URLOpener()),
	}, extra...)
	t.Cleanup(func() { appOptions = prev })

	var out, errOut bytes.Buffer
	restore := log.SetOutput(&out, &errOut)
	t.Cleanup(restore)
	t.Cleanup(log.DisableQuietMode)

	if args == nil {
		args = []string{} // nil would make cobra fall back to os.Args
	}
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.ExecuteContext(context.Background())
	return output{stdout: out.String(), stderr: errOut.String()}, err
}

func TestCopyCommand(t *testing.T) {
	fake := runnertest.New().Succeed(wincopy.StepClipboardRead, []byte("hello world"))

	out, err := execute(t, fake, "", nil, "copy")
	if err != nil {
		t.Fatalf("copy error = %v", err)
	}
	if out.stdout != "hello world" {
		t.Errorf("stdout = %q, want %q", out.stdout, "hello world")
	}
	if !strings.Contains(out.stderr, "Copying in 3s") {
		t.Errorf("stderr should announce the grace period: %q", out.stderr)
	}
	want := []string{wincopy.StepSelectAll, wincopy.StepCopy, wincopy.StepClipboardRead}
	if got := fake.Steps(); !reflect.DeepEqual(got, want) {
		t.Errorf("steps = %v, want %v", got, want)
	}
}

func TestCopyCommandFailure(t *testing.T) {
	fake := runnertest.New().Fail(wincopy.StepSelectAll, 1, "no window")

	out, err := execute(t, fake, "", nil, "copy")
	if err == nil || !strings.Contains(err.Error(), "no window") {
		t.Fatalf("copy error = %v, want one mentioning the stderr", err)
	}
	var ee *runner.ExecutionError
	if !errors.As(err, &ee) || ee.Step != wincopy.StepSelectAll {
		t.Errorf("error should unwrap to an ExecutionError for select-all, got %#v", err)
	}
	if out.stdout != "" {
		t.Errorf("nothing should be printed on failure, got %q", out.stdout)
	}
	if got := fake.Steps(); !reflect.DeepEqual(got, []string{wincopy.StepSelectAll}) {
		t.Errorf("steps = %v", got)
	}
}

func TestCopyFlags(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantSleeps []time.Duration
		wantErr    bool
	}{
		{"defaults", []string{"copy"}, []time.Duration{3 * time.Second, 100 * time.Millisecond, 100 * time.Millisecond}, false},
		{"custom grace", []string{"copy", "--grace", "5s"}, []time.Duration{5 * time.Second, 100 * time.Millisecond, 100 * time.Millisecond}, false},
		{"no waits", []string{"copy", "--grace", "0", "--key-wait", "0"}, nil, false},
		{"negative grace", []string{"copy", "--grace", "-1s"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sleeps []time.Duration
			record := app.WithSleep(func(d time.Duration) { sleeps = append(sleeps, d) })

			_, err := execute(t, runnertest.New(), "", []app.Option{record}, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(sleeps, tt.wantSleeps) {
				t.Errorf("sleeps = %v, want %v", sleeps, tt.wantSleeps)
			}
		})
	}
}

func TestSendCommand(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		stdin     string
		wantInput string
	}{
		{"text argument", []string{"send", "123", "こんにちは"}, "", "こんにちは"},
		{"text from stdin", []string{"send", "123"}, "hello\n", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := runnertest.New()
			out, err := execute(t, fake, tt.stdin, nil, tt.args...)
			if err != nil {
				t.Fatalf("send error = %v", err)
			}

			calls := fake.Calls()
			if len(calls) != 3 {
				t.Fatalf("got %d calls, want 3: %v", len(calls), fake.Steps())
			}
			if calls[0].Step != wincopy.StepClipboardWrite || calls[0].Stdin != tt.wantInput {
				t.Errorf("first call = %+v, want clipboard write of %q", calls[0], tt.wantInput)
			}
			if !reflect.DeepEqual(calls[1].Args, []string{"windowactivate", "--sync", "123"}) {
				t.Errorf("activate args = %v", calls[1].Args)
			}
			if !reflect.DeepEqual(calls[2].Args, []string{"key", xdo.Paste}) {
				t.Errorf("paste args = %v", calls[2].Args)
			}
			if !strings.Contains(out.stdout, "to window 123") {
				t.Errorf("stdout = %q", out.stdout)
			}
		})
	}
}

func TestSendEmptyText(t *testing.T) {
	fake := runnertest.New()
	_, err := execute(t, fake, "", nil, "send", "123", "  ")
	if !errors.Is(err, wincopy.ErrEmptyText) {
		t.Errorf("error = %v, want ErrEmptyText", err)
	}
	if len(fake.Calls()) != 0 {
		t.Errorf("no tools should run for empty text, got %v", fake.Steps())
	}
}

func TestSendArgs(t *testing.T) {
	if _, err := execute(t, runnertest.New(), "", nil, "send"); err == nil {
		t.Error("send without a window id should fail")
	}
}

func windowFake() *runnertest.Fake {
	fake := runnertest.New().Succeed("window-search", []byte("4194311\n12\n99\n"))
	titles := map[string]string{"4194311": "Terminal", "12": "テキストエディタ", "99": ""}
	fake.Handler = func(cmd runner.Command) (runner.Result, error) {
		if cmd.Step != "window-name" {
			return runner.Result{}, nil
		}
		return runner.Result{Stdout: []byte(titles[cmd.Args[len(cmd.Args)-1]] + "\n")}, nil
	}
	return fake
}

func TestWindowsCommand(t *testing.T) {
	out, err := execute(t, windowFake(), "", nil, "windows")
	if err != nil {
		t.Fatalf("windows error = %v", err)
	}
	want := "4194311  Terminal\n     12  テキストエディタ\n"
	if out.stdout != want {
		t.Errorf("stdout = %q, want %q", out.stdout, want)
	}
}

func TestWindowsJSON(t *testing.T) {
	out, err := execute(t, windowFake(), "", nil, "windows", "--json")
	if err != nil {
		t.Fatalf("windows error = %v", err)
	}
	want := `[{"id":"4194311","title":"Terminal"},{"id":"12","title":"テキストエディタ"}]` + "\n"
	if out.stdout != want {
		t.Errorf("stdout = %q, want %q", out.stdout, want)
	}
}

func TestWindowsEmpty(t *testing.T) {
	fake := runnertest.New().Fail("window-search", 1, "")
	out, err := execute(t, fake, "", nil, "windows")
	if err != nil {
		t.Fatalf("windows error = %v", err)
	}
	if !strings.Contains(out.stdout, "No visible windows") {
		t.Errorf("stdout = %q", out.stdout)
	}
}

func TestDoctor(t *testing.T) {
	tests := []struct {
		name    string
		tools   string
		wantErr string
	}{
		{"tools present", "sh", ""},
		{"tool missing", "minitext_missing_tool", "missing tools: minitext_missing_tool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			content := "tools:\n  automation: " + tt.tools + "\n  clipboard: " + tt.tools + "\n"
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}

			out, err := execute(t, runnertest.New(), "", nil, "doctor", "--config", path)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("doctor error = %v", err)
				}
				if !strings.Contains(out.stdout, "all tools available") {
					t.Errorf("stdout = %q", out.stdout)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("doctor error = %v, want %q", err, tt.wantErr)
			}
			if !strings.Contains(out.stdout, path) {
				t.Errorf("report should name the config file: %q", out.stdout)
			}
		})
	}
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := execute(t, runnertest.New(), "", nil, "config", "path", "--config", path)
	if err != nil || strings.TrimSpace(out.stdout) != path {
		t.Fatalf("config path = %q, %v", out.stdout, err)
	}

	if _, err := execute(t, runnertest.New(), "", nil, "config", "init", "--config", path); err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	if _, err := execute(t, runnertest.New(), "", nil, "config", "init", "--config", path); err == nil {
		t.Error("config init should refuse to overwrite")
	}
	if _, err := execute(t, runnertest.New(), "", nil, "config", "init", "--force", "--config", path); err != nil {
		t.Errorf("config init --force error = %v", err)
	}

	out, err = execute(t, runnertest.New(), "", nil, "config", "show", "--config", path)
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	for _, want := range []string{"copyFromWait: 3s", "keyInputWait: 100ms", "automation: xdotool"} {
		if !strings.Contains(out.stdout, want) {
			t.Errorf("config show missing %q:\n%s", want, out.stdout)
		}
	}
}

func TestRootRunsUI(t *testing.T) {
	prev := uiRunner
	t.Cleanup(func() { uiRunner = prev })

	var got *app.App
	RegisterUIRunner(func(a *app.App) error {
		got = a
		return nil
	})

	if _, err := execute(t, runnertest.New(), "", nil); err != nil {
		t.Fatalf("root error = %v", err)
	}
	if got == nil || got.Orchestrator == nil {
		t.Fatal("root command should hand a wired app to the UI runner")
	}
	if got.Orchestrator.Delays().Grace != config.DefaultCopyFromWait {
		t.Errorf("grace = %s", got.Orchestrator.Delays().Grace)
	}
}

func TestRootWithoutUI(t *testing.T) {
	prev := uiRunner
	uiRunner = nil
	t.Cleanup(func() { uiRunner = prev })

	if _, err := execute(t, runnertest.New(), "", nil); err == nil {
		t.Error("root without a registered UI should fail")
	}
}

func TestQuietSuppressesOutput(t *testing.T) {
	fake := runnertest.New().Succeed(wincopy.StepClipboardRead, []byte("secret"))
	out, err := execute(t, fake, "", nil, "copy", "-q")
	if err != nil {
		t.Fatalf("copy error = %v", err)
	}
	if out.stdout != "" || out.stderr != "" {
		t.Errorf("quiet mode printed %q / %q", out.stdout, out.stderr)
	}
}

func TestApplyLogFlags(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		cfgDebug  int
		wantLevel log.LogLevel
		wantQuiet bool
	}{
		{"default", nil, 0, log.LevelInfo, false},
		{"debug flag", []string{"-d"}, 0, log.LevelDebug, false},
		{"debug from config", nil, 1, log.LevelDebug, false},
		{"flag overrides config", []string{"--debug=0"}, 2, log.LevelInfo, false},
		{"quiet", []string{"-q", "-d"}, 0, log.LevelSilent, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(log.DisableQuietMode)

			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			fs.BoolP("quiet", "q", false, "")
			fs.CountP("debug", "d", "")
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("parse: %v", err)
			}

			applyLogFlags(fs, config.Config{Debug: tt.cfgDebug})
			if got := log.GetLevel(); got != tt.wantLevel {
				t.Errorf("level = %v, want %v", got, tt.wantLevel)
			}
			if got := log.IsQuiet(); got != tt.wantQuiet {
				t.Errorf("quiet = %v, want %v", got, tt.wantQuiet)
			}
		})
	}
}

func TestDurationOverride(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Duration("grace", 0, "")
	fs.Duration("key-wait", 0, "")
	if err := fs.Parse([]string{"--grace", "750ms"}); err != nil {
		t.Fatal(err)
	}

	grace, keyWait := 3*time.Second, 100*time.Millisecond
	if err := durationOverride(fs, "grace", &grace); err != nil {
		t.Fatal(err)
	}
	if err := durationOverride(fs, "key-wait", &keyWait); err != nil {
		t.Fatal(err)
	}
	if grace != 750*time.Millisecond {
		t.Errorf("grace = %s, want 750ms", grace)
	}
	if keyWait != 100*time.Millisecond {
		t.Errorf("unchanged flag should keep the value, got %s", keyWait)
	}
}

func TestReadText(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"single trailing newline", "line\n", "line", false},
		{"crlf", "line\r\n", "line", false},
		{"inner newlines kept", "a\nb\n\n", "a\nb\n", false},
		{"no newline", "日本語", "日本語", false},
		{"invalid utf-8", "\xff\xfe", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readText(strings.NewReader(tt.in))
			if (err != nil) != tt.wantErr {
				t.Fatalf("readText() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("readText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatWindows(t *testing.T) {
	got := formatWindows([]xdo.Window{{ID: "7", Title: "a"}, {ID: "1234", Title: "b"}})
	want := []string{"   7  a", "1234  b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("formatWindows() = %q, want %q", got, want)
	}
}

func TestCountdownSleep(t *testing.T) {
	tests := []struct {
		name     string
		d        time.Duration
		wantDraw bool
	}{
		{"short wait is silent", 20 * time.Millisecond, false},
		{"grace period draws a bar", time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			start := time.Now()
			countdownSleep(&buf)(tt.d)

			if elapsed := time.Since(start); elapsed < tt.d {
				t.Errorf("slept %s, want at least %s", elapsed, tt.d)
			}
			if got := buf.Len() > 0; got != tt.wantDraw {
				t.Errorf("drew output = %v, want %v (%q)", got, tt.wantDraw, buf.String())
			}
		})
	}
}
