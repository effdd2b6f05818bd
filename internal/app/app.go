// Package app wires minitext together: it builds the process runner, the
// tool wrappers and the orchestrator from a Config, registers the commands
// the front end may invoke, and initializes the plugins the front end uses
// directly.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sungur/minitext/internal/clipboard"
	"github.com/sungur/minitext/internal/command"
	"github.com/sungur/minitext/internal/config"
	"github.com/sungur/minitext/internal/log"
	"github.com/sungur/minitext/internal/opener"
	"github.com/sungur/minitext/internal/platform"
	"github.com/sungur/minitext/internal/runner"
	"github.com/sungur/minitext/internal/wincopy"
	"github.com/sungur/minitext/internal/xdo"
)

// App holds the wired components.
type App struct {
	Config       config.Config
	Runner       runner.Runner
	Xdo          *xdo.Tool
	Clipboard    *clipboard.Tool
	Orchestrator *wincopy.Orchestrator
	Commands     *command.Registry

	// Capabilities published by plugins.
	SystemClipboard clipboard.Capability
	Opener          *opener.Opener

	plugins []Plugin
}

type options struct {
	runner  runner.Runner
	sleep   func(time.Duration)
	plugins []Plugin
}

// Option customizes New.
type Option func(*options)

// WithRunner replaces the os/exec runner.
func WithRunner(r runner.Runner) Option {
	return func(o *options) { o.runner = r }
}

// WithSleep replaces time.Sleep in the orchestrator.
func WithSleep(sleep func(time.Duration)) Option {
	return func(o *options) { o.sleep = sleep }
}

// WithPlugins replaces the default plugin set.
func WithPlugins(plugins ...Plugin) Option {
	return func(o *options) { o.plugins = plugins }
}

// DefaultPlugins returns the clipboard-manager and opener plugins.
func DefaultPlugins() []Plugin {
	return []Plugin{ClipboardManager(clipboard.System{}), URLOpener()}
}

// New builds an App from cfg and initializes its plugins in order.
// A failing plugin aborts startup.
func New(cfg config.Config, opts ...Option) (*App, error) {
	o := options{plugins: DefaultPlugins()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.runner == nil {
		o.runner = runner.NewExecRunner(cfg.Timing.CommandTimeout)
	}

	a := &App{
		Config:    cfg,
		Runner:    o.runner,
		Xdo:       xdo.New(o.runner, cfg.Tools.Automation),
		Clipboard: clipboard.New(o.runner, cfg.Tools.Clipboard),
		Commands:  command.NewRegistry(),
	}

	wopts := []wincopy.Option{wincopy.WithDelays(DelaysFromConfig(cfg))}
	if o.sleep != nil {
		wopts = append(wopts, wincopy.WithSleep(o.sleep))
	}
	a.Orchestrator = wincopy.New(a.Xdo, a.Clipboard, wopts...)

	a.registerCommands()

	for _, p := range o.plugins {
		if err := p.Init(a); err != nil {
			return nil, fmt.Errorf("plugin %s: %w", p.Name(), err)
		}
		log.Debugf("plugin initialized: %s", p.Name())
		a.plugins = append(a.plugins, p)
	}
	return a, nil
}

// DelaysFromConfig maps configured timing onto orchestrator delays.
func DelaysFromConfig(cfg config.Config) wincopy.Delays {
	return wincopy.Delays{
		Grace:          cfg.Timing.CopyFromWait,
		AfterSelectAll: cfg.Timing.KeyInputWait,
		AfterCopy:      cfg.Timing.KeyInputWait,
		AfterActivate:  cfg.Timing.WindowActivateWait,
	}
}

// Plugins returns the names of the initialized plugins.
func (a *App) Plugins() []string {
	names := make([]string, 0, len(a.plugins))
	for _, p := range a.plugins {
		names = append(names, p.Name())
	}
	return names
}

// RequiredTools returns the binaries the window protocols need.
func (a *App) RequiredTools() []string {
	return []string{a.Xdo.Binary(), a.Clipboard.Binary()}
}

func (a *App) registerCommands() {
	a.Commands.Register(command.CopyFromActiveWindow, func(context.Context) (string, error) {
		return a.Orchestrator.CopyFromActiveWindow()
	})

	a.Commands.Register(command.ListWindows, func(ctx context.Context) (string, error) {
		windows := a.Xdo.ListWindows(ctx)
		if windows == nil {
			windows = []xdo.Window{}
		}
		data, err := json.Marshal(windows)
		if err != nil {
			return "", fmt.Errorf("encode windows: %w", err)
		}
		return string(data), nil
	})

	a.Commands.Register(command.CheckDependencies, func(context.Context) (string, error) {
		missing := platform.MissingTools(a.RequiredTools()...)
		if len(missing) > 0 {
			return "", fmt.Errorf("missing tools: %s (install with: %s)",
				strings.Join(missing, ", "), platform.InstallHint(missing))
		}
		return "all tools available", nil
	})
}
