// Package cli defines the minitext command-line interface using cobra.
//
// The root command starts the terminal front end. Subcommands (copy, send,
// windows, doctor, config, update) expose the same operations for scripts.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sungur/minitext/internal/app"
	"github.com/sungur/minitext/internal/config"
	"github.com/sungur/minitext/internal/log"
	"github.com/sungur/minitext/internal/upgrade"
)

// Version, Commit, and Date are set via ldflags at build time.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// uiRunner starts the interactive front end. The ui package registers it so
// cli does not import bubbletea.
var uiRunner func(*app.App) error

// RegisterUIRunner installs the function the root command runs.
func RegisterUIRunner(fn func(*app.App) error) {
	uiRunner = fn
}

// appOptions are passed to every app.New call. Tests inject fakes here.
var appOptions []app.Option

// loadedConfig is the configuration resolved by the root pre-run hook.
var loadedConfig = config.Defaults()

// loadedConfigPath is the explicit or default config file location.
var loadedConfigPath = config.ResolvePath("")

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "minitext",
		Short: "Clipboard and IME test helper for X11 desktops",
		Long: `minitext is a small text box for checking clipboard and IME behaviour.

Run without arguments to open the terminal front end. "minitext copy"
waits a few seconds, selects everything in the focused window, copies it,
and prints the clipboard. Requires xdotool and xclip on an X11 session.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           Version,
		PersistentPreRunE: setup,
		RunE:              runDefault,
	}
	cmd.SetVersionTemplate(upgrade.VersionString(Version, Commit, Date) + "\n")

	// --- Persistent flags (available to all subcommands) ---
	pf := cmd.PersistentFlags()
	pf.BoolP("quiet", "q", false, "Suppress all output (exit code only)")
	pf.CountP("debug", "d", "Debug output (-d shows each tool invocation)")
	pf.String("config", "", "Config file (default: "+config.GlobalConfigPath()+")")

	// --- Subcommands ---
	cmd.AddCommand(newCopyCmd())
	cmd.AddCommand(newSendCmd())
	cmd.AddCommand(newWindowsCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newUpdateCmd())
	return cmd
}

// setup loads the configuration and applies the logging flags.
func setup(cmd *cobra.Command, _ []string) error {
	fs := cmd.Flags()
	path, _ := fs.GetString("config")
	loadedConfig = config.LoadConfig(path)
	loadedConfigPath = config.ResolvePath(path)
	applyLogFlags(fs, loadedConfig)
	return nil
}

// applyLogFlags sets the log level from --quiet, --debug and the config.
// The flag wins over the config when both set a debug level.
func applyLogFlags(fs *pflag.FlagSet, cfg config.Config) {
	if quiet, _ := fs.GetBool("quiet"); quiet {
		log.EnableQuietMode()
		return
	}
	log.DisableQuietMode()

	debug := cfg.Debug
	if fs.Changed("debug") {
		debug, _ = fs.GetCount("debug")
	}
	log.SetLevel(log.LevelForDebugCount(debug))
}

// newApp builds the application. appOptions are applied after extra so tests
// keep control of the runner and the clock.
func newApp(cfg config.Config, extra ...app.Option) (*app.App, error) {
	a, err := app.New(cfg, append(extra, appOptions...)...)
	if err != nil {
		return nil, fmt.Errorf("startup failed: %w", err)
	}
	return a, nil
}

func runDefault(_ *cobra.Command, _ []string) error {
	if uiRunner == nil {
		return fmt.Errorf("terminal front end is not available in this build")
	}
	a, err := newApp(loadedConfig)
	if err != nil {
		return err
	}
	return uiRunner(a)
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
