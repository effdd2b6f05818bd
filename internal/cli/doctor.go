package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sungur/minitext/internal/clipboard"
	"github.com/sungur/minitext/internal/command"
	"github.com/sungur/minitext/internal/config"
	"github.com/sungur/minitext/internal/log"
	"github.com/sungur/minitext/internal/platform"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the session and the external tools",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
}

type check struct {
	name   string
	ok     bool
	detail string
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cfg := loadedConfig

	for _, c := range doctorChecks(cfg) {
		mark := log.Style.Green("ok")
		if !c.ok {
			mark = log.Style.Red("missing")
		}
		log.Raw(fmt.Sprintf("%-18s %s  %s", c.name, mark, log.Style.Dim(c.detail)))
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	msg, err := a.Commands.Invoke(cmd.Context(), command.CheckDependencies)
	if err != nil {
		return err
	}
	log.Success(msg)
	return nil
}

func doctorChecks(cfg config.Config) []check {
	display := platform.DetectDisplay()
	checks := []check{
		{"os", true, platform.HostOSName()},
		{"display server", display == platform.X11, string(display)},
	}
	for _, tool := range []struct{ role, bin string }{
		{"automation tool", cfg.Tools.Automation},
		{"clipboard tool", cfg.Tools.Clipboard},
		{"url opener", cfg.Tools.Opener},
	} {
		checks = append(checks, check{tool.role, platform.CommandExists(tool.bin), tool.bin})
	}
	checks = append(checks, check{"system clipboard", clipboard.System{}.Available(), "used by the front end"})

	checks = append(checks, check{"config", true, loadedConfigPath})
	return checks
}
