package ui

import (
	"github.com/sungur/minitext/internal/app"
	"github.com/sungur/minitext/internal/cli"
)

func init() {
	cli.RegisterUIRunner(func(a *app.App) error {
		return Run(OptionsFromApp(a))
	})
}
