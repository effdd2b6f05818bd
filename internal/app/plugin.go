package app

import (
	"fmt"

	"github.com/sungur/minitext/internal/clipboard"
	"github.com/sungur/minitext/internal/log"
	"github.com/sungur/minitext/internal/opener"
)

// Plugin adds a capability to the App at startup.
type Plugin interface {
	Name() string
	Init(a *App) error
}

type clipboardPlugin struct {
	cap clipboard.Capability
}

// ClipboardManager publishes c as the front end's clipboard capability.
func ClipboardManager(c clipboard.Capability) Plugin {
	return clipboardPlugin{cap: c}
}

func (clipboardPlugin) Name() string { return "clipboard-manager" }

func (p clipboardPlugin) Init(a *App) error {
	if p.cap == nil {
		return fmt.Errorf("no clipboard capability")
	}
	if sys, ok := p.cap.(clipboard.System); ok && !sys.Available() {
		log.Warn("No clipboard utility found; sending text will fail (install xclip)")
	}
	a.SystemClipboard = p.cap
	return nil
}

type openerPlugin struct{}

// URLOpener publishes an xdg-open based URL opener.
func URLOpener() Plugin { return openerPlugin{} }

func (openerPlugin) Name() string { return "opener" }

func (openerPlugin) Init(a *App) error {
	a.Opener = opener.New(a.Runner, a.Config.Tools.Opener)
	return nil
}
