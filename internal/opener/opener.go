// Package opener opens URLs in the user's default handler via xdg-open.
package opener

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/sungur/minitext/internal/platform"
	"github.com/sungur/minitext/internal/runner"
)

// StepOpenURL names the opener process in errors.
const StepOpenURL = "open-url"

var allowedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
}

// Opener launches URLs.
type Opener struct {
	r   runner.Runner
	bin string
}

// New returns an Opener running bin through r. An empty bin means xdg-open.
func New(r runner.Runner, bin string) *Opener {
	if bin == "" {
		bin = platform.OpenerTool
	}
	return &Opener{r: r, bin: bin}
}

// Open validates rawURL and hands it to the opener tool.
func (o *Opener) Open(ctx context.Context, rawURL string) error {
	u, err := Validate(rawURL)
	if err != nil {
		return err
	}
	_, err = runner.Output(ctx, o.r, runner.Command{
		Step: StepOpenURL,
		Name: o.bin,
		Args: []string{u.String()},
	})
	return err
}

// Validate parses rawURL and rejects schemes other than http, https and mailto.
func Validate(rawURL string) (*url.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, fmt.Errorf("url is empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if !allowedSchemes[strings.ToLower(u.Scheme)] {
		return nil, fmt.Errorf("refusing to open %q: scheme %q not allowed", rawURL, u.Scheme)
	}
	if u.Scheme != "mailto" && u.Host == "" {
		return nil, fmt.Errorf("invalid url %q: missing host", rawURL)
	}
	return u, nil
}
