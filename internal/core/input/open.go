package input

import (
	"fmt"

	"github.com/hay-kot/artisan/pkg/executil"
	"github.com/rs/zerolog"
)

// Backend names accepted by NewLocator.
const (
	BackendXdotool = "xdotool"
	BackendTmux    = "tmux"
)

// Backends lists the supported backend names.
var Backends = []string{BackendXdotool, BackendTmux}

// Options selects and configures a backend.
type Options struct {
	Backend string
	Target  string
	Keys    map[string]string
}

// NewLocator builds the Locator for opts.Backend with the backend's default
// keymap overlaid by opts.Keys.
func NewLocator(opts Options, exec executil.Executor, log zerolog.Logger) (Locator, error) {
	switch opts.Backend {
	case BackendXdotool:
		return NewXdotool(exec, opts.Target, XdotoolKeys.Merge(opts.Keys), log), nil
	case BackendTmux:
		return NewTmux(exec, opts.Target, TmuxKeys.Merge(opts.Keys), log), nil
	default:
		return nil, fmt.Errorf("unknown input backend %q", opts.Backend)
	}
}

// Executable returns the helper program a backend shells out to.
func Executable(backend string) string {
	switch backend {
	case BackendXdotool:
		return "xdotool"
	case BackendTmux:
		return "tmux"
	default:
		return ""
	}
}
