package input

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hay-kot/artisan/pkg/executil"
	"github.com/rs/zerolog"
)

// XdotoolKeys are the default X11 keysyms for each logical key. The game's
// keyboard UI navigation is bound to the numpad by default.
var XdotoolKeys = Keymap{
	KeyConfirm:   "KP_0",
	KeyCancel:    "KP_Decimal",
	KeyEscape:    "Escape",
	KeyEnter:     "Return",
	KeyUp:        "KP_8",
	KeyDown:      "KP_2",
	KeyLeft:      "KP_4",
	KeyRight:     "KP_6",
	KeyBackward:  "KP_Subtract",
	KeyOpenCraft: "n",
}

// XdotoolLocator finds an X11 window by title.
type XdotoolLocator struct {
	exec  executil.Executor
	title string
	keys  Keymap
	log   zerolog.Logger
}

// NewXdotool creates a locator for windows whose name matches title.
func NewXdotool(exec executil.Executor, title string, keys Keymap, log zerolog.Logger) *XdotoolLocator {
	return &XdotoolLocator{exec: exec, title: title, keys: keys, log: log}
}

// Locate runs `xdotool search --name` and binds to the first match.
func (l *XdotoolLocator) Locate(ctx context.Context) (Surface, error) {
	out, err := l.exec.Run(ctx, "xdotool", "search", "--name", l.title)
	if err != nil {
		return nil, fmt.Errorf("%w: xdotool search %q: %v", ErrTargetNotFound, l.title, err)
	}

	fields := strings.Fields(string(out))
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no window named %q", ErrTargetNotFound, l.title)
	}

	l.log.Debug().Str("window", fields[0]).Str("title", l.title).Msg("located target window")
	return &xdotoolSurface{exec: l.exec, window: fields[0], keys: l.keys}, nil
}

type xdotoolSurface struct {
	exec   executil.Executor
	window string
	keys   Keymap
}

func (s *xdotoolSurface) Press(key Key) error {
	name, err := s.keys.Lookup(key)
	if err != nil {
		return err
	}
	if _, err := s.exec.Run(context.Background(), "xdotool", "key", "--window", s.window, name); err != nil {
		return fmt.Errorf("press %s: %w", key, err)
	}
	return nil
}

func (s *xdotoolSurface) SendChar(r rune) error {
	if _, err := s.exec.Run(context.Background(), "xdotool", "type", "--window", s.window, "--", string(r)); err != nil {
		return fmt.Errorf("type %q: %w", r, err)
	}
	return nil
}

func (s *xdotoolSurface) Wait(d time.Duration) {
	sleep(d)
}
