package input

import (
	"context"
	"fmt"
	"time"

	"github.com/hay-kot/artisan/pkg/executil"
	"github.com/rs/zerolog"
)

// TmuxKeys are the default tmux key names for each logical key.
var TmuxKeys = Keymap{
	KeyConfirm:   "KP0",
	KeyCancel:    "KP.",
	KeyEscape:    "Escape",
	KeyEnter:     "Enter",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyBackward:  "BTab",
	KeyOpenCraft: "n",
}

// TmuxLocator targets a tmux pane, for applications with a terminal UI.
type TmuxLocator struct {
	exec   executil.Executor
	target string
	keys   Keymap
	log    zerolog.Logger
}

// NewTmux creates a locator for the given tmux target (session, session:window
// or pane id).
func NewTmux(exec executil.Executor, target string, keys Keymap, log zerolog.Logger) *TmuxLocator {
	return &TmuxLocator{exec: exec, target: target, keys: keys, log: log}
}

// Locate checks that the target exists.
func (l *TmuxLocator) Locate(ctx context.Context) (Surface, error) {
	if _, err := l.exec.Run(ctx, "tmux", "has-session", "-t", l.target); err != nil {
		return nil, fmt.Errorf("%w: tmux target %q: %v", ErrTargetNotFound, l.target, err)
	}

	l.log.Debug().Str("target", l.target).Msg("located tmux target")
	return &tmuxSurface{exec: l.exec, target: l.target, keys: l.keys}, nil
}

type tmuxSurface struct {
	exec   executil.Executor
	target string
	keys   Keymap
}

func (s *tmuxSurface) Press(key Key) error {
	name, err := s.keys.Lookup(key)
	if err != nil {
		return err
	}
	if _, err := s.exec.Run(context.Background(), "tmux", "send-keys", "-t", s.target, name); err != nil {
		return fmt.Errorf("press %s: %w", key, err)
	}
	return nil
}

func (s *tmuxSurface) SendChar(r rune) error {
	if _, err := s.exec.Run(context.Background(), "tmux", "send-keys", "-t", s.target, "-l", string(r)); err != nil {
		return fmt.Errorf("type %q: %w", r, err)
	}
	return nil
}

func (s *tmuxSurface) Wait(d time.Duration) {
	sleep(d)
}
