package craft

import (
	"fmt"

	"github.com/hay-kot/artisan/internal/core/input"
	"github.com/rs/zerolog"
)

// typist types text into the surface one character at a time.
type typist struct {
	surface input.Surface
	timing  Timing
	log     zerolog.Logger
}

// text types s with CharDelay after every character.
func (t typist) text(s string) error {
	for _, c := range s {
		if err := t.surface.SendChar(c); err != nil {
			return fmt.Errorf("type %q: %w", s, err)
		}
		if t.timing.CharDelay > 0 {
			t.surface.Wait(t.timing.CharDelay)
		}
	}
	return nil
}

// command opens the chat line, types s and submits it.
func (t typist) command(s string) error {
	t.log.Debug().Str("command", s).Msg("sending command")
	if err := t.surface.Press(input.KeyEnter); err != nil {
		return err
	}
	if err := t.text(s); err != nil {
		return err
	}
	if t.timing.CommandSubmit > 0 {
		t.surface.Wait(t.timing.CommandSubmit)
	}
	return t.surface.Press(input.KeyEnter)
}
