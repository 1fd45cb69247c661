// Package input defines the write-only keyboard surface the crafting engine
// drives, plus the backends that deliver keys to a real window.
package input

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTargetNotFound is returned when the target application's window cannot
// be located.
var ErrTargetNotFound = errors.New("artisan: target window not found")

// Key is a logical key. Backends translate it to a concrete key name through a
// Keymap.
type Key string

const (
	KeyConfirm   Key = "confirm"
	KeyCancel    Key = "cancel"
	KeyEscape    Key = "escape"
	KeyEnter     Key = "enter"
	KeyUp        Key = "up"
	KeyDown      Key = "down"
	KeyLeft      Key = "left"
	KeyRight     Key = "right"
	KeyBackward  Key = "backward"
	KeyOpenCraft Key = "open_craft"
)

// AllKeys lists every logical key in a stable order.
var AllKeys = []Key{
	KeyConfirm, KeyCancel, KeyEscape, KeyEnter,
	KeyUp, KeyDown, KeyLeft, KeyRight,
	KeyBackward, KeyOpenCraft,
}

// Valid reports whether k is one of the known logical keys.
func (k Key) Valid() bool {
	for _, known := range AllKeys {
		if k == known {
			return true
		}
	}
	return false
}

// Surface is an open-loop input target. Nothing is ever read back from it.
type Surface interface {
	// Press sends a single key press.
	Press(key Key) error
	// SendChar types one character.
	SendChar(r rune) error
	// Wait blocks for d.
	Wait(d time.Duration)
}

// Locator finds the target window and returns a Surface bound to it. It fails
// with ErrTargetNotFound when the window does not exist.
type Locator interface {
	Locate(ctx context.Context) (Surface, error)
}

// Keymap maps logical keys to backend key names.
type Keymap map[Key]string

// Merge returns a copy of m with every entry of overrides applied on top.
func (m Keymap) Merge(overrides map[string]string) Keymap {
	out := make(Keymap, len(m)+len(overrides))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range overrides {
		out[Key(k)] = v
	}
	return out
}

// Lookup returns the backend key name for k.
func (m Keymap) Lookup(k Key) (string, error) {
	name, ok := m[k]
	if !ok || name == "" {
		return "", fmt.Errorf("no key mapped for %q", k)
	}
	return name, nil
}

// sleep is replaced in tests so backends never block.
var sleep = time.Sleep
