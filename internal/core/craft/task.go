// Package craft is the crafting engine: the task model, the status reporter,
// the role action slot cache and the sequencer that turns tasks into timed
// input.
package craft

import (
	"fmt"
	"strconv"
	"strings"
)

// WaitClass is the cooldown class of an action.
type WaitClass int

const (
	// WaitShort is the 2.0s action class.
	WaitShort WaitClass = iota
	// WaitLong is the 2.5s action class.
	WaitLong
)

func (w WaitClass) String() string {
	switch w {
	case WaitShort:
		return "short"
	case WaitLong:
		return "long"
	default:
		return fmt.Sprintf("WaitClass(%d)", int(w))
	}
}

// MarshalText encodes the class as "short" or "long".
func (w WaitClass) MarshalText() ([]byte, error) {
	switch w {
	case WaitShort, WaitLong:
		return []byte(w.String()), nil
	default:
		return nil, fmt.Errorf("invalid wait class %d", int(w))
	}
}

// UnmarshalText accepts "short"/"long" and macro wait seconds. Only a wait of
// 2 is short; an empty value is long.
func (w *WaitClass) UnmarshalText(b []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	switch s {
	case "short", "2":
		*w = WaitShort
		return nil
	case "long", "":
		*w = WaitLong
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		*w = WaitLong
		return nil
	}
	return fmt.Errorf("invalid wait class %q", string(b))
}

// Action is one in-game crafting action.
type Action struct {
	Name string    `json:"name" yaml:"name"`
	Wait WaitClass `json:"wait" yaml:"wait"`
}

// Material is an ingredient and the quantity a single synthesis consumes.
type Material struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// Item is a craftable item and its ingredient list in recipe order.
type Item struct {
	Name      string     `json:"name" yaml:"name"`
	Job       string     `json:"job,omitempty" yaml:"job,omitempty"`
	Materials []Material `json:"materials" yaml:"materials"`
}

// Task is one crafting job. Tasks are read-only once submitted.
type Task struct {
	Item Item
	// Index selects among several search results; 0 is the first result.
	Index int
	// Count is the number of synthesis repetitions.
	Count   int
	Actions []Action
	// Gearset is the gearset to switch to. Gearsets start at 1, so 0 means no
	// change.
	Gearset     int
	Collectable bool
}

// ActionNames returns the names of the task's actions in order.
func (t Task) ActionNames() []string {
	names := make([]string, len(t.Actions))
	for i, a := range t.Actions {
		names[i] = a.Name
	}
	return names
}
