package input

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Op identifies the kind of a recorded event.
type Op int

const (
	OpPress Op = iota
	OpChar
	OpWait
)

// Event is a single recorded Surface call.
type Event struct {
	Op       Op
	Key      Key
	Char     rune
	Duration time.Duration
}

func (e Event) String() string {
	switch e.Op {
	case OpPress:
		return "press:" + string(e.Key)
	case OpChar:
		return "char:" + string(e.Char)
	case OpWait:
		return "wait:" + e.Duration.String()
	default:
		return fmt.Sprintf("op(%d)", e.Op)
	}
}

// Recorder is an in-memory Surface that records every call without sleeping.
// It also satisfies Locator by returning itself.
type Recorder struct {
	mu     sync.Mutex
	events []Event

	// FailAfter makes every Press/SendChar fail once this many key events have
	// been recorded. Zero disables failure injection.
	FailAfter int
	keys      int
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Locate returns the recorder itself.
func (r *Recorder) Locate(context.Context) (Surface, error) {
	return r, nil
}

func (r *Recorder) Press(key Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failLocked(); err != nil {
		return err
	}
	r.events = append(r.events, Event{Op: OpPress, Key: key})
	return nil
}

func (r *Recorder) SendChar(c rune) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failLocked(); err != nil {
		return err
	}
	r.events = append(r.events, Event{Op: OpChar, Char: c})
	return nil
}

func (r *Recorder) Wait(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Op: OpWait, Duration: d})
}

func (r *Recorder) failLocked() error {
	if r.FailAfter > 0 && r.keys >= r.FailAfter {
		return fmt.Errorf("recorder: injected failure after %d keys", r.keys)
	}
	r.keys++
	return nil
}

// Events returns a copy of every recorded event.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Presses returns the pressed keys in order, ignoring chars and waits.
func (r *Recorder) Presses() []Key {
	var out []Key
	for _, e := range r.Events() {
		if e.Op == OpPress {
			out = append(out, e.Key)
		}
	}
	return out
}

// Typed returns every run of consecutive characters as a string. Waits between
// characters do not split a run; any key press does.
func (r *Recorder) Typed() []string {
	var (
		out []string
		sb  strings.Builder
	)
	flush := func() {
		if sb.Len() > 0 {
			out = append(out, sb.String())
			sb.Reset()
		}
	}
	for _, e := range r.Events() {
		switch e.Op {
		case OpChar:
			sb.WriteRune(e.Char)
		case OpPress:
			flush()
		}
	}
	flush()
	return out
}

// Compact renders the event log with typed runs collapsed, e.g.
// "press:enter", "type:/ac \"Observe\"", "wait:50ms". Waits inside a typed run
// are dropped.
func (r *Recorder) Compact() []string {
	var (
		out []string
		sb  strings.Builder
	)
	flush := func() {
		if sb.Len() > 0 {
			out = append(out, "type:"+sb.String())
			sb.Reset()
		}
	}
	events := r.Events()
	for i, e := range events {
		switch e.Op {
		case OpChar:
			sb.WriteRune(e.Char)
		case OpWait:
			if sb.Len() > 0 && i+1 < len(events) && events[i+1].Op == OpChar {
				continue
			}
			flush()
			out = append(out, e.String())
		default:
			flush()
			out = append(out, e.String())
		}
	}
	flush()
	return out
}

// Reset clears recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	r.keys = 0
}
