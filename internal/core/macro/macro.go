// Package macro reads in-game crafting macros into craft actions.
//
// A macro is a text file with one command per line, as pasted from the game:
//
//	/ac "Inner Quiet" <wait.2>
//	/ac Observe <wait.3>
//
// Only action lines (/ac, /action) are kept. The wait annotation decides the
// cooldown class: <wait.2> is a short action, any other wait or none at all is
// a long one.
package macro

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hay-kot/artisan/internal/core/craft"
)

// ErrEmptyMacro is returned when a macro contains no actions.
var ErrEmptyMacro = errors.New("artisan: macro has no actions")

// shortWaitSeconds is the only wait that marks a short action.
const shortWaitSeconds = 2

// ParseError reports a malformed macro line.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseFile parses the macro at path.
func ParseFile(path string) ([]craft.Action, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open macro: %w", err)
	}
	defer func() { _ = f.Close() }()

	actions, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse macro %s: %w", path, err)
	}
	return actions, nil
}

// Parse reads actions from r.
func Parse(r io.Reader) ([]craft.Action, error) {
	var (
		actions []craft.Action
		scanner = bufio.NewScanner(r)
		lineNo  int
	)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		action, ok, err := parseLine(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: line, Err: err}
		}
		if ok {
			actions = append(actions, action)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(actions) == 0 {
		return nil, ErrEmptyMacro
	}
	return actions, nil
}

// parseLine returns ok=false for lines that are not actions.
func parseLine(line string) (craft.Action, bool, error) {
	cmd, rest, _ := strings.Cut(line, " ")
	switch strings.ToLower(cmd) {
	case "/ac", "/action":
	default:
		return craft.Action{}, false, nil
	}

	rest = strings.TrimSpace(rest)

	var name string
	if strings.HasPrefix(rest, `"`) {
		end := strings.Index(rest[1:], `"`)
		if end < 0 {
			return craft.Action{}, false, errors.New("unterminated quote")
		}
		name = rest[1 : end+1]
		rest = rest[end+2:]
	} else {
		idx := strings.Index(rest, "<")
		if idx < 0 {
			idx = len(rest)
		}
		name = rest[:idx]
		rest = rest[idx:]
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return craft.Action{}, false, errors.New("missing action name")
	}

	wait, err := parseWait(strings.TrimSpace(rest))
	if err != nil {
		return craft.Action{}, false, err
	}

	return craft.Action{Name: name, Wait: wait}, true, nil
}

// parseWait reads the <wait.N> annotation. Other annotations such as <se.1>
// are ignored.
func parseWait(s string) (craft.WaitClass, error) {
	for s != "" {
		if !strings.HasPrefix(s, "<") {
			return craft.WaitLong, fmt.Errorf("unexpected text %q", s)
		}
		end := strings.Index(s, ">")
		if end < 0 {
			return craft.WaitLong, fmt.Errorf("unterminated annotation %q", s)
		}

		tag := s[1:end]
		s = strings.TrimSpace(s[end+1:])

		key, val, ok := strings.Cut(tag, ".")
		if !ok || !strings.EqualFold(key, "wait") {
			continue
		}

		secs, err := strconv.Atoi(val)
		if err != nil || secs < 0 {
			return craft.WaitLong, fmt.Errorf("invalid wait %q", val)
		}
		if secs == shortWaitSeconds {
			return craft.WaitShort, nil
		}
		return craft.WaitLong, nil
	}
	return craft.WaitLong, nil
}
