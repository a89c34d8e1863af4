// Package script drives a todo store from a line-oriented command script.
//
// Each non-blank line holds one command; lines starting with # are comments.
//
//	add Buy milk
//	add Walk dog
//	toggle 1
//	filter completed
//
// Commands map one to one onto store operations: add, update, delete,
// toggle, clear, edit, text, submit, cancel and filter.
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/nibzard/tasklist-go/internal/todo"
)

// Op names a script command.
type Op string

const (
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpToggle Op = "toggle"
	OpClear  Op = "clear"
	OpEdit   Op = "edit"
	OpText   Op = "text"
	OpSubmit Op = "submit"
	OpCancel Op = "cancel"
	OpFilter Op = "filter"
)

// Command is one parsed script line.
type Command struct {
	Line   int
	Op     Op
	ID     int
	Text   string
	Filter todo.Filter
}

// ParseError reports a malformed script line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ErrUnknownCommand is returned for a line whose first word is not a command.
var ErrUnknownCommand = errors.New("unknown command")

type argKind int

const (
	argNone argKind = iota
	argText
	argID
	argIDText
	argFilter
)

// registry maps command names to their argument shape.
var registry = map[Op]argKind{
	OpAdd:    argText,
	OpUpdate: argIDText,
	OpDelete: argID,
	OpToggle: argID,
	OpClear:  argNone,
	OpEdit:   argID,
	OpText:   argText,
	OpSubmit: argNone,
	OpCancel: argNone,
	OpFilter: argFilter,
}

// Ops returns the known command names in sorted order.
func Ops() []string {
	names := make([]string, 0, len(registry))
	for op := range registry {
		names = append(names, string(op))
	}
	sort.Strings(names)
	return names
}

// Parse reads commands from r. The first malformed line stops parsing
// with a *ParseError.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		cmd, err := parseLine(trimmed)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Err: err}
		}
		cmd.Line = lineNo
		cmds = append(cmds, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return cmds, nil
}

// ParseString is Parse over a string.
func ParseString(s string) ([]Command, error) {
	return Parse(strings.NewReader(s))
}

func parseLine(line string) (Command, error) {
	name, rest := cutWord(line)
	op := Op(strings.ToLower(name))
	kind, ok := registry[op]
	if !ok {
		return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, name)
	}

	cmd := Command{Op: op}
	switch kind {
	case argNone:
		if rest != "" {
			return Command{}, fmt.Errorf("%s takes no arguments", op)
		}
	case argText:
		cmd.Text = rest
	case argID:
		id, err := parseID(op, rest)
		if err != nil {
			return Command{}, err
		}
		cmd.ID = id
	case argIDText:
		idPart, text := cutWord(rest)
		id, err := parseID(op, idPart)
		if err != nil {
			return Command{}, err
		}
		cmd.ID = id
		cmd.Text = text
	case argFilter:
		f, err := todo.ParseFilter(rest)
		if err != nil {
			return Command{}, err
		}
		cmd.Filter = f
	}
	return cmd, nil
}

// cutWord splits s at its first run of whitespace.
func cutWord(s string) (word, rest string) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
}

func parseID(op Op, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%s requires an id", op)
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid id %q", op, s)
	}
	return id, nil
}

// Result records what a command did to the store.
type Result struct {
	Command Command
	Changed bool
}

// Apply runs cmds against store in order. No-op commands (blank text,
// unknown ids) are recorded with Changed false; they are not errors.
func Apply(store *todo.Store, cmds []Command) ([]Result, error) {
	results := make([]Result, 0, len(cmds))
	for _, cmd := range cmds {
		changed, err := apply(store, cmd)
		if err != nil {
			return results, fmt.Errorf("line %d: %s: %w", cmd.Line, cmd.Op, err)
		}
		results = append(results, Result{Command: cmd, Changed: changed})
	}
	return results, nil
}

func apply(store *todo.Store, cmd Command) (bool, error) {
	switch cmd.Op {
	case OpAdd:
		_, ok := store.Add(cmd.Text)
		return ok, nil
	case OpUpdate:
		return store.Update(cmd.ID, cmd.Text), nil
	case OpDelete:
		return store.Delete(cmd.ID), nil
	case OpToggle:
		return store.Toggle(cmd.ID), nil
	case OpClear:
		return store.ClearCompleted() > 0, nil
	case OpEdit:
		return store.BeginEdit(cmd.ID), nil
	case OpText:
		store.SetText(cmd.Text)
		return true, nil
	case OpSubmit:
		return store.Submit(), nil
	case OpCancel:
		_, editing := store.Editing()
		store.CancelEdit()
		return editing, nil
	case OpFilter:
		if err := store.SetFilter(cmd.Filter); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, fmt.Errorf("%w %q", ErrUnknownCommand, cmd.Op)
}
