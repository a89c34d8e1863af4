// Package ui provides the terminal interface for the todo store.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/todo"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	altScreen bool
	logger    *log.Logger
}

// WithAltScreen runs the program in the alternate screen buffer.
func WithAltScreen(enabled bool) TUIOption {
	return func(c *tuiConfig) {
		c.altScreen = enabled
	}
}

// WithLogger sets the logger that records store operations.
func WithLogger(logger *log.Logger) TUIOption {
	return func(c *tuiConfig) {
		c.logger = logger
	}
}

// RunTUI runs the interactive todo list until the user quits or ctx is done.
func RunTUI(ctx context.Context, store *todo.Store, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	c := newTUIConfig(opts)
	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if c.altScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	program := tea.NewProgram(newModel(store, c), programOpts...)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func newTUIConfig(opts []TUIOption) *tuiConfig {
	c := &tuiConfig{altScreen: true}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}

type focus int

const (
	focusInput focus = iota
	focusList
)

// Model is the Bubble Tea model over a todo store.
type Model struct {
	store  *todo.Store
	input  textinput.Model
	keys   keyMap
	help   help.Model
	styles styles
	logger *log.Logger

	focus  focus
	cursor int
	width  int
	status string
}

// NewModel creates a model over store, starting with the input focused.
func NewModel(store *todo.Store, opts ...TUIOption) *Model {
	return newModel(store, newTUIConfig(opts))
}

func newModel(store *todo.Store, c *tuiConfig) *Model {
	ti := textinput.New()
	ti.Placeholder = "Type Here..."
	ti.Prompt = "› "
	ti.Width = 40
	ti.SetValue(store.Text())

	m := &Model{
		store:  store,
		input:  ti,
		keys:   defaultKeyMap(),
		help:   help.New(),
		styles: defaultStyles(),
		logger: c.logger,
	}
	m.setFocus(focusInput)
	return m
}

// Store returns the underlying store.
func (m *Model) Store() *todo.Store {
	return m.store
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		if w := msg.Width - 16; w > 10 {
			m.input.Width = w
		}
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Focus):
			if m.focus == focusInput {
				m.setFocus(focusList)
			} else {
				m.setFocus(focusInput)
			}
			return m, nil
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.submit()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		if edit, ok := m.store.Editing(); ok {
			m.store.CancelEdit()
			m.syncInput()
			m.status = fmt.Sprintf("Edit of #%d cancelled", edit.ID)
			m.logger.Debug("edit cancelled", "id", edit.ID)
			return m, nil
		}
		m.setFocus(focusList)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.store.SetText(m.input.Value())
	return m, cmd
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Insert):
		m.setFocus(focusInput)
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.store.VisibleTodos())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			m.store.Toggle(t.ID)
			m.status = fmt.Sprintf("Toggled #%d", t.ID)
			m.logger.Debug("todo toggled", "id", t.ID, "completed", !t.Completed)
		}
	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selected(); ok && m.store.BeginEdit(t.ID) {
			m.syncInput()
			m.setFocus(focusInput)
			m.status = fmt.Sprintf("Editing #%d", t.ID)
			m.logger.Debug("edit started", "id", t.ID)
		}
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			m.store.Delete(t.ID)
			m.syncInput()
			m.status = fmt.Sprintf("Deleted #%d", t.ID)
			m.logger.Debug("todo deleted", "id", t.ID)
		}
	case key.Matches(msg, m.keys.Clear):
		n := m.store.ClearCompleted()
		m.syncInput()
		m.status = fmt.Sprintf("Cleared %d completed", n)
		m.logger.Debug("completed cleared", "removed", n)
	case key.Matches(msg, m.keys.All):
		m.setFilter(todo.FilterAll)
	case key.Matches(msg, m.keys.Active):
		m.setFilter(todo.FilterActive)
	case key.Matches(msg, m.keys.Completed):
		m.setFilter(todo.FilterCompleted)
	}
	m.clampCursor()
	return m, nil
}

func (m *Model) submit() {
	edit, editing := m.store.Editing()
	before := m.store.Len()
	if !m.store.Submit() {
		m.status = "Nothing to save"
		return
	}
	m.syncInput()
	if editing {
		m.status = fmt.Sprintf("Updated #%d", edit.ID)
		m.logger.Debug("todo updated", "id", edit.ID)
		m.setFocus(focusList)
	} else if m.store.Len() > before {
		todos := m.store.Todos()
		added := todos[len(todos)-1]
		m.status = fmt.Sprintf("Added #%d", added.ID)
		m.logger.Debug("todo added", "id", added.ID)
	}
	m.clampCursor()
}

func (m *Model) setFilter(f todo.Filter) {
	if err := m.store.SetFilter(f); err != nil {
		m.status = err.Error()
		m.logger.Error("set filter", "err", err)
		return
	}
	m.cursor = 0
	m.status = "Showing " + string(f)
	m.logger.Debug("filter set", "filter", f)
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	m.keys.setFocus(f)
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// syncInput copies the store's input buffer into the text field.
func (m *Model) syncInput() {
	m.input.SetValue(m.store.Text())
	m.input.CursorEnd()
}

func (m *Model) selected() (todo.Todo, bool) {
	visible := m.store.VisibleTodos()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return todo.Todo{}, false
	}
	return visible[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.store.VisibleTodos())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
