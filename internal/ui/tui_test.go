package ui

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/todo"
)

func newTestModel(t *testing.T, opts ...todo.StoreOption) *Model {
	t.Helper()
	store, err := todo.NewStore(opts...)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return NewModel(store)
}

func newBufferLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{Level: log.DebugLevel})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m *Model, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(runes(string(r)))
	}
}

func TestModelAddsFromInput(t *testing.T) {
	m := newTestModel(t)

	typeText(m, "Buy milk")
	if got := m.Store().Text(); got != "Buy milk" {
		t.Fatalf("store text = %q, want %q", got, "Buy milk")
	}
	send(m, tea.KeyMsg{Type: tea.KeyEnter})

	todos := m.Store().Todos()
	if len(todos) != 1 || todos[0].Task != "Buy milk" || todos[0].ID != 1 {
		t.Fatalf("todos = %+v", todos)
	}
	if m.Store().Text() != "" || m.input.Value() != "" {
		t.Errorf("input not cleared: store=%q input=%q", m.Store().Text(), m.input.Value())
	}
	if !strings.Contains(m.status, "Added #1") {
		t.Errorf("status = %q", m.status)
	}
}

func TestModelIgnoresBlankSubmit(t *testing.T) {
	m := newTestModel(t)

	typeText(m, "   ")
	send(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Store().Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Store().Len())
	}
	if m.status != "Nothing to save" {
		t.Errorf("status = %q", m.status)
	}
}

func TestModelWorkedExample(t *testing.T) {
	m := newTestModel(t)

	typeText(m, "Buy milk")
	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	typeText(m, "Walk dog")
	send(m, tea.KeyMsg{Type: tea.KeyEnter})

	send(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusList {
		t.Fatalf("focus = %v, want list", m.focus)
	}
	send(m, runes("x"), runes("3"))

	if m.Store().Filter() != todo.FilterCompleted {
		t.Fatalf("filter = %q", m.Store().Filter())
	}
	view := m.View()
	for _, want := range []string{"Todo list", "(1/2)", "Buy milk", "[x]", "Completed"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q\n%s", want, view)
		}
	}
	if strings.Contains(view, "Walk dog") {
		t.Errorf("View() shows active todo under Completed filter\n%s", view)
	}

	send(m, runes("2"))
	view = m.View()
	if !strings.Contains(view, "Walk dog") || strings.Contains(view, "Buy milk") {
		t.Errorf("Active filter view wrong\n%s", view)
	}
}

func TestModelListNavigation(t *testing.T) {
	m := newTestModel(t, todo.WithTodos([]todo.Todo{
		{ID: 1, Task: "one"},
		{ID: 2, Task: "two"},
		{ID: 3, Task: "three"},
	}))
	send(m, tea.KeyMsg{Type: tea.KeyTab})

	tests := []struct {
		name string
		msg  tea.Msg
		want int
	}{
		{"up at top stays", tea.KeyMsg{Type: tea.KeyUp}, 0},
		{"down", runes("j"), 1},
		{"down again", tea.KeyMsg{Type: tea.KeyDown}, 2},
		{"down at bottom stays", runes("j"), 2},
		{"up", runes("k"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			send(m, tt.msg)
			if m.cursor != tt.want {
				t.Errorf("cursor = %d, want %d", m.cursor, tt.want)
			}
		})
	}
}

func TestModelToggleWithSpace(t *testing.T) {
	m := newTestModel(t, todo.WithTodos([]todo.Todo{{ID: 1, Task: "one"}}))
	send(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	got, _ := m.Store().Get(1)
	if !got.Completed {
		t.Errorf("todo 1 not toggled")
	}
}

func TestModelEditFlow(t *testing.T) {
	m := newTestModel(t, todo.WithTodos([]todo.Todo{
		{ID: 1, Task: "Buy milk"},
		{ID: 2, Task: "Walk dog", Completed: true},
	}))

	send(m, tea.KeyMsg{Type: tea.KeyTab}, runes("j"), runes("e"))
	edit, ok := m.Store().Editing()
	if !ok || edit.ID != 2 {
		t.Fatalf("Editing() = %+v, %v; want id 2", edit, ok)
	}
	if m.focus != focusInput || m.input.Value() != "Walk dog" {
		t.Fatalf("focus = %v, input = %q", m.focus, m.input.Value())
	}
	if view := m.View(); !strings.Contains(view, "Update") {
		t.Errorf("View() missing Update button\n%s", view)
	}

	typeText(m, " twice")
	send(m, tea.KeyMsg{Type: tea.KeyEnter})

	got, _ := m.Store().Get(2)
	if got.Task != "Walk dog twice" || !got.Completed {
		t.Errorf("todo 2 = %+v", got)
	}
	if _, ok := m.Store().Editing(); ok {
		t.Error("still editing after submit")
	}
	if m.focus != focusList {
		t.Errorf("focus = %v, want list", m.focus)
	}
	if m.Store().Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Store().Len())
	}
}

func TestModelKeepsLongText(t *testing.T) {
	long := strings.Repeat("a", 300)

	t.Run("edit", func(t *testing.T) {
		m := newTestModel(t, todo.WithTodos([]todo.Todo{{ID: 1, Task: long}}))
		send(m, tea.KeyMsg{Type: tea.KeyTab}, runes("e"))
		if m.input.Value() != long {
			t.Fatalf("input holds %d chars, want %d", len(m.input.Value()), len(long))
		}
		typeText(m, "!")
		send(m, tea.KeyMsg{Type: tea.KeyEnter})

		got, _ := m.Store().Get(1)
		if got.Task != long+"!" {
			t.Errorf("task has %d chars, want %d", len(got.Task), len(long)+1)
		}
	})

	t.Run("add", func(t *testing.T) {
		m := newTestModel(t)
		typeText(m, long)
		send(m, tea.KeyMsg{Type: tea.KeyEnter})

		todos := m.Store().Todos()
		if len(todos) != 1 || todos[0].Task != long {
			t.Errorf("added task has wrong length: %+v", len(todos))
		}
	})
}

func TestModelEscCancelsEdit(t *testing.T) {
	m := newTestModel(t, todo.WithTodos([]todo.Todo{{ID: 1, Task: "Buy milk"}}))

	send(m, tea.KeyMsg{Type: tea.KeyTab}, runes("e"))
	typeText(m, "!!")
	send(m, tea.KeyMsg{Type: tea.KeyEsc})

	if _, ok := m.Store().Editing(); ok {
		t.Fatal("still editing after esc")
	}
	got, _ := m.Store().Get(1)
	if got.Task != "Buy milk" {
		t.Errorf("task = %q, want unchanged", got.Task)
	}
	if m.input.Value() != "" {
		t.Errorf("input = %q, want empty", m.input.Value())
	}

	// A second esc without an edit moves focus to the list.
	send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.focus != focusList {
		t.Errorf("focus = %v, want list", m.focus)
	}
}

func TestModelDeleteAndClear(t *testing.T) {
	m := newTestModel(t, todo.WithTodos([]todo.Todo{
		{ID: 1, Task: "one", Completed: true},
		{ID: 2, Task: "two"},
		{ID: 3, Task: "three", Completed: true},
	}))
	send(m, tea.KeyMsg{Type: tea.KeyTab}, runes("j"), runes("j"), runes("d"))

	if _, ok := m.Store().Get(3); ok {
		t.Fatal("todo 3 not deleted")
	}
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want clamped to 1", m.cursor)
	}

	send(m, runes("c"))
	todos := m.Store().Todos()
	if len(todos) != 1 || todos[0].ID != 2 {
		t.Errorf("todos = %+v, want only #2", todos)
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
	if m.status != "Cleared 1 completed" {
		t.Errorf("status = %q", m.status)
	}
}

func TestModelDeleteCancelsEditOfSameTodo(t *testing.T) {
	m := newTestModel(t, todo.WithTodos([]todo.Todo{{ID: 1, Task: "one"}}))
	send(m, tea.KeyMsg{Type: tea.KeyTab}, runes("e"), tea.KeyMsg{Type: tea.KeyTab}, runes("d"))

	if _, ok := m.Store().Editing(); ok {
		t.Error("edit survived delete")
	}
	if m.input.Value() != "" {
		t.Errorf("input = %q, want empty", m.input.Value())
	}
}

func TestModelListKeysIgnoredInInput(t *testing.T) {
	m := newTestModel(t, todo.WithTodos([]todo.Todo{{ID: 1, Task: "one"}}))

	typeText(m, "qdx3")
	if m.Store().Filter() != todo.FilterAll {
		t.Errorf("filter changed while typing")
	}
	if m.Store().Text() != "qdx3" {
		t.Errorf("text = %q, want %q", m.Store().Text(), "qdx3")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c returned nil cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not quit")
	}
}

func TestModelEmptyStates(t *testing.T) {
	m := newTestModel(t)
	if view := m.View(); !strings.Contains(view, "Nothing to do.") {
		t.Errorf("View() missing empty state\n%s", view)
	}
	if view := m.View(); !strings.Contains(view, "(0/0)") {
		t.Errorf("View() missing counter\n%s", view)
	}

	m = newTestModel(t, todo.WithTodos([]todo.Todo{{ID: 1, Task: "one"}}))
	send(m, tea.KeyMsg{Type: tea.KeyTab}, runes("3"))
	if view := m.View(); !strings.Contains(view, "No completed todos.") {
		t.Errorf("View() missing filtered empty state\n%s", view)
	}
}

func TestModelWindowSize(t *testing.T) {
	m := newTestModel(t)
	send(m, tea.WindowSizeMsg{Width: 80, Height: 24})

	if m.width != 80 || m.help.Width != 80 {
		t.Errorf("width = %d, help width = %d", m.width, m.help.Width)
	}
	if m.input.Width != 64 {
		t.Errorf("input width = %d, want 64", m.input.Width)
	}
}

func TestModelLogsOperations(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	store, _ := todo.NewStore()
	m := NewModel(store, WithLogger(logger))
	typeText(m, "Buy milk")
	send(m, tea.KeyMsg{Type: tea.KeyEnter})

	if !strings.Contains(buf.String(), "todo added") {
		t.Errorf("log = %q, want todo added", buf.String())
	}
}

func TestIsTTY(t *testing.T) {
	var buf bytes.Buffer
	if IsTTY(&buf) {
		t.Error("IsTTY(bytes.Buffer) = true")
	}
	f, err := os.CreateTemp(t.TempDir(), "tty")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTTY(f) {
		t.Error("IsTTY(regular file) = true")
	}
}
