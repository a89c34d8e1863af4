package script

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nibzard/tasklist-go/internal/todo"
)

// Snapshot is the observable state of a store.
type Snapshot struct {
	Filter    todo.Filter     `json:"filter"`
	Completed int             `json:"completed"`
	Total     int             `json:"total"`
	Visible   []todo.Todo     `json:"visible"`
	Editing   *todo.EditState `json:"editing,omitempty"`
	Text      string          `json:"text,omitempty"`
}

// Snap captures the store state.
func Snap(store *todo.Store) Snapshot {
	completed, total := store.Counts()
	s := Snapshot{
		Filter:    store.Filter(),
		Completed: completed,
		Total:     total,
		Visible:   store.VisibleTodos(),
		Text:      store.Text(),
	}
	if edit, ok := store.Editing(); ok {
		s.Editing = &edit
	}
	return s
}

// WriteJSON writes the snapshot as indented JSON.
func (s Snapshot) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// WriteText writes the snapshot in a plain listing:
//
//	Filter: Completed (1/2)
//	[x] 1 Buy milk
func (s Snapshot) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Filter: %s (%d/%d)\n", s.Filter, s.Completed, s.Total); err != nil {
		return err
	}
	for _, t := range s.Visible {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		if _, err := fmt.Fprintf(w, "%s %d %s\n", mark, t.ID, t.Task); err != nil {
			return err
		}
	}
	if s.Editing != nil {
		if _, err := fmt.Fprintf(w, "Editing: %d %q\n", s.Editing.ID, s.Editing.Text); err != nil {
			return err
		}
	}
	return nil
}
