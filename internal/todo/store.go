package todo

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFilter is returned when a filter value is not All, Active or Completed.
var ErrInvalidFilter = errors.New("invalid filter")

// Filter selects which todos are visible. It never changes the collection.
type Filter string

const (
	FilterAll       Filter = "All"
	FilterActive    Filter = "Active"
	FilterCompleted Filter = "Completed"
)

// Filters returns the filter modes in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterCompleted}
}

// Valid reports whether f is one of the known filter modes.
func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	}
	return false
}

// Match reports whether t is visible under f.
func (f Filter) Match(t Todo) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// ParseFilter parses a filter name case-insensitively.
func ParseFilter(s string) (Filter, error) {
	for _, f := range Filters() {
		if strings.EqualFold(strings.TrimSpace(s), string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q, must be one of: All, Active, Completed", ErrInvalidFilter, s)
}

// Todo is a single task record.
type Todo struct {
	ID        int    `json:"id"`
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
}

// EditState marks the todo whose text is being revised.
type EditState struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// Store owns the todo collection along with the input, edit and filter state.
// It is not safe for concurrent use.
type Store struct {
	todos  []Todo
	text   string
	edit   *EditState
	filter Filter
}

// StoreOption configures a Store.
type StoreOption func(*Store) error

// WithTodos seeds the store. IDs must be positive and strictly increasing
// and every task must be non-empty.
func WithTodos(todos []Todo) StoreOption {
	return func(s *Store) error {
		if err := validateTodos(todos, "todos"); err != nil {
			return err
		}
		s.todos = append(make([]Todo, 0, len(todos)), todos...)
		return nil
	}
}

// WithFilter sets the initial filter mode.
func WithFilter(f Filter) StoreOption {
	return func(s *Store) error {
		return s.SetFilter(f)
	}
}

// NewStore creates a store. Without options it is empty with filter All.
func NewStore(opts ...StoreOption) (*Store, error) {
	s := &Store{filter: FilterAll}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("new store: %w", err)
		}
	}
	return s, nil
}

func (s *Store) index(id int) int {
	for i := range s.todos {
		if s.todos[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) nextID() int {
	max := 0
	for _, t := range s.todos {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

// Add appends a new active todo. Whitespace-only text is ignored.
func (s *Store) Add(text string) (Todo, bool) {
	if isBlank(text) {
		return Todo{}, false
	}
	t := Todo{ID: s.nextID(), Task: text}
	s.todos = append(s.todos, t)
	return t, true
}

// Update replaces the task text of id, keeping its position and completed flag.
func (s *Store) Update(id int, text string) bool {
	if isBlank(text) {
		return false
	}
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.todos[i].Task = text
	return true
}

// Delete removes id. Deleting the todo under edit cancels the edit.
func (s *Store) Delete(id int) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.todos = append(s.todos[:i], s.todos[i+1:]...)
	if s.edit != nil && s.edit.ID == id {
		s.CancelEdit()
	}
	return true
}

// Toggle flips the completed flag of id.
func (s *Store) Toggle(id int) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.todos[i].Completed = !s.todos[i].Completed
	return true
}

// ClearCompleted removes every completed todo and returns how many were removed.
func (s *Store) ClearCompleted() int {
	kept := s.todos[:0]
	removed := 0
	for _, t := range s.todos {
		if t.Completed {
			removed++
			if s.edit != nil && s.edit.ID == t.ID {
				s.CancelEdit()
			}
			continue
		}
		kept = append(kept, t)
	}
	s.todos = kept
	return removed
}

// BeginEdit enters edit mode for id and seeds the input buffer with its text.
func (s *Store) BeginEdit(id int) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.edit = &EditState{ID: id, Text: s.todos[i].Task}
	s.text = s.todos[i].Task
	return true
}

// CancelEdit leaves edit mode and clears the input buffer.
func (s *Store) CancelEdit() {
	s.edit = nil
	s.text = ""
}

// Editing returns the current edit state, if any.
func (s *Store) Editing() (EditState, bool) {
	if s.edit == nil {
		return EditState{}, false
	}
	return *s.edit, true
}

// SetText replaces the input buffer. While editing it is also the pending text.
func (s *Store) SetText(text string) {
	s.text = text
	if s.edit != nil {
		s.edit.Text = text
	}
}

// Text returns the input buffer.
func (s *Store) Text() string {
	return s.text
}

// Submit commits the input buffer: it updates the todo under edit, or adds
// a new one. A blank buffer is ignored and leaves edit mode untouched.
func (s *Store) Submit() bool {
	if isBlank(s.text) {
		return false
	}
	if s.edit != nil {
		s.Update(s.edit.ID, s.text)
		s.CancelEdit()
		return true
	}
	s.Add(s.text)
	s.text = ""
	return true
}

// SetFilter sets the filter mode. Unknown values return ErrInvalidFilter
// and leave the current filter in place.
func (s *Store) SetFilter(f Filter) error {
	if !f.Valid() {
		return fmt.Errorf("set filter %q: %w", f, ErrInvalidFilter)
	}
	s.filter = f
	return nil
}

// Filter returns the current filter mode.
func (s *Store) Filter() Filter {
	return s.filter
}

// VisibleTodos returns the todos matching the current filter in insertion order.
func (s *Store) VisibleTodos() []Todo {
	visible := make([]Todo, 0, len(s.todos))
	for _, t := range s.todos {
		if s.filter.Match(t) {
			visible = append(visible, t)
		}
	}
	return visible
}

// Todos returns a copy of the full collection.
func (s *Store) Todos() []Todo {
	return append(make([]Todo, 0, len(s.todos)), s.todos...)
}

// Get returns the todo with id.
func (s *Store) Get(id int) (Todo, bool) {
	i := s.index(id)
	if i < 0 {
		return Todo{}, false
	}
	return s.todos[i], true
}

// Len returns the size of the full collection.
func (s *Store) Len() int {
	return len(s.todos)
}

// Counts returns the number of completed todos and the total, ignoring the filter.
func (s *Store) Counts() (completed, total int) {
	for _, t := range s.todos {
		if t.Completed {
			completed++
		}
	}
	return completed, len(s.todos)
}

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// validateTodos checks seeded todos against the collection invariants.
func validateTodos(todos []Todo, path string) error {
	prev := 0
	for i, t := range todos {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		if t.ID <= 0 {
			return &ValidationError{Path: itemPath + ".id", Err: fmt.Errorf("must be positive, got %d", t.ID)}
		}
		if t.ID <= prev {
			return &ValidationError{Path: itemPath + ".id", Err: fmt.Errorf("must be greater than %d, got %d", prev, t.ID)}
		}
		if isBlank(t.Task) {
			return &ValidationError{Path: itemPath + ".task", Err: fmt.Errorf("must not be empty")}
		}
		prev = t.ID
	}
	return nil
}
