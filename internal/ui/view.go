package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tasklist-go/internal/todo"
)

// View renders the model. It reads state only.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("Todo list"))
	b.WriteString("\n\n")
	b.WriteString(m.viewInput())
	b.WriteString("\n\n")
	b.WriteString(m.viewTabs())
	b.WriteString("\n\n")
	b.WriteString(m.viewList())

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.status.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return m.styles.frame.Render(b.String())
}

func (m *Model) viewInput() string {
	button := m.styles.button.Render("+")
	if _, ok := m.store.Editing(); ok {
		button = m.styles.update.Render("Update")
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, m.input.View(), " ", button)
}

func (m *Model) viewTabs() string {
	tabs := make([]string, 0, len(todo.Filters())+2)
	for _, f := range todo.Filters() {
		if f == m.store.Filter() {
			tabs = append(tabs, m.styles.activeTab.Render(string(f)))
		} else {
			tabs = append(tabs, m.styles.tab.Render(string(f)))
		}
	}

	completed, total := m.store.Counts()
	tabs = append(tabs,
		m.styles.counter.Render(fmt.Sprintf("(%d/%d)", completed, total)),
		" ",
		m.styles.clear.Render("Clear"),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) viewList() string {
	visible := m.store.VisibleTodos()
	if len(visible) == 0 {
		if m.store.Len() == 0 {
			return m.styles.empty.Render("Nothing to do.")
		}
		return m.styles.empty.Render("No " + strings.ToLower(string(m.store.Filter())) + " todos.")
	}

	edit, editing := m.store.Editing()
	lines := make([]string, 0, len(visible))
	for i, t := range visible {
		marker := "  "
		if m.focus == focusList && i == m.cursor {
			marker = m.styles.cursor.Render("> ")
		}

		check := "[ ]"
		task := m.styles.item.Render(t.Task)
		if t.Completed {
			check = "[x]"
			task = m.styles.done.Render(t.Task)
		}
		if editing && edit.ID == t.ID {
			task += m.styles.status.Render(" (editing)")
		}
		lines = append(lines, marker+check+" "+task)
	}
	return strings.Join(lines, "\n")
}
