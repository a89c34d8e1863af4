package ui

import "github.com/charmbracelet/lipgloss"

var (
	accent      = lipgloss.Color("#FF7070")
	accentDark  = lipgloss.Color("#EB4C4C")
	editBlue    = lipgloss.Color("#7094FF")
	dangerRed   = lipgloss.Color("#DC2626")
	mutedGray   = lipgloss.Color("#6B7280")
	headerWhite = lipgloss.Color("#FFFFFF")
)

type styles struct {
	title     lipgloss.Style
	button    lipgloss.Style
	update    lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	counter   lipgloss.Style
	clear     lipgloss.Style
	item      lipgloss.Style
	done      lipgloss.Style
	cursor    lipgloss.Style
	empty     lipgloss.Style
	status    lipgloss.Style
	frame     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(headerWhite).Background(accent).Padding(0, 2),
		button:    lipgloss.NewStyle().Foreground(headerWhite).Background(accent).Padding(0, 1),
		update:    lipgloss.NewStyle().Foreground(headerWhite).Background(editBlue).Padding(0, 1),
		tab:       lipgloss.NewStyle().Padding(0, 1),
		activeTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(headerWhite).Background(accentDark),
		counter:   lipgloss.NewStyle().Foreground(mutedGray),
		clear:     lipgloss.NewStyle().Underline(true).Foreground(dangerRed),
		item:      lipgloss.NewStyle(),
		done:      lipgloss.NewStyle().Strikethrough(true).Foreground(mutedGray),
		cursor:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		empty:     lipgloss.NewStyle().Italic(true).Foreground(mutedGray),
		status:    lipgloss.NewStyle().Foreground(mutedGray),
		frame:     lipgloss.NewStyle().Padding(1, 2),
	}
}
