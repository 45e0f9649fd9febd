package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style
	Toast    lipgloss.Style

	Tab       lipgloss.Style
	ActiveTab lipgloss.Style

	Column       lipgloss.Style
	ActiveColumn lipgloss.Style
	ColumnTitle  lipgloss.Style
	Task         lipgloss.Style
	SelectedTask lipgloss.Style
	DoneTask     lipgloss.Style
	Tag          lipgloss.Style
}

func DefaultTheme() Theme {
	column := lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240"))

	return Theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
		Toast: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),

		Tab:       lipgloss.NewStyle().Faint(true).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Bold(true).Underline(true).Padding(0, 1),

		Column:       column,
		ActiveColumn: column.BorderForeground(lipgloss.Color("63")),
		ColumnTitle:  lipgloss.NewStyle().Bold(true),
		Task:         lipgloss.NewStyle(),
		SelectedTask: lipgloss.NewStyle().Reverse(true),
		DoneTask:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Tag:          lipgloss.NewStyle().Foreground(lipgloss.Color("37")),
	}
}
