package tui

import "github.com/charmbracelet/lipgloss"

var styles = newPalette()

// palette holds the lipgloss styles used by the views.
type palette struct {
	title    lipgloss.Style
	subtle   lipgloss.Style
	cell     lipgloss.Style
	focused  lipgloss.Style
	selected lipgloss.Style
	info     lipgloss.Style
	warn     lipgloss.Style
	err      lipgloss.Style
	prompt   lipgloss.Style
	badges   map[string]lipgloss.Style
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func newPalette() palette {
	return palette{
		title:    fg("#F0A6CA").Bold(true).MarginBottom(1),
		subtle:   fg("#626262"),
		cell:     lipgloss.NewStyle().Width(9),
		focused:  lipgloss.NewStyle().Width(9).Reverse(true),
		selected: fg("#04B575").Bold(true),
		info:     fg("#7D56F4"),
		warn:     fg("#FFA500").Bold(true),
		err:      fg("#FF0000").Bold(true),
		prompt:   fg("#FFA500").Bold(true).Border(lipgloss.RoundedBorder()).Padding(0, 1),
		badges: map[string]lipgloss.Style{
			"enlargement": fg("#F0A6CA"),
			"print":       fg("#04B575"),
			"social":      fg("#00D9FF"),
			"discard":     fg("#626262"),
		},
	}
}
