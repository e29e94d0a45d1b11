package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	header   lipgloss.Style
	mode     lipgloss.Style
	rec      lipgloss.Style
	stamp    lipgloss.Style
	speaker  lipgloss.Style
	selected lipgloss.Style
	cursor   lipgloss.Style
	status   lipgloss.Style
	help     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		mode:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		rec:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		stamp:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		speaker:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		selected: lipgloss.NewStyle().Background(lipgloss.Color("236")),
		cursor:   lipgloss.NewStyle().Reverse(true),
		status:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		help:     lipgloss.NewStyle().Faint(true),
	}
}
