package ui

import (
	"github.com/charmbracelet/lipgloss"

	"stationpicker/internal/combobox"
	"stationpicker/internal/config"
)

// ThemeStyles builds combobox styles from the configured colors
func ThemeStyles(t config.ThemeConfig) combobox.Styles {
	accent := lipgloss.Color(t.Accent)
	muted := lipgloss.Color(t.Muted)

	s := combobox.DefaultStyles()
	s.Input = s.Input.BorderForeground(muted)
	s.InputFocused = s.InputFocused.BorderForeground(accent)
	s.Icon = s.Icon.Foreground(accent)
	s.Listbox = s.Listbox.BorderForeground(muted)
	s.Presentation = s.Presentation.Foreground(muted)
	s.Scroll = s.Scroll.Foreground(muted)

	s = s.WithClass(combobox.ActiveDescendantClass, lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Highlight)).
		Background(lipgloss.Color(t.Selection)).
		Bold(true))
	s = s.WithClass("accent", lipgloss.NewStyle().Foreground(accent).Bold(true))
	s = s.WithClass("dim", lipgloss.NewStyle().Foreground(muted))
	s = s.WithClass("error", lipgloss.NewStyle().Foreground(lipgloss.Color(t.Error)))
	return s
}
