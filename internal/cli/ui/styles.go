package ui

import "github.com/charmbracelet/lipgloss"

// Styles defines all lipgloss styles used in the CLI
var Styles = struct {
	Bold          lipgloss.Style
	UserLabel     lipgloss.Style
	AssistantText lipgloss.Style
	Banner        lipgloss.Style
	SuccessBox    lipgloss.Style
	ErrorBox      lipgloss.Style
}{
	Bold: lipgloss.NewStyle().Bold(true),

	UserLabel: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("212")),

	AssistantText: lipgloss.NewStyle().
		Foreground(lipgloss.Color("86")),

	Banner: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("86")).
		Padding(1, 2).
		Align(lipgloss.Center),

	SuccessBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("42")).
		Padding(0, 1).
		Width(60),

	ErrorBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("196")).
		Padding(0, 1).
		Width(60),
}
