package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	StatusBarStyle     lipgloss.Style
	MessageStyle       lipgloss.Style
	ErrorStyle         lipgloss.Style
	CommandBarStyle    lipgloss.Style
	PromptStyle        lipgloss.Style
	MatchStyle         lipgloss.Style
	SelectedMatchStyle lipgloss.Style
	CaretStyle         lipgloss.Style
}

var DefaultTheme = Theme{
	StatusBarStyle:     lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")),
	MessageStyle:       lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	ErrorStyle:         lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	CommandBarStyle:    lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("255")),
	PromptStyle:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true),
	MatchStyle:         lipgloss.NewStyle().Background(lipgloss.Color("220")).Foreground(lipgloss.Color("0")),
	SelectedMatchStyle: lipgloss.NewStyle().Background(lipgloss.Color("208")).Foreground(lipgloss.Color("0")).Bold(true),
	CaretStyle:         lipgloss.NewStyle().Reverse(true),
}
