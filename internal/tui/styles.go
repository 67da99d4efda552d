package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the demo UI
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Tag         lipgloss.Style
	GroupLabel  lipgloss.Style
	Option      lipgloss.Style
	Highlighted lipgloss.Style
	Selected    lipgloss.Style
	Disabled    lipgloss.Style
	Loading     lipgloss.Style
	Error       lipgloss.Style
	Help        lipgloss.Style
	Menu        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim: lipgloss.NewStyle().Faint(true),
		Tag: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),
		GroupLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("241")),
		Option: lipgloss.NewStyle().PaddingLeft(2),
		Highlighted: lipgloss.NewStyle().
			PaddingLeft(1).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")),
		Selected: lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(lipgloss.Color("42")),
		Disabled: lipgloss.NewStyle().
			PaddingLeft(2).
			Faint(true),
		Loading: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Help:    lipgloss.NewStyle().Faint(true),
		Menu: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
	}
}
