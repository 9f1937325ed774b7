// Package tui implements the interactive editor behind `extbundle config`.
package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	successColor = lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#02BF87"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#FE5F86", Dark: "#FE5F86"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	warnColor    = lipgloss.AdaptiveColor{Light: "#FF9500", Dark: "#FFAA33"}

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// PathStyle renders the config file location under the title
	PathStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(mutedColor)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// ConfirmStyle frames the unsaved-changes prompt
	ConfirmStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(warnColor).
			Padding(1, 2)

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	HelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)

// GetTheme returns the huh theme for forms. Accessible mode uses the plain
// base theme so screen readers get undecorated prompts.
func GetTheme(accessible bool) *huh.Theme {
	if accessible {
		return huh.ThemeBase()
	}
	return huh.ThemeCharm()
}
