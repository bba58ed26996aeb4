// Package tui provides the menu picker, text prompt and styled listings
// shown between sessions, using the Bubbletea framework.
package tui

import (
	"reflect"

	"github.com/charmbracelet/lipgloss"

	"github.com/xvierd/calm-cli/internal/config"
)

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

type styles struct {
	title    lipgloss.Style
	selected lipgloss.Style
	accent   lipgloss.Style
	dim      lipgloss.Style
}

func newStyles(theme config.ThemeConfig) styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorTitle)),
		selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorSelected)),
		accent:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorAccent)),
		dim:      lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorHelp)),
	}
}
