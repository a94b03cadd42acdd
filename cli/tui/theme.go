package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mwantia/codeconsole/log"
)

// Theme holds the styles used to render the console.
type Theme struct {
	TitleStyle     lipgloss.Style
	StatusBarStyle lipgloss.Style
	TimestampStyle lipgloss.Style
	InputStyle     lipgloss.Style
	OutputStyle    lipgloss.Style
	ErrorStyle     lipgloss.Style
	PromptStyle    lipgloss.Style
	HelpStyle      lipgloss.Style
	BorderStyle    lipgloss.Style

	// Log lines are colored by level, matching the terminal colors of the log package
	LevelStyles map[log.Level]lipgloss.Style
}

func DefaultTheme() *Theme {
	return &Theme{
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),
		StatusBarStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")),
		TimestampStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")),
		InputStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")),
		OutputStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		ErrorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")),
		PromptStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")),
		HelpStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		BorderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")),
		LevelStyles: map[log.Level]lipgloss.Style{
			log.Debug: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
			log.Info:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
			log.Warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
			log.Error: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
			log.Fatal: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		},
	}
}

func (t *Theme) LevelStyle(level log.Level) lipgloss.Style {
	if style, ok := t.LevelStyles[level]; ok {
		return style
	}
	return t.OutputStyle
}
