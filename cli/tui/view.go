package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	sections := []string{
		m.renderTitle(),
		m.theme.BorderStyle.Width(m.width - 2).Render(m.viewport.View()),
		m.renderInput(),
		m.renderHelpBar(),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTitle renders the title bar with the number of registered commands
func (m *Model) renderTitle() string {
	left := m.theme.TitleStyle.Render("Console")
	right := fmt.Sprintf("%d command(s) ", m.dispatcher.Parser().Registry().Len())

	spacing := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return left + m.theme.StatusBarStyle.Render(strings.Repeat(" ", spacing)+right)
}

// renderTranscript renders every entry, one per line
func (m *Model) renderTranscript() string {
	lines := make([]string, 0, len(m.entries))
	for i := range m.entries {
		lines = append(lines, m.renderEntry(&m.entries[i]))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderEntry(e *Entry) string {
	var style lipgloss.Style
	switch e.Kind {
	case EntryInput:
		style = m.theme.InputStyle
	case EntryError:
		style = m.theme.ErrorStyle
	case EntryLog:
		style = m.theme.LevelStyle(e.Level)
	default:
		style = m.theme.OutputStyle
	}

	line := style.Render(e.DisplayText())
	if m.timestamps {
		line = m.theme.TimestampStyle.Render(e.DisplayTime()) + line
	}
	return line
}

// renderInput renders the prompt and the input field
func (m *Model) renderInput() string {
	return m.theme.PromptStyle.Render("> ") + m.textInput.View()
}

// renderHelpBar renders the bottom help bar
func (m *Model) renderHelpBar() string {
	return m.theme.HelpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}
