package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sections := []string{
		m.renderTitle(),
		m.output.View(),
		m.renderInput(),
		m.renderHelpBar(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderTitle() string {
	title := m.title
	if title == "" {
		title = "vshell"
	}

	left := m.theme.TitleStyle.Render(title)
	right := m.theme.StatusBarStyle.Render(m.status)
	spacing := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 0)

	return left + m.theme.StatusBarStyle.Padding(0).Render(strings.Repeat(" ", spacing)) + right
}

func (m *Model) renderInput() string {
	switch m.mode {
	case ModeLine:
		return m.theme.PromptStyle.Render(m.prompt) + m.input.View()
	case ModeConfirm:
		return m.theme.QuestionStyle.Render(m.prompt) + m.input.View()
	}
	return ""
}

func (m *Model) renderHelpBar() string {
	if m.fullHelp {
		return m.help.View(m.keys)
	}
	return m.theme.HelpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}
