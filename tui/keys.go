package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type KeyMap struct {
	Submit   key.Binding
	Complete key.Binding
	Previous key.Binding
	Next     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Clear    key.Binding
	EOF      key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		Complete: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
		Previous: key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous")),
		Next:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		Clear:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
		EOF:      key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "leave session")),
		Help:     key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Complete, k.EOF, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Complete, k.Previous, k.Next},
		{k.PageUp, k.PageDown, k.Clear},
		{k.EOF, k.Help, k.Quit},
	}
}

type Theme struct {
	TitleStyle     lipgloss.Style
	StatusBarStyle lipgloss.Style
	PromptStyle    lipgloss.Style
	EchoStyle      lipgloss.Style
	QuestionStyle  lipgloss.Style
	HelpStyle      lipgloss.Style
}

func DefaultTheme() *Theme {
	return &Theme{
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#4682B4")).
			Padding(0, 1),
		StatusBarStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#C0C0C0")).
			Background(lipgloss.Color("#303030")).
			Padding(0, 1),
		PromptStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#32CD32")),
		EchoStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")),
		QuestionStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700")),
		HelpStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
	}
}
