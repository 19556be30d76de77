package data

import "github.com/charmbracelet/lipgloss"

var kindStyles = map[NodeKind]lipgloss.Style{
	KindDirectory:  lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true),
	KindExecutable: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	KindEncrypted:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	KindBinary:     lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
}

// Style returns the display style for a node kind.
// Kinds without a dedicated style render unchanged.
func Style(kind NodeKind) lipgloss.Style {
	if style, ok := kindStyles[kind]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Render formats name according to its kind. With color disabled the
// name is returned as is.
func Render(kind NodeKind, name string, color bool) string {
	if !color {
		return name
	}
	return Style(kind).Render(name)
}

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)

// RenderError formats the label prefixing inline error messages.
func RenderError(label string, color bool) string {
	if !color {
		return label
	}
	return errorStyle.Render(label)
}
