package labels

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/hue/internal/config"
)

type styles struct {
	title       lipgloss.Style
	subtle      lipgloss.Style
	normal      lipgloss.Style
	selected    lipgloss.Style
	branch      lipgloss.Style
	placeholder lipgloss.Style
	createForm  lipgloss.Style
	editForm    lipgloss.Style
	modal       lipgloss.Style
	info        lipgloss.Style
	error       lipgloss.Style
}

func newStyles(c config.ColorScheme) styles {
	border := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(color)).
			Padding(0, 1)
	}

	return styles{
		title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Title)),
		subtle:      lipgloss.NewStyle().Foreground(lipgloss.Color(c.Subtle)),
		normal:      lipgloss.NewStyle().Foreground(lipgloss.Color(c.Normal)),
		selected:    lipgloss.NewStyle().Background(lipgloss.Color(c.SelectedBg)).Foreground(lipgloss.Color(c.Accent)),
		branch:      lipgloss.NewStyle().Foreground(lipgloss.Color(c.GroupBorder)),
		placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(c.Placeholder)),
		createForm:  border(c.Create),
		editForm:    border(c.Edit),
		modal:       border(c.Accent),
		info:        lipgloss.NewStyle().Foreground(lipgloss.Color(c.InfoFg)).Background(lipgloss.Color(c.InfoBg)).Padding(0, 1),
		error:       lipgloss.NewStyle().Foreground(lipgloss.Color(c.ErrorFg)).Background(lipgloss.Color(c.ErrorBg)).Padding(0, 1),
	}
}

// chip renders a label name in its own color
func chip(name, color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("■") + " " + name
}
