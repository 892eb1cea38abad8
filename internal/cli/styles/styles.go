// Package styles renders the human-readable CLI output
package styles

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/hue/internal/config"
	"github.com/thenoetrevino/hue/internal/models"
)

var (
	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	ValueStyle    lipgloss.Style

	// Tree styles
	BranchStyle lipgloss.Style
	OrphanStyle lipgloss.Style
)

func init() {
	Init(config.DefaultColorScheme())
}

// Init initializes all CLI styles with the given color scheme
func Init(colors config.ColorScheme) {
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Normal))

	BranchStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.GroupBorder))

	OrphanStyle = lipgloss.NewStyle().
		Italic(true).
		Foreground(lipgloss.Color(colors.Subtle))
}

// ColoredText renders text with a hex color
func ColoredText(text, hexColor string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor)).
		Render(text)
}

// Swatch renders a block in the label's color
func Swatch(hexColor string) string {
	return ColoredText("■", hexColor)
}

// RenderLabelChip renders a label as "■ name" in the label's color
func RenderLabelChip(label *models.Label) string {
	return Swatch(label.Color) + " " + lipgloss.NewStyle().
		Foreground(lipgloss.Color(label.Color)).
		Bold(true).
		Render(label.Name)
}
