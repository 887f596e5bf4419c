package tui

import "github.com/charmbracelet/lipgloss"

// Palette: emerald accents on the terminal's default background, in
// keeping with the "free ticket" green of the event branding.
var (
	colorAccent = lipgloss.Color("#4ade80")
	colorDim    = lipgloss.Color("240")
	colorError  = lipgloss.Color("#f87171")
	colorGold   = lipgloss.Color("#fbbf24")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	tabStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Padding(0, 1)

	pillStyle = lipgloss.NewStyle().
			Foreground(colorGold)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	accentStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorGold)

	labelStyle = lipgloss.NewStyle().
			Bold(true)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(colorDim).
				Italic(true)

	codeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 3)

	headerRowStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// cursorGlyph is the block cursor shown on the focused input.
const cursorGlyph = "█"

// renderInput draws a one-line labelled form input with cursor and
// placeholder handling.
func renderInput(label, value, placeholder string, focused bool) string {
	out := labelStyle.Render(label) + " "
	switch {
	case value == "" && focused:
		out += accentStyle.Render(cursorGlyph)
	case value == "":
		out += placeholderStyle.Render(placeholder)
	case focused:
		out += value + accentStyle.Render(cursorGlyph)
	default:
		out += value
	}
	return out
}
