// Package styles holds the picker's palette and lipgloss styles.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the picker palette, one colour per role.
type Theme struct {
	Accent    lipgloss.Color // title and highlighted row
	Text      lipgloss.Color
	Dim       lipgloss.Color // coordinates, hints, idle status
	Hint      lipgloss.Color // tooltip and empty results
	Failure   lipgloss.Color
	Frame     lipgloss.Color // input and dropdown borders
	StatusBar lipgloss.Color
}

// DefaultTheme is a muted green palette for dark terminals.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#2E7D5B"),
		Text:      lipgloss.Color("#E4E8E5"),
		Dim:       lipgloss.Color("#7D8782"),
		Hint:      lipgloss.Color("#E8C268"),
		Failure:   lipgloss.Color("#E5736A"),
		Frame:     lipgloss.Color("#3F4843"),
		StatusBar: lipgloss.Color("#141715"),
	}
}

// Styles are the rendered styles derived from a Theme.
type Styles struct {
	theme *Theme

	Title       lipgloss.Style
	Normal      lipgloss.Style
	Muted       lipgloss.Style
	Selected    lipgloss.Style
	Error       lipgloss.Style
	Warning     lipgloss.Style
	Tooltip     lipgloss.Style
	Coordinates lipgloss.Style
	InputField  lipgloss.Style
	StatusBar   lipgloss.Style
	Dropdown    lipgloss.Style
}

// NewStyles derives styles from theme. A nil theme means DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	framed := func(b lipgloss.Border) lipgloss.Style {
		return lipgloss.NewStyle().BorderStyle(b).BorderForeground(theme.Frame).Padding(0, 1)
	}

	return &Styles{
		theme:       theme,
		Title:       fg(theme.Accent).Bold(true),
		Normal:      fg(theme.Text),
		Muted:       fg(theme.Dim),
		Selected:    fg(theme.Text).Background(theme.Accent).Bold(true),
		Error:       fg(theme.Failure),
		Warning:     fg(theme.Hint),
		Tooltip:     fg(theme.Hint).Italic(true).PaddingLeft(2),
		Coordinates: fg(theme.Dim),
		InputField:  framed(lipgloss.RoundedBorder()),
		StatusBar:   fg(theme.Dim).Background(theme.StatusBar).Padding(0, 1),
		Dropdown:    framed(lipgloss.NormalBorder()),
	}
}

// DefaultStyles is NewStyles(DefaultTheme()).
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}
