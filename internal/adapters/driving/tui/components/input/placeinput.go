// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/placepick/internal/adapters/driving/tui/styles"
)

// PlaceInput wraps a bubbles textinput for typing a place name.
type PlaceInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewPlaceInput creates a new place input component.
func NewPlaceInput(s *styles.Styles) *PlaceInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Type a city, region or landmark..."
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 50

	return &PlaceInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the input.
func (p *PlaceInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (p *PlaceInput) Update(msg tea.Msg) (*PlaceInput, tea.Cmd) {
	var cmd tea.Cmd
	p.textinput, cmd = p.textinput.Update(msg)
	return p, cmd
}

// View renders the input.
func (p *PlaceInput) View() string {
	label := p.styles.Title.Render("Place: ")
	field := p.styles.InputField.Render(p.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current input value.
func (p *PlaceInput) Value() string {
	return p.textinput.Value()
}

// SetValue replaces the input value and moves the cursor to the end.
func (p *PlaceInput) SetValue(value string) {
	p.textinput.SetValue(value)
	p.textinput.CursorEnd()
}

// Focus sets focus on the input.
func (p *PlaceInput) Focus() tea.Cmd {
	return p.textinput.Focus()
}

// Blur removes focus from the input.
func (p *PlaceInput) Blur() {
	p.textinput.Blur()
}

// Focused returns whether the input is focused.
func (p *PlaceInput) Focused() bool {
	return p.textinput.Focused()
}

// SetWidth sets the width of the input.
func (p *PlaceInput) SetWidth(width int) {
	p.width = width
	// Label and border.
	p.textinput.Width = max(width-12, 20)
}

// Width returns the current width.
func (p *PlaceInput) Width() int {
	return p.width
}
