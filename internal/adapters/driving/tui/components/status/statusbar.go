// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/placepick/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/placepick/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/placepick/internal/core/domain"
)

// Bar displays the picker state and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   domain.SearchState
	count   int
	message string
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  domain.StateIdle,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := max(s.width-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the state, or the transient message if one is set.
func (s *Bar) renderLeft() string {
	if s.message != "" {
		return s.styles.Normal.Render(s.message)
	}

	switch s.state {
	case domain.StateLoading:
		return s.styles.Muted.Render("Searching...")
	case domain.StateShowingResults:
		if s.count == 1 {
			return s.styles.Normal.Render("1 place")
		}
		return s.styles.Normal.Render(fmt.Sprintf("%d places", s.count))
	case domain.StateShowingEmpty:
		return s.styles.Warning.Render("No places")
	case domain.StateShowingError:
		return s.styles.Error.Render("Unavailable")
	case domain.StateIdle:
	}
	return s.styles.Muted.Render("Ready")
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.state == domain.StateShowingResults && s.count > 0 {
		bindings = s.keymap.ResultsHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetSnapshot updates the bar from a picker snapshot and clears any message.
func (s *Bar) SetSnapshot(snap domain.Snapshot) {
	s.state = snap.State
	s.count = len(snap.Candidates)
	s.message = ""
}

// State returns the displayed picker state.
func (s *Bar) State() domain.SearchState {
	return s.state
}

// Count returns the displayed candidate count.
func (s *Bar) Count() int {
	return s.count
}

// SetMessage shows a message in place of the state until the next snapshot.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}
