// Package list provides list display components for the TUI.
package list

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/placepick/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/placepick/internal/core/domain"
)

// CandidateList displays place candidates in a navigable dropdown.
type CandidateList struct {
	candidates []domain.Candidate
	selected   int
	styles     *styles.Styles
	width      int
	height     int
}

// NewCandidateList creates a new candidate list component.
func NewCandidateList(s *styles.Styles) *CandidateList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &CandidateList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (c *CandidateList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (c *CandidateList) Update(msg tea.Msg) (*CandidateList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			c.MoveUp()
		case tea.KeyDown:
			c.MoveDown()
		}
	}
	return c, nil
}

// View renders the dropdown. An empty list renders nothing.
func (c *CandidateList) View() string {
	if len(c.candidates) == 0 {
		return ""
	}

	visible := max(c.height-2, 1)
	start := 0
	if c.selected >= visible {
		start = c.selected - visible + 1
	}
	end := min(start+visible, len(c.candidates))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, c.renderCandidate(i, c.candidates[i]))
	}

	return c.styles.Dropdown.Render(strings.Join(lines, "\n"))
}

// renderCandidate formats one entry as its label followed by coordinates.
func (c *CandidateList) renderCandidate(index int, candidate domain.Candidate) string {
	indicator := "  "
	if index == c.selected {
		indicator = "> "
	}

	coords := candidate.Latitude + ", " + candidate.Longitude
	maxLabel := max(c.width-lipgloss.Width(coords)-8, 10)
	label := truncate(candidate.Label(), maxLabel)

	if index == c.selected {
		return c.styles.Selected.Render(indicator+label) + "  " + c.styles.Coordinates.Render(coords)
	}
	return c.styles.Normal.Render(indicator+label) + "  " + c.styles.Coordinates.Render(coords)
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// SetCandidates replaces the list. The highlight returns to the top
// unless the same candidates are shown again.
func (c *CandidateList) SetCandidates(candidates []domain.Candidate) {
	if !sameIDs(c.candidates, candidates) {
		c.selected = 0
	}
	c.candidates = candidates
}

func sameIDs(a, b []domain.Candidate) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

// Candidates returns the current candidates.
func (c *CandidateList) Candidates() []domain.Candidate {
	return c.candidates
}

// Selected returns the index of the highlighted candidate.
func (c *CandidateList) Selected() int {
	return c.selected
}

// SelectedCandidate returns the highlighted candidate, or nil if none.
func (c *CandidateList) SelectedCandidate() *domain.Candidate {
	if c.selected < 0 || c.selected >= len(c.candidates) {
		return nil
	}
	return &c.candidates[c.selected]
}

// MoveUp moves the highlight up.
func (c *CandidateList) MoveUp() {
	if c.selected > 0 {
		c.selected--
	}
}

// MoveDown moves the highlight down.
func (c *CandidateList) MoveDown() {
	if c.selected < len(c.candidates)-1 {
		c.selected++
	}
}

// SetDimensions sets the component dimensions.
func (c *CandidateList) SetDimensions(width, height int) {
	c.width = width
	c.height = height
}

// Count returns the number of candidates.
func (c *CandidateList) Count() int {
	return len(c.candidates)
}

// IsEmpty returns whether the list is empty.
func (c *CandidateList) IsEmpty() bool {
	return len(c.candidates) == 0
}
