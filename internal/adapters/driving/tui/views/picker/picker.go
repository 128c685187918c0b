// Package picker provides the place picker view: an input, a dropdown of
// candidates and a status bar, all rendered from picker service snapshots.
package picker

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/placepick/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/placepick/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/placepick/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/placepick/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/placepick/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/placepick/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/placepick/internal/core/domain"
	"github.com/custodia-labs/placepick/internal/core/ports/driving"
)

// View is the picker screen. It never decides state itself: every key
// that changes the input is forwarded to the picker service and the
// resulting snapshot is rendered.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.PlaceInput
	list      *list.CandidateList
	statusbar *status.Bar

	picker driving.PickerService
	ctx    context.Context

	snapshot domain.Snapshot
	picked   *domain.Pick

	width  int
	height int
	ready  bool
}

// NewView creates a new picker view.
func NewView(s *styles.Styles, km *keymap.KeyMap, picker driving.PickerService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:    s,
		keymap:    km,
		input:     input.NewPlaceInput(s),
		list:      list.NewCandidateList(s),
		statusbar: status.NewBar(s, km),
		picker:    picker,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
	if picker != nil {
		v.apply(picker.Snapshot())
	}
	return v
}

// WithContext sets the context passed to the picker service.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the picker view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SnapshotChanged:
		v.apply(msg.Snapshot)
		return v, nil

	case messages.SettingsReloaded:
		if msg.Err != nil {
			v.statusbar.SetMessage("Config not reloaded: " + msg.Err.Error())
		} else {
			v.statusbar.SetMessage("Settings reloaded")
		}
		return v, nil

	case messages.ErrorOccurred:
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	// Cursor blink and other input internals.
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	switch {
	case keymap.Matches(k, v.keymap.Clear):
		if v.input.Value() == "" {
			return v, func() tea.Msg { return messages.Quit{} }
		}
		v.input.SetValue("")
		v.syncInput()
		return v, nil

	case keymap.Matches(k, v.keymap.Up):
		v.list.MoveUp()
		return v, nil

	case keymap.Matches(k, v.keymap.Down):
		v.list.MoveDown()
		return v, nil

	case keymap.Matches(k, v.keymap.Select):
		return v.pick()
	}

	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if v.input.Value() != before {
		v.syncInput()
	}
	return v, cmd
}

// syncInput hands the input text to the picker service and renders the
// snapshot it produces right away.
func (v *View) syncInput() {
	if v.picker == nil {
		return
	}
	v.picker.SetInput(v.ctx, v.input.Value())
	v.apply(v.picker.Snapshot())
}

// pick selects the highlighted candidate.
func (v *View) pick() (*View, tea.Cmd) {
	if v.picker == nil || v.list.IsEmpty() {
		return v, nil
	}

	// Results that arrived after the last render would shift the index.
	if current := v.picker.Snapshot(); current.Revision != v.snapshot.Revision {
		v.apply(current)
		return v, nil
	}

	p, err := v.picker.Select(v.ctx, v.list.Selected())
	if err != nil {
		v.statusbar.SetMessage(err.Error())
		return v, nil
	}

	v.picked = &p
	v.input.SetValue(p.Candidate.Label())
	v.apply(v.picker.Snapshot())

	return v, func() tea.Msg { return messages.PlacePicked{Pick: p} }
}

// apply renders snap unless a newer snapshot was already rendered.
func (v *View) apply(snap domain.Snapshot) {
	if snap.Revision < v.snapshot.Revision {
		return
	}
	v.snapshot = snap
	v.list.SetCandidates(snap.Candidates)
	v.statusbar.SetSnapshot(snap)
}

// View renders the picker.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections,
		v.styles.Title.Render("placepick")+" "+v.styles.Muted.Render("place search"),
		"",
		v.input.View(),
	)

	if tip := v.snapshot.Tooltip; tip != "" {
		style := v.styles.Tooltip
		if v.snapshot.State == domain.StateShowingError {
			style = v.styles.Error.PaddingLeft(2)
		}
		sections = append(sections, style.Render(tip))
	}

	if dropdown := v.list.View(); dropdown != "" {
		sections = append(sections, dropdown)
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	// Header, input box, tooltip and status bar.
	v.list.SetDimensions(width, height-9)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Value returns the input text.
func (v *View) Value() string {
	return v.input.Value()
}

// Snapshot returns the last rendered snapshot.
func (v *View) Snapshot() domain.Snapshot {
	return v.snapshot
}

// SelectedIndex returns the highlighted candidate index.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Picked returns the last pick, or nil if nothing was picked.
func (v *View) Picked() *domain.Pick {
	return v.picked
}

// StatusMessage returns the transient status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}
