package picker

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/placepick/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/placepick/internal/core/domain"
)

// mockPicker implements driving.PickerService for testing.
type mockPicker struct {
	snap      domain.Snapshot
	inputs    []string
	selected  []int
	selectErr error
	settings  []domain.PickerSettings
	closed    bool
}

func (m *mockPicker) SetInput(_ context.Context, raw string) {
	m.inputs = append(m.inputs, raw)
	m.snap.Revision++
	m.snap.InputText = raw
	m.snap.Query = raw
	if len([]rune(raw)) < 3 {
		m.snap.State = domain.StateIdle
		m.snap.Candidates = nil
		m.snap.Loading = false
		return
	}
	m.snap.State = domain.StateLoading
	m.snap.Loading = true
}

func (m *mockPicker) Select(_ context.Context, index int) (domain.Pick, error) {
	m.selected = append(m.selected, index)
	if m.selectErr != nil {
		return domain.Pick{}, m.selectErr
	}
	c := m.snap.Candidates[index]
	sel := domain.NewSelection(c)
	m.snap = domain.Snapshot{
		Revision:  m.snap.Revision + 1,
		State:     domain.StateIdle,
		InputText: c.Label(),
		Query:     c.Label(),
	}
	return domain.Pick{Candidate: c, Selection: sel, Encoded: domain.EncodeSelection(sel)}, nil
}

func (m *mockPicker) Snapshot() domain.Snapshot { return m.snap }

func (m *mockPicker) Subscribe(func(domain.Snapshot)) func() { return func() {} }

func (m *mockPicker) SetSettings(s domain.PickerSettings) { m.settings = append(m.settings, s) }

func (m *mockPicker) Close() { m.closed = true }

// resolve simulates the dispatcher delivering results for the current query.
func (m *mockPicker) resolve(candidates ...domain.Candidate) domain.Snapshot {
	m.snap.Revision++
	m.snap.Loading = false
	m.snap.Candidates = candidates
	if len(candidates) == 0 {
		m.snap.State = domain.StateShowingEmpty
		m.snap.Tooltip = domain.TooltipNotFound
	} else {
		m.snap.State = domain.StateShowingResults
		m.snap.Tooltip = ""
	}
	return m.snap
}

func madrid() domain.Candidate {
	return domain.Candidate{ID: "3117735", Name: "Madrid", AdminName: "Madrid", CountryName: "Spain", Latitude: "40.4165", Longitude: "-3.70256"}
}

func madridNM() domain.Candidate {
	return domain.Candidate{ID: "5475352", Name: "Madrid", AdminName: "New Mexico", CountryName: "United States", Latitude: "35.40643", Longitude: "-106.15418"}
}

func newTestView(t *testing.T) (*View, *mockPicker) {
	t.Helper()
	m := &mockPicker{}
	v := NewView(nil, nil, m)
	v.SetDimensions(100, 30)
	return v, m
}

func typeText(v *View, text string) {
	for _, r := range text {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, nil)

	require.NotNil(t, v)
	assert.False(t, v.Ready())
	assert.Equal(t, "Initialising...", v.View())
	assert.NotNil(t, v.Init())
	assert.Nil(t, v.Picked())
}

func TestView_WithContext(t *testing.T) {
	v := NewView(nil, nil, nil)
	type key string
	ctx := context.WithValue(context.Background(), key("k"), "v")

	assert.Same(t, v, v.WithContext(ctx))
	assert.Equal(t, ctx, v.ctx)
}

func TestView_WindowSize(t *testing.T) {
	v := NewView(nil, nil, nil)

	_, cmd := v.Update(tea.WindowSizeMsg{Width: 90, Height: 20})

	assert.Nil(t, cmd)
	assert.True(t, v.Ready())
}

func TestView_TypingForwardsEveryChange(t *testing.T) {
	v, m := newTestView(t)

	typeText(v, "Mad")

	assert.Equal(t, []string{"M", "Ma", "Mad"}, m.inputs)
	assert.Equal(t, "Mad", v.Value())
	assert.Equal(t, domain.StateLoading, v.Snapshot().State)
}

func TestView_NavigationKeysDoNotTouchInput(t *testing.T) {
	v, m := newTestView(t)
	typeText(v, "Mad")
	v.Update(messages.SnapshotChanged{Snapshot: m.resolve(madrid(), madridNM())})

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, v.SelectedIndex())
	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, v.SelectedIndex())

	assert.Len(t, m.inputs, 3)
}

func TestView_SnapshotRendersCandidatesAndStatus(t *testing.T) {
	v, m := newTestView(t)
	typeText(v, "Mad")

	v.Update(messages.SnapshotChanged{Snapshot: m.resolve(madrid(), madridNM())})
	out := v.View()

	assert.Contains(t, out, "Madrid, Madrid (Spain)")
	assert.Contains(t, out, "Madrid, New Mexico (United States)")
	assert.Contains(t, out, "2 places")
}

func TestView_OlderSnapshotIgnored(t *testing.T) {
	v, m := newTestView(t)
	typeText(v, "Mad")
	stale := m.snap
	v.Update(messages.SnapshotChanged{Snapshot: m.resolve(madrid())})

	v.Update(messages.SnapshotChanged{Snapshot: stale})

	assert.Equal(t, domain.StateShowingResults, v.Snapshot().State)
	assert.Equal(t, 1, len(v.Snapshot().Candidates))
}

func TestView_EmptyResultShowsTooltip(t *testing.T) {
	v, m := newTestView(t)
	typeText(v, "Xyzzy")

	v.Update(messages.SnapshotChanged{Snapshot: m.resolve()})

	assert.Contains(t, v.View(), domain.TooltipNotFound)
	assert.Contains(t, v.View(), "No places")
}

func TestView_ErrorTooltip(t *testing.T) {
	v, m := newTestView(t)
	typeText(v, "Mad")
	m.snap.Revision++
	m.snap.State = domain.StateShowingError
	m.snap.Loading = false
	m.snap.Tooltip = domain.TooltipUnavailable

	v.Update(messages.SnapshotChanged{Snapshot: m.snap})

	assert.Contains(t, v.View(), domain.TooltipUnavailable)
	assert.Contains(t, v.View(), "Unavailable")
}

func TestView_EnterPicksHighlighted(t *testing.T) {
	v, m := newTestView(t)
	typeText(v, "Mad")
	v.Update(messages.SnapshotChanged{Snapshot: m.resolve(madrid(), madridNM())})
	v.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.PlacePicked)
	require.True(t, ok)
	assert.Equal(t, madridNM(), msg.Pick.Candidate)
	assert.Equal(t, []int{1}, m.selected)
	assert.Equal(t, "Madrid, New Mexico (United States)", v.Value())
	require.NotNil(t, v.Picked())
	assert.Equal(t, msg.Pick.Encoded, v.Picked().Encoded)
	assert.Equal(t, domain.StateIdle, v.Snapshot().State)
	assert.Empty(t, v.Snapshot().Candidates)
}

func TestView_EnterWithoutCandidatesDoesNothing(t *testing.T) {
	v, m := newTestView(t)
	typeText(v, "Mad")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, m.selected)
}

func TestView_EnterWithUnrenderedResultsRefreshesFirst(t *testing.T) {
	v, m := newTestView(t)
	typeText(v, "Mad")
	v.Update(messages.SnapshotChanged{Snapshot: m.resolve(madridNM())})
	// A newer result reaches the service before its snapshot reaches the view.
	m.resolve(madrid(), madridNM())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, m.selected)
	assert.Len(t, v.Snapshot().Candidates, 2)
}

func TestView_SelectErrorShownInStatus(t *testing.T) {
	v, m := newTestView(t)
	typeText(v, "Mad")
	v.Update(messages.SnapshotChanged{Snapshot: m.resolve(madrid())})
	m.selectErr = errors.New("index out of range")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, "index out of range", v.StatusMessage())
	assert.Nil(t, v.Picked())
}

func TestView_EscClearsThenQuits(t *testing.T) {
	v, m := newTestView(t)
	typeText(v, "Mad")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.Empty(t, v.Value())
	assert.Equal(t, "", m.inputs[len(m.inputs)-1])
	assert.Equal(t, domain.StateIdle, v.Snapshot().State)

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, messages.Quit{}, cmd())
}

func TestView_SettingsReloaded(t *testing.T) {
	v, _ := newTestView(t)

	v.Update(messages.SettingsReloaded{})
	assert.Equal(t, "Settings reloaded", v.StatusMessage())

	v.Update(messages.SettingsReloaded{Err: errors.New("parse config.toml")})
	assert.Contains(t, v.StatusMessage(), "parse config.toml")
}

func TestView_ErrorOccurred(t *testing.T) {
	v, _ := newTestView(t)

	v.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.Equal(t, "boom", v.StatusMessage())
}

func TestView_NilPickerIgnoresInput(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.SetDimensions(80, 24)

	typeText(v, "Lyon")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "Lyon", v.Value())
	assert.Nil(t, cmd)
}
