package messages

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/placepick/internal/core/domain"
)

func TestMessages_AreDistinctTypes(t *testing.T) {
	msgs := []tea.Msg{
		SnapshotChanged{Snapshot: domain.Snapshot{Revision: 3, State: domain.StateLoading}},
		PlacePicked{Pick: domain.Pick{Encoded: `{"name":"Madrid","lat":"40.4","lng":"-3.7"}`}},
		SettingsReloaded{Settings: domain.PickerSettings{MinimumSearchLength: 2}},
		ErrorOccurred{Err: errors.New("boom")},
		Quit{},
	}

	kinds := make(map[string]bool)
	for _, m := range msgs {
		var kind string
		switch m.(type) {
		case SnapshotChanged:
			kind = "snapshot"
		case PlacePicked:
			kind = "picked"
		case SettingsReloaded:
			kind = "settings"
		case ErrorOccurred:
			kind = "error"
		case Quit:
			kind = "quit"
		}
		assert.NotEmpty(t, kind)
		assert.False(t, kinds[kind])
		kinds[kind] = true
	}
}

func TestSnapshotChanged_CarriesState(t *testing.T) {
	msg := SnapshotChanged{Snapshot: domain.Snapshot{
		Revision:  7,
		State:     domain.StateShowingResults,
		InputText: "Madr",
		Candidates: []domain.Candidate{
			{ID: "3117735", Name: "Madrid", AdminName: "Madrid", CountryName: "Spain"},
		},
	}}

	assert.Equal(t, uint64(7), msg.Snapshot.Revision)
	assert.True(t, msg.Snapshot.HasCandidates())
	assert.Equal(t, "Madrid, Madrid (Spain)", msg.Snapshot.Candidates[0].Label())
}
