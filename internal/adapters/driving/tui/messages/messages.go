// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/placepick/internal/core/domain"
)

// SnapshotChanged carries a picker state published by the picker service.
// Snapshots may arrive out of order; receivers keep the highest revision.
type SnapshotChanged struct {
	Snapshot domain.Snapshot
}

// PlacePicked is sent when the user picks a candidate.
type PlacePicked struct {
	Pick domain.Pick
}

// SettingsReloaded is sent after the configuration file changed on disk.
type SettingsReloaded struct {
	Settings domain.PickerSettings
	Err      error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit without a pick.
type Quit struct{}
