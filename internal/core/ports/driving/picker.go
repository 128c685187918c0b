package driving

import (
	"context"

	"github.com/custodia-labs/placepick/internal/core/domain"
)

// PickerService drives the interactive search-and-select flow.
// It owns the observable picker state; renderers only read snapshots.
type PickerService interface {
	// SetInput records a change of the input text. Eligible input is
	// dispatched after the debounce quiet period; ineligible input resets
	// the picker to idle immediately.
	SetInput(ctx context.Context, raw string)

	// Select picks the candidate at index from the current snapshot.
	// The candidate list is cleared and the input text is set to its label.
	Select(ctx context.Context, index int) (domain.Pick, error)

	// Snapshot returns the current observable state.
	Snapshot() domain.Snapshot

	// Subscribe registers fn to be called after every state change.
	// The returned function removes the subscription.
	Subscribe(fn func(domain.Snapshot)) (unsubscribe func())

	// SetSettings replaces the picker settings at runtime.
	SetSettings(settings domain.PickerSettings)

	// Close cancels pending work. The picker stays readable afterwards.
	Close()
}
