package domain

import "fmt"

// SearchState is the presentation state of the picker.
type SearchState string

// Picker states. There is no terminal state.
const (
	// StateIdle means nothing is being searched or shown.
	StateIdle SearchState = "idle"

	// StateLoading means a query has been dispatched and no answer applied yet.
	StateLoading SearchState = "loading"

	// StateShowingResults means at least one candidate is on display.
	StateShowingResults SearchState = "showing_results"

	// StateShowingEmpty means the provider found nothing for the query.
	StateShowingEmpty SearchState = "showing_empty"

	// StateShowingError means the lookup failed.
	StateShowingError SearchState = "showing_error"
)

// IsValid returns true if the state is recognised.
func (s SearchState) IsValid() bool {
	switch s {
	case StateIdle, StateLoading, StateShowingResults, StateShowingEmpty, StateShowingError:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s SearchState) String() string {
	return string(s)
}

// User-facing hints. These are the only failure text a user ever sees.
const (
	// TooltipNotFound is shown when a query returns no places.
	TooltipNotFound = "Location not found. Try with a nearby village or city."

	// TooltipUnavailable is shown when the lookup itself failed.
	TooltipUnavailable = "Location search is unavailable right now. Try again shortly."

	// TooltipNotConfigured is shown when no provider account is set up.
	TooltipNotConfigured = "Location search is not configured."
)

// TooltipTooShort returns the hint shown for input below the minimum length.
func TooltipTooShort(minimumLength int) string {
	return fmt.Sprintf("Write at least %d characters to start searching.", minimumLength)
}

// SearchFilters narrows a provider search.
type SearchFilters struct {
	// QueryType selects how the provider matches the query text.
	QueryType QueryType

	// FeatureClasses restricts results to feature classes (e.g. "P" for populated places).
	FeatureClasses []string

	// FeatureCodes restricts results to feature codes (e.g. "PPLC" for capitals).
	FeatureCodes []string
}

// Snapshot is the observable picker state consumed by renderers.
// Exactly one of "candidates non-empty", "tooltip non-empty" or
// "both empty" holds at any time.
type Snapshot struct {
	// Revision increases with every state change.
	// Consumers drop snapshots older than the one they hold.
	Revision uint64

	// State is the presentation state.
	State SearchState

	// InputText is the raw text in the input field.
	InputText string

	// Query is InputText after normalisation.
	Query string

	// Candidates is the list on display.
	Candidates []Candidate

	// Tooltip is the informational hint on display.
	Tooltip string

	// Loading is true while a dispatched query awaits its answer.
	Loading bool
}

// HasCandidates returns true if there is something to pick.
func (s Snapshot) HasCandidates() bool {
	return len(s.Candidates) > 0
}
