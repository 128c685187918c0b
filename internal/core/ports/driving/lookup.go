package driving

import (
	"context"

	"github.com/custodia-labs/placepick/internal/core/domain"
)

// LookupService runs one-shot place searches without debouncing.
type LookupService interface {
	// Search normalises raw, queries the provider and deduplicates the answer.
	// Returns domain.ErrIneligibleQuery for input below the minimum length.
	// A nil filters uses the configured picker filters.
	// No matches is an empty slice and a nil error.
	Search(ctx context.Context, raw string, filters *domain.SearchFilters) ([]domain.Candidate, error)
}
