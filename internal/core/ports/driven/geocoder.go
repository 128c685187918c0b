package driven

import (
	"context"

	"github.com/custodia-labs/placepick/internal/core/domain"
)

// Geocoder looks up places by name at an external provider.
// Implementations are metered: every call costs provider quota.
type Geocoder interface {
	// Search returns the provider records matching query, in provider order.
	// No matches is an empty slice and a nil error, never an error.
	// Failures wrap domain.ErrTransport, domain.ErrUpstream,
	// domain.ErrRateLimited or domain.ErrMissingCredentials.
	Search(ctx context.Context, query string, filters domain.SearchFilters) ([]domain.GeoRecord, error)
}
