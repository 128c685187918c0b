package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/placepick/internal/core/domain"
	"github.com/custodia-labs/placepick/internal/core/ports/driven"
	"github.com/custodia-labs/placepick/internal/core/ports/driving"
)

// Ensure LookupService implements the interface.
var _ driving.LookupService = (*LookupService)(nil)

// LookupService runs one-shot searches against the geocoder.
type LookupService struct {
	geocoder driven.Geocoder

	mu       sync.RWMutex
	settings domain.PickerSettings
}

// NewLookupService creates a new lookup service.
// geocoder may be nil; searches then fail with domain.ErrMissingCredentials.
func NewLookupService(geocoder driven.Geocoder, settings domain.PickerSettings) *LookupService {
	return &LookupService{
		geocoder: geocoder,
		settings: settings,
	}
}

// SetSettings replaces the picker settings used for normalisation and filters.
func (s *LookupService) SetSettings(settings domain.PickerSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// Settings returns the current picker settings.
func (s *LookupService) Settings() domain.PickerSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Search normalises raw, queries the provider and deduplicates the answer.
func (s *LookupService) Search(ctx context.Context, raw string, filters *domain.SearchFilters) ([]domain.Candidate, error) {
	settings := s.Settings()

	q := domain.NormalizeQuery(raw, settings.MinimumSearchLength)
	if !q.Eligible {
		return nil, fmt.Errorf("%w: %q has fewer than %d characters",
			domain.ErrIneligibleQuery, q.Text, minimumLength(settings))
	}

	f := settings.Filters()
	if filters != nil {
		f = *filters
		if f.QueryType == "" {
			f.QueryType = settings.QueryType
		}
	}

	return s.lookup(ctx, q.Text, f)
}

// lookup searches already normalised text.
func (s *LookupService) lookup(ctx context.Context, text string, filters domain.SearchFilters) ([]domain.Candidate, error) {
	if s.geocoder == nil {
		return nil, domain.ErrMissingCredentials
	}
	if filters.QueryType == "" {
		filters.QueryType = domain.QueryTypeNameStartsWith
	}

	records, err := s.geocoder.Search(ctx, text, filters)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", text, err)
	}

	return Dedupe(records), nil
}

func minimumLength(settings domain.PickerSettings) int {
	if settings.MinimumSearchLength <= 0 {
		return domain.DefaultMinimumSearchLength
	}
	return settings.MinimumSearchLength
}
