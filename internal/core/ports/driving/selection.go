package driving

import (
	"context"

	"github.com/custodia-labs/placepick/internal/core/domain"
)

// SelectionService encodes, decodes and keeps picked places.
type SelectionService interface {
	// Encode returns the persisted value for a candidate.
	Encode(candidate domain.Candidate) string

	// Decode parses a persisted value.
	// Malformed values fail with *domain.DecodeError.
	Decode(value string) (domain.Selection, error)

	// Save encodes and stores a candidate.
	Save(ctx context.Context, candidate domain.Candidate) (*domain.SelectionRecord, error)

	// Get retrieves and decodes a stored selection.
	Get(ctx context.Context, id string) (*domain.SelectionRecord, error)

	// List returns all stored selections, newest first.
	List(ctx context.Context) ([]domain.SelectionRecord, error)

	// Delete removes a stored selection.
	Delete(ctx context.Context, id string) error
}
