package driven

import (
	"context"

	"github.com/custodia-labs/placepick/internal/core/domain"
)

// SelectionStore persists encoded selections.
// Stores keep the encoded value verbatim and never decode it; the
// Selection field of returned records is left zero.
type SelectionStore interface {
	// Save inserts or replaces a record.
	Save(ctx context.Context, record domain.SelectionRecord) error

	// Get retrieves a record by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.SelectionRecord, error)

	// List returns all records, newest first.
	List(ctx context.Context) ([]domain.SelectionRecord, error)

	// Delete removes a record by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}
