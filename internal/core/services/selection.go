package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/placepick/internal/core/domain"
	"github.com/custodia-labs/placepick/internal/core/ports/driven"
	"github.com/custodia-labs/placepick/internal/core/ports/driving"
)

// Ensure SelectionService implements the interface.
var _ driving.SelectionService = (*SelectionService)(nil)

// ErrNoSelectionStore is returned when persistence is requested but no store is configured.
var ErrNoSelectionStore = errors.New("selection store not configured")

// SelectionService encodes, decodes and keeps picked places.
type SelectionService struct {
	store driven.SelectionStore
	newID func() string
	now   func() time.Time
}

// NewSelectionService creates a new selection service.
// store may be nil; encoding and decoding still work.
func NewSelectionService(store driven.SelectionStore) *SelectionService {
	return &SelectionService{
		store: store,
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// Encode returns the persisted value for a candidate.
func (s *SelectionService) Encode(candidate domain.Candidate) string {
	return domain.EncodeSelection(domain.NewSelection(candidate))
}

// Decode parses a persisted value.
func (s *SelectionService) Decode(value string) (domain.Selection, error) {
	return domain.DecodeSelection(value)
}

// Save encodes and stores a candidate.
func (s *SelectionService) Save(ctx context.Context, candidate domain.Candidate) (*domain.SelectionRecord, error) {
	if s.store == nil {
		return nil, ErrNoSelectionStore
	}

	selection := domain.NewSelection(candidate)
	record := domain.SelectionRecord{
		ID:        s.newID(),
		Value:     domain.EncodeSelection(selection),
		Selection: selection,
		CreatedAt: s.now().UTC(),
	}

	if err := s.store.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("save selection: %w", err)
	}

	return &record, nil
}

// Get retrieves and decodes a stored selection.
// A corrupted stored value fails with *domain.DecodeError.
func (s *SelectionService) Get(ctx context.Context, id string) (*domain.SelectionRecord, error) {
	if s.store == nil {
		return nil, ErrNoSelectionStore
	}

	record, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	selection, err := domain.DecodeSelection(record.Value)
	if err != nil {
		return nil, fmt.Errorf("selection %s: %w", id, err)
	}
	record.Selection = selection

	return record, nil
}

// List returns all stored selections, newest first.
// A corrupted stored value fails the whole listing with *domain.DecodeError.
func (s *SelectionService) List(ctx context.Context) ([]domain.SelectionRecord, error) {
	if s.store == nil {
		return nil, ErrNoSelectionStore
	}

	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range records {
		selection, err := domain.DecodeSelection(records[i].Value)
		if err != nil {
			return nil, fmt.Errorf("selection %s: %w", records[i].ID, err)
		}
		records[i].Selection = selection
	}

	return records, nil
}

// Delete removes a stored selection.
func (s *SelectionService) Delete(ctx context.Context, id string) error {
	if s.store == nil {
		return ErrNoSelectionStore
	}
	return s.store.Delete(ctx, id)
}
