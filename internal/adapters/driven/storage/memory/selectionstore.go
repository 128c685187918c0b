package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/placepick/internal/core/domain"
	"github.com/custodia-labs/placepick/internal/core/ports/driven"
)

// Ensure SelectionStore implements the interface.
var _ driven.SelectionStore = (*SelectionStore)(nil)

// SelectionStore is an in-memory implementation of driven.SelectionStore.
type SelectionStore struct {
	mu      sync.RWMutex
	records map[string]domain.SelectionRecord
}

// NewSelectionStore creates a new in-memory selection store.
func NewSelectionStore() *SelectionStore {
	return &SelectionStore{
		records: make(map[string]domain.SelectionRecord),
	}
}

// Save inserts or replaces a record.
// Only the encoded value is kept, matching persistent stores.
func (s *SelectionStore) Save(_ context.Context, record domain.SelectionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.Selection = domain.Selection{}
	s.records[record.ID] = record
	return nil
}

// Get retrieves a record by ID.
func (s *SelectionStore) Get(_ context.Context, id string) (*domain.SelectionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// List returns all records, newest first.
func (s *SelectionStore) List(_ context.Context) ([]domain.SelectionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.SelectionRecord, 0, len(s.records))
	for _, record := range s.records {
		result = append(result, record)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Delete removes a record by ID.
func (s *SelectionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.records, id)
	return nil
}
