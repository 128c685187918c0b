package mcp

import (
	"context"

	"github.com/custodia-labs/placepick/internal/core/domain"
)

// mockLookupService is a mock implementation of driving.LookupService.
type mockLookupService struct {
	candidates  []domain.Candidate
	err         error
	lastQuery   string
	lastFilters *domain.SearchFilters
}

func (m *mockLookupService) Search(
	_ context.Context,
	raw string,
	filters *domain.SearchFilters,
) ([]domain.Candidate, error) {
	m.lastQuery = raw
	m.lastFilters = filters
	return m.candidates, m.err
}

// mockSelectionService is a mock implementation of driving.SelectionService.
// Encoding and decoding use the real codec.
type mockSelectionService struct {
	records []domain.SelectionRecord
	record  *domain.SelectionRecord
	saved   []domain.Candidate
	err     error
}

func (m *mockSelectionService) Encode(candidate domain.Candidate) string {
	return domain.EncodeSelection(domain.NewSelection(candidate))
}

func (m *mockSelectionService) Decode(value string) (domain.Selection, error) {
	return domain.DecodeSelection(value)
}

func (m *mockSelectionService) Save(_ context.Context, candidate domain.Candidate) (*domain.SelectionRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.saved = append(m.saved, candidate)
	sel := domain.NewSelection(candidate)
	return &domain.SelectionRecord{
		ID:        "sel-1",
		Value:     domain.EncodeSelection(sel),
		Selection: sel,
	}, nil
}

func (m *mockSelectionService) Get(_ context.Context, _ string) (*domain.SelectionRecord, error) {
	return m.record, m.err
}

func (m *mockSelectionService) List(_ context.Context) ([]domain.SelectionRecord, error) {
	return m.records, m.err
}

func (m *mockSelectionService) Delete(_ context.Context, _ string) error {
	return m.err
}

func newTestServer(lookup *mockLookupService, selection *mockSelectionService) (*Server, error) {
	if lookup == nil {
		lookup = &mockLookupService{}
	}
	if selection == nil {
		selection = &mockSelectionService{}
	}
	return NewServer(&Ports{Lookup: lookup, Selection: selection})
}
